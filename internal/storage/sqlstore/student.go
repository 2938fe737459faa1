package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
)

// Explicitly list columns; never use SELECT * in production code.
// If a column is added later, SELECT * would break Scan's ordering.
var studentColumns = []string{
	"id", "first_name", "last_name", "email", "grade", "phone_number", "date_of_birth",
}

// StudentStore is the SQL implementation of storage.StudentRepository.
type StudentStore struct {
	store
}

var _ storage.StudentRepository = (*StudentStore)(nil)

// NewStudentStore returns a StudentStore that borrows its connection from
// conn. The store never closes the connection.
func NewStudentStore(conn Connector, log *slog.Logger) *StudentStore {
	return &StudentStore{store: newStore(conn, log)}
}

// studentFields returns scan targets in studentColumns order.
func studentFields(st *types.Student) []any {
	return []any{
		&st.ID,
		&st.FirstName,
		&st.LastName,
		&st.Email,
		&st.Grade,
		&st.PhoneNumber,
		&st.DateOfBirth,
	}
}

func (s *StudentStore) findOne(ctx context.Context, op string, where sq.Eq) (types.Student, bool, error) {
	q := s.sb.Select(studentColumns...).
		From("student").
		Where(where).
		OrderBy("id").
		Limit(1)

	var st types.Student
	found, err := s.queryRow(ctx, op, q, studentFields(&st)...)
	if err != nil || !found {
		return types.Student{}, false, err
	}
	return st, true, nil
}

// FindByID fetches exactly one student row matched by primary key.
func (s *StudentStore) FindByID(ctx context.Context, id int64) (types.Student, bool, error) {
	return s.findOne(ctx, "FindStudentByID", sq.Eq{"id": id})
}

// FindByLastName fetches the first student with the given last name.
func (s *StudentStore) FindByLastName(ctx context.Context, lastName string) (types.Student, bool, error) {
	return s.findOne(ctx, "FindStudentByLastName", sq.Eq{"last_name": lastName})
}

// List returns all students ordered by id.
func (s *StudentStore) List(ctx context.Context) ([]types.Student, error) {
	q := s.sb.Select(studentColumns...).From("student").OrderBy("id")

	// Pre-allocate an empty (non-nil) slice so "no students" is [] and
	// never null.
	students := make([]types.Student, 0)
	err := s.query(ctx, "ListStudents", q, func(rows *sql.Rows) error {
		var st types.Student
		if err := rows.Scan(studentFields(&st)...); err != nil {
			return err
		}
		students = append(students, st)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return students, nil
}

// Insert adds a new student row and returns the generated primary key.
//
// RETURNING id works on both PostgreSQL and SQLite (3.35+), and pgx does
// not implement LastInsertId, so the id is read back as a row.
func (s *StudentStore) Insert(ctx context.Context, st types.Student) (int64, error) {
	q := s.sb.Insert("student").
		Columns(studentColumns[1:]...).
		Values(st.FirstName, st.LastName, st.Email, st.Grade, st.PhoneNumber, st.DateOfBirth).
		Suffix("RETURNING id")

	var id int64
	found, err := s.queryRow(ctx, "InsertStudent", q, &id)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, s.fail("InsertStudent", fmt.Errorf("no id returned"))
	}
	return id, nil
}

// Update replaces a student's data with the provided values.
func (s *StudentStore) Update(ctx context.Context, st types.Student) (storage.Outcome, error) {
	q := s.sb.Update("student").
		Set("first_name", st.FirstName).
		Set("last_name", st.LastName).
		Set("email", st.Email).
		Set("grade", st.Grade).
		Set("phone_number", st.PhoneNumber).
		Set("date_of_birth", st.DateOfBirth).
		Where(sq.Eq{"id": st.ID})

	return s.exec(ctx, "UpdateStudent", q)
}

// Delete removes a student row by primary key.
func (s *StudentStore) Delete(ctx context.Context, id int64) (storage.Outcome, error) {
	q := s.sb.Delete("student").Where(sq.Eq{"id": id})
	return s.exec(ctx, "DeleteStudent", q)
}
