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

var courseColumns = []string{"id", "student_id", "name"}

// CourseStore is the SQL implementation of storage.CourseRepository.
type CourseStore struct {
	store
}

var _ storage.CourseRepository = (*CourseStore)(nil)

// NewCourseStore returns a CourseStore that borrows its connection from conn.
func NewCourseStore(conn Connector, log *slog.Logger) *CourseStore {
	return &CourseStore{store: newStore(conn, log)}
}

func (s *CourseStore) findOne(ctx context.Context, op string, where sq.Eq) (types.Course, bool, error) {
	q := s.sb.Select(courseColumns...).
		From("course").
		Where(where).
		OrderBy("id").
		Limit(1)

	var c types.Course
	found, err := s.queryRow(ctx, op, q, &c.ID, &c.StudentID, &c.Name)
	if err != nil || !found {
		return types.Course{}, false, err
	}
	return c, true, nil
}

func (s *CourseStore) FindByID(ctx context.Context, id int64) (types.Course, bool, error) {
	return s.findOne(ctx, "FindCourseByID", sq.Eq{"id": id})
}

func (s *CourseStore) FindByName(ctx context.Context, name string) (types.Course, bool, error) {
	return s.findOne(ctx, "FindCourseByName", sq.Eq{"name": name})
}

// ListNames is a narrow projection for populating selection lists.
func (s *CourseStore) ListNames(ctx context.Context) ([]string, error) {
	q := s.sb.Select("name").From("course").OrderBy("id")

	names := make([]string, 0)
	err := s.query(ctx, "ListCourseNames", q, func(rows *sql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *CourseStore) Insert(ctx context.Context, c types.Course) (int64, error) {
	q := s.sb.Insert("course").
		Columns("name", "student_id").
		Values(c.Name, c.StudentID).
		Suffix("RETURNING id")

	var id int64
	found, err := s.queryRow(ctx, "InsertCourse", q, &id)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, s.fail("InsertCourse", fmt.Errorf("no id returned"))
	}
	return id, nil
}

func (s *CourseStore) Update(ctx context.Context, c types.Course) (storage.Outcome, error) {
	q := s.sb.Update("course").
		Set("name", c.Name).
		Set("student_id", c.StudentID).
		Where(sq.Eq{"id": c.ID})

	return s.exec(ctx, "UpdateCourse", q)
}

func (s *CourseStore) Delete(ctx context.Context, id int64) (storage.Outcome, error) {
	q := s.sb.Delete("course").Where(sq.Eq{"id": id})
	return s.exec(ctx, "DeleteCourse", q)
}
