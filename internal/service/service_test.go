package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/school-records/internal/apperrors"
	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
)

// studentRepo records every call that reaches the store.
type studentRepo struct {
	calls   int
	last    types.Student
	outcome storage.Outcome
	err     error
}

func (r *studentRepo) FindByID(_ context.Context, id int64) (types.Student, bool, error) {
	r.calls++
	return types.Student{ID: id}, true, r.err
}

func (r *studentRepo) FindByLastName(_ context.Context, lastName string) (types.Student, bool, error) {
	r.calls++
	return types.Student{ID: 1, LastName: lastName}, true, r.err
}

func (r *studentRepo) List(context.Context) ([]types.Student, error) {
	r.calls++
	return []types.Student{}, r.err
}

func (r *studentRepo) Insert(_ context.Context, st types.Student) (int64, error) {
	r.calls++
	r.last = st
	return 7, r.err
}

func (r *studentRepo) Update(_ context.Context, st types.Student) (storage.Outcome, error) {
	r.calls++
	r.last = st
	return r.outcome, r.err
}

func (r *studentRepo) Delete(context.Context, int64) (storage.Outcome, error) {
	r.calls++
	return r.outcome, r.err
}

type courseRepo struct {
	calls   int
	last    types.Course
	outcome storage.Outcome
	err     error
}

func (r *courseRepo) FindByID(_ context.Context, id int64) (types.Course, bool, error) {
	r.calls++
	return types.Course{ID: id}, true, r.err
}

func (r *courseRepo) FindByName(_ context.Context, name string) (types.Course, bool, error) {
	r.calls++
	return types.Course{ID: 1, Name: name}, true, r.err
}

func (r *courseRepo) ListNames(context.Context) ([]string, error) {
	r.calls++
	return []string{}, r.err
}

func (r *courseRepo) Insert(_ context.Context, c types.Course) (int64, error) {
	r.calls++
	r.last = c
	return 3, r.err
}

func (r *courseRepo) Update(_ context.Context, c types.Course) (storage.Outcome, error) {
	r.calls++
	r.last = c
	return r.outcome, r.err
}

func (r *courseRepo) Delete(context.Context, int64) (storage.Outcome, error) {
	r.calls++
	return r.outcome, r.err
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func validInput() types.StudentInput {
	return types.StudentInput{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@x.io",
		Grade:       "A",
		PhoneNumber: "+10000000000",
		DateOfBirth: "1815-12-10",
	}
}

func TestStudentService_InvalidID(t *testing.T) {
	ctx := context.Background()

	for _, id := range []int64{0, -1} {
		repo := &studentRepo{}
		var logs bytes.Buffer
		svc := NewStudentService(repo, testLogger(&logs))

		_, _, err := svc.FindStudentByID(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

		_, err = svc.DeleteStudentByID(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

		_, err = svc.UpdateStudent(ctx, id, validInput())
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

		assert.Zero(t, repo.calls, "id %d must not reach the store", id)
		assert.Contains(t, logs.String(), "level=WARN")
	}
}

func TestStudentService_AddStudent(t *testing.T) {
	repo := &studentRepo{}
	var logs bytes.Buffer
	svc := NewStudentService(repo, testLogger(&logs))

	id, err := svc.AddStudent(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, 1, repo.calls)

	assert.Equal(t, types.Student{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@x.io",
		Grade:       "A",
		PhoneNumber: "+10000000000",
		DateOfBirth: types.NewDate(1815, time.December, 10),
	}, repo.last)
	assert.Contains(t, logs.String(), "student added")
}

func TestStudentService_AddStudent_MissingField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.StudentInput)
	}{
		{"first name", func(in *types.StudentInput) { in.FirstName = "" }},
		{"last name", func(in *types.StudentInput) { in.LastName = "  " }},
		{"email", func(in *types.StudentInput) { in.Email = "" }},
		{"grade", func(in *types.StudentInput) { in.Grade = "\t" }},
		{"phone number", func(in *types.StudentInput) { in.PhoneNumber = "" }},
		{"date of birth", func(in *types.StudentInput) { in.DateOfBirth = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &studentRepo{}
			svc := NewStudentService(repo, testLogger(&bytes.Buffer{}))

			in := validInput()
			tt.mutate(&in)

			_, err := svc.AddStudent(context.Background(), in)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
			assert.Zero(t, repo.calls)
		})
	}
}

func TestStudentService_AddStudent_BadDate(t *testing.T) {
	for _, dob := range []string{"31-02-2024", "", "not-a-date", "2024-02-31", "1815/12/10"} {
		t.Run(dob, func(t *testing.T) {
			repo := &studentRepo{}
			svc := NewStudentService(repo, testLogger(&bytes.Buffer{}))

			in := validInput()
			in.DateOfBirth = dob

			_, err := svc.AddStudent(context.Background(), in)
			assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
			assert.True(t, apperrors.IsValidation(err))
			assert.Zero(t, repo.calls)
		})
	}
}

func TestStudentService_AddStudent_ReportsEveryField(t *testing.T) {
	svc := NewStudentService(&studentRepo{}, testLogger(&bytes.Buffer{}))

	_, err := svc.AddStudent(context.Background(), types.StudentInput{DateOfBirth: "yesterday"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
	for _, field := range []string{"first_name", "last_name", "email", "grade", "phone_number", "date_of_birth"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestStudentService_UpdateStudent(t *testing.T) {
	ctx := context.Background()

	repo := &studentRepo{outcome: storage.Applied}
	var logs bytes.Buffer
	svc := NewStudentService(repo, testLogger(&logs))

	outcome, err := svc.UpdateStudent(ctx, 5, validInput())
	require.NoError(t, err)
	assert.Equal(t, storage.Applied, outcome)
	assert.Equal(t, int64(5), repo.last.ID)
	assert.Contains(t, logs.String(), "student updated")

	repo.outcome = storage.NotFound
	outcome, err = svc.UpdateStudent(ctx, 6, validInput())
	require.NoError(t, err)
	assert.Equal(t, storage.NotFound, outcome)
	assert.Contains(t, logs.String(), "no student with id")

	in := validInput()
	in.DateOfBirth = "10/12/1815"
	_, err = svc.UpdateStudent(ctx, 5, in)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFormat)
	assert.Equal(t, 2, repo.calls)
}

func TestStudentService_DeleteStudentByID(t *testing.T) {
	repo := &studentRepo{outcome: storage.NotFound}
	svc := NewStudentService(repo, testLogger(&bytes.Buffer{}))

	outcome, err := svc.DeleteStudentByID(context.Background(), 999999)
	require.NoError(t, err)
	assert.Equal(t, storage.NotFound, outcome)
	assert.Equal(t, 1, repo.calls)
}

func TestStudentService_FindStudentByLastName(t *testing.T) {
	repo := &studentRepo{}
	svc := NewStudentService(repo, testLogger(&bytes.Buffer{}))

	_, _, err := svc.FindStudentByLastName(context.Background(), " ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Zero(t, repo.calls)

	st, found, err := svc.FindStudentByLastName(context.Background(), "Lovelace")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Lovelace", st.LastName)
}

func TestStudentService_StoreErrorPassesThrough(t *testing.T) {
	storeErr := errors.Join(apperrors.ErrStoreUnavailable, errors.New("dial tcp: refused"))
	repo := &studentRepo{err: storeErr}
	svc := NewStudentService(repo, testLogger(&bytes.Buffer{}))
	ctx := context.Background()

	_, err := svc.ListStudents(ctx)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)

	_, err = svc.AddStudent(ctx, validInput())
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.False(t, apperrors.IsValidation(err))
}

func TestCourseService_AddCourse(t *testing.T) {
	repo := &courseRepo{}
	var logs bytes.Buffer
	svc := NewCourseService(repo, testLogger(&logs))

	id, err := svc.AddCourse(context.Background(), &types.Course{ID: 99, Name: "Algorithms", StudentID: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.Equal(t, "Algorithms", repo.last.Name)
	assert.Equal(t, int64(42), repo.last.StudentID)
	assert.Contains(t, logs.String(), "course added")
}

func TestCourseService_Rejects(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		call func(*CourseService) error
	}{
		{"add nil", func(s *CourseService) error {
			_, err := s.AddCourse(ctx, nil)
			return err
		}},
		{"add blank name", func(s *CourseService) error {
			_, err := s.AddCourse(ctx, &types.Course{Name: " ", StudentID: 1})
			return err
		}},
		{"add no student", func(s *CourseService) error {
			_, err := s.AddCourse(ctx, &types.Course{Name: "Algorithms"})
			return err
		}},
		{"update nil", func(s *CourseService) error {
			_, err := s.UpdateCourse(ctx, nil)
			return err
		}},
		{"update zero id", func(s *CourseService) error {
			_, err := s.UpdateCourse(ctx, &types.Course{Name: "Algorithms", StudentID: 1})
			return err
		}},
		{"update blank name", func(s *CourseService) error {
			_, err := s.UpdateCourse(ctx, &types.Course{ID: 1, StudentID: 1})
			return err
		}},
		{"find zero id", func(s *CourseService) error {
			_, _, err := s.FindCourseByID(ctx, 0)
			return err
		}},
		{"find blank name", func(s *CourseService) error {
			_, _, err := s.FindCourseByName(ctx, "")
			return err
		}},
		{"delete negative id", func(s *CourseService) error {
			_, err := s.DeleteCourseByID(ctx, -3)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &courseRepo{}
			svc := NewCourseService(repo, testLogger(&bytes.Buffer{}))

			err := tt.call(svc)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
			assert.Zero(t, repo.calls)
		})
	}
}

func TestCourseService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := &courseRepo{outcome: storage.Applied}
	svc := NewCourseService(repo, testLogger(&bytes.Buffer{}))

	outcome, err := svc.UpdateCourse(ctx, &types.Course{ID: 4, Name: "Databases", StudentID: 2})
	require.NoError(t, err)
	assert.Equal(t, storage.Applied, outcome)
	assert.Equal(t, types.Course{ID: 4, Name: "Databases", StudentID: 2}, repo.last)

	repo.outcome = storage.NotFound
	outcome, err = svc.DeleteCourseByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, storage.NotFound, outcome)
}

func TestCourseService_GetAllCourses(t *testing.T) {
	svc := NewCourseService(&courseRepo{}, testLogger(&bytes.Buffer{}))

	names, err := svc.GetAllCourses(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}
