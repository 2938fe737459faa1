// Package service is the validation gate between the presentation layer
// and the repositories.
//
// Every input check happens here, before any store access; a rejected
// call never reaches the repository. Validation failures wrap
// apperrors.ErrInvalidArgument or apperrors.ErrInvalidFormat. Store
// failures come back from the repository already logged and are returned
// unchanged.
package service

import (
	"context"
	"log/slog"

	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
)

// StudentService validates student operations and delegates them to a
// storage.StudentRepository.
type StudentService struct {
	repo storage.StudentRepository
	log  *slog.Logger
}

func NewStudentService(repo storage.StudentRepository, log *slog.Logger) *StudentService {
	if log == nil {
		log = slog.Default()
	}
	return &StudentService{repo: repo, log: log}
}

// FindStudentByID looks a student up by identifier.
func (s *StudentService) FindStudentByID(ctx context.Context, id int64) (types.Student, bool, error) {
	if err := checkID("student", id); err != nil {
		return types.Student{}, false, s.reject("find student", err)
	}
	return s.repo.FindByID(ctx, id)
}

// FindStudentByLastName returns the first student with the given last name.
func (s *StudentService) FindStudentByLastName(ctx context.Context, lastName string) (types.Student, bool, error) {
	if err := checkNotBlank("last_name", lastName); err != nil {
		return types.Student{}, false, s.reject("find student", err)
	}
	return s.repo.FindByLastName(ctx, lastName)
}

// ListStudents returns every student. An empty result is not an error.
func (s *StudentService) ListStudents(ctx context.Context) ([]types.Student, error) {
	return s.repo.List(ctx)
}

// AddStudent validates in and stores a new student, returning the
// identifier the store assigned.
func (s *StudentService) AddStudent(ctx context.Context, in types.StudentInput) (int64, error) {
	if err := checkStruct(in); err != nil {
		return 0, s.reject("add student", err)
	}

	id, err := s.repo.Insert(ctx, in.Student(0))
	if err != nil {
		return 0, err
	}

	s.log.Info("student added", slog.Int64("id", id))
	return id, nil
}

// UpdateStudent replaces every field of student id.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, in types.StudentInput) (storage.Outcome, error) {
	if err := checkID("student", id); err != nil {
		return 0, s.reject("update student", err)
	}
	if err := checkStruct(in); err != nil {
		return 0, s.reject("update student", err)
	}

	outcome, err := s.repo.Update(ctx, in.Student(id))
	if err != nil {
		return 0, err
	}

	s.logOutcome("student updated", id, outcome)
	return outcome, nil
}

// DeleteStudentByID removes student id. Deleting a student that does not
// exist yields storage.NotFound, not an error.
func (s *StudentService) DeleteStudentByID(ctx context.Context, id int64) (storage.Outcome, error) {
	if err := checkID("student", id); err != nil {
		return 0, s.reject("delete student", err)
	}

	outcome, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	s.logOutcome("student deleted", id, outcome)
	return outcome, nil
}

func (s *StudentService) reject(op string, err error) error {
	s.log.Warn("rejected "+op, slog.String("error", err.Error()))
	return err
}

func (s *StudentService) logOutcome(msg string, id int64, outcome storage.Outcome) {
	if outcome == storage.NotFound {
		s.log.Info("no student with id", slog.Int64("id", id))
		return
	}
	s.log.Info(msg, slog.Int64("id", id))
}
