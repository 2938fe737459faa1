package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/school-records/internal/apperrors"
	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
)

// CourseService validates course operations and delegates them to a
// storage.CourseRepository.
type CourseService struct {
	repo storage.CourseRepository
	log  *slog.Logger
}

func NewCourseService(repo storage.CourseRepository, log *slog.Logger) *CourseService {
	if log == nil {
		log = slog.Default()
	}
	return &CourseService{repo: repo, log: log}
}

var errNilCourse = fmt.Errorf("%w: course is required", apperrors.ErrInvalidArgument)

func (s *CourseService) FindCourseByID(ctx context.Context, id int64) (types.Course, bool, error) {
	if err := checkID("course", id); err != nil {
		return types.Course{}, false, s.reject("find course", err)
	}
	return s.repo.FindByID(ctx, id)
}

// FindCourseByName is an exact-match lookup.
func (s *CourseService) FindCourseByName(ctx context.Context, name string) (types.Course, bool, error) {
	if err := checkNotBlank("name", name); err != nil {
		return types.Course{}, false, s.reject("find course", err)
	}
	return s.repo.FindByName(ctx, name)
}

func (s *CourseService) DeleteCourseByID(ctx context.Context, id int64) (storage.Outcome, error) {
	if err := checkID("course", id); err != nil {
		return 0, s.reject("delete course", err)
	}

	outcome, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	s.logOutcome("course deleted", id, outcome)
	return outcome, nil
}

// AddCourse stores c and returns the identifier the store assigned.
// c.ID is ignored.
func (s *CourseService) AddCourse(ctx context.Context, c *types.Course) (int64, error) {
	if c == nil {
		return 0, s.reject("add course", errNilCourse)
	}
	if err := checkStruct(c); err != nil {
		return 0, s.reject("add course", err)
	}

	id, err := s.repo.Insert(ctx, *c)
	if err != nil {
		return 0, err
	}

	s.log.Info("course added", slog.Int64("id", id), slog.String("name", c.Name))
	return id, nil
}

func (s *CourseService) UpdateCourse(ctx context.Context, c *types.Course) (storage.Outcome, error) {
	if c == nil {
		return 0, s.reject("update course", errNilCourse)
	}
	if err := checkID("course", c.ID); err != nil {
		return 0, s.reject("update course", err)
	}
	if err := checkStruct(c); err != nil {
		return 0, s.reject("update course", err)
	}

	outcome, err := s.repo.Update(ctx, *c)
	if err != nil {
		return 0, err
	}

	s.logOutcome("course updated", c.ID, outcome)
	return outcome, nil
}

// GetAllCourses returns the names of all courses.
func (s *CourseService) GetAllCourses(ctx context.Context) ([]string, error) {
	return s.repo.ListNames(ctx)
}

func (s *CourseService) reject(op string, err error) error {
	s.log.Warn("rejected "+op, slog.String("error", err.Error()))
	return err
}

func (s *CourseService) logOutcome(msg string, id int64, outcome storage.Outcome) {
	if outcome == storage.NotFound {
		s.log.Info("no course with id", slog.Int64("id", id))
		return
	}
	s.log.Info(msg, slog.Int64("id", id))
}
