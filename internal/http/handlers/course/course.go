// Package course contains the HTTP handlers for the Course resource.
// They follow the same factory pattern as package student.
package course

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/school-records/internal/apperrors"
	"github.com/aanand-mishra/school-records/internal/storage"
	"github.com/aanand-mishra/school-records/internal/types"
	"github.com/aanand-mishra/school-records/internal/utils/response"
)

// Service is the part of service.CourseService the handlers use.
type Service interface {
	FindCourseByID(ctx context.Context, id int64) (types.Course, bool, error)
	FindCourseByName(ctx context.Context, name string) (types.Course, bool, error)
	DeleteCourseByID(ctx context.Context, id int64) (storage.Outcome, error)
	AddCourse(ctx context.Context, c *types.Course) (int64, error)
	UpdateCourse(ctx context.Context, c *types.Course) (storage.Outcome, error)
	GetAllCourses(ctx context.Context) ([]string, error)
}

// New handles POST /api/courses
//
//	{ "name": "Algorithms", "student_id": 42 }  →  201 { "id": 1 }
func New(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a course")

		var c types.Course
		if err := decode(r, &c); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		id, err := svc.AddCourse(r.Context(), &c)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
	}
}

// GetByID handles GET /api/courses/{id}
func GetByID(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a course", slog.Int64("id", id))

		c, found, err := svc.FindCourseByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}
		if !found {
			response.Error(w, fmt.Errorf("%w: no course with id %d", apperrors.ErrNotFound, id))
			return
		}

		response.WriteJSON(w, http.StatusOK, c)
	}
}

// Search handles GET /api/courses/search?name=...
func Search(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		slog.Info("searching a course", slog.String("name", name))

		c, found, err := svc.FindCourseByName(r.Context(), name)
		if err != nil {
			response.Error(w, err)
			return
		}
		if !found {
			response.Error(w, fmt.Errorf("%w: no course named %q", apperrors.ErrNotFound, name))
			return
		}

		response.WriteJSON(w, http.StatusOK, c)
	}
}

// GetList handles GET /api/courses
// Returns the course names only, [] when there are none.
func GetList(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all courses")

		names, err := svc.GetAllCourses(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, names)
	}
}

// Update handles PUT /api/courses/{id}
// The id in the path wins over any id in the body.
func Update(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("updating a course", slog.Int64("id", id))

		var c types.Course
		if err := decode(r, &c); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		c.ID = id

		outcome, err := svc.UpdateCourse(r.Context(), &c)
		if err != nil {
			response.Error(w, err)
			return
		}
		if outcome == storage.NotFound {
			response.Error(w, fmt.Errorf("%w: no course with id %d", apperrors.ErrNotFound, id))
			return
		}

		response.WriteJSON(w, http.StatusOK, c)
	}
}

// Delete handles DELETE /api/courses/{id}
func Delete(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a course", slog.Int64("id", id))

		outcome, err := svc.DeleteCourseByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}
		if outcome == storage.NotFound {
			response.Error(w, fmt.Errorf("%w: no course with id %d", apperrors.ErrNotFound, id))
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid id: must be an integer")))
		return 0, false
	}
	return id, true
}

func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return errors.New("request body is empty")
	}
	return err
}
