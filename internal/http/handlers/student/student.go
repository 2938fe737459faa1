// Package student contains all HTTP handlers related to the Student resource.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// To inject dependencies we use a factory function that accepts the
// service and returns a function with the exact signature the router
// needs:
//
//	router.HandleFunc("POST /api/students", student.New(svc))
//
// Handlers hold no business logic: they decode input, call the service,
// and render whatever it returns.
package student

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

// Service is the part of service.StudentService the handlers use.
type Service interface {
	FindStudentByID(ctx context.Context, id int64) (types.Student, bool, error)
	FindStudentByLastName(ctx context.Context, lastName string) (types.Student, bool, error)
	ListStudents(ctx context.Context) ([]types.Student, error)
	AddStudent(ctx context.Context, in types.StudentInput) (int64, error)
	UpdateStudent(ctx context.Context, id int64, in types.StudentInput) (storage.Outcome, error)
	DeleteStudentByID(ctx context.Context, id int64) (storage.Outcome, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
// Creates a new student from the JSON request body.
//
// Request body (JSON):
//
//	{ "first_name": "Ada", "last_name": "Lovelace", "email": "ada@x.io",
//	  "grade": "A", "phone_number": "+10000000000", "date_of_birth": "1815-12-10" }
//
// Success response (201 Created):
//
//	{ "id": 1 }
//
// ─────────────────────────────────────────────────────────────────────────────
func New(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var in types.StudentInput
		if err := decode(r, &in); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		lastID, err := svc.AddStudent(r.Context(), in)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.WriteJSON(w, http.StatusCreated, map[string]int64{"id": lastID})
	}
}

// GetByID handles GET /api/students/{id}
func GetByID(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a student", slog.Int64("id", id))

		student, found, err := svc.FindStudentByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}
		if !found {
			response.Error(w, fmt.Errorf("%w: no student with id %d", apperrors.ErrNotFound, id))
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// Search handles GET /api/students/search?last_name=...
// Returns the first student with that last name.
func Search(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lastName := r.URL.Query().Get("last_name")
		slog.Info("searching a student", slog.String("last_name", lastName))

		student, found, err := svc.FindStudentByLastName(r.Context(), lastName)
		if err != nil {
			response.Error(w, err)
			return
		}
		if !found {
			response.Error(w, fmt.Errorf("%w: no student with last name %q", apperrors.ErrNotFound, lastName))
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// GetList handles GET /api/students
// Returns an empty array [] (not null) when there are no students.
func GetList(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := svc.ListStudents(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces ALL fields of an existing student and echoes the stored record.
//
// Error responses:
//
//	400 Bad Request  : invalid id, empty body, or validation failure
//	404 Not Found    : no student with that id
//	500 Internal     : database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("updating a student", slog.Int64("id", id))

		var in types.StudentInput
		if err := decode(r, &in); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		outcome, err := svc.UpdateStudent(r.Context(), id, in)
		if err != nil {
			response.Error(w, err)
			return
		}
		if outcome == storage.NotFound {
			response.Error(w, fmt.Errorf("%w: no student with id %d", apperrors.ErrNotFound, id))
			return
		}

		// Re-fetch the record so we return exactly what is stored.
		updated, found, err := svc.FindStudentByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}
		if !found {
			response.Error(w, fmt.Errorf("%w: no student with id %d", apperrors.ErrNotFound, id))
			return
		}

		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/students/{id}
// Permanently removes a student record from the database.
func Delete(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a student", slog.Int64("id", id))

		outcome, err := svc.DeleteStudentByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}
		if outcome == storage.NotFound {
			response.Error(w, fmt.Errorf("%w: no student with id %d", apperrors.ErrNotFound, id))
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// pathID parses the {id} path segment, writing a 400 if it is not an
// integer. Range checks are the service's job.
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
