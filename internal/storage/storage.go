// Package storage defines the repository contracts: what any database
// backend must satisfy to work with this application.
//
// Services depend only on these interfaces, so the SQL-backed store
// (package sqlstore) and the in-memory store (package memory) are
// interchangeable; tests use the latter, or a stub of their own.
//
// Conventions shared by every implementation:
//
//   - Lookups return (record, found, err). No match is found == false with
//     a nil error, never a zero-valued record posing as a real one.
//   - Lists return an empty, non-nil slice when there is nothing to list.
//   - Update and Delete return NotFound when no row matched. That is an
//     outcome, not an error.
//   - Errors wrap apperrors.ErrStoreUnavailable when no connection could
//     be obtained, and apperrors.ErrStoreOperationFailed when a statement
//     failed.
package storage

import (
	"context"

	"github.com/aanand-mishra/school-records/internal/types"
)

// Outcome reports what a mutation did.
type Outcome int

const (
	// Applied means the statement changed at least one row.
	Applied Outcome = iota + 1
	// NotFound means no row matched the identifier.
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// StudentRepository maps Student records to and from the store.
type StudentRepository interface {
	// FindByID fetches a student by primary key.
	FindByID(ctx context.Context, id int64) (types.Student, bool, error)

	// FindByLastName fetches the first student (lowest id) with the given
	// last name.
	FindByLastName(ctx context.Context, lastName string) (types.Student, bool, error)

	// List returns every student ordered by id.
	List(ctx context.Context) ([]types.Student, error)

	// Insert stores a new student and returns the identifier the store
	// assigned. The ID field of the argument is ignored.
	Insert(ctx context.Context, student types.Student) (int64, error)

	// Update replaces every field of the student with the matching ID.
	Update(ctx context.Context, student types.Student) (Outcome, error)

	// Delete removes a student permanently.
	Delete(ctx context.Context, id int64) (Outcome, error)
}

// CourseRepository maps Course records to and from the store.
type CourseRepository interface {
	FindByID(ctx context.Context, id int64) (types.Course, bool, error)

	// FindByName is an exact-match lookup; the first course by id wins.
	FindByName(ctx context.Context, name string) (types.Course, bool, error)

	// ListNames returns only the course names, ordered by course id.
	// Duplicates are kept.
	ListNames(ctx context.Context) ([]string, error)

	Insert(ctx context.Context, course types.Course) (int64, error)
	Update(ctx context.Context, course types.Course) (Outcome, error)
	Delete(ctx context.Context, id int64) (Outcome, error)
}
