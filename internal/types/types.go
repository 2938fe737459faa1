// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, services, and storage can all import types without depending
// on each other.
package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format (YYYY-MM-DD) used for dates
// of birth everywhere: JSON bodies, CLI flags, and database columns.
const DateLayout = "2006-01-02"

// Student represents a student record.
//
// ID is assigned by the store on insert. DateOfBirth is a calendar date
// with no time component.
type Student struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Grade       string `json:"grade"`
	PhoneNumber string `json:"phone_number"`
	DateOfBirth Date   `json:"date_of_birth"`
}

// StudentInput carries the fields a caller supplies to create or fully
// replace a student.
//
// DateOfBirth stays a raw string here so the service can tell a missing
// date apart from a malformed one. The validate:"..." tags are checked by
// go-playground/validator in the service layer:
//
//   - notblank: non-empty after trimming whitespace
//   - datetime: must parse with the given time layout
type StudentInput struct {
	FirstName   string `json:"first_name"    validate:"notblank"`
	LastName    string `json:"last_name"     validate:"notblank"`
	Email       string `json:"email"         validate:"notblank"`
	Grade       string `json:"grade"         validate:"notblank"`
	PhoneNumber string `json:"phone_number"  validate:"notblank"`
	DateOfBirth string `json:"date_of_birth" validate:"notblank,datetime=2006-01-02"`
}

// Student builds the record the input describes. The date must already
// have been validated; an unparsable date yields the zero Date.
func (in StudentInput) Student(id int64) Student {
	dob, _ := ParseDate(in.DateOfBirth)
	return Student{
		ID:          id,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Grade:       in.Grade,
		PhoneNumber: in.PhoneNumber,
		DateOfBirth: dob,
	}
}

// Course represents a course record. Each course references exactly one
// student; the reference is not checked by the application.
type Course struct {
	ID        int64  `json:"id"`
	StudentID int64  `json:"student_id" validate:"gt=0"`
	Name      string `json:"name"       validate:"notblank"`
}

// Date is a calendar date without a time component.
//
// It marshals to "YYYY-MM-DD" in JSON and is stored the same way in SQL,
// so SQLite (TEXT/DATE) and PostgreSQL (DATE) columns both round-trip.
type Date struct {
	time.Time
}

// NewDate returns the Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date. Surrounding whitespace is ignored.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// String formats the date as YYYY-MM-DD. 0001-01-01 is a valid date
// like any other, so the zero Date formats as such.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a "YYYY-MM-DD" JSON string; "" and null leave the
// zero date.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so a Date can be passed straight into a
// parameterized statement.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner.
//
// Drivers disagree on what a DATE column comes back as: pgx and
// go-sqlite3 (for columns declared DATE) hand over a time.Time, while a
// SQLite TEXT value arrives as string or []byte.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("date: cannot scan %T", src)
	}
}

func (d *Date) scanString(s string) error {
	// Timestamps such as "1815-12-10T00:00:00Z" carry the date up front.
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}
	*d = parsed
	return nil
}
