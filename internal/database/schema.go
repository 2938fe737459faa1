package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aanand-mishra/school-records/internal/config"
)

// CREATE TABLE IF NOT EXISTS is idempotent and safe to run on every
// startup. If the tables already exist nothing happens.
//
// Schema:
//
//	student: id, first_name, last_name, email, grade, phone_number, date_of_birth
//	course:  id, name, student_id (not declared as a foreign key)
var schemas = map[string][]string{
	config.DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS student (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name    TEXT NOT NULL,
			last_name     TEXT NOT NULL,
			email         TEXT NOT NULL,
			grade         TEXT NOT NULL,
			phone_number  TEXT NOT NULL,
			date_of_birth DATE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS course (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT    NOT NULL,
			student_id INTEGER NOT NULL
		)`,
	},
	config.DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS student (
			id            BIGSERIAL PRIMARY KEY,
			first_name    TEXT NOT NULL,
			last_name     TEXT NOT NULL,
			email         TEXT NOT NULL,
			grade         TEXT NOT NULL,
			phone_number  TEXT NOT NULL,
			date_of_birth DATE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS course (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT   NOT NULL,
			student_id BIGINT NOT NULL
		)`,
	},
}

func createSchema(ctx context.Context, db *sql.DB, driver string) error {
	stmts, ok := schemas[driver]
	if !ok {
		return fmt.Errorf("no schema for driver %q", driver)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
