// Package database provides SQLite persistence for users, courses and schedules.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"git.sr.ht/~jakintosh/tutor/internal/service"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	// one connection keeps ":memory:" databases shared and serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init database schema: couldn't enable foreign keys: %v", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init database: %v", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UserStore() service.UserStore {
	return s
}

func (s *SQLiteStore) ScheduleStore() service.ScheduleStore {
	return s
}

func initSchema(db *sql.DB) error {
	if err := initTable(db, "users", `
		CREATE TABLE IF NOT EXISTS users (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			username       TEXT UNIQUE NOT NULL,
			password_hash  TEXT NOT NULL,
			role           TEXT NOT NULL
		);`,
	); err != nil {
		return err
	}

	if err := initTable(db, "courses", `
		CREATE TABLE IF NOT EXISTS courses (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			teacher_id  TEXT,
			room        TEXT
		);`,
	); err != nil {
		return err
	}

	if err := initTable(db, "schedules", `
		CREATE TABLE IF NOT EXISTS schedules (
			id          TEXT PRIMARY KEY,
			student_id  TEXT,
			course_id   TEXT NOT NULL,
			start_time  TEXT NOT NULL,
			end_time    TEXT NOT NULL,
			status      TEXT NOT NULL,
			FOREIGN KEY (course_id) REFERENCES courses (id)
		);`,
	); err != nil {
		return err
	}

	return nil
}

func initTable(
	db *sql.DB,
	name string,
	sql string,
) error {
	if _, err := db.Exec(sql); err != nil {
		return fmt.Errorf("failed to init '%s' table schema: %v", name, err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// primary code only, when extended codes are off
			return strings.Contains(sqliteErr.Error(), "UNIQUE")
		}
	}
	return false
}

func resultsEmpty(result sql.Result) bool {
	count, err := result.RowsAffected()
	if err != nil {
		return false
	}
	return count == 0
}
