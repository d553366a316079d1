package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB represents our database layer
type DB struct {
	*sql.DB
}

// Sentinel errors the handlers map to HTTP statuses.
var (
	ErrNotFound          = errors.New("record not found")
	ErrCampFull          = errors.New("camp is full")
	ErrAlreadyRegistered = errors.New("already registered for this camp")
	ErrInvalidSort       = errors.New("invalid sort column")
	ErrCapacityTooLow    = errors.New("capacity is below the current participant count")
)

// NewDB initializes and connects to the SQLite database
func NewDB(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Important settings for SQLite concurrency.
	// We want to avoid "database is locked" errors during high concurrent writes.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// InitSchema sets up the required tables. Field shapes are enforced with
// CHECK constraints so malformed rows can never land in the store.
func (db *DB) InitSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		email TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		photo TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'participant' CHECK (role IN ('participant', 'admin')),
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS camps (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		fees REAL NOT NULL CHECK (fees >= 0),
		date_time TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL,
		healthcare_professional TEXT NOT NULL DEFAULT '',
		capacity INTEGER NOT NULL CHECK (capacity > 0),
		participant_count INTEGER NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		CHECK (participant_count >= 0 AND participant_count <= capacity)
	);

	CREATE TABLE IF NOT EXISTS participants (
		id TEXT PRIMARY KEY,
		camp_id TEXT NOT NULL,
		email TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		age INTEGER NOT NULL DEFAULT 0,
		phone TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL DEFAULT '',
		emergency_contact TEXT NOT NULL DEFAULT '',
		fees REAL NOT NULL CHECK (fees >= 0),
		payment_status TEXT NOT NULL DEFAULT 'Unpaid' CHECK (payment_status IN ('Unpaid', 'Paid')),
		confirmation_status TEXT NOT NULL DEFAULT 'Pending' CHECK (confirmation_status IN ('Pending', 'Confirmed')),
		registered_at DATETIME NOT NULL,
		FOREIGN KEY (camp_id) REFERENCES camps(id),
		UNIQUE(camp_id, email)
	);

	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		participant_id TEXT NOT NULL,
		intent_id TEXT UNIQUE NOT NULL,
		amount REAL NOT NULL CHECK (amount >= 0),
		email TEXT NOT NULL,
		paid_at DATETIME NOT NULL,
		FOREIGN KEY (participant_id) REFERENCES participants(id)
	);

	CREATE TABLE IF NOT EXISTS feedback (
		id TEXT PRIMARY KEY,
		camp_id TEXT NOT NULL,
		email TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT NOT NULL,
		photo TEXT NOT NULL DEFAULT '',
		submitted_at DATETIME NOT NULL,
		FOREIGN KEY (camp_id) REFERENCES camps(id)
	);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}
