package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// InsertFeedback appends one feedback row. The referenced camp must exist.
func (db *DB) InsertFeedback(ctx context.Context, f *Feedback) error {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM camps WHERE id = ?)`, f.CampID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check camp: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	f.SubmittedAt = time.Now().UTC()
	_, err = db.ExecContext(ctx, `
		INSERT INTO feedback (id, camp_id, email, name, rating, comment, photo, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, f.ID, f.CampID, f.Email, f.Name, f.Rating, f.Comment, f.Photo, f.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

// ListFeedback pages through feedback, newest first, optionally scoped to
// one camp. limit <= 0 falls back to a sane page size.
func (db *DB) ListFeedback(ctx context.Context, campID string, limit, offset int) ([]Feedback, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, camp_id, email, name, rating, comment, photo, submitted_at FROM feedback`
	args := []any{}
	if campID != "" {
		query += ` WHERE camp_id = ?`
		args = append(args, campID)
	}
	query += ` ORDER BY submitted_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var items []Feedback
	for rows.Next() {
		var f Feedback
		err := rows.Scan(&f.ID, &f.CampID, &f.Email, &f.Name, &f.Rating,
			&f.Comment, &f.Photo, &f.SubmittedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

// GetFeedback fetches one feedback row by id.
func (db *DB) GetFeedback(ctx context.Context, id string) (*Feedback, error) {
	var f Feedback
	err := db.QueryRowContext(ctx, `
		SELECT id, camp_id, email, name, rating, comment, photo, submitted_at
		FROM feedback WHERE id = ?
	`, id).Scan(&f.ID, &f.CampID, &f.Email, &f.Name, &f.Rating, &f.Comment,
		&f.Photo, &f.SubmittedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}
	return &f, nil
}
