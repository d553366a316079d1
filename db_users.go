package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// EnsureUser creates the account on first contact. The conflict clause makes
// the write a no-op when the email is already known, so concurrent first
// logins all succeed and repeat logins never reset a role an admin has
// granted.
func (db *DB) EnsureUser(ctx context.Context, email, name, photo string) (*User, error) {
	_, err := db.ExecContext(ctx, `
		INSERT INTO users (email, name, photo, role, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(email) DO NOTHING
	`, email, name, photo, RoleParticipant, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return db.GetUser(ctx, email)
}

// GetUser fetches one account by email.
func (db *DB) GetUser(ctx context.Context, email string) (*User, error) {
	var u User
	err := db.QueryRowContext(ctx, `
		SELECT email, name, photo, role, updated_at FROM users WHERE email = ?
	`, email).Scan(&u.Email, &u.Name, &u.Photo, &u.Role, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &u, nil
}

// GetUserRole returns just the stored role for an email.
func (db *DB) GetUserRole(ctx context.Context, email string) (string, error) {
	var role string
	err := db.QueryRowContext(ctx, `SELECT role FROM users WHERE email = ?`, email).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch role: %w", err)
	}
	return role, nil
}

// UpdateUserProfile sets the mutable profile fields and refreshes the
// last-update timestamp. Role changes go through UpdateUserRole.
func (db *DB) UpdateUserProfile(ctx context.Context, email, name, photo string) error {
	res, err := db.ExecContext(ctx, `
		UPDATE users SET name = ?, photo = ?, updated_at = ? WHERE email = ?
	`, name, photo, time.Now().UTC(), email)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateUserRole flips an account between participant and admin.
func (db *DB) UpdateUserRole(ctx context.Context, email, role string) error {
	res, err := db.ExecContext(ctx, `
		UPDATE users SET role = ?, updated_at = ? WHERE email = ?
	`, role, time.Now().UTC(), email)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
