package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotOwner is returned when a token tries to cancel somebody else's
// registration.
var ErrNotOwner = errors.New("registration belongs to another user")

const registeredCampColumns = `p.id, p.camp_id, p.email, p.name, p.age, p.phone,
	p.gender, p.emergency_contact, p.fees, p.payment_status, p.confirmation_status,
	p.registered_at, c.name, c.fees, c.location, c.date_time`

func scanRegisteredCamp(row interface{ Scan(...any) error }) (*RegisteredCamp, error) {
	var rc RegisteredCamp
	err := row.Scan(&rc.ID, &rc.CampID, &rc.Email, &rc.Name, &rc.Age, &rc.Phone,
		&rc.Gender, &rc.EmergencyContact, &rc.Fees, &rc.PaymentStatus,
		&rc.ConfirmationStatus, &rc.RegisteredAt,
		&rc.CampName, &rc.CampFees, &rc.CampLocation, &rc.CampDateTime)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// RegisterParticipant inserts a registration and bumps the camp's
// participant count in one transaction, so the count always equals the
// number of live registrations. The conditional increment is the atomic
// edge that prevents overbooking under concurrent requests. The fee is
// snapshotted from the camp row, never trusted from the client.
func (db *DB) RegisterParticipant(ctx context.Context, p *Participant) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() // Safe to call even if committed

	var fees float64
	err = tx.QueryRowContext(ctx, `SELECT fees FROM camps WHERE id = ?`, p.CampID).Scan(&fees)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch camp fee: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE camps
		SET participant_count = participant_count + 1
		WHERE id = ? AND participant_count < capacity
	`, p.CampID)
	if err != nil {
		return fmt.Errorf("failed to update camp capacity: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrCampFull
	}

	p.Fees = fees
	p.PaymentStatus = PaymentUnpaid
	p.ConfirmationStatus = ConfirmationPending
	p.RegisteredAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO participants (id, camp_id, email, name, age, phone, gender,
			emergency_contact, fees, payment_status, confirmation_status, registered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.CampID, p.Email, p.Name, p.Age, p.Phone, p.Gender,
		p.EmergencyContact, p.Fees, p.PaymentStatus, p.ConfirmationStatus, p.RegisteredAt)
	if err != nil {
		// UNIQUE(camp_id, email): the same user may not register twice.
		// Rolling back also undoes the increment above.
		if strings.Contains(err.Error(), "UNIQUE") {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}
	return nil
}

// CancelRegistration deletes a registration and decrements the camp count in
// one transaction. ownerEmail, when non-empty, must match the registration's
// email (admin callers pass ""). A missing registration reports ErrNotFound
// and leaves the count untouched.
func (db *DB) CancelRegistration(ctx context.Context, id, ownerEmail string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	var campID, email string
	err = tx.QueryRowContext(ctx,
		`SELECT camp_id, email FROM participants WHERE id = ?`, id).Scan(&campID, &email)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch registration: %w", err)
	}
	if ownerEmail != "" && email != ownerEmail {
		return ErrNotOwner
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM participants WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE camps
		SET participant_count = participant_count - 1
		WHERE id = ? AND participant_count > 0
	`, campID)
	if err != nil {
		return fmt.Errorf("failed to update camp capacity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}
	return nil
}

// ListRegistrations returns all registrations for an email, joined with
// camp name/fee/location for display.
func (db *DB) ListRegistrations(ctx context.Context, email string) ([]RegisteredCamp, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM participants p
		JOIN camps c ON c.id = p.camp_id
		WHERE p.email = ?
		ORDER BY p.registered_at DESC
	`, registeredCampColumns), email)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var regs []RegisteredCamp
	for rows.Next() {
		rc, err := scanRegisteredCamp(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, *rc)
	}
	return regs, rows.Err()
}

// GetRegistration returns one registration joined with its camp.
func (db *DB) GetRegistration(ctx context.Context, id string) (*RegisteredCamp, error) {
	row := db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s FROM participants p
		JOIN camps c ON c.id = p.camp_id
		WHERE p.id = ?
	`, registeredCampColumns), id)
	rc, err := scanRegisteredCamp(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registration: %w", err)
	}
	return rc, nil
}

// UpdateConfirmation sets the admin-controlled approval flag, independent of
// payment status.
func (db *DB) UpdateConfirmation(ctx context.Context, id, status string) error {
	res, err := db.ExecContext(ctx,
		`UPDATE participants SET confirmation_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update confirmation: %w", err)
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
