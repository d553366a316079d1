package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const participantColumns = `id, camp_id, email, name, age, phone, gender,
	emergency_contact, fees, payment_status, confirmation_status, registered_at`

func scanParticipant(row interface{ Scan(...any) error }) (*Participant, error) {
	var p Participant
	err := row.Scan(&p.ID, &p.CampID, &p.Email, &p.Name, &p.Age, &p.Phone,
		&p.Gender, &p.EmergencyContact, &p.Fees, &p.PaymentStatus,
		&p.ConfirmationStatus, &p.RegisteredAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RecordPayment appends a ledger row and flips the participant to Paid in
// one transaction. The intent id is the idempotency key: replaying the same
// intent inserts nothing and returns the participant as already stored, so a
// client retry can never double-charge or produce two ledger rows. The
// replay result reports whether this call was such a no-op.
func (db *DB) RecordPayment(ctx context.Context, pay *Payment) (*Participant, bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM participants WHERE id = ?`, participantColumns),
		pay.ParticipantID)
	p, err := scanParticipant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, ErrNotFound
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch participant: %w", err)
	}

	pay.PaidAt = time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO payments (id, participant_id, intent_id, amount, email, paid_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(intent_id) DO NOTHING
	`, pay.ID, pay.ParticipantID, pay.IntentID, pay.Amount, pay.Email, pay.PaidAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert payment: %w", err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// Replay of an intent we already recorded.
		if err := tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("failed to commit tx: %w", err)
		}
		return p, true, nil
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE participants SET payment_status = ? WHERE id = ?`,
		PaymentPaid, pay.ParticipantID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update payment status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit tx: %w", err)
	}

	p.PaymentStatus = PaymentPaid
	return p, false, nil
}

// ListPayments returns the ledger joined with camp context, newest first.
// email == "" lists everything (admin view). The joins are LEFT so ledger
// rows survive a later cancellation of the registration they paid for.
func (db *DB) ListPayments(ctx context.Context, email string) ([]PaymentRecord, error) {
	query := `
		SELECT pay.id, pay.participant_id, pay.intent_id, pay.amount, pay.email, pay.paid_at,
			COALESCE(p.camp_id, ''), COALESCE(c.name, '')
		FROM payments pay
		LEFT JOIN participants p ON p.id = pay.participant_id
		LEFT JOIN camps c ON c.id = p.camp_id
	`
	args := []any{}
	if email != "" {
		query += ` WHERE pay.email = ?`
		args = append(args, email)
	}
	query += ` ORDER BY pay.paid_at DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var records []PaymentRecord
	for rows.Next() {
		var rec PaymentRecord
		err := rows.Scan(&rec.ID, &rec.ParticipantID, &rec.IntentID, &rec.Amount,
			&rec.Email, &rec.PaidAt, &rec.CampID, &rec.CampName)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
