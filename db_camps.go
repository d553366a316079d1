package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const campColumns = `id, name, fees, date_time, location, healthcare_professional,
	capacity, participant_count, description, image, created_at`

// sortableCampColumns whitelists what GET /camps may order by. Interpolating
// a column name into SQL is only safe because lookups go through this map.
var sortableCampColumns = map[string]string{
	"participant_count": "participant_count",
	"name":              "name",
	"fees":              "fees",
	"date_time":         "date_time",
	"created_at":        "created_at",
}

func scanCamp(row interface{ Scan(...any) error }) (*Camp, error) {
	var c Camp
	err := row.Scan(&c.ID, &c.Name, &c.Fees, &c.DateTime, &c.Location,
		&c.HealthcareProfessional, &c.Capacity, &c.ParticipantCount,
		&c.Description, &c.Image, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCamp inserts a new camp with a zero participant count.
func (db *DB) CreateCamp(ctx context.Context, c *Camp) error {
	c.ParticipantCount = 0
	c.CreatedAt = time.Now().UTC()
	_, err := db.ExecContext(ctx, `
		INSERT INTO camps (id, name, fees, date_time, location, healthcare_professional,
			capacity, participant_count, description, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)
	`, c.ID, c.Name, c.Fees, c.DateTime, c.Location, c.HealthcareProfessional,
		c.Capacity, c.Description, c.Image, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert camp: %w", err)
	}
	return nil
}

// ListCamps lists camps ordered by a whitelisted column. limit <= 0 means
// unlimited. Default ordering (most popular first) is up to the caller.
func (db *DB) ListCamps(ctx context.Context, sortBy, order string, limit int) ([]Camp, error) {
	col, ok := sortableCampColumns[sortBy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSort, sortBy)
	}
	dir := "DESC"
	if order == "asc" {
		dir = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM camps ORDER BY %s %s`, campColumns, col, dir)
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list camps: %w", err)
	}
	defer rows.Close()

	var camps []Camp
	for rows.Next() {
		c, err := scanCamp(rows)
		if err != nil {
			return nil, err
		}
		camps = append(camps, *c)
	}
	return camps, rows.Err()
}

// GetCamp fetches one camp by id.
func (db *DB) GetCamp(ctx context.Context, id string) (*Camp, error) {
	row := db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM camps WHERE id = ?`, campColumns), id)
	c, err := scanCamp(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch camp: %w", err)
	}
	return c, nil
}

// UpsertCamp updates a camp's editable fields, creating the record when the
// id is unknown. The
// participant count is never touched here; only the paired registration and
// cancellation writes may move it. Shrinking capacity below the live count
// is rejected up front, because the table CHECK would otherwise surface the
// violation as an opaque write error.
func (db *DB) UpsertCamp(ctx context.Context, c *Camp) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx, `SELECT participant_count FROM camps WHERE id = ?`, c.ID).Scan(&count)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check participant count: %w", err)
	}
	if c.Capacity < count {
		return ErrCapacityTooLow
	}

	c.CreatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO camps (id, name, fees, date_time, location, healthcare_professional,
			capacity, participant_count, description, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			fees = excluded.fees,
			date_time = excluded.date_time,
			location = excluded.location,
			healthcare_professional = excluded.healthcare_professional,
			capacity = excluded.capacity,
			description = excluded.description,
			image = excluded.image
	`, c.ID, c.Name, c.Fees, c.DateTime, c.Location, c.HealthcareProfessional,
		c.Capacity, c.Description, c.Image, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert camp: %w", err)
	}
	return tx.Commit()
}

// DeleteCamp removes a camp record.
func (db *DB) DeleteCamp(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM camps WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete camp: %w", err)
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
