package main

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// newTestDB opens a fresh SQLite database in a per-test temp dir.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDB(fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbPath))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.InitSchema(context.Background()); err != nil {
		t.Fatalf("Failed to init schema: %v", err)
	}
	return db
}

func createTestCamp(t *testing.T, db *DB, fees float64, capacity int) *Camp {
	t.Helper()

	camp := &Camp{
		ID:       uuid.NewString(),
		Name:     "Free Health Checkup Camp",
		Fees:     fees,
		Location: "Dhaka",
		Capacity: capacity,
	}
	if err := db.CreateCamp(context.Background(), camp); err != nil {
		t.Fatalf("Failed to create test camp: %v", err)
	}
	return camp
}

func registerTestParticipant(t *testing.T, db *DB, campID, email string) *Participant {
	t.Helper()

	p := &Participant{
		ID:     uuid.NewString(),
		CampID: campID,
		Email:  email,
		Name:   "Test Participant",
	}
	if err := db.RegisterParticipant(context.Background(), p); err != nil {
		t.Fatalf("Failed to register participant: %v", err)
	}
	return p
}
