package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRegistrationMaintainsCampCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	camp := createTestCamp(t, db, 50, 10)

	p := registerTestParticipant(t, db, camp.ID, "alice@example.com")

	stored, err := db.GetCamp(ctx, camp.ID)
	if err != nil {
		t.Fatalf("Failed to fetch camp: %v", err)
	}
	if stored.ParticipantCount != 1 {
		t.Errorf("Expected participant count 1 after registration, got %d", stored.ParticipantCount)
	}

	// Fee must be snapshotted from the camp, not the request.
	if p.Fees != 50 {
		t.Errorf("Expected fee snapshot 50, got %v", p.Fees)
	}
	if p.PaymentStatus != PaymentUnpaid {
		t.Errorf("Expected new registration to be Unpaid, got %q", p.PaymentStatus)
	}

	var rows int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM participants WHERE camp_id = ? AND email = ?`,
		camp.ID, "alice@example.com").Scan(&rows); err != nil {
		t.Fatalf("Failed to count participants: %v", err)
	}
	if rows != 1 {
		t.Errorf("Expected exactly 1 participant row, got %d", rows)
	}
}

func TestDuplicateRegistrationRollsBackCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	camp := createTestCamp(t, db, 50, 10)

	registerTestParticipant(t, db, camp.ID, "alice@example.com")

	dup := &Participant{ID: "p2", CampID: camp.ID, Email: "alice@example.com"}
	err := db.RegisterParticipant(ctx, dup)
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("Expected ErrAlreadyRegistered, got %v", err)
	}

	stored, err := db.GetCamp(ctx, camp.ID)
	if err != nil {
		t.Fatalf("Failed to fetch camp: %v", err)
	}
	if stored.ParticipantCount != 1 {
		t.Errorf("Duplicate registration must not move the count; got %d", stored.ParticipantCount)
	}
}

func TestRegisterUnknownCamp(t *testing.T) {
	db := newTestDB(t)

	p := &Participant{ID: "p1", CampID: "no-such-camp", Email: "alice@example.com"}
	err := db.RegisterParticipant(context.Background(), p)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown camp, got %v", err)
	}
}

func TestCancelRegistration(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	camp := createTestCamp(t, db, 50, 10)
	p := registerTestParticipant(t, db, camp.ID, "alice@example.com")

	if err := db.CancelRegistration(ctx, p.ID, "alice@example.com"); err != nil {
		t.Fatalf("Failed to cancel registration: %v", err)
	}

	stored, err := db.GetCamp(ctx, camp.ID)
	if err != nil {
		t.Fatalf("Failed to fetch camp: %v", err)
	}
	if stored.ParticipantCount != 0 {
		t.Errorf("Expected count back to 0 after cancel, got %d", stored.ParticipantCount)
	}

	if _, err := db.GetRegistration(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected registration to be gone, got %v", err)
	}
}

func TestCancelMissingRegistrationLeavesCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	camp := createTestCamp(t, db, 50, 10)
	registerTestParticipant(t, db, camp.ID, "alice@example.com")

	err := db.CancelRegistration(ctx, "no-such-registration", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	stored, err := db.GetCamp(ctx, camp.ID)
	if err != nil {
		t.Fatalf("Failed to fetch camp: %v", err)
	}
	if stored.ParticipantCount != 1 {
		t.Errorf("Cancelling a missing registration must not move the count; got %d", stored.ParticipantCount)
	}
}

func TestCancelOwnership(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	camp := createTestCamp(t, db, 50, 10)
	p := registerTestParticipant(t, db, camp.ID, "alice@example.com")

	err := db.CancelRegistration(ctx, p.ID, "mallory@example.com")
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("Expected ErrNotOwner, got %v", err)
	}

	// Admin path: no owner check.
	if err := db.CancelRegistration(ctx, p.ID, ""); err != nil {
		t.Fatalf("Admin cancel failed: %v", err)
	}
}

func TestJoinedRegistrationViews(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	camp := createTestCamp(t, db, 75, 10)
	p := registerTestParticipant(t, db, camp.ID, "alice@example.com")

	regs, err := db.ListRegistrations(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("Failed to list registrations: %v", err)
	}
	if len(regs) != 1 {
		t.Fatalf("Expected 1 registration, got %d", len(regs))
	}
	if regs[0].CampName != camp.Name || regs[0].CampLocation != camp.Location || regs[0].CampFees != 75 {
		t.Errorf("Joined view missing camp fields: %+v", regs[0])
	}

	one, err := db.GetRegistration(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to fetch registration: %v", err)
	}
	if one.CampName != camp.Name {
		t.Errorf("Expected camp name %q, got %q", camp.Name, one.CampName)
	}
}

func TestUpdateConfirmation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	camp := createTestCamp(t, db, 50, 10)
	p := registerTestParticipant(t, db, camp.ID, "alice@example.com")

	if err := db.UpdateConfirmation(ctx, p.ID, ConfirmationConfirmed); err != nil {
		t.Fatalf("Failed to update confirmation: %v", err)
	}
	one, err := db.GetRegistration(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to fetch registration: %v", err)
	}
	if one.ConfirmationStatus != ConfirmationConfirmed {
		t.Errorf("Expected Confirmed, got %q", one.ConfirmationStatus)
	}
	if one.PaymentStatus != PaymentUnpaid {
		t.Errorf("Confirmation must not touch payment status, got %q", one.PaymentStatus)
	}

	if err := db.UpdateConfirmation(ctx, "missing", ConfirmationConfirmed); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing registration, got %v", err)
	}
}

func TestConcurrentRegistrationsNeverOverbook(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// 1. Create a camp with exactly 5 capacity
	capacity := 5
	camp := createTestCamp(t, db, 50, capacity)

	// 2. Launch 100 goroutines to fight for the 5 spots
	numRequests := 100
	var successCount int32
	var fullCount int32
	var errorCount int32

	var wg sync.WaitGroup
	wg.Add(numRequests)

	t.Logf("Firing %d concurrent registration requests for %d spots...", numRequests, capacity)

	for i := 0; i < numRequests; i++ {
		go func(requestID int) {
			defer wg.Done()

			p := &Participant{
				ID:     fmt.Sprintf("p_%d", requestID),
				CampID: camp.ID,
				Email:  fmt.Sprintf("gopher%d@example.com", requestID),
			}
			err := db.RegisterParticipant(ctx, p)
			if err == nil {
				atomic.AddInt32(&successCount, 1)
			} else if errors.Is(err, ErrCampFull) {
				atomic.AddInt32(&fullCount, 1)
			} else {
				t.Logf("Unexpected error for request %d: %v", requestID, err)
				atomic.AddInt32(&errorCount, 1)
			}
		}(i)
	}

	wg.Wait()

	t.Logf("Results -> Successes: %d | Full: %d | Errors: %d", successCount, fullCount, errorCount)

	// 3. Verify exactly 5 succeeded and the rest got "camp is full"
	if successCount != int32(capacity) {
		t.Errorf("Expected exactly %d successes, but got %d", capacity, successCount)
	}
	if fullCount != int32(numRequests-capacity) {
		t.Errorf("Expected exactly %d full errors, but got %d", numRequests-capacity, fullCount)
	}
	if errorCount != 0 {
		t.Errorf("Expected 0 unexpected errors, but got %d", errorCount)
	}

	// 4. Double check the database records directly
	stored, err := db.GetCamp(ctx, camp.ID)
	if err != nil {
		t.Fatalf("Failed to fetch camp: %v", err)
	}
	if stored.ParticipantCount != capacity {
		t.Errorf("Expected participant_count %d in DB, got %d", capacity, stored.ParticipantCount)
	}

	var totalRegistered int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM participants WHERE camp_id = ?", camp.ID).Scan(&totalRegistered)
	if err != nil {
		t.Fatalf("Failed to count participants: %v", err)
	}
	if totalRegistered != capacity {
		t.Errorf("Expected exactly %d participant rows in DB, but got %d", capacity, totalRegistered)
	}
}
