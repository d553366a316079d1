package main

import "time"

// User is an account keyed by email. Accounts are created on first contact
// and never deleted; role starts as "participant" until an admin changes it.
type User struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Photo     string    `json:"photo,omitempty"`
	Role      string    `json:"role"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Camp is an event record participants register for. ParticipantCount is
// maintained by the registration/cancellation transactions, never recomputed.
type Camp struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Fees                   float64   `json:"fees"`
	DateTime               string    `json:"date_time,omitempty"`
	Location               string    `json:"location"`
	HealthcareProfessional string    `json:"healthcare_professional,omitempty"`
	Capacity               int       `json:"capacity"`
	ParticipantCount       int       `json:"participant_count"`
	Description            string    `json:"description,omitempty"`
	Image                  string    `json:"image,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
}

// Participant links a user to a camp. Fees is a snapshot of the camp fee at
// registration time so later camp edits do not change what a registrant owes.
type Participant struct {
	ID                 string    `json:"id"`
	CampID             string    `json:"camp_id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Age                int       `json:"age,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	Gender             string    `json:"gender,omitempty"`
	EmergencyContact   string    `json:"emergency_contact,omitempty"`
	Fees               float64   `json:"fees"`
	PaymentStatus      string    `json:"payment_status"`
	ConfirmationStatus string    `json:"confirmation_status"`
	RegisteredAt       time.Time `json:"registered_at"`
}

// RegisteredCamp is a participant row joined with its camp for display.
type RegisteredCamp struct {
	Participant
	CampName     string  `json:"camp_name"`
	CampFees     float64 `json:"camp_fees"`
	CampLocation string  `json:"camp_location"`
	CampDateTime string  `json:"camp_date_time,omitempty"`
}

// Payment is one row of the append-only payment ledger. IntentID is the
// processor's payment-intent id and doubles as the idempotency key.
type Payment struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	IntentID      string    `json:"intent_id"`
	Amount        float64   `json:"amount"`
	Email         string    `json:"email"`
	PaidAt        time.Time `json:"paid_at"`
}

// PaymentRecord is a ledger row joined with participant and camp context.
type PaymentRecord struct {
	Payment
	CampID   string `json:"camp_id"`
	CampName string `json:"camp_name"`
}

// Feedback is an append-only participant review of a camp.
type Feedback struct {
	ID          string    `json:"id"`
	CampID      string    `json:"camp_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	Photo       string    `json:"photo,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Enum values stored in the database. The schema enforces them with CHECK
// constraints; handlers validate before writing so clients get 400, not 500.
const (
	RoleParticipant = "participant"
	RoleAdmin       = "admin"

	PaymentUnpaid = "Unpaid"
	PaymentPaid   = "Paid"

	ConfirmationPending   = "Pending"
	ConfirmationConfirmed = "Confirmed"
)
