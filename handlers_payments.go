package main

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/google/uuid"
)

type paymentIntentRequest struct {
	Fees float64 `json:"fees"`
}

// HandleCreatePaymentIntent handles POST /create-payment-intent (token). It
// exchanges a fee amount for a processor client secret; the browser confirms
// the charge with the secret and then posts the result to /payments.
func (h *Handlers) HandleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Fees <= 0 {
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": "fees must be positive"})
		return
	}

	// The processor speaks integer cents; the API keeps dollar amounts.
	// Round instead of truncating: 19.99 dollars is 1998.999... in float,
	// and a plain int64 conversion would charge a cent short.
	amountCents := int64(math.Round(req.Fees * 100))
	intentID, clientSecret, err := h.Intents.CreateIntent(r.Context(), amountCents)
	if err != nil {
		slog.Error("failed to create payment intent", "error", err)
		SendJSON(w, http.StatusBadGateway, map[string]string{"error": "payment processor unavailable"})
		return
	}

	SendJSON(w, http.StatusOK, map[string]string{
		"clientSecret": clientSecret,
		"intentId":     intentID,
	})
}

type recordPaymentRequest struct {
	ParticipantID string  `json:"participant_id"`
	IntentID      string  `json:"intent_id"`
	Amount        float64 `json:"amount"`
	Email         string  `json:"email"`
}

// HandleRecordPayment handles POST /payments (token). The ledger insert and
// the Unpaid→Paid flip share one transaction, keyed by the intent id, so a
// client retry returns the already-updated participant instead of a second
// ledger row.
func (h *Handlers) HandleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	switch {
	case req.ParticipantID == "":
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": "participant_id is required"})
		return
	case req.IntentID == "":
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": "intent_id is required"})
		return
	case req.Amount < 0:
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": "amount must not be negative"})
		return
	}

	pay := &Payment{
		ID:            uuid.NewString(),
		ParticipantID: req.ParticipantID,
		IntentID:      req.IntentID,
		Amount:        req.Amount,
		Email:         req.Email,
	}
	participant, replay, err := h.DB.RecordPayment(r.Context(), pay)
	if err != nil {
		SendError(w, err)
		return
	}
	if replay {
		slog.Info("payment replay ignored", "intent_id", req.IntentID)
	}
	SendJSON(w, http.StatusOK, participant)
}

// HandleListPayments handles GET /payments (token + admin): the full ledger.
func (h *Handlers) HandleListPayments(w http.ResponseWriter, r *http.Request) {
	h.listPayments(w, r, "")
}

// HandleListPaymentsByEmail handles GET /payments/{email} (token). A token
// only opens its own ledger; reading someone else's takes the admin role.
func (h *Handlers) HandleListPaymentsByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	ok, err := h.ownsOrAdmin(r, email)
	if err != nil {
		SendError(w, err)
		return
	}
	if !ok {
		SendJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden: not your payments"})
		return
	}
	h.listPayments(w, r, email)
}

func (h *Handlers) listPayments(w http.ResponseWriter, r *http.Request, email string) {
	records, err := h.DB.ListPayments(r.Context(), email)
	if err != nil {
		SendError(w, err)
		return
	}
	if records == nil {
		records = []PaymentRecord{}
	}
	SendJSON(w, http.StatusOK, records)
}
