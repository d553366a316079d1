package main

import (
	"net/http"

	"github.com/google/uuid"
)

type registerRequest struct {
	CampID           string `json:"camp_id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	Age              int    `json:"age"`
	Phone            string `json:"phone"`
	Gender           string `json:"gender"`
	EmergencyContact string `json:"emergency_contact"`
}

// HandleRegisterParticipant handles POST /participants. The insert and the
// camp-count increment commit together or not at all.
func (h *Handlers) HandleRegisterParticipant(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CampID == "" || req.Email == "" {
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": "camp_id and email are required"})
		return
	}

	p := &Participant{
		ID:               uuid.NewString(),
		CampID:           req.CampID,
		Email:            req.Email,
		Name:             req.Name,
		Age:              req.Age,
		Phone:            req.Phone,
		Gender:           req.Gender,
		EmergencyContact: req.EmergencyContact,
	}
	if err := h.DB.RegisterParticipant(r.Context(), p); err != nil {
		SendError(w, err)
		return
	}
	SendJSON(w, http.StatusCreated, p)
}

// HandleListRegistrations handles GET /participants/{email} and
// GET /participant-all-camps/{email} (token): camp-joined registrations for
// a user. A token only opens its own registrations; reading someone else's
// takes the admin role.
func (h *Handlers) HandleListRegistrations(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	ok, err := h.ownsOrAdmin(r, email)
	if err != nil {
		SendError(w, err)
		return
	}
	if !ok {
		SendJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden: not your registrations"})
		return
	}
	regs, err := h.DB.ListRegistrations(r.Context(), email)
	if err != nil {
		SendError(w, err)
		return
	}
	if regs == nil {
		regs = []RegisteredCamp{}
	}
	SendJSON(w, http.StatusOK, regs)
}

// HandleGetRegistration handles GET /participant/{id} (token).
func (h *Handlers) HandleGetRegistration(w http.ResponseWriter, r *http.Request) {
	reg, err := h.DB.GetRegistration(r.Context(), r.PathValue("id"))
	if err != nil {
		SendError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, reg)
}

// HandleCancelRegistration handles DELETE /cancel-registration/{id} (token).
// The token must own the registration; the delete and the count decrement
// commit together.
func (h *Handlers) HandleCancelRegistration(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.CancelRegistration(r.Context(), r.PathValue("id"), tokenEmail(r)); err != nil {
		SendError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleForceCancelRegistration handles
// DELETE /cancel-registered-participant/{id} (token + admin): same cancel,
// no ownership check.
func (h *Handlers) HandleForceCancelRegistration(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.CancelRegistration(r.Context(), r.PathValue("id"), ""); err != nil {
		SendError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type confirmationRequest struct {
	Status string `json:"status"`
}

// HandleUpdateConfirmation handles PATCH /update-confirmation/{id}
// (token + admin). Confirmation is an approval flag independent of payment
// status.
func (h *Handlers) HandleUpdateConfirmation(w http.ResponseWriter, r *http.Request) {
	var req confirmationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Status != ConfirmationPending && req.Status != ConfirmationConfirmed {
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": "status must be Pending or Confirmed"})
		return
	}

	if err := h.DB.UpdateConfirmation(r.Context(), r.PathValue("id"), req.Status); err != nil {
		SendError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, map[string]bool{"success": true})
}
