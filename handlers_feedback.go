package main

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

type feedbackRequest struct {
	CampID  string `json:"camp_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Photo   string `json:"photo"`
}

// HandleSubmitFeedback handles POST /submit-feedback.
func (h *Handlers) HandleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	switch {
	case req.CampID == "":
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": "camp_id is required"})
		return
	case req.Rating < 1 || req.Rating > 5:
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": "rating must be between 1 and 5"})
		return
	case req.Comment == "":
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": "comment is required"})
		return
	}

	f := &Feedback{
		ID:      uuid.NewString(),
		CampID:  req.CampID,
		Email:   req.Email,
		Name:    req.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
		Photo:   req.Photo,
	}
	if err := h.DB.InsertFeedback(r.Context(), f); err != nil {
		SendError(w, err)
		return
	}
	SendJSON(w, http.StatusCreated, f)
}

// HandleListFeedback handles GET /feedbacks with optional camp_id filter and
// limit/offset pagination.
func (h *Handlers) HandleListFeedback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			SendJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid limit"})
			return
		}
		limit = n
	}
	offset := 0
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			SendJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid offset"})
			return
		}
		offset = n
	}

	items, err := h.DB.ListFeedback(r.Context(), q.Get("camp_id"), limit, offset)
	if err != nil {
		SendError(w, err)
		return
	}
	if items == nil {
		items = []Feedback{}
	}
	SendJSON(w, http.StatusOK, items)
}
