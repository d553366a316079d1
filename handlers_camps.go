package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

type campRequest struct {
	Name                   string  `json:"name"`
	Fees                   float64 `json:"fees"`
	DateTime               string  `json:"date_time"`
	Location               string  `json:"location"`
	HealthcareProfessional string  `json:"healthcare_professional"`
	Capacity               int     `json:"capacity"`
	Description            string  `json:"description"`
	Image                  string  `json:"image"`
}

func (req *campRequest) validate() string {
	switch {
	case req.Name == "":
		return "Name is required"
	case req.Location == "":
		return "Location is required"
	case req.Fees < 0:
		return "Fees must not be negative"
	case req.Capacity <= 0:
		return "Capacity must be positive"
	}
	return ""
}

func (req *campRequest) toCamp(id string) *Camp {
	return &Camp{
		ID:                     id,
		Name:                   req.Name,
		Fees:                   req.Fees,
		DateTime:               req.DateTime,
		Location:               req.Location,
		HealthcareProfessional: req.HealthcareProfessional,
		Capacity:               req.Capacity,
		Description:            req.Description,
		Image:                  req.Image,
	}
}

// HandleCreateCamp handles POST /camps (token + admin).
func (h *Handlers) HandleCreateCamp(w http.ResponseWriter, r *http.Request) {
	var req campRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	camp := req.toCamp(uuid.NewString())
	if err := h.DB.CreateCamp(r.Context(), camp); err != nil {
		SendError(w, err)
		return
	}
	SendJSON(w, http.StatusCreated, camp)
}

// HandleListCamps handles GET /camps with sort, order and limit query
// params. Defaults: most popular first, unlimited.
func (h *Handlers) HandleListCamps(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sortBy := q.Get("sort")
	if sortBy == "" {
		sortBy = "participant_count"
	}
	order := q.Get("order")
	if order == "" {
		order = "desc"
	}
	if order != "asc" && order != "desc" {
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": "order must be asc or desc"})
		return
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			SendJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	camps, err := h.DB.ListCamps(r.Context(), sortBy, order, limit)
	if err != nil {
		if errors.Is(err, ErrInvalidSort) {
			SendJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		SendError(w, err)
		return
	}
	if camps == nil {
		camps = []Camp{}
	}
	SendJSON(w, http.StatusOK, camps)
}

// HandleGetCamp handles GET /camps/{id}. Camp reads are public: the listing
// already is, so gating a single record behind admin bought nothing.
func (h *Handlers) HandleGetCamp(w http.ResponseWriter, r *http.Request) {
	camp, err := h.DB.GetCamp(r.Context(), r.PathValue("id"))
	if err != nil {
		SendError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, camp)
}

// HandleUpdateCamp handles PUT /update-camp/{id} (token + admin) with upsert
// semantics.
func (h *Handlers) HandleUpdateCamp(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req campRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	camp := req.toCamp(id)
	if err := h.DB.UpsertCamp(r.Context(), camp); err != nil {
		SendError(w, err)
		return
	}

	// Return the stored row so the response carries the live participant count.
	stored, err := h.DB.GetCamp(r.Context(), id)
	if err != nil {
		SendError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, stored)
}

// HandleDeleteCamp handles DELETE /delete-camp/{id} (token + admin).
func (h *Handlers) HandleDeleteCamp(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.DeleteCamp(r.Context(), r.PathValue("id")); err != nil {
		SendError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, map[string]bool{"success": true})
}
