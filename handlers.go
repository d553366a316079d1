package main

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Handlers struct {
	DB      *DB
	Cfg     Config
	Intents PaymentIntents
}

// SendJSON is a helper for sending JSON responses
func SendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error": "Failed to encode response"}`, http.StatusInternalServerError)
	}
}

// SendError maps store errors onto the HTTP taxonomy: NotFound 404,
// conflicts 409, ownership 403, everything else 500 with a generic body so
// internals don't leak.
func SendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		SendJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrCampFull):
		SendJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrAlreadyRegistered):
		SendJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrCapacityTooLow):
		SendJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrNotOwner):
		SendJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	default:
		SendJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// decodeJSON reads a request body into dst, reporting a 400 on malformed
// input. Returns false when the response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		return false
	}
	return true
}

// HandleRoot handles GET / as a liveness probe target.
func (h *Handlers) HandleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("CareHeaven server is running"))
}
