package main

import (
	"net/http"
)

type userRequest struct {
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// HandleEnsureUser handles POST /users/{email}. First contact creates the
// account with the participant role; later calls return the stored record
// untouched.
func (h *Handlers) HandleEnsureUser(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing email"})
		return
	}

	var req userRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.DB.EnsureUser(r.Context(), email, req.Name, req.Photo)
	if err != nil {
		SendError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, user)
}

// HandleGetUser handles GET /users/{email}.
func (h *Handlers) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.DB.GetUser(r.Context(), r.PathValue("email"))
	if err != nil {
		SendError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, user)
}

// HandleGetUserRole handles GET /users/role/{email}, returning just the role
// so the frontend can branch without pulling the whole profile.
func (h *Handlers) HandleGetUserRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.DB.GetUserRole(r.Context(), r.PathValue("email"))
	if err != nil {
		SendError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, map[string]string{"role": role})
}

// HandleUpdateUser handles PUT /users/{email} (token + admin).
func (h *Handlers) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	var req userRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": "Name is required"})
		return
	}

	if err := h.DB.UpdateUserProfile(r.Context(), email, req.Name, req.Photo); err != nil {
		SendError(w, err)
		return
	}
	SendJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Profile updated successfully"})
}
