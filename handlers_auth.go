package main

import (
	"net/http"
	"time"
)

type issueTokenRequest struct {
	Email string `json:"email"`
}

// HandleIssueToken handles POST /jwt. It signs a token for the posted email
// and sets it as an HTTP-only cookie; the body only confirms success, the
// token itself never travels in JSON.
func (h *Handlers) HandleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req issueTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		SendJSON(w, http.StatusBadRequest, map[string]string{"error": "Email is required"})
		return
	}

	token, err := issueToken(h.Cfg.JWTSecret, req.Email, time.Now())
	if err != nil {
		SendError(w, err)
		return
	}

	http.SetCookie(w, h.authCookie(token, int(tokenTTL.Seconds())))
	SendJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleLogout handles GET /logout by clearing the token cookie.
func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.authCookie("", -1))
	SendJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// authCookie builds the auth cookie. Production uses Secure +
// SameSite=None so the cookie survives the cross-site hop from the hosted
// frontend; development keeps Strict.
func (h *Handlers) authCookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteStrictMode
	if h.Cfg.Production() {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     tokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Cfg.Production(),
		SameSite: sameSite,
	}
}
