package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenCookie is the HTTP-only cookie carrying the signed identity token.
const tokenCookie = "token"

// tokenTTL keeps a login valid for one year.
const tokenTTL = 365 * 24 * time.Hour

type contextKey string

const emailKey contextKey = "email"

// authClaims is the JWT payload: just the registered claims plus the
// account email.
type authClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// issueToken signs an HS256 token for the given email.
func issueToken(secret, email string, now time.Time) (string, error) {
	claims := authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseToken verifies signature, algorithm and expiry, returning the email
// claim.
func parseToken(secret, tokenString string) (string, error) {
	var claims authClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", errors.New("token has no email claim")
	}
	return claims.Email, nil
}

// tokenEmail returns the verified email attached to the request context, or
// "" outside the verifyToken middleware.
func tokenEmail(r *http.Request) string {
	email, _ := r.Context().Value(emailKey).(string)
	return email
}

// verifyToken rejects requests without a valid token cookie before any
// handler logic runs. On success the email claim is attached to the request
// context for downstream use.
func (h *Handlers) verifyToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(tokenCookie)
		if err != nil {
			SendJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized access"})
			return
		}
		email, err := parseToken(h.Cfg.JWTSecret, cookie.Value)
		if err != nil {
			slog.Debug("token rejected", "error", err)
			SendJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized access"})
			return
		}
		ctx := context.WithValue(r.Context(), emailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin gates admin-only actions behind a fresh role lookup. The
// lookup runs per request so a revoked role takes effect immediately rather
// than living inside a year-long token.
func (h *Handlers) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, err := h.DB.GetUserRole(r.Context(), tokenEmail(r))
		if err != nil && !errors.Is(err, ErrNotFound) {
			SendJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check role"})
			return
		}
		if role != RoleAdmin {
			SendJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden: admin only"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ownsOrAdmin reports whether the token identity may read records belonging
// to owner: the owner themselves, or an admin.
func (h *Handlers) ownsOrAdmin(r *http.Request, owner string) (bool, error) {
	if tokenEmail(r) == owner {
		return true, nil
	}
	role, err := h.DB.GetUserRole(r.Context(), tokenEmail(r))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return false, err
	}
	return role == RoleAdmin, nil
}

// protect chains token verification and, optionally, the admin gate.
func (h *Handlers) protect(adminOnly bool, fn http.HandlerFunc) http.Handler {
	var handler http.Handler = fn
	if adminOnly {
		handler = h.requireAdmin(handler)
	}
	return h.verifyToken(handler)
}
