package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret"

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	return &Handlers{
		DB:      newTestDB(t),
		Cfg:     Config{JWTSecret: testSecret, Env: "development"},
		Intents: &fakeIntents{},
	}
}

// fakeIntents stands in for the payment processor.
type fakeIntents struct {
	calls      int
	lastAmount int64
}

func (f *fakeIntents) CreateIntent(ctx context.Context, amountCents int64) (string, string, error) {
	f.calls++
	f.lastAmount = amountCents
	return "pi_test_123", "cs_test_secret", nil
}

func authCookieFor(t *testing.T, email string) *http.Cookie {
	t.Helper()
	token, err := issueToken(testSecret, email, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return &http.Cookie{Name: tokenCookie, Value: token}
}

func seedAdmin(t *testing.T, db *DB, email string) {
	t.Helper()
	ctx := context.Background()
	if _, err := db.EnsureUser(ctx, email, "Admin", ""); err != nil {
		t.Fatalf("Failed to seed admin: %v", err)
	}
	if err := db.UpdateUserRole(ctx, email, RoleAdmin); err != nil {
		t.Fatalf("Failed to promote admin: %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := issueToken(testSecret, "alice@example.com", time.Now())
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	email, err := parseToken(testSecret, token)
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("Expected email claim back, got %q", email)
	}

	if _, err := parseToken("wrong-secret", token); err == nil {
		t.Error("Expected verification to fail with the wrong secret")
	}

	expired, err := issueToken(testSecret, "alice@example.com", time.Now().Add(-2*tokenTTL))
	if err != nil {
		t.Fatalf("Failed to issue expired token: %v", err)
	}
	if _, err := parseToken(testSecret, expired); err == nil {
		t.Error("Expected expired token to be rejected")
	}
}

func TestAdminGate(t *testing.T) {
	h := newTestHandlers(t)
	seedAdmin(t, h.DB, "admin@example.com")
	if _, err := h.DB.EnsureUser(context.Background(), "user@example.com", "User", ""); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	mux := h.Routes()

	body := `{"name":"Eye Camp","fees":25,"location":"Dhaka","capacity":10}`

	// No token: 401 before any handler logic.
	req := httptest.NewRequest("POST", "/camps", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", rec.Code)
	}

	// Garbage token: 401.
	req = httptest.NewRequest("POST", "/camps", strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: tokenCookie, Value: "not.a.token"})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with invalid token, got %d", rec.Code)
	}

	// Valid token, participant role: 403.
	req = httptest.NewRequest("POST", "/camps", strings.NewReader(body))
	req.AddCookie(authCookieFor(t, "user@example.com"))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-admin, got %d", rec.Code)
	}

	// Valid token, unknown account: also 403.
	req = httptest.NewRequest("POST", "/camps", strings.NewReader(body))
	req.AddCookie(authCookieFor(t, "ghost@example.com"))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for unknown account, got %d", rec.Code)
	}

	// Admin: allowed.
	req = httptest.NewRequest("POST", "/camps", strings.NewReader(body))
	req.AddCookie(authCookieFor(t, "admin@example.com"))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected 201 for admin, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestIssueTokenSetsCookieAndLogoutClearsIt(t *testing.T) {
	h := newTestHandlers(t)
	mux := h.Routes()

	req := httptest.NewRequest("POST", "/jwt", strings.NewReader(`{"email":"alice@example.com"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var issued *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == tokenCookie {
			issued = c
		}
	}
	if issued == nil || issued.Value == "" {
		t.Fatal("Expected a token cookie to be set")
	}
	if !issued.HttpOnly {
		t.Error("Token cookie must be HTTP-only")
	}
	if email, err := parseToken(testSecret, issued.Value); err != nil || email != "alice@example.com" {
		t.Errorf("Cookie must carry a valid token for the email, got %q / %v", email, err)
	}

	req = httptest.NewRequest("GET", "/logout", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from logout, got %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == tokenCookie && c.MaxAge >= 0 {
			t.Error("Logout must expire the token cookie")
		}
	}
}

func TestIssueTokenRequiresEmail(t *testing.T) {
	h := newTestHandlers(t)
	mux := h.Routes()

	req := httptest.NewRequest("POST", "/jwt", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without email, got %d", rec.Code)
	}
}
