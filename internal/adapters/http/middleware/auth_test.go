package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fitwise/internal/domain/profile"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

// TestSessionManager_IssueParse verifies a round trip through a signed token.
func TestSessionManager_IssueParse(t *testing.T) {
	c := &clock{t: time.Date(2023, 9, 14, 8, 0, 0, 0, time.UTC)}
	sm := NewSessionManager(testKey, time.Hour, c.now)

	token, issued, err := sm.Issue("p1", profile.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := sm.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ProfileID != "p1" || got.Role != profile.RoleAdmin || got.TokenID != issued.TokenID || !got.IsAdmin() {
		t.Errorf("unexpected session: %+v", got)
	}
	if !got.ExpiresAt.Equal(c.t.Add(time.Hour)) {
		t.Errorf("ExpiresAt = %v", got.ExpiresAt)
	}
}

// TestSessionManager_Rejections verifies expiry, revocation, tampering and foreign keys.
func TestSessionManager_Rejections(t *testing.T) {
	c := &clock{t: time.Date(2023, 9, 14, 8, 0, 0, 0, time.UTC)}
	sm := NewSessionManager(testKey, time.Hour, c.now)
	token, sess, err := sm.Issue("p1", profile.RoleMember)
	if err != nil {
		t.Fatal(err)
	}

	other := NewSessionManager([]byte("another-key-another-key-another!"), time.Hour, c.now)
	if _, err := other.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign key: expected ErrInvalidToken, got %v", err)
	}
	if _, err := sm.Parse(token[:len(token)-2] + "xx"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered: expected ErrInvalidToken, got %v", err)
	}
	if _, err := sm.Parse("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage: expected ErrInvalidToken, got %v", err)
	}

	sm.Revoke(sess)
	if _, err := sm.Parse(token); !errors.Is(err, ErrRevokedToken) {
		t.Errorf("revoked: expected ErrRevokedToken, got %v", err)
	}

	fresh, _, err := sm.Issue("p2", profile.RoleMember)
	if err != nil {
		t.Fatal(err)
	}
	c.t = c.t.Add(2 * time.Hour)
	if _, err := sm.Parse(fresh); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expired: expected ErrExpiredToken, got %v", err)
	}

	sm.Revoke(Session{})
	sm.mu.Lock()
	n := len(sm.revoked)
	sm.mu.Unlock()
	if n != 0 {
		t.Errorf("expected expired revocations to be swept, %d left", n)
	}
}

// TestAuth_TokenSources verifies bearer and cookie tokens and the require guards.
func TestAuth_TokenSources(t *testing.T) {
	sm := NewSessionManager(testKey, time.Hour, nil)
	memberToken, _, _ := sm.Issue("m1", profile.RoleMember)
	adminToken, _, _ := sm.Issue("a1", profile.RoleAdmin)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := GetSessionFromContext(r.Context())
		w.Write([]byte(sess.ProfileID))
	})
	authed := Auth(sm)(RequireAuth(ok))
	admin := Auth(sm)(RequireAdmin(ok))

	tests := []struct {
		name    string
		handler http.Handler
		setup   func(r *http.Request)
		want    int
		body    string
	}{
		{"no token", authed, func(*http.Request) {}, http.StatusUnauthorized, ""},
		{"bearer", authed, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+memberToken) }, http.StatusOK, "m1"},
		{"cookie", authed, func(r *http.Request) { r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: memberToken}) }, http.StatusOK, "m1"},
		{"bad bearer", authed, func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized, ""},
		{"member on admin route", admin, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+memberToken) }, http.StatusForbidden, ""},
		{"admin on admin route", admin, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+adminToken) }, http.StatusOK, "a1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/me", nil)
			tt.setup(req)
			rr := httptest.NewRecorder()
			tt.handler.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
			if tt.body != "" && rr.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rr.Body.String(), tt.body)
			}
			if tt.want >= 400 && !strings.Contains(rr.Header().Get("Content-Type"), "application/json") {
				t.Errorf("expected JSON error, got %q", rr.Header().Get("Content-Type"))
			}
		})
	}
}

// TestSessionCookies verifies cookie attributes.
func TestSessionCookies(t *testing.T) {
	rr := httptest.NewRecorder()
	SetSessionCookie(rr, "tok", 24*time.Hour)
	c := rr.Result().Cookies()[0]
	if c.Name != sessionCookieName || c.Value != "tok" || !c.HttpOnly || c.MaxAge != 86400 || c.SameSite != http.SameSiteStrictMode {
		t.Errorf("unexpected cookie: %+v", c)
	}

	rr = httptest.NewRecorder()
	ClearSessionCookie(rr)
	if c := rr.Result().Cookies()[0]; c.MaxAge >= 0 {
		t.Errorf("expected expiring cookie, got MaxAge %d", c.MaxAge)
	}
}
