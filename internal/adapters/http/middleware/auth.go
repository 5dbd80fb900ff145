package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fitwise/internal/domain/profile"
)

// Session token errors
var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session has expired")
	ErrRevokedToken = errors.New("session has been revoked")
)

// Token constants
const (
	TokenIssuer   = "fitwise"
	TokenAudience = "fitwise-api"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

const sessionCookieName = "fitwise_session"

// SecureCookies controls the Secure flag on session cookies. Set in production.
var SecureCookies = false

// Session is the authenticated caller carried by a verified token.
type Session struct {
	ProfileID string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

// IsAdmin applies the admin predicate to the session role.
func (s Session) IsAdmin() bool {
	return profile.CanAccessAdmin(profile.Profile{Role: s.Role})
}

// Claims are the signed contents of a session token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SessionManager signs, verifies and revokes HS256 session tokens.
// Revocations live in memory until the token would have expired anyway.
type SessionManager struct {
	key []byte
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // token ID -> expiry
}

// NewSessionManager creates a manager signing with key. now may be nil.
// PRE: key is non-empty, ttl > 0
func NewSessionManager(key []byte, ttl time.Duration, now func() time.Time) *SessionManager {
	if now == nil {
		now = time.Now
	}
	return &SessionManager{
		key:     key,
		ttl:     ttl,
		now:     now,
		revoked: make(map[string]time.Time),
	}
}

// TTL is the lifetime of newly issued tokens.
func (sm *SessionManager) TTL() time.Duration {
	return sm.ttl
}

// Issue signs a new token for the profile.
// POST: Returns the token and the session it encodes
func (sm *SessionManager) Issue(profileID, role string) (string, Session, error) {
	now := sm.now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   profileID,
			Audience:  jwt.ClaimStrings{TokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(sm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sm.key)
	if err != nil {
		return "", Session{}, err
	}
	return signed, sessionFromClaims(claims), nil
}

// Parse verifies a token and returns its session.
// POST: Returns ErrExpiredToken, ErrRevokedToken or ErrInvalidToken on failure
func (sm *SessionManager) Parse(token string) (Session, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
		jwt.WithTimeFunc(sm.now),
	)
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return sm.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, ErrExpiredToken
		}
		return Session{}, ErrInvalidToken
	}
	if claims.Subject == "" || claims.ID == "" {
		return Session{}, ErrInvalidToken
	}

	sm.mu.Lock()
	_, revoked := sm.revoked[claims.ID]
	sm.mu.Unlock()
	if revoked {
		return Session{}, ErrRevokedToken
	}
	return sessionFromClaims(claims), nil
}

// Revoke rejects the session's token from now until it expires.
// POST: expired revocations are swept
func (sm *SessionManager) Revoke(s Session) {
	now := sm.now()
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for id, exp := range sm.revoked {
		if !now.Before(exp) {
			delete(sm.revoked, id)
		}
	}
	if s.TokenID != "" && now.Before(s.ExpiresAt) {
		sm.revoked[s.TokenID] = s.ExpiresAt
	}
}

func sessionFromClaims(c *Claims) Session {
	s := Session{ProfileID: c.Subject, Role: c.Role, TokenID: c.ID}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}

// TokenFromRequest reads the bearer token, falling back to the session cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Auth returns middleware that verifies the session token and sets it in context.
// It does NOT block unauthenticated requests; use RequireAuth or RequireAdmin for that.
func Auth(sm *SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := TokenFromRequest(r); token != "" {
				session, err := sm.Parse(token)
				if err == nil {
					r = r.WithContext(ContextWithSession(r.Context(), session))
				} else {
					slog.Debug("auth_event", "event", "token_rejected", "reason", err.Error())
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns middleware that blocks unauthenticated requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			slog.Warn("auth_denied", "path", r.URL.Path, "reason", "no session")
			WriteError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns middleware that blocks non-admin sessions with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := GetSessionFromContext(r.Context())
		if !sess.IsAdmin() {
			slog.Warn("auth_denied", "path", r.URL.Path, "profile_id", sess.ProfileID, "role", sess.Role, "required", profile.RoleAdmin)
			WriteError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(Session)
	return session, ok
}

// ContextWithSession returns a context with the given session set.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
