package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"fitwise/internal/adapters/http/middleware"
	"fitwise/internal/application/orchestrators"
	"fitwise/internal/domain/profile"
)

type otpRequest struct {
	Phone string `json:"phone"`
}

type loginRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Profile   profile.Profile `json:"profile"`
}

type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	ProfileID     string `json:"profileId,omitempty"`
	Role          string `json:"role,omitempty"`
	CSRFToken     string `json:"csrfToken"`
}

// handleRequestOTP handles POST /api/auth/otp
func (s *Server) handleRequestOTP(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := strictDecode(w, r, &req); err != nil {
		badJSON(w, err)
		return
	}
	err := orchestrators.ExecuteRequestOTP(r.Context(), orchestrators.RequestOTPInput{Phone: req.Phone},
		orchestrators.RequestOTPDeps{Verifier: s.deps.Verifier})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLogin handles POST /api/auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := strictDecode(w, r, &req); err != nil {
		badJSON(w, err)
		return
	}

	p, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{Phone: req.Phone, Code: req.Code},
		orchestrators.LoginDeps{
			ProfileStore: s.deps.ProfileStore,
			Verifier:     s.deps.Verifier,
			AdminPhones:  s.deps.AdminPhones,
			Locks:        s.deps.Locks,
			Now:          s.deps.Now,
		})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	token, sess, err := s.deps.Sessions.Issue(p.ID, p.Role)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	middleware.SetSessionCookie(w, token, s.deps.Sessions.TTL())
	slog.Info("auth_event", "event", "login", "profile_id", p.ID, "role", p.Role)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: sess.ExpiresAt, Profile: p})
}

// handleLogout handles POST /api/auth/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	s.deps.Sessions.Revoke(sess)
	middleware.ClearSessionCookie(w)
	slog.Info("auth_event", "event", "logout", "profile_id", sess.ProfileID)
	w.WriteHeader(http.StatusNoContent)
}

// handleSession handles GET /api/auth/session
// Browser clients read the CSRF token here before any form-encoded write.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	resp := sessionResponse{CSRFToken: csrf.Token(r)}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		resp.Authenticated = true
		resp.ProfileID = sess.ProfileID
		resp.Role = sess.Role
	}
	writeJSON(w, http.StatusOK, resp)
}
