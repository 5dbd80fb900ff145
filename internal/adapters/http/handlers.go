package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"fitwise/internal/adapters/email"
	"fitwise/internal/adapters/http/middleware"
	"fitwise/internal/application/orchestrators"
	"fitwise/internal/application/projections"
	"fitwise/internal/domain/attendance"
	"fitwise/internal/domain/diet"
	"fitwise/internal/domain/otp"
	"fitwise/internal/domain/profile"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 64 << 10

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
// Tables are enabled for the attendance report.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts markdown to HTML with mdRenderer.
func renderMarkdown(md string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal_error", "route", r.Pattern, "error", err.Error())
	s.deps.Reporter.CaptureError(r.Pattern, err, nil)
	middleware.WriteError(w, http.StatusInternalServerError, "internal server error")
}

// writeError maps domain and orchestrator errors onto HTTP statuses.
// Anything unrecognised is an internal error.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, profile.ErrInvalidInput),
		errors.Is(err, profile.ErrInvalidRole),
		errors.Is(err, diet.ErrInvalidInput),
		errors.Is(err, attendance.ErrInvalidDate),
		errors.Is(err, otp.ErrInvalidPhone),
		errors.Is(err, otp.ErrInvalidCode),
		errors.Is(err, projections.ErrInvalidRange),
		errors.Is(err, email.ErrNoRecipients):
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, orchestrators.ErrAuthFailed):
		middleware.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, orchestrators.ErrForbidden):
		middleware.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, orchestrators.ErrProfileNotFound),
		errors.Is(err, projections.ErrProfileNotFound):
		middleware.WriteError(w, http.StatusNotFound, "profile not found")
	case errors.Is(err, profile.ErrPhoneTaken):
		middleware.WriteError(w, http.StatusConflict, err.Error())
	default:
		s.internalError(w, r, err)
	}
}

// writeJSON encodes v with the given status.
// The body is marshalled before the header is written, so a value that cannot
// be encoded becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("response_encode_failed", "error", err)
		middleware.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// decodeOptional is strictDecode that accepts an empty body.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) error {
	if err := strictDecode(w, r, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// badJSON answers a request whose body could not be decoded.
func badJSON(w http.ResponseWriter, err error) {
	slog.Debug("request_rejected", "reason", "bad_json", "error", err)
	middleware.WriteError(w, http.StatusBadRequest, "invalid JSON body")
}

// actorFrom builds the orchestrator actor from the request session.
// PRE: the route is guarded by RequireAuth or RequireAdmin
func actorFrom(r *http.Request) orchestrators.Actor {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	return orchestrators.Actor{ProfileID: sess.ProfileID, Role: sess.Role}
}

// profileUpdateRequest is the PATCH body shared by /api/me and /api/admin/users/{id}.
type profileUpdateRequest struct {
	Name     *string  `json:"name"`
	Phone    *string  `json:"phone"`
	HeightCm *float64 `json:"height"`
	WeightKg *float64 `json:"weight"`
}

func (req profileUpdateRequest) toUpdate() profile.Update {
	return profile.Update{Name: req.Name, Phone: req.Phone, HeightCm: req.HeightCm, WeightKg: req.WeightKg}
}
