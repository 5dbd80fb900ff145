package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fitwise/internal/adapters/http/middleware"
	"fitwise/internal/application/listutil"
	"fitwise/internal/application/orchestrators"
	"fitwise/internal/application/projections"
	"fitwise/internal/domain/attendance"
)

// Perf snapshot window bounds, in minutes.
const (
	defaultPerfMinutes = 60
	maxPerfMinutes     = 24 * 60
	perfTopN           = 10
)

type emailReportRequest struct {
	Range   string   `json:"range"`
	EndDate string   `json:"endDate"`
	To      []string `json:"to"`
}

type emailReportResponse struct {
	MessageID string    `json:"messageId"`
	SentAt    time.Time `json:"sentAt"`
}

// handleListUsers handles GET /api/admin/users
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryUserList(r.Context(),
		projections.UserListQuery{ListParams: listutil.ParseListParams(r.URL.Query())},
		projections.UserListDeps{ProfileStore: s.deps.ProfileStore, Now: s.deps.Now})
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handlePatchUser handles PATCH /api/admin/users/{id}
func (s *Server) handlePatchUser(w http.ResponseWriter, r *http.Request) {
	s.updateProfile(w, r, r.PathValue("id"))
}

// handleMarkToday handles POST /api/admin/users/{id}/attendance/today
func (s *Server) handleMarkToday(w http.ResponseWriter, r *http.Request) {
	p, err := orchestrators.ExecuteMarkAttendance(r.Context(),
		orchestrators.MarkAttendanceInput{Actor: actorFrom(r), ProfileID: r.PathValue("id")},
		s.attendanceDeps())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleUnmarkToday handles DELETE /api/admin/users/{id}/attendance/today
func (s *Server) handleUnmarkToday(w http.ResponseWriter, r *http.Request) {
	p, err := orchestrators.ExecuteUnmarkAttendance(r.Context(),
		orchestrators.MarkAttendanceInput{Actor: actorFrom(r), ProfileID: r.PathValue("id")},
		s.attendanceDeps())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleAttendanceReport handles GET /api/admin/attendance
// Query: range (last7days|last14days|last30days), end (YYYY-MM-DD), date (log date).
func (s *Server) handleAttendanceReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := projections.QueryAttendanceReport(r.Context(), projections.AttendanceReportQuery{
		Range:   q.Get("range"),
		EndDate: q.Get("end"),
		LogDate: q.Get("date"),
	}, projections.AttendanceReportDeps{AttendanceStore: s.deps.AttendanceStore, Now: s.deps.Now})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleAttendanceExport handles GET /api/admin/attendance/export
func (s *Server) handleAttendanceExport(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = attendance.Today(s.now())
	}

	// buffered so a failed query can still become a JSON error
	var buf bytes.Buffer
	n, err := projections.QueryAttendanceExport(r.Context(), projections.AttendanceExportQuery{Date: date},
		projections.AttendanceExportDeps{AttendanceStore: s.deps.AttendanceStore}, &buf)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-%s.csv"`, date))
	w.Header().Set("X-Row-Count", strconv.Itoa(n))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleEmailReport handles POST /api/admin/attendance/report
func (s *Server) handleEmailReport(w http.ResponseWriter, r *http.Request) {
	var req emailReportRequest
	if err := decodeOptional(w, r, &req); err != nil {
		badJSON(w, err)
		return
	}
	receipt, err := orchestrators.ExecuteEmailAttendanceReport(r.Context(), orchestrators.EmailReportInput{
		Actor:   actorFrom(r),
		Range:   req.Range,
		EndDate: req.EndDate,
		To:      req.To,
	}, orchestrators.EmailReportDeps{
		AttendanceStore: s.deps.AttendanceStore,
		Sender:          s.deps.EmailSender,
		Render:          renderMarkdown,
		DefaultTo:       s.deps.ReportTo,
		Now:             s.deps.Now,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, emailReportResponse{MessageID: receipt.MessageID, SentAt: receipt.SentAt})
}

// handlePerf handles GET /api/admin/perf
// Query: minutes (window size, default 60).
func (s *Server) handlePerf(w http.ResponseWriter, r *http.Request) {
	if s.deps.Collector == nil {
		middleware.WriteError(w, http.StatusNotFound, "performance collection is disabled")
		return
	}
	minutes := defaultPerfMinutes
	if v := r.URL.Query().Get("minutes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxPerfMinutes {
			middleware.WriteError(w, http.StatusBadRequest, fmt.Sprintf("minutes must be between 1 and %d", maxPerfMinutes))
			return
		}
		minutes = n
	}
	since := s.now().Add(-time.Duration(minutes) * time.Minute)
	writeJSON(w, http.StatusOK, s.deps.Collector.Snapshot(since, perfTopN))
}
