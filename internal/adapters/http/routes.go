package web

import (
	"net/http"

	"fitwise/internal/adapters/http/middleware"
)

type routeGuard func(http.Handler) http.Handler

func public(next http.Handler) http.Handler { return next }

// registerRoutes maps every API route onto its handler.
// Each handler is wrapped in middleware.Route so timing is labelled by pattern.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	limited := middleware.RateLimit(s.limiter)
	slow := middleware.Latency(s.deps.Latency)

	routes := []struct {
		pattern string
		guard   routeGuard
		handler http.HandlerFunc
		extra   []func(http.Handler) http.Handler
	}{
		// Auth
		{"POST /api/auth/otp", public, s.handleRequestOTP, []func(http.Handler) http.Handler{limited}},
		{"POST /api/auth/login", public, s.handleLogin, []func(http.Handler) http.Handler{limited}},
		{"POST /api/auth/logout", middleware.RequireAuth, s.handleLogout, nil},
		{"GET /api/auth/session", public, s.handleSession, nil},

		// Member
		{"GET /api/me", middleware.RequireAuth, s.handleGetMe, nil},
		{"PATCH /api/me", middleware.RequireAuth, s.handlePatchMe, nil},
		{"GET /api/me/summary", middleware.RequireAuth, s.handleGetSummary, nil},
		{"POST /api/me/checkin", middleware.RequireAuth, s.handleSelfCheckIn, nil},
		{"POST /api/diet-plan", middleware.RequireAuth, s.handleDietPlan, []func(http.Handler) http.Handler{slow}},
		{"POST /api/chat", middleware.RequireAuth, s.handleChat, []func(http.Handler) http.Handler{slow}},
		{"GET /api/safety-tips", middleware.RequireAuth, s.handleSafetyTips, nil},
		{"GET /api/workouts", middleware.RequireAuth, s.handleWorkouts, nil},

		// Admin
		{"GET /api/admin/users", middleware.RequireAdmin, s.handleListUsers, nil},
		{"PATCH /api/admin/users/{id}", middleware.RequireAdmin, s.handlePatchUser, nil},
		{"POST /api/admin/users/{id}/attendance/today", middleware.RequireAdmin, s.handleMarkToday, nil},
		{"DELETE /api/admin/users/{id}/attendance/today", middleware.RequireAdmin, s.handleUnmarkToday, nil},
		{"GET /api/admin/attendance", middleware.RequireAdmin, s.handleAttendanceReport, nil},
		{"GET /api/admin/attendance/export", middleware.RequireAdmin, s.handleAttendanceExport, nil},
		{"POST /api/admin/attendance/report", middleware.RequireAdmin, s.handleEmailReport, nil},
		{"GET /api/admin/perf", middleware.RequireAdmin, s.handlePerf, nil},
	}

	for _, rt := range routes {
		// guards run before route middleware
		h := middleware.Chain(rt.handler, rt.extra...)
		mux.Handle(rt.pattern, middleware.Route(rt.guard(h)))
	}
}
