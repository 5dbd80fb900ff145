package web

import (
	"net/http"
	"time"

	"fitwise/internal/adapters/email"
	"fitwise/internal/adapters/http/middleware"
	"fitwise/internal/adapters/http/perf"
	attendanceStore "fitwise/internal/adapters/storage/attendance"
	profileStore "fitwise/internal/adapters/storage/profile"
	"fitwise/internal/adapters/telemetry"
	"fitwise/internal/application/orchestrators"
	"fitwise/internal/domain/advisor"
)

// Stores holds all storage dependencies.
type Stores struct {
	ProfileStore    profileStore.Store
	AttendanceStore attendanceStore.Store
}

// Deps holds everything the HTTP layer needs. Zero values are usable except
// for Stores, Verifier and Sessions.
type Deps struct {
	Stores
	Verifier    orchestrators.CodeVerifier
	Sessions    *middleware.SessionManager
	EmailSender email.Sender
	ReportTo    []string
	Collector   *perf.Collector
	Reporter    *telemetry.Reporter
	Locks       *orchestrators.ProfileLocks
	AdminPhones []string

	// Latency is the simulated delay on the diet plan and chat routes.
	Latency            time.Duration
	RateLimitPerMinute int
	CSRFKey            []byte
	Secure             bool
	TrustedOrigins     []string
	SlowRequest        time.Duration
	Now                func() time.Time
}

// Server serves the JSON API.
type Server struct {
	deps      Deps
	responder *advisor.Responder
	limiter   *middleware.RateLimiter
	handler   http.Handler
}

// DefaultRateLimitPerMinute applies when Deps leaves the limit unset.
const DefaultRateLimitPerMinute = 10

// NewServer wires routes and middleware.
// PRE: deps.Stores, deps.Verifier and deps.Sessions are non-nil; CSRFKey is 32 bytes
// POST: Returns a server whose rate limiter runs until Close
func NewServer(deps Deps) *Server {
	if deps.Locks == nil {
		deps.Locks = &orchestrators.ProfileLocks{}
	}
	if deps.EmailSender == nil {
		deps.EmailSender = email.NewNoopSender()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.RateLimitPerMinute <= 0 {
		deps.RateLimitPerMinute = DefaultRateLimitPerMinute
	}
	middleware.SecureCookies = deps.Secure

	s := &Server{
		deps:      deps,
		responder: advisor.NewDefaultResponder(),
		limiter:   middleware.NewRateLimiter(deps.RateLimitPerMinute, time.Minute),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	// Timing -> Recover -> SecurityHeaders -> CSRF -> Auth -> Mux
	s.handler = middleware.Chain(mux,
		middleware.Auth(deps.Sessions),
		middleware.CSRF(deps.CSRFKey, deps.Secure, deps.TrustedOrigins),
		middleware.SecurityHeaders,
		middleware.Recover(deps.Reporter),
		middleware.Timing(deps.Collector, deps.SlowRequest),
	)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.limiter.Close()
}

func (s *Server) now() time.Time {
	return s.deps.Now()
}
