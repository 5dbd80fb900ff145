package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// TestRateLimiter verifies burst exhaustion per IP.
func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("fourth request should be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("other IPs have their own bucket")
	}
	rl.Close()
}

// TestRateLimit_Middleware verifies the 429 response and per-host keying.
func TestRateLimit_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Close()
	h := RateLimit(rl)(okHandler)

	req := func(addr string) int {
		r := httptest.NewRequest("POST", "/api/auth/otp", nil)
		r.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, r)
		return rr.Code
	}
	if got := req("10.0.0.1:5000"); got != http.StatusOK {
		t.Fatalf("first request = %d", got)
	}
	if got := req("10.0.0.1:5001"); got != http.StatusTooManyRequests {
		t.Errorf("same host, new port = %d, want 429", got)
	}
}

// TestSecurityHeaders verifies the headers are set.
func TestSecurityHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	SecurityHeaders(okHandler).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	for _, h := range []string{"Content-Security-Policy", "X-Frame-Options", "X-Content-Type-Options", "Referrer-Policy"} {
		if rr.Header().Get(h) == "" {
			t.Errorf("missing %s", h)
		}
	}
}

// TestCSRF_Exemptions verifies JSON and bearer requests skip the token check while forms do not.
func TestCSRF_Exemptions(t *testing.T) {
	h := CSRF([]byte("0123456789abcdef0123456789abcdef"), false, nil)(okHandler)

	tests := []struct {
		name   string
		method string
		header map[string]string
		want   int
	}{
		{"json post", "POST", map[string]string{"Content-Type": "application/json"}, http.StatusOK},
		{"bearer delete", "DELETE", map[string]string{"Authorization": "Bearer abc"}, http.StatusOK},
		{"safe get", "GET", nil, http.StatusOK},
		{"form post without token", "POST", map[string]string{"Content-Type": "application/x-www-form-urlencoded"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, "/api/auth/logout", strings.NewReader(""))
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, r)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

type recordingReporter struct {
	op  string
	val any
}

// CapturePanic records the last panic.
// PRE: none
// POST: op and val hold the latest report
func (r *recordingReporter) CapturePanic(op string, recovered any) {
	r.op, r.val = op, recovered
}

// TestRecover verifies a panic becomes a reported 500.
func TestRecover(t *testing.T) {
	rep := &recordingReporter{}
	h := Recover(rep)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/me", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "boom") {
		t.Error("panic value leaked to client")
	}
	if rep.op != "GET /api/me" || rep.val != "boom" {
		t.Errorf("unexpected report: %+v", rep)
	}

	rr = httptest.NewRecorder()
	Recover(nil)(okHandler).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

// TestLatency verifies the delay and early return on cancellation.
func TestLatency(t *testing.T) {
	h := Latency(20 * time.Millisecond)(okHandler)

	start := time.Now()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/chat", nil))
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("returned after %v, want >= 20ms", elapsed)
	}
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d", rr.Code)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	slow := Latency(time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	slow.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/chat", nil).WithContext(ctx))
	if called {
		t.Error("handler ran after the client went away")
	}

	if Latency(0)(okHandler) == nil {
		t.Error("zero latency should pass the handler through")
	}
}

// TestChain verifies the last middleware listed runs first.
func TestChain(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	Chain(okHandler, mw("inner"), mw("outer")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if strings.Join(order, ",") != "outer,inner" {
		t.Errorf("order = %v", order)
	}
}
