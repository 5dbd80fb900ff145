package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"fitwise/internal/adapters/http/perf"
)

// DefaultSlowRequest is the default threshold for slow request warnings.
const DefaultSlowRequest = 500 * time.Millisecond

// unmatchedRoute labels requests no route pattern claimed, keeping label cardinality bounded.
const unmatchedRoute = "unmatched"

const routeContextKey contextKey = "route"

// requestIDCounter is an atomic counter for request IDs.
var requestIDCounter atomic.Uint64

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

// WriteHeader captures the status code and delegates to the underlying ResponseWriter.
// PRE: code is a valid HTTP status code
// POST: status stored, header written to underlying ResponseWriter
func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

// statusWriterPool reduces allocations on the hot path.
var statusWriterPool = sync.Pool{
	New: func() any {
		return &statusWriter{}
	},
}

// Route records the matched ServeMux pattern for Timing.
// Wrap every registered handler with it; the mux sets r.Pattern only on the request it dispatches.
func Route(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slot, ok := r.Context().Value(routeContextKey).(*string); ok && r.Pattern != "" {
			*slot = r.Pattern
		}
		next.ServeHTTP(w, r)
	})
}

// Timing returns middleware that logs request duration, labelled by route pattern.
// Normal requests log at DEBUG; requests at or above slow log at WARN.
// If collector is non-nil, entries are recorded for the perf snapshot.
func Timing(collector *perf.Collector, slow time.Duration) func(http.Handler) http.Handler {
	if slow <= 0 {
		slow = DefaultSlowRequest
	}
	thresholdMs := float64(slow.Milliseconds())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := requestIDCounter.Add(1)
			route := ""
			r = r.WithContext(context.WithValue(r.Context(), routeContextKey, &route))

			sw := statusWriterPool.Get().(*statusWriter)
			sw.ResponseWriter = w
			sw.status = http.StatusOK
			defer func() {
				durationMs := float64(time.Since(start).Microseconds()) / 1000.0
				label := route
				if label == "" {
					label = r.Method + " " + unmatchedRoute
				}

				if durationMs >= thresholdMs {
					slog.Warn("slow_request",
						"request_id", reqID,
						"route", label,
						"path", r.URL.Path,
						"status", sw.status,
						"duration_ms", durationMs,
					)
				} else {
					slog.Debug("request",
						"request_id", reqID,
						"route", label,
						"path", r.URL.Path,
						"status", sw.status,
						"duration_ms", durationMs,
					)
				}

				if collector != nil {
					collector.Record(perf.Entry{
						Kind:       perf.KindRequest,
						Label:      label,
						StatusCode: sw.status,
						DurationMs: durationMs,
						Timestamp:  start,
					})
				}

				sw.ResponseWriter = nil
				statusWriterPool.Put(sw)
			}()

			next.ServeHTTP(sw, r)
		})
	}
}
