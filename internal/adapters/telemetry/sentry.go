package telemetry

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
)

// Reporter forwards errors and panics to Sentry.
// A Reporter built without a DSN is inert, so callers never need a nil check.
type Reporter struct {
	enabled bool
}

// NewReporter initializes the Sentry client.
// PRE: none; an empty dsn disables reporting
// POST: Returns a reporter; initialization failures are logged and leave it disabled
func NewReporter(dsn, environment, release string) *Reporter {
	if dsn == "" {
		slog.Info("telemetry_disabled", "reason", "no_dsn")
		return &Reporter{}
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("telemetry_init_failed", "error", err)
		return &Reporter{}
	}
	slog.Info("telemetry_enabled", "environment", environment, "release", release)
	return &Reporter{enabled: true}
}

// Enabled reports whether events are sent anywhere.
func (r *Reporter) Enabled() bool {
	return r != nil && r.enabled
}

// CaptureError reports err tagged with the operation that failed.
func (r *Reporter) CaptureError(op string, err error, tags map[string]string) {
	if !r.Enabled() || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("op", op)
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		scope.SetLevel(sentry.LevelError)
		sentry.CaptureException(err)
	})
}

// CapturePanic reports a recovered panic value and flushes so it survives a crash.
func (r *Reporter) CapturePanic(op string, recovered any) {
	if !r.Enabled() || recovered == nil {
		return
	}
	hub := sentry.CurrentHub().Clone()
	hub.Scope().SetTag("op", op)
	hub.Scope().SetLevel(sentry.LevelFatal)
	if hub.Recover(recovered) == nil {
		hub.CaptureMessage(fmt.Sprint(recovered))
	}
	hub.Flush(2 * time.Second)
}

// Flush waits for queued events; true means everything was sent.
func (r *Reporter) Flush(timeout time.Duration) bool {
	if !r.Enabled() {
		return true
	}
	return sentry.Flush(timeout)
}
