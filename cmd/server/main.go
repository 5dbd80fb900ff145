package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	emailPkg "fitwise/internal/adapters/email"
	web "fitwise/internal/adapters/http"
	"fitwise/internal/adapters/http/middleware"
	"fitwise/internal/adapters/http/perf"
	otpAdapter "fitwise/internal/adapters/otp"
	"fitwise/internal/adapters/storage"
	attendanceStore "fitwise/internal/adapters/storage/attendance"
	profileStore "fitwise/internal/adapters/storage/profile"
	"fitwise/internal/adapters/telemetry"
	"fitwise/internal/application/orchestrators"
	"fitwise/internal/platform/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server_failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.NewLogger())

	reporter := telemetry.NewReporter(cfg.SentryDSN, cfg.Env, version)
	defer reporter.Flush(2 * time.Second)

	db, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := storage.MigrateDB(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, time.Duration(cfg.SlowQueryMs)*time.Millisecond)

	profiles := profileStore.NewSQLiteStore(timedDB, time.Now)
	stores := web.Stores{
		ProfileStore:    profiles,
		AttendanceStore: attendanceStore.NewSQLiteStore(timedDB),
	}

	if cfg.SeedDemo && !cfg.IsProduction() {
		if _, err := orchestrators.ExecuteSeedDemo(context.Background(), orchestrators.SeedDemoDeps{
			ProfileStore: profiles,
			AdminPhones:  cfg.AdminPhones,
		}); err != nil {
			return fmt.Errorf("failed to seed demo members: %w", err)
		}
	}

	var verifier orchestrators.CodeVerifier = otpAdapter.DemoVerifier{}
	if cfg.OTPMode == config.OTPModeChallenge {
		verifier = otpAdapter.NewChallengeVerifier(otpAdapter.LogSender{Reveal: !cfg.IsProduction()}, cfg.OTPTTL)
	}
	slog.Info("otp_configured", "mode", cfg.OTPMode)

	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom, cfg.ReplyTo)
		slog.Info("email_configured", "provider", "resend")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			slog.Warn("email_configured", "provider", "noop", "warning", "FITWISE_RESEND_KEY is not set; email delivery is disabled")
		} else {
			slog.Info("email_configured", "provider", "noop")
		}
	}

	sessionKey, err := loadSecret("FITWISE_SESSION_KEY", cfg.SessionKey)
	if err != nil {
		return err
	}
	csrfKey, err := loadSecret("FITWISE_CSRF_KEY", cfg.CSRFKey)
	if err != nil {
		return err
	}

	srv := web.NewServer(web.Deps{
		Stores:             stores,
		Verifier:           verifier,
		Sessions:           middleware.NewSessionManager(sessionKey, cfg.SessionTTL, time.Now),
		EmailSender:        sender,
		ReportTo:           cfg.ReportTo,
		Collector:          collector,
		Reporter:           reporter,
		Locks:              &orchestrators.ProfileLocks{},
		AdminPhones:        cfg.AdminPhones,
		Latency:            cfg.SimulatedLatency,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		CSRFKey:            csrfKey,
		Secure:             cfg.IsProduction(),
		TrustedOrigins:     cfg.TrustedOrigins,
		SlowRequest:        time.Duration(cfg.SlowRequestMs) * time.Millisecond,
	})
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second + cfg.SimulatedLatency,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env, "schema", storage.LatestSchemaVersion())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// loadSecret returns the configured secret, or a random 32-byte key outside production.
// Config.Validate has already rejected missing secrets in production.
func loadSecret(name, value string) ([]byte, error) {
	if len(value) >= 32 {
		return []byte(value), nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", name, err)
	}
	slog.Warn("secret_generated", "name", name, "warning", "sessions won't survive restart")
	return key, nil
}
