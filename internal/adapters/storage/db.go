package storage

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// migration is one forward-only schema step.
type migration struct {
	version     int
	description string
	stmts       []string
}

// migrations are applied in order; never edit a released step, append a new one.
var migrations = []migration{
	{
		version:     1,
		description: "profile and attendance",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS profile (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				phone TEXT NOT NULL,
				phone_key TEXT NOT NULL UNIQUE,
				role TEXT NOT NULL,
				height REAL NOT NULL DEFAULT 0,
				weight REAL NOT NULL DEFAULT 0,
				created_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS attendance (
				profile_id TEXT NOT NULL,
				date TEXT NOT NULL,
				checked_in_at TEXT,
				PRIMARY KEY (profile_id, date),
				FOREIGN KEY (profile_id) REFERENCES profile(id) ON DELETE CASCADE
			)`,
		},
	},
	{
		version:     2,
		description: "attendance date index for admin reports",
		stmts: []string{
			`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date)`,
		},
	},
}

// LatestSchemaVersion is the version MigrateDB brings a database to.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the applied schema version, 0 for an empty database.
// PRE: db is a valid database connection
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'`).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect schema: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var v sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(v.Int64), nil
}

// MigrateDB applies all pending migrations, each in its own transaction.
// PRE: db is a valid database connection
// POST: Schema is at LatestSchemaVersion; existing rows are untouched
// INVARIANT: running it twice is a no-op
func MigrateDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := apply(db, m); err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.description, err)
		}
		slog.Info("schema_migrated", "version", m.version, "description", m.description)
	}
	return nil
}

func apply(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range m.stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`INSERT INTO schema_version (version, description) VALUES (?, ?)`, m.version, m.description); err != nil {
		return err
	}
	return tx.Commit()
}

// OpenSQLite opens path with the pragmas the stores rely on.
// PRE: path is a file path or ":memory:"
// POST: Returns a pinged connection pool
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return db, nil
}
