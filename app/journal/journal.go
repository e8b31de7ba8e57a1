package journal

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

var _ Recorder = (*Journal)(nil)

// Journal is the sqlite-backed processing record. The mail provider's
// processed label is the primary dedupe mechanism; the journal is the
// local authority that survives label failures and feeds /stats.
type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database and applies
// pending migrations.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Seen reports whether a message id has already been journaled.
func (j *Journal) Seen(messageID string) (bool, error) {
	var id int64
	err := j.db.QueryRow(`SELECT id FROM entries WHERE message_id = ? LIMIT 1`, messageID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check journal: %w", err)
	}
	return true, nil
}

// Record journals a dispatched message. Recording the same message twice
// keeps the latest outcome.
func (j *Journal) Record(entry Entry) error {
	_, err := j.db.Exec(`
		INSERT INTO entries (message_id, intent, outcome, detail, processed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (message_id) DO UPDATE SET
			intent = excluded.intent,
			outcome = excluded.outcome,
			detail = excluded.detail,
			processed_at = excluded.processed_at
	`, entry.MessageID, entry.Intent, entry.Outcome, entry.Detail, entry.ProcessedAt)
	if err != nil {
		return fmt.Errorf("failed to record journal entry: %w", err)
	}
	return nil
}

// OutcomeCounts aggregates journaled entries by outcome.
func (j *Journal) OutcomeCounts() (map[string]int, error) {
	rows, err := j.db.Query(`SELECT outcome, COUNT(*) FROM entries GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate journal: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var count int
		if err := rows.Scan(&outcome, &count); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		counts[outcome] = count
	}
	return counts, rows.Err()
}
