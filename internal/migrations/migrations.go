package migrations

import (
	"database/sql"
	"fmt"
)

// Migration represents a single database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "Add activity indices",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_activity_timestamp ON activity(timestamp DESC);
			CREATE INDEX IF NOT EXISTS idx_activity_level ON activity(level);
		`,
		Down: `
			DROP INDEX IF EXISTS idx_activity_timestamp;
			DROP INDEX IF EXISTS idx_activity_level;
		`,
	},
	{
		Version: 2,
		Name:    "Add source column to activity",
		Up: `
			ALTER TABLE activity ADD COLUMN source TEXT NOT NULL DEFAULT '';
			CREATE INDEX IF NOT EXISTS idx_activity_source ON activity(source);
		`,
		Down: `
			-- SQLite does not support DROP COLUMN easily
			DROP INDEX IF EXISTS idx_activity_source;
		`,
	},
	{
		Version: 3,
		Name:    "Add correlation_id column to activity",
		Up: `
			ALTER TABLE activity ADD COLUMN correlation_id TEXT NOT NULL DEFAULT '';
		`,
		Down: `
			-- SQLite does not support DROP COLUMN easily
		`,
	},
}

// InitSchema creates the base tables. Columns added later live in AllMigrations.
func InitSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS activity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		level TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT
	);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// Run executes all pending migrations on the database
func Run(db *sql.DB) error {
	// Initialize schema first to ensure all tables exist
	if err := InitSchema(db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Create migrations tracking table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	// Apply pending migrations, each in its own transaction
	for _, migration := range AllMigrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec(migration.Up); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version,
			migration.Name,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// GetCurrentVersion returns the current database schema version
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow(`
		SELECT COALESCE(MAX(version), 0)
		FROM schema_migrations
	`).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return version, nil
}

// Latest returns the version of the newest migration
func Latest() int {
	if len(AllMigrations) == 0 {
		return 0
	}
	return AllMigrations[len(AllMigrations)-1].Version
}
