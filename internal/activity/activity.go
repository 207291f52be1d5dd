// Package activity stores the notification history shown in the
// notifications drawer.
package activity

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/launcher/internal/config"
	"github.com/studiowebux/launcher/internal/migrations"
	"github.com/studiowebux/launcher/internal/notify"
	"github.com/studiowebux/launcher/internal/types"
	"go.uber.org/zap"
)

const timestampLayout = "2006-01-02 15:04:05"

// DefaultLimit is the number of entries listed when no limit is given
const DefaultLimit = 100

// Manager persists activity entries in SQLite
type Manager struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ notify.Notifier = (*Manager)(nil)

// NewManager opens (and migrates) the database at dbPath
func NewManager(dbPath string, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create activity directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open activity database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to activity database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db, logger: logger}, nil
}

// Notify records a notification; failures are logged
func (m *Manager) Notify(n notify.Notification) {
	entry := types.ActivityEntry{
		Level:       string(n.Level),
		Source:      n.Source,
		Title:       n.Title,
		Description: n.Description,
	}
	if !n.Time.IsZero() {
		entry.Timestamp = n.Time.Local().Format(timestampLayout)
	}
	if _, err := m.Save(entry); err != nil {
		m.logger.Warn("failed to record activity", zap.String("title", n.Title), zap.Error(err))
	}
}

// Save inserts an entry and returns its id. Missing timestamps and
// correlation ids are filled in.
func (m *Manager) Save(entry types.ActivityEntry) (int64, error) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Local().Format(timestampLayout)
	}
	if entry.CorrelationID == "" {
		entry.CorrelationID = uuid.NewString()
	}

	res, err := m.db.Exec(`
		INSERT INTO activity (timestamp, level, title, description, source, correlation_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		entry.Timestamp,
		entry.Level,
		entry.Title,
		entry.Description,
		entry.Source,
		entry.CorrelationID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save activity entry: %w", err)
	}

	return res.LastInsertId()
}

// List returns the newest entries first. Empty level or source match everything.
func (m *Manager) List(limit int, level, source string) ([]types.ActivityEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := m.db.Query(`
		SELECT id, timestamp, level, source, title, COALESCE(description, ''), correlation_id
		FROM activity
		WHERE (? = '' OR level = ?) AND (? = '' OR source = ?)
		ORDER BY id DESC
		LIMIT ?
	`, level, level, source, source, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

func (m *Manager) scanEntries(rows *sql.Rows) ([]types.ActivityEntry, error) {
	entries := []types.ActivityEntry{}

	for rows.Next() {
		var entry types.ActivityEntry
		var timestamp string

		err := rows.Scan(
			&entry.ID,
			&timestamp,
			&entry.Level,
			&entry.Source,
			&entry.Title,
			&entry.Description,
			&entry.CorrelationID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}

		// Stored as local time; fall back to RFC3339 for rows written by other tools
		parsed, err := time.ParseInLocation(timestampLayout, timestamp, time.Local)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, timestamp)
			if err != nil {
				parsed = time.Now()
			}
		}
		entry.Timestamp = parsed.Format(time.RFC3339)

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Clear removes every entry
func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM activity")
	if err != nil {
		return fmt.Errorf("failed to clear activity: %w", err)
	}
	return nil
}

// Count returns the number of stored entries from source, or all of them
func (m *Manager) Count(source string) (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM activity WHERE ? = '' OR source = ?", source, source).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get activity count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
