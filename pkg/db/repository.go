package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Repository handles data access
type Repository struct {
	db *DB
}

// NewRepository creates a new Repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// WriteLogEntry represents a row in the write_log table.
type WriteLogEntry struct {
	ID        int64
	Path      string
	Kind      string
	Source    string
	CreatedAt time.Time
}

// LogWrite records a document write. Kind is "goal" or "reflection"; source
// names the surface that triggered it (api, agent, telegram, discord).
func (r *Repository) LogWrite(path, kind, source string) error {
	query := `INSERT INTO write_log (path, kind, source) VALUES (?, ?, ?)`
	_, err := r.db.Exec(query, path, kind, source)
	if err != nil {
		return fmt.Errorf("failed to log write: %w", err)
	}
	return nil
}

// RecentWrites returns the most recent write log entries, newest first.
func (r *Repository) RecentWrites(limit int) ([]WriteLogEntry, error) {
	query := `SELECT id, path, kind, source, created_at FROM write_log ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query write log: %w", err)
	}
	defer rows.Close()

	var entries []WriteLogEntry
	for rows.Next() {
		var e WriteLogEntry
		if err := rows.Scan(&e.ID, &e.Path, &e.Kind, &e.Source, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan write log row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MarkReminderSent records that the reminder for a period was dispatched.
// Returns false when it was already recorded, so each period start is only
// announced once.
func (r *Repository) MarkReminderSent(periodKey string) (bool, error) {
	query := `INSERT OR IGNORE INTO reminders (period_key) VALUES (?)`
	res, err := r.db.Exec(query, periodKey)
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DriveSyncRecord tracks the Drive copy of one vault file.
type DriveSyncRecord struct {
	ID          int64
	LocalPath   string
	DriveFileID string
	ModifiedAt  time.Time
}

// GetDriveSyncByLocalPath returns the sync record for a vault-relative path,
// or nil when the file was never uploaded.
func (r *Repository) GetDriveSyncByLocalPath(localPath string) (*DriveSyncRecord, error) {
	query := `SELECT id, local_path, drive_file_id, modified_at FROM drive_sync WHERE local_path = ?`
	row := r.db.QueryRow(query, localPath)

	var rec DriveSyncRecord
	err := row.Scan(&rec.ID, &rec.LocalPath, &rec.DriveFileID, &rec.ModifiedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get drive sync record: %w", err)
	}
	return &rec, nil
}

// UpsertDriveSync records a successful upload of a vault file.
func (r *Repository) UpsertDriveSync(localPath, driveFileID string, modifiedAt time.Time) error {
	query := `INSERT INTO drive_sync (local_path, drive_file_id, modified_at)
		VALUES (?, ?, ?)
		ON CONFLICT(local_path) DO UPDATE SET drive_file_id = excluded.drive_file_id,
			modified_at = excluded.modified_at, synced_at = CURRENT_TIMESTAMP`
	_, err := r.db.Exec(query, localPath, driveFileID, modifiedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert drive sync record: %w", err)
	}
	return nil
}
