package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// TransferStatus is the outcome of a serving session
type TransferStatus string

const (
	StatusDone    TransferStatus = "DONE"
	StatusAborted TransferStatus = "ABORTED"
)

// TransferRecord summarizes one serving session
type TransferRecord struct {
	ID            string
	FileName      string
	ClientAddr    string
	FileSize      int64
	BytesSent     int64
	Status        TransferStatus
	FailureReason string
	StartedAt     time.Time
	FinishedAt    time.Time
}

// HistoryRepository persists finished sessions
type HistoryRepository interface {
	RecordTransfer(ctx context.Context, rec *TransferRecord) error
	ListTransfers(ctx context.Context, limit int) ([]*TransferRecord, error)
	Close() error
}

// SQLiteHistory implements HistoryRepository using SQLite
type SQLiteHistory struct {
	db *sql.DB
}

// NewSQLiteHistory opens (or creates) the history database at dbPath
func NewSQLiteHistory(dbPath string) (*SQLiteHistory, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	h := &SQLiteHistory{db: db}
	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return h, nil
}

// Close closes the database connection
func (h *SQLiteHistory) Close() error {
	return h.db.Close()
}

func (h *SQLiteHistory) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transfers (
		id TEXT PRIMARY KEY,
		file_name TEXT NOT NULL,
		client_addr TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		bytes_sent INTEGER NOT NULL,
		status TEXT NOT NULL,
		failure_reason TEXT,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transfers_started_at ON transfers(started_at);
	`

	_, err := h.db.Exec(schema)
	return err
}

// RecordTransfer stores one finished session
func (h *SQLiteHistory) RecordTransfer(ctx context.Context, rec *TransferRecord) error {
	query := `
		INSERT INTO transfers (id, file_name, client_addr, file_size, bytes_sent, status, failure_reason, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var reason interface{}
	if rec.FailureReason != "" {
		reason = rec.FailureReason
	}

	_, err := h.db.ExecContext(ctx, query,
		rec.ID,
		rec.FileName,
		rec.ClientAddr,
		rec.FileSize,
		rec.BytesSent,
		rec.Status,
		reason,
		rec.StartedAt.UnixNano(),
		rec.FinishedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to record transfer: %w", err)
	}
	return nil
}

// ListTransfers returns up to limit records, newest first. A limit <= 0
// returns everything.
func (h *SQLiteHistory) ListTransfers(ctx context.Context, limit int) ([]*TransferRecord, error) {
	query := `
		SELECT id, file_name, client_addr, file_size, bytes_sent, status, failure_reason, started_at, finished_at
		FROM transfers
		ORDER BY started_at DESC
		LIMIT ?
	`
	if limit <= 0 {
		limit = -1
	}

	rows, err := h.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	var recs []*TransferRecord
	for rows.Next() {
		var rec TransferRecord
		var reason sql.NullString
		var startedAt, finishedAt int64

		err := rows.Scan(
			&rec.ID,
			&rec.FileName,
			&rec.ClientAddr,
			&rec.FileSize,
			&rec.BytesSent,
			&rec.Status,
			&reason,
			&startedAt,
			&finishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}

		rec.FailureReason = reason.String
		rec.StartedAt = time.Unix(0, startedAt)
		rec.FinishedAt = time.Unix(0, finishedAt)
		recs = append(recs, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}

	return recs, nil
}
