package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/readtrack/internal/domain/model"
	"github.com/ericfisherdev/readtrack/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ReadingStore = (*ReadingRepo)(nil)

// ReadingRepo is the SQLite implementation of the ReadingStore port interface.
type ReadingRepo struct {
	db *DB
}

// NewReadingRepo creates a new ReadingRepo backed by the given DB.
func NewReadingRepo(db *DB) *ReadingRepo {
	return &ReadingRepo{db: db}
}

// Upsert inserts or updates an entry keyed on (username, title). On conflict
// the type, total parts and current part are replaced and created_at is kept.
// The statement is atomic and runs on the single writer connection.
func (r *ReadingRepo) Upsert(ctx context.Context, username string, entry model.ReadingEntry) error {
	const query = `
		INSERT INTO readings (username, title, type, total_parts, current_part, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(username, title) DO UPDATE SET
			type = excluded.type,
			total_parts = excluded.total_parts,
			current_part = excluded.current_part,
			updated_at = excluded.updated_at`

	var totalParts sql.NullInt64
	if entry.TotalParts != nil {
		totalParts = sql.NullInt64{Int64: int64(*entry.TotalParts), Valid: true}
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		username,
		entry.Title,
		string(entry.Type),
		totalParts,
		entry.CurrentPart,
	)
	if err != nil {
		if isConstraintError(err, "FOREIGN KEY constraint") {
			return fmt.Errorf("upsert reading %q for %q: %w", entry.Title, username, driven.ErrAccountNotFound)
		}
		return fmt.Errorf("upsert reading %q for %q: %w", entry.Title, username, err)
	}

	return nil
}

// Get retrieves a single entry. Returns nil, nil if it does not exist.
func (r *ReadingRepo) Get(ctx context.Context, username, title string) (*model.ReadingEntry, error) {
	const query = `
		SELECT title, type, total_parts, current_part, created_at, updated_at
		FROM readings
		WHERE username = ? AND title = ?`

	entry, err := scanReading(r.db.Reader.QueryRowContext(ctx, query, username, title))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reading %q for %q: %w", title, username, err)
	}

	return entry, nil
}

// ListByAccount returns all entries owned by username ordered by title.
// Callers re-sort for presentation.
func (r *ReadingRepo) ListByAccount(ctx context.Context, username string) ([]model.ReadingEntry, error) {
	const query = `
		SELECT title, type, total_parts, current_part, created_at, updated_at
		FROM readings
		WHERE username = ?
		ORDER BY title`

	rows, err := r.db.Reader.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("list readings for %q: %w", username, err)
	}
	defer rows.Close()

	entries := []model.ReadingEntry{}
	for rows.Next() {
		entry, err := scanReading(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate readings: %w", err)
	}

	return entries, nil
}

func scanReading(s scanner) (*model.ReadingEntry, error) {
	var entry model.ReadingEntry
	var readingType string
	var totalParts sql.NullInt64
	var createdAt, updatedAt string

	err := s.Scan(&entry.Title, &readingType, &totalParts, &entry.CurrentPart, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	entry.Type = model.ReadingType(readingType)
	if totalParts.Valid {
		entry.TotalParts = model.Parts(int(totalParts.Int64))
	}

	entry.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	entry.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &entry, nil
}
