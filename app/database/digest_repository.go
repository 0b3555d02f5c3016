package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DigestArchive stores every rendered digest so it can be served later.
type DigestArchive struct {
	db *DB
}

func NewDigestArchive(db *DB) *DigestArchive {
	return &DigestArchive{db: db}
}

const digestColumns = "id, title, html, rss, item_count, section_count, created_at"

// Create stores d, assigning an ID and creation time when they are unset.
func (r *DigestArchive) Create(ctx context.Context, d *Digest) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO digests (`+digestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.Title, d.HTML, d.RSS, d.ItemCount, d.SectionCount, formatTimestamp(d.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to store digest: %w", err)
	}

	return nil
}

// Get returns nil without error when no digest has the given id.
func (r *DigestArchive) Get(ctx context.Context, id string) (*Digest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+digestColumns+` FROM digests WHERE id = ?`, id)
	d, err := scanDigest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get digest: %w", err)
	}
	return d, nil
}

// Latest returns the most recently created digest, or nil when the archive is empty.
func (r *DigestArchive) Latest(ctx context.Context) (*Digest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+digestColumns+` FROM digests ORDER BY created_at DESC, rowid DESC LIMIT 1`)
	d, err := scanDigest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest digest: %w", err)
	}
	return d, nil
}

// List returns up to limit digests, newest first.
func (r *DigestArchive) List(ctx context.Context, limit int) ([]Digest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+digestColumns+`
		FROM digests
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list digests: %w", err)
	}
	defer rows.Close()

	var digests []Digest
	for rows.Next() {
		d, err := scanDigest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan digest row: %w", err)
		}
		digests = append(digests, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating digest rows: %w", err)
	}

	return digests, nil
}

func (r *DigestArchive) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM digests`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get digest count: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDigest(s scanner) (*Digest, error) {
	var d Digest
	var createdAt string
	if err := s.Scan(&d.ID, &d.Title, &d.HTML, &d.RSS, &d.ItemCount, &d.SectionCount, &createdAt); err != nil {
		return nil, err
	}

	t, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	d.CreatedAt = t

	return &d, nil
}
