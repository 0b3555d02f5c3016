package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jurbib/digest/app/digest"
)

// SeenItemRepository persists the identifiers of feed entries already sent out.
type SeenItemRepository struct {
	db *DB
}

func NewSeenItemRepository(db *DB) *SeenItemRepository {
	return &SeenItemRepository{db: db}
}

// Load returns every identifier recorded so far. An empty store yields an empty set.
func (r *SeenItemRepository) Load(ctx context.Context) (digest.SeenSet, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM seen_items`)
	if err != nil {
		return nil, fmt.Errorf("failed to load seen items: %w", err)
	}
	defer rows.Close()

	seen := digest.NewSeenSet()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan seen item: %w", err)
		}
		seen.Add(id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seen items: %w", err)
	}

	return seen, nil
}

// Save merges seen into the store in one transaction. Identifiers already
// present keep their original timestamp and nothing is ever removed.
func (r *SeenItemRepository) Save(ctx context.Context, seen digest.SeenSet) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO seen_items (id, first_seen_at) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare seen item insert: %w", err)
	}
	defer stmt.Close()

	now := formatTimestamp(time.Now())
	for id := range seen {
		if _, err := stmt.ExecContext(ctx, id, now); err != nil {
			return fmt.Errorf("failed to store seen item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seen items: %w", err)
	}

	return nil
}

func (r *SeenItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seen_items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get seen item count: %w", err)
	}
	return count, nil
}
