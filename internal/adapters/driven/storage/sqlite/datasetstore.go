package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
)

// datasetStore implements driven.DatasetStore.
type datasetStore struct {
	store *Store
}

var _ driven.DatasetStore = (*datasetStore)(nil)

// Save stores an ordered dataset for a slug, replacing any existing
// dataset. The whole replacement happens in one transaction so a
// failed save never leaves a half-written dataset behind.
func (s *datasetStore) Save(ctx context.Context, slug string, values []string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE slug = ?", slug); err != nil {
		return fmt.Errorf("clearing records for %s: %w", slug, err)
	}

	for start := 0; start < len(values); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(values) {
			end = len(values)
		}
		batch := values[start:end]

		var sb strings.Builder
		sb.WriteString("INSERT INTO records (slug, pos, value) VALUES ")
		args := make([]any, 0, len(batch)*3)
		for i, value := range batch {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("(?, ?, ?)")
			args = append(args, slug, start+i, value)
		}
		if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
			return fmt.Errorf("inserting records for %s: %w", slug, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO datasets (slug, record_count) VALUES (?, ?)
		ON CONFLICT(slug) DO UPDATE SET record_count = excluded.record_count,
			created_at = CURRENT_TIMESTAMP
	`, slug, len(values))
	if err != nil {
		return fmt.Errorf("upserting dataset %s: %w", slug, err)
	}

	return tx.Commit()
}

// Open returns the dataset for a slug.
func (s *datasetStore) Open(ctx context.Context, slug string) (driven.Dataset, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT record_count FROM datasets WHERE slug = ?", slug)
	if err := row.Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("looking up dataset %s: %w", slug, err)
	}
	return &sqlDataset{store: s.store, slug: slug, count: count}, nil
}

// Exists reports whether a dataset for the slug is present.
func (s *datasetStore) Exists(ctx context.Context, slug string) (bool, error) {
	var one int
	row := s.store.db.QueryRowContext(ctx, "SELECT 1 FROM datasets WHERE slug = ?", slug)
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("checking dataset %s: %w", slug, err)
	}
	return true, nil
}

// List returns the slugs of all stored datasets, sorted.
func (s *datasetStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT slug FROM datasets ORDER BY slug")
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("reading dataset slug: %w", err)
		}
		slugs = append(slugs, slug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating datasets: %w", err)
	}
	return slugs, nil
}

// Delete removes the dataset for a slug.
func (s *datasetStore) Delete(ctx context.Context, slug string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE slug = ?", slug); err != nil {
		return fmt.Errorf("deleting records for %s: %w", slug, err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM datasets WHERE slug = ?", slug); err != nil {
		return fmt.Errorf("deleting dataset %s: %w", slug, err)
	}
	return tx.Commit()
}

// sqlDataset is a read-only view over a source's records table rows.
// Batch scanning reads position ranges, keeping memory bounded by the
// batch size rather than the dataset size.
type sqlDataset struct {
	store *Store
	slug  string
	count int
}

var _ driven.Dataset = (*sqlDataset)(nil)

// Scan delivers the dataset in position order, batchSize values at a
// time.
func (d *sqlDataset) Scan(ctx context.Context, batchSize int, fn func(batch []string) error) error {
	if batchSize <= 0 {
		batchSize = d.count
	}
	for start := 0; start < d.count; start += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		batch, err := d.readRange(ctx, start, batchSize)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}
		if err := fn(batch); err != nil {
			return err
		}
	}
	return nil
}

// Load materialises the full dataset in position order.
func (d *sqlDataset) Load(ctx context.Context) ([]string, error) {
	return d.readRange(ctx, 0, d.count)
}

// readRange reads up to limit values starting at position start.
func (d *sqlDataset) readRange(ctx context.Context, start, limit int) ([]string, error) {
	rows, err := d.store.db.QueryContext(ctx, `
		SELECT value FROM records
		WHERE slug = ? AND pos >= ? AND pos < ?
		ORDER BY pos
	`, d.slug, start, start+limit)
	if err != nil {
		return nil, fmt.Errorf("scanning %s at %d: %w", d.slug, start, err)
	}
	defer rows.Close()

	values := make([]string, 0, limit)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("reading %s: %w", d.slug, err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", d.slug, err)
	}
	return values, nil
}
