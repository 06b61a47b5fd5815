package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
)

// runStateStore implements driven.RunStateStore.
type runStateStore struct {
	store *Store
}

var _ driven.RunStateStore = (*runStateStore)(nil)

// StartRun records the beginning of a run.
func (s *runStateStore) StartRun(ctx context.Context, run domain.RunState) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO runs (id, strategy, started_at) VALUES (?, ?, ?)
	`, run.ID, run.Strategy, run.StartedAt)
	if err != nil {
		return fmt.Errorf("starting run %s: %w", run.ID, err)
	}
	return nil
}

// FinishRun records the completion of a run with final stats.
func (s *runStateStore) FinishRun(ctx context.Context, id string, stats domain.DedupeStats) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE runs SET
			finished_at = ?,
			sources_processed = ?,
			sources_skipped = ?,
			scanned = ?,
			unique_count = ?,
			elapsed_ms = ?
		WHERE id = ?
	`, time.Now(), stats.SourcesProcessed, stats.SourcesSkipped,
		stats.Scanned, stats.Unique, stats.Elapsed.Milliseconds(), id)
	if err != nil {
		return fmt.Errorf("finishing run %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finishing run %s: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecordStage records the elapsed time of one pipeline stage.
func (s *runStateStore) RecordStage(ctx context.Context, runID string, timing domain.StageTiming) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO run_stages (run_id, stage, elapsed_ms) VALUES (?, ?, ?)
		ON CONFLICT(run_id, stage) DO UPDATE SET elapsed_ms = excluded.elapsed_ms
	`, runID, timing.Stage, timing.Elapsed.Milliseconds())
	if err != nil {
		return fmt.Errorf("recording stage %s for run %s: %w", timing.Stage, runID, err)
	}
	return nil
}

// RecordSource records the outcome of processing one source. The seq
// column preserves recording order, which is the priority order the
// engine walked the sources in.
func (s *runStateStore) RecordSource(ctx context.Context, runID string, result domain.SourceResult) error {
	var errText sql.NullString
	if result.Err != nil {
		errText = sql.NullString{String: result.Err.Error(), Valid: true}
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO run_sources (run_id, seq, slug, scan_path, scanned, added, error)
		SELECT ?, COALESCE(MAX(seq), -1) + 1, ?, ?, ?, ?, ?
		FROM run_sources WHERE run_id = ?
	`, runID, result.Slug, string(result.Path), result.Scanned, result.Added, errText, runID)
	if err != nil {
		return fmt.Errorf("recording source %s for run %s: %w", result.Slug, runID, err)
	}
	return nil
}

// Get returns a run by ID.
func (s *runStateStore) Get(ctx context.Context, id string) (*domain.RunState, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, strategy, started_at, finished_at,
			sources_processed, sources_skipped, scanned, unique_count, elapsed_ms
		FROM runs WHERE id = ?
	`, id)

	var run domain.RunState
	var finishedAt sql.NullTime
	var elapsedMs int64
	err := row.Scan(&run.ID, &run.Strategy, &run.StartedAt, &finishedAt,
		&run.Stats.SourcesProcessed, &run.Stats.SourcesSkipped,
		&run.Stats.Scanned, &run.Stats.Unique, &elapsedMs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting run %s: %w", id, err)
	}
	run.FinishedAt = nullableTime(finishedAt)
	run.Stats.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	return &run, nil
}

// SourceResults returns the recorded per-source outcomes of a run in
// recording order.
func (s *runStateStore) SourceResults(ctx context.Context, runID string) ([]domain.SourceResult, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT slug, scan_path, scanned, added, error
		FROM run_sources WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing sources for run %s: %w", runID, err)
	}
	defer rows.Close()

	var results []domain.SourceResult
	for rows.Next() {
		var r domain.SourceResult
		var path string
		var errText sql.NullString
		if err := rows.Scan(&r.Slug, &path, &r.Scanned, &r.Added, &errText); err != nil {
			return nil, fmt.Errorf("reading source result: %w", err)
		}
		r.Path = domain.ScanPath(path)
		if errText.Valid {
			r.Err = errors.New(errText.String)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating source results: %w", err)
	}
	return results, nil
}
