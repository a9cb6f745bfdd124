// Package store persists generation runs and their records in PostgreSQL so
// batches produced by independent workers can be assembled into one dataset.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sbenjam1n/talentgen/internal/batch"
	"github.com/sbenjam1n/talentgen/internal/catalog"
	"github.com/sbenjam1n/talentgen/internal/dataset"
	"github.com/sbenjam1n/talentgen/internal/record"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ErrRunNotFound is returned for unknown run IDs.
var ErrRunNotFound = errors.New("run not found")

// Run describes one generation run.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	BaseSeed    int64      `json:"base_seed"`
	BatchSize   int        `json:"batch_size"`
	Total       int        `json:"total"`
	BatchCount  int        `json:"batch_count"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// RunStatus is a run together with its progress.
type RunStatus struct {
	Run
	BatchesDone int `json:"batches_done"`
	Rows        int `json:"rows"`
}

// Done reports whether every planned batch has been saved.
func (s RunStatus) Done() bool {
	return s.BatchesDone >= s.BatchCount
}

// Store provides Postgres-backed persistence for runs and records.
type Store struct {
	pool *pgxpool.Pool
}

// New constructs a Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// CreateRun inserts a new run in the running state.
func (s *Store) CreateRun(ctx context.Context, run Run) error {
	const query = `INSERT INTO runs (id, base_seed, batch_size, total, batch_count, status)
        VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.pool.Exec(ctx, query, run.ID, run.BaseSeed, run.BatchSize, run.Total, run.BatchCount, StatusRunning)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// SaveBatch stores the records of one batch, replacing any earlier copy of
// the same batch. Saving a batch twice is harmless.
func (s *Store) SaveBatch(ctx context.Context, runID uuid.UUID, b batch.Batch, records []record.Record) (err error) {
	rows, err := copyRows(runID, b.Index, records)
	if err != nil {
		return err
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const insertBatch = `INSERT INTO batches (run_id, batch_index, seed, size)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (run_id, batch_index) DO NOTHING`
	if _, err = tx.Exec(ctx, insertBatch, runID, b.Index, b.Seed, b.Size); err != nil {
		return fmt.Errorf("insert batch %d: %w", b.Index, err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM records WHERE run_id = $1 AND batch_index = $2`, runID, b.Index); err != nil {
		return fmt.Errorf("clear batch %d: %w", b.Index, err)
	}
	if _, err = tx.CopyFrom(ctx, pgx.Identifier{"records"}, recordColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("copy batch %d: %w", b.Index, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit batch %d: %w", b.Index, err)
	}
	return nil
}

var recordColumns = []string{"run_id", "batch_index", "row_index", "recommended", "best_score", "payload"}

func copyRows(runID uuid.UUID, batchIndex int, records []record.Record) ([][]any, error) {
	rows := make([][]any, len(records))
	for i := range records {
		payload, err := json.Marshal(&records[i])
		if err != nil {
			return nil, fmt.Errorf("encode record %d/%d: %w", batchIndex, i, err)
		}
		_, best := records[i].Scores.Best()
		rows[i] = []any{runID, batchIndex, i, records[i].Recommended, best, payload}
	}
	return rows, nil
}

func decodeRecord(payload []byte) (record.Record, error) {
	var r record.Record
	if err := json.Unmarshal(payload, &r); err != nil {
		return r, fmt.Errorf("decode record: %w", err)
	}
	return r, nil
}

// CompleteRun marks the run completed once every batch has been saved. It
// reports whether the run is now complete.
func (s *Store) CompleteRun(ctx context.Context, runID uuid.UUID) (bool, error) {
	const query = `UPDATE runs SET status = $2, completed_at = now()
        WHERE id = $1 AND status = $3
          AND (SELECT count(*) FROM batches WHERE run_id = $1) >= batch_count`
	tag, err := s.pool.Exec(ctx, query, runID, StatusCompleted, StatusRunning)
	if err != nil {
		return false, fmt.Errorf("complete run: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}
	st, err := s.Status(ctx, runID)
	if err != nil {
		return false, err
	}
	return st.Status == StatusCompleted, nil
}

// FailRun marks the run failed.
func (s *Store) FailRun(ctx context.Context, runID uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `UPDATE runs SET status = $2 WHERE id = $1`, runID, StatusFailed); err != nil {
		return fmt.Errorf("fail run: %w", err)
	}
	return nil
}

// Status returns the run and how many of its batches and rows are stored.
func (s *Store) Status(ctx context.Context, runID uuid.UUID) (*RunStatus, error) {
	const query = `SELECT r.id, r.base_seed, r.batch_size, r.total, r.batch_count, r.status, r.created_at, r.completed_at,
            (SELECT count(*) FROM batches b WHERE b.run_id = r.id),
            (SELECT count(*) FROM records c WHERE c.run_id = r.id)
        FROM runs r WHERE r.id = $1`
	var st RunStatus
	err := s.pool.QueryRow(ctx, query, runID).Scan(
		&st.ID, &st.BaseSeed, &st.BatchSize, &st.Total, &st.BatchCount, &st.Status, &st.CreatedAt, &st.CompletedAt,
		&st.BatchesDone, &st.Rows,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, fmt.Errorf("query run status: %w", err)
	}
	return &st, nil
}

// LoadDataset reads every stored record of the run ordered by batch index and
// row index, which is the order a single-process run produces.
func (s *Store) LoadDataset(ctx context.Context, runID uuid.UUID, cat *catalog.Catalog) (*dataset.Dataset, error) {
	const query = `SELECT payload FROM records WHERE run_id = $1 ORDER BY batch_index, row_index`
	rows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	d := dataset.New(cat)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r, err := decodeRecord(payload)
		if err != nil {
			return nil, err
		}
		d.Append(r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return d, nil
}
