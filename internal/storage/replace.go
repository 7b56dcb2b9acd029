package storage

import (
	"context"
	"fmt"
	"time"

	"salesmart/internal/ddl"
	"salesmart/internal/logging"
	"salesmart/internal/metrics"
	"salesmart/pkg/records"
)

// DefaultBatchSize is used when Loader.BatchSize is not set.
const DefaultBatchSize = 5000

// Loader persists whole tables with full-replace semantics: the destination
// table is dropped, recreated from the table's columns and bulk-loaded.
// Nothing spans tables; a failure leaves earlier tables in place.
type Loader struct {
	Repo      Repository
	Kind      string
	Schema    string
	BatchSize int
	// Job labels metrics.
	Job string
}

// NewLoader opens a repository for cfg and wraps it in a Loader.
func NewLoader(ctx context.Context, cfg Config, batchSize int, job string) (*Loader, error) {
	repo, err := New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Loader{Repo: repo, Kind: cfg.Kind, Schema: cfg.Schema, BatchSize: batchSize, Job: job}, nil
}

// Close releases the repository.
func (l *Loader) Close() {
	if l.Repo != nil {
		l.Repo.Close()
	}
}

// Replace drops and recreates t.Name, then writes every row. It returns the
// number of rows the backend reports as written.
func (l *Loader) Replace(ctx context.Context, t records.Table) (int64, error) {
	start := time.Now()
	if err := RecreateTable(ctx, l.Kind, l.Repo, l.Schema, t); err != nil {
		return 0, fmt.Errorf("recreate %s: %w", t.Name, err)
	}

	size := l.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	fqn := ddl.Qualify(l.Schema, t.Name)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rows := make(chan []any, size)
	go func() {
		defer close(rows)
		for _, r := range t.Rows {
			select {
			case rows <- r:
			case <-ctx.Done():
				return
			}
		}
	}()

	n, batches, err := LoadBatches(ctx, t.ColumnNames(), rows, size,
		func(ctx context.Context, columns []string, batch [][]any) (int64, error) {
			return l.Repo.CopyFrom(ctx, fqn, columns, batch)
		})
	metrics.RecordBatches(l.Job, t.Name, batches)
	if err != nil {
		return n, fmt.Errorf("load %s: %w", t.Name, err)
	}
	if n != int64(t.Len()) {
		logging.Warn().Str("table", fqn).Int64("written", n).Int("rows", t.Len()).Msg("row count mismatch after load")
	}
	logging.Info().
		Str("table", fqn).
		Int64("rows", n).
		Dur("elapsed", time.Since(start)).
		Msgf("loaded %d rows into %s", n, fqn)
	return n, nil
}
