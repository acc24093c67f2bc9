package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"gostatcheck/domain/core"
	"gostatcheck/domain/record"
	"gostatcheck/domain/verdict"
	"gostatcheck/internal"
	"gostatcheck/internal/config"
	"gostatcheck/internal/statcheck"
	"gostatcheck/ports"
)

// FilterStats counts the records removed before evaluation.
type FilterStats struct {
	Duplicates int `json:"duplicates"`
	Incomplete int `json:"incomplete"`
}

// FilterRecords drops consecutive duplicates (overlapping text segments
// extract the same test twice) and then records missing a test value or a
// reported p-value. Order is preserved.
func FilterRecords(records []record.TestRecord) ([]record.TestRecord, FilterStats) {
	var stats FilterStats
	deduped := make([]record.TestRecord, 0, len(records))
	for _, rec := range records {
		if n := len(deduped); n > 0 && rec.Equal(deduped[n-1]) {
			stats.Duplicates++
			continue
		}
		deduped = append(deduped, rec)
	}

	kept := deduped[:0]
	for _, rec := range deduped {
		if !rec.Complete() {
			stats.Incomplete++
			continue
		}
		kept = append(kept, rec)
	}
	return kept, stats
}

// Report is the outcome of checking one batch of records.
type Report struct {
	BatchID core.BatchID
	Rows    []verdict.ResultRow
	Records []record.TestRecord // the evaluated records, aligned with Rows
	Summary Summary
}

// CheckService evaluates batches of extracted test records
type CheckService struct {
	alpha   float64
	workers int
	logger  *internal.Logger
}

// NewCheckService creates a check service. A nil logger discards output.
func NewCheckService(cfg config.CheckConfig, logger *internal.Logger) *CheckService {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &CheckService{
		alpha:   cfg.SignificanceLevel,
		workers: workers,
		logger:  logger,
	}
}

// Check filters records and evaluates each survivor exactly once. Rows come
// back in record order whatever the worker count. The only error is a
// cancelled context.
func (s *CheckService) Check(ctx context.Context, records []record.TestRecord) (*Report, error) {
	batchID := core.NewBatchID()
	logger := s.logger.With("batch", batchID.String())

	kept, dropped := FilterRecords(records)
	if dropped.Duplicates > 0 || dropped.Incomplete > 0 {
		logger.Debug("dropped %d duplicate and %d incomplete records", dropped.Duplicates, dropped.Incomplete)
	}

	var (
		rows []verdict.ResultRow
		err  error
	)
	if s.workers == 1 || len(kept) < 2 {
		rows, err = s.evaluateSequential(ctx, kept)
	} else {
		rows, err = s.evaluateParallel(ctx, kept)
	}
	if err != nil {
		return nil, fmt.Errorf("batch %s: %w", batchID, err)
	}

	summary := Summarize(rows)
	summary.Dropped = dropped
	logger.Info("checked %d records: %d consistent, %d inconsistent, %d undetermined, %d gross",
		summary.Total, summary.Consistent, summary.Inconsistent, summary.CannotDetermine, summary.GrossInconsistencies)

	return &Report{
		BatchID: batchID,
		Rows:    rows,
		Records: kept,
		Summary: summary,
	}, nil
}

func (s *CheckService) evaluateSequential(ctx context.Context, records []record.TestRecord) ([]verdict.ResultRow, error) {
	rows := make([]verdict.ResultRow, len(records))
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows[i] = s.evaluate(i, rec)
	}
	return rows, nil
}

// evaluateParallel writes each row into its own slot, so no locking is
// needed and order is kept.
func (s *CheckService) evaluateParallel(ctx context.Context, records []record.TestRecord) ([]verdict.ResultRow, error) {
	rows := make([]verdict.ResultRow, len(records))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)

	for i, rec := range records {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			rows[i] = s.evaluate(i, rec)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *CheckService) evaluate(i int, rec record.TestRecord) verdict.ResultRow {
	row := statcheck.Evaluate(rec, s.alpha)
	s.logger.Trace("record %d: %s %s -> %s", i, row.APA, row.ReportedP, row.Consistent)
	return row
}

// CheckSource reads one batch from src, checks it and hands the rows to sink.
func (s *CheckService) CheckSource(ctx context.Context, src ports.RecordSource, sink ports.ResultSink) (*Report, error) {
	records, err := src.ReadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	report, err := s.Check(ctx, records)
	if err != nil {
		return nil, err
	}

	if sink != nil {
		if err := sink.WriteRows(ctx, report.BatchID, report.Rows); err != nil {
			return nil, fmt.Errorf("failed to write results: %w", err)
		}
	}
	return report, nil
}
