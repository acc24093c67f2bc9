package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gostatcheck/domain/core"
	"gostatcheck/domain/verdict"
	"gostatcheck/internal/errors"
)

// resultRow is the statcheck_results row shape.
type resultRow struct {
	BatchID                  string          `db:"batch_id"`
	Position                 int             `db:"position"`
	Consistent               string          `db:"consistent"`
	APA                      string          `db:"apa"`
	ReportedP                string          `db:"reported_p"`
	RangeLower               sql.NullFloat64 `db:"range_lower"`
	RangeUpper               sql.NullFloat64 `db:"range_upper"`
	Notes                    pq.StringArray  `db:"notes"`
	ReportedSignificance     string          `db:"reported_significance"`
	RecalculatedSignificance string          `db:"recalculated_significance"`
	GrossInconsistency       bool            `db:"gross_inconsistency"`
}

func toResultRow(batchID core.BatchID, position int, row verdict.ResultRow) resultRow {
	r := resultRow{
		BatchID:                  batchID.String(),
		Position:                 position,
		Consistent:               row.Consistent.String(),
		APA:                      row.APA,
		ReportedP:                row.ReportedP,
		Notes:                    pq.StringArray(row.Notes),
		ReportedSignificance:     row.ReportedSignificance.String(),
		RecalculatedSignificance: row.RecalculatedSignificance.String(),
		GrossInconsistency:       row.GrossInconsistency,
	}
	if r.Notes == nil {
		r.Notes = pq.StringArray{}
	}
	if row.Range.Valid {
		r.RangeLower = sql.NullFloat64{Float64: row.Range.Lower, Valid: true}
		r.RangeUpper = sql.NullFloat64{Float64: row.Range.Upper, Valid: true}
	}
	return r
}

func (r resultRow) toDomain() (verdict.ResultRow, error) {
	consistent, ok := verdict.ParseConsistency(r.Consistent)
	if !ok {
		return verdict.ResultRow{}, fmt.Errorf("row %d: unknown verdict %q", r.Position, r.Consistent)
	}
	reported, ok := verdict.ParseSignificance(r.ReportedSignificance)
	if !ok {
		return verdict.ResultRow{}, fmt.Errorf("row %d: unknown significance %q", r.Position, r.ReportedSignificance)
	}
	recalculated, ok := verdict.ParseSignificance(r.RecalculatedSignificance)
	if !ok {
		return verdict.ResultRow{}, fmt.Errorf("row %d: unknown significance %q", r.Position, r.RecalculatedSignificance)
	}

	row := verdict.ResultRow{
		Consistent:               consistent,
		APA:                      r.APA,
		ReportedP:                r.ReportedP,
		Range:                    verdict.Uncomputable,
		ReportedSignificance:     reported,
		RecalculatedSignificance: recalculated,
		GrossInconsistency:       r.GrossInconsistency,
	}
	if len(r.Notes) > 0 {
		row.Notes = []string(r.Notes)
	}
	if r.RangeLower.Valid && r.RangeUpper.Valid {
		row.Range = verdict.NewRange(r.RangeLower.Float64, r.RangeUpper.Float64)
	}
	return row, nil
}

// ResultRepository stores checked batches in PostgreSQL. It implements
// ports.ResultSink.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new PostgreSQL result repository
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// WriteRows stores a batch and its rows in one transaction. Writing the
// same batch again replaces its rows.
func (r *ResultRepository) WriteRows(ctx context.Context, batchID core.BatchID, rows []verdict.ResultRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO statcheck_batches (id, row_count)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET row_count = EXCLUDED.row_count
	`, batchID.String(), len(rows)); err != nil {
		return errors.Wrap(err, "failed to store batch")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM statcheck_results WHERE batch_id = $1`, batchID.String()); err != nil {
		return errors.Wrap(err, "failed to clear batch rows")
	}

	for i, row := range rows {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO statcheck_results (
				batch_id, position, consistent, apa, reported_p, range_lower, range_upper,
				notes, reported_significance, recalculated_significance, gross_inconsistency
			) VALUES (
				:batch_id, :position, :consistent, :apa, :reported_p, :range_lower, :range_upper,
				:notes, :reported_significance, :recalculated_significance, :gross_inconsistency
			)
		`, toResultRow(batchID, i, row)); err != nil {
			return errors.Wrapf(err, "failed to store row %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit batch")
	}
	return nil
}

// GetRows returns the rows of a batch in their original order.
func (r *ResultRepository) GetRows(ctx context.Context, batchID core.BatchID) ([]verdict.ResultRow, error) {
	var stored []resultRow
	err := r.db.SelectContext(ctx, &stored, `
		SELECT batch_id, position, consistent, apa, reported_p, range_lower, range_upper,
		       notes, reported_significance, recalculated_significance, gross_inconsistency
		FROM statcheck_results
		WHERE batch_id = $1
		ORDER BY position
	`, batchID.String())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load batch %s", batchID)
	}

	rows := make([]verdict.ResultRow, 0, len(stored))
	for _, s := range stored {
		row, err := s.toDomain()
		if err != nil {
			return nil, errors.WithCode(errors.CodeInvalidInput, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ListBatches returns stored batch IDs, newest first.
func (r *ResultRepository) ListBatches(ctx context.Context, limit int) ([]core.BatchID, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, `
		SELECT id FROM statcheck_batches ORDER BY created_at DESC LIMIT $1
	`, limit); err != nil {
		return nil, errors.Wrap(err, "failed to list batches")
	}
	batches := make([]core.BatchID, len(ids))
	for i, id := range ids {
		batches[i] = core.BatchID(id)
	}
	return batches, nil
}
