package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostatcheck/domain/core"
	"gostatcheck/domain/verdict"
	"gostatcheck/internal/migration"
	"gostatcheck/internal/statcheck"
	"gostatcheck/internal/testkit"
)

func scenarioRows() []verdict.ResultRow {
	records := append(testkit.Records(), testkit.OneTailedT30(), testkit.HuynhFeldtF(), testkit.NotSignificantT())
	var rows []verdict.ResultRow
	for _, rec := range records {
		if rec.Complete() {
			rows = append(rows, statcheck.Evaluate(rec, statcheck.DefaultSignificanceLevel))
		}
	}
	return rows
}

func TestResultRow_Mapping(t *testing.T) {
	batchID := core.NewBatchID()
	rows := scenarioRows()

	for i, row := range rows {
		stored := toResultRow(batchID, i, row)
		assert.Equal(t, batchID.String(), stored.BatchID)
		assert.Equal(t, i, stored.Position)
		assert.Equal(t, row.Range.Valid, stored.RangeLower.Valid)
		assert.NotNil(t, stored.Notes, "notes column is NOT NULL")

		back, err := stored.toDomain()
		require.NoError(t, err)
		if diff := cmp.Diff(row, back); diff != "" {
			t.Errorf("row %d changed through storage (-want +got):\n%s", i, diff)
		}
	}
}

func TestResultRow_UnknownValues(t *testing.T) {
	stored := toResultRow(core.NewBatchID(), 0, scenarioRows()[0])
	stored.Consistent = "Perhaps"
	_, err := stored.toDomain()
	assert.ErrorContains(t, err, `unknown verdict "Perhaps"`)

	stored = toResultRow(core.NewBatchID(), 0, scenarioRows()[0])
	stored.RecalculatedSignificance = "very"
	_, err = stored.toDomain()
	assert.Error(t, err)
}

// Runs against a live database when STATCHECK_TEST_DATABASE_URL is set.
func TestResultRepository_Live(t *testing.T) {
	url := os.Getenv("STATCHECK_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("Skipping live test: STATCHECK_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, migration.NewRunner().Run(ctx, db))

	repo := NewResultRepository(db)
	batchID := core.NewBatchID()
	rows := scenarioRows()

	require.NoError(t, repo.WriteRows(ctx, batchID, rows))
	require.NoError(t, repo.WriteRows(ctx, batchID, rows), "rewriting a batch replaces it")
	t.Cleanup(func() { _, _ = db.Exec(`DELETE FROM statcheck_batches WHERE id = $1`, batchID.String()) })

	got, err := repo.GetRows(ctx, batchID)
	require.NoError(t, err)
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Errorf("stored rows differ (-want +got):\n%s", diff)
	}

	batches, err := repo.ListBatches(ctx, 100)
	require.NoError(t, err)
	assert.Contains(t, batches, batchID)
}
