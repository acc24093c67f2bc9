package ports

import (
	"context"

	"gostatcheck/domain/core"
	"gostatcheck/domain/record"
	"gostatcheck/domain/verdict"
)

// RecordSource supplies the structured test records extracted from one
// document, in document order.
type RecordSource interface {
	ReadRecords(ctx context.Context) ([]record.TestRecord, error)
}

// ResultSink receives the result table of one checked batch.
type ResultSink interface {
	WriteRows(ctx context.Context, batchID core.BatchID, rows []verdict.ResultRow) error
}
