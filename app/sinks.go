package app

import (
	"context"
	"reflect"

	"gostatcheck/domain/core"
	"gostatcheck/domain/verdict"
	"gostatcheck/ports"
)

// fanOut hands every batch to each sink in turn and stops at the first error.
type fanOut []ports.ResultSink

func (f fanOut) WriteRows(ctx context.Context, batchID core.BatchID, rows []verdict.ResultRow) error {
	for _, sink := range f {
		if err := sink.WriteRows(ctx, batchID, rows); err != nil {
			return err
		}
	}
	return nil
}

// Sinks combines result sinks. Nil sinks, including typed nil pointers, are
// skipped; with none left the result is nil.
func Sinks(sinks ...ports.ResultSink) ports.ResultSink {
	var live fanOut
	for _, sink := range sinks {
		if isNil(sink) {
			continue
		}
		live = append(live, sink)
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	default:
		return live
	}
}

func isNil(sink ports.ResultSink) bool {
	if sink == nil {
		return true
	}
	v := reflect.ValueOf(sink)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
