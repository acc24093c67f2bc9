package statcheck

import (
	"gostatcheck/domain/record"
	"gostatcheck/domain/verdict"
)

// DefaultSignificanceLevel is the conventional alpha.
const DefaultSignificanceLevel = 0.05

// ClassifyReported reads significance off the reported value. "p = .05"
// and "p < .05" count as significant at .05; "p > x" is significant only
// when x is below alpha.
func ClassifyReported(op record.Operator, reported ReportedValue, alpha float64) verdict.Significance {
	if reported.Kind != ReportedNumeric {
		return verdict.SignificanceIndeterminate
	}
	var significant bool
	switch op {
	case record.OpEqual, record.OpLess:
		significant = reported.Value <= alpha
	case record.OpGreater:
		significant = reported.Value < alpha
	default:
		return verdict.SignificanceIndeterminate
	}
	if significant {
		return verdict.SignificanceSignificant
	}
	return verdict.SignificanceNotSignificant
}

// ClassifyRecalculated is indeterminate whenever alpha falls inside the range.
func ClassifyRecalculated(rng verdict.PValueRange, alpha float64) verdict.Significance {
	switch {
	case !rng.Valid:
		return verdict.SignificanceIndeterminate
	case rng.Upper < alpha:
		return verdict.SignificanceSignificant
	case rng.Lower > alpha:
		return verdict.SignificanceNotSignificant
	default:
		return verdict.SignificanceIndeterminate
	}
}

// GrossInconsistency is true when both readings are resolved and disagree.
func GrossInconsistency(reported, recalculated verdict.Significance) bool {
	return reported.Resolved() && recalculated.Resolved() && reported != recalculated
}
