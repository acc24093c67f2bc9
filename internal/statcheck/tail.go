package statcheck

import (
	"math"

	"gostatcheck/domain/core"
	"gostatcheck/domain/record"
	"gostatcheck/domain/verdict"
)

// AdjustTail converts a one-tailed probability to the requested reading.
// chi2 and f are one-tailed by construction and pass through unchanged.
func AdjustTail(testType record.TestType, tail record.Tail, p float64) (float64, error) {
	if !testType.Symmetric() {
		return p, nil
	}
	switch tail {
	case record.TailTwo:
		return math.Min(2*p, 1), nil
	case record.TailOne:
		return p, nil
	default:
		return 0, core.NewInvalidTailError(string(tail))
	}
}

// NormalizeRange orders the probabilities from the two window edges. The
// lower edge does not always give the lower probability.
func NormalizeRange(a, b float64) verdict.PValueRange {
	return verdict.NewRange(a, b)
}
