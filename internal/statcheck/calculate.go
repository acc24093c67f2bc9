package statcheck

import (
	"gostatcheck/domain/core"
	"gostatcheck/domain/record"
	"gostatcheck/domain/verdict"
)

// Computation is the outcome of recomputing one record's p-value range.
// Err is nil or wraps core.ErrUncomputable; when set, Range is the
// uncomputable sentinel and Consistency is No.
type Computation struct {
	Range       verdict.PValueRange
	Reported    ReportedValue
	Consistency verdict.Consistency
	Err         error
}

func uncomputable(reported ReportedValue, err error) Computation {
	return Computation{Range: verdict.Uncomputable, Reported: reported, Consistency: verdict.ConsistencyNo, Err: err}
}

// Calculate recomputes the p-value range implied by the record's statistic
// and compares it against the reported value. It has no side effects.
func Calculate(rec record.TestRecord) Computation {
	reported := ParseReported(rec.ReportedPValue)

	dof, err := ResolveDegreesOfFreedom(rec)
	if err != nil {
		return uncomputable(reported, err)
	}
	if rec.TestValue == nil {
		return uncomputable(reported, core.ErrUnparseableTestValue)
	}
	lo, hi, ok := ToleranceWindow(*rec.TestValue)
	if !ok {
		return uncomputable(reported, core.ErrUnparseableTestValue)
	}

	tail := rec.EffectiveTail()
	bounds := [2]float64{lo, hi}
	var probs [2]float64
	for i, x := range bounds {
		p, err := UpperTail(rec.TestType, dof, x)
		if err != nil {
			return uncomputable(reported, err)
		}
		if probs[i], err = AdjustTail(rec.TestType, tail, p); err != nil {
			return uncomputable(reported, err)
		}
	}
	rng := NormalizeRange(probs[0], probs[1])

	switch reported.Kind {
	case ReportedNotSignificant:
		return Computation{Range: rng, Reported: reported, Consistency: verdict.ConsistencyCannotDetermine}
	case ReportedInvalid:
		return uncomputable(reported, core.ErrUnparseableReportedValue)
	}

	return Computation{
		Range:       rng,
		Reported:    reported,
		Consistency: Compare(rng, rec.Operator, reported),
	}
}
