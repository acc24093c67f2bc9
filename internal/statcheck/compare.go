package statcheck

import (
	"strings"

	"gostatcheck/domain/record"
	"gostatcheck/domain/verdict"
)

// ReportedKind is the outcome of parsing a reported p-value
type ReportedKind int

const (
	ReportedInvalid ReportedKind = iota
	ReportedNumeric
	ReportedNotSignificant
)

// ReportedValue is a parsed reported p-value. Value is meaningful only for
// ReportedNumeric.
type ReportedValue struct {
	Kind  ReportedKind
	Value float64
	Text  string
}

// ParseReported classifies the reported literal. A nil literal is invalid.
func ParseReported(lit *record.Literal) ReportedValue {
	if lit == nil {
		return ReportedValue{Kind: ReportedInvalid}
	}
	text := strings.TrimSpace(lit.Text)
	if strings.EqualFold(text, record.NotSignificantText) {
		return ReportedValue{Kind: ReportedNotSignificant, Text: text}
	}
	v, ok := lit.Float64()
	if !ok {
		return ReportedValue{Kind: ReportedInvalid, Text: text}
	}
	return ReportedValue{Kind: ReportedNumeric, Value: v, Text: text}
}

// IsExactZero reports a numeric zero, which no real p-value can be.
func (r ReportedValue) IsExactZero() bool {
	return r.Kind == ReportedNumeric && r.Value == 0
}

// Compare checks a numeric reported value against the recomputed range
// under the operator. An exact zero is never consistent, and an unknown
// operator never matches. Callers handle "ns" and invalid values first.
func Compare(rng verdict.PValueRange, op record.Operator, reported ReportedValue) verdict.Consistency {
	if reported.Kind != ReportedNumeric || !rng.Valid || reported.IsExactZero() {
		return verdict.ConsistencyNo
	}
	switch op {
	case record.OpLess:
		return verdict.ConsistencyOf(rng.Lower < reported.Value)
	case record.OpGreater:
		return verdict.ConsistencyOf(rng.Upper > reported.Value)
	case record.OpEqual:
		lo, hi, ok := ToleranceWindow(record.Literal{Text: reported.Text})
		if !ok {
			return verdict.ConsistencyNo
		}
		return verdict.ConsistencyOf(hi >= rng.Lower && lo <= rng.Upper)
	default:
		return verdict.ConsistencyNo
	}
}
