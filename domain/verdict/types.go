package verdict

import (
	"fmt"
	"math"
	"strings"
)

// Consistency is the outcome of comparing a reported p-value against the
// recomputed range
type Consistency int

const (
	ConsistencyNo Consistency = iota
	ConsistencyYes
	ConsistencyCannotDetermine
)

func (c Consistency) String() string {
	switch c {
	case ConsistencyYes:
		return "Yes"
	case ConsistencyNo:
		return "No"
	case ConsistencyCannotDetermine:
		return "Cannot determine"
	default:
		return fmt.Sprintf("Consistency(%d)", int(c))
	}
}

// ParseConsistency is the inverse of String.
func ParseConsistency(s string) (Consistency, bool) {
	for _, c := range []Consistency{ConsistencyNo, ConsistencyYes, ConsistencyCannotDetermine} {
		if c.String() == s {
			return c, true
		}
	}
	return ConsistencyNo, false
}

// ConsistencyOf maps a resolved comparison onto the verdict enum.
func ConsistencyOf(consistent bool) Consistency {
	if consistent {
		return ConsistencyYes
	}
	return ConsistencyNo
}

// Significance classifies a p-value (or range) against a threshold
type Significance int

const (
	SignificanceIndeterminate Significance = iota
	SignificanceSignificant
	SignificanceNotSignificant
)

func (s Significance) String() string {
	switch s {
	case SignificanceSignificant:
		return "significant"
	case SignificanceNotSignificant:
		return "not significant"
	case SignificanceIndeterminate:
		return "indeterminate"
	default:
		return fmt.Sprintf("Significance(%d)", int(s))
	}
}

// ParseSignificance is the inverse of String.
func ParseSignificance(s string) (Significance, bool) {
	for _, sig := range []Significance{SignificanceIndeterminate, SignificanceSignificant, SignificanceNotSignificant} {
		if sig.String() == s {
			return sig, true
		}
	}
	return SignificanceIndeterminate, false
}

// Resolved reports whether the classification is not indeterminate.
func (s Significance) Resolved() bool {
	return s == SignificanceSignificant || s == SignificanceNotSignificant
}

// PValueRange is the recomputed p-value interval. The zero value is the
// uncomputable sentinel.
type PValueRange struct {
	Lower float64
	Upper float64
	Valid bool
}

// NewRange orders the two probabilities into (lower, upper).
func NewRange(a, b float64) PValueRange {
	return PValueRange{Lower: math.Min(a, b), Upper: math.Max(a, b), Valid: true}
}

// Uncomputable is the sentinel range.
var Uncomputable = PValueRange{}

func (r PValueRange) String() string {
	if !r.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.5f to %.5f", r.Lower, r.Upper)
}

// Contains reports whether x lies in the closed interval.
func (r PValueRange) Contains(x float64) bool {
	return r.Valid && r.Lower <= x && x <= r.Upper
}

// ResultRow is the evaluated outcome for one record
type ResultRow struct {
	Consistent               Consistency
	APA                      string
	ReportedP                string
	Range                    PValueRange
	Notes                    []string
	ReportedSignificance     Significance
	RecalculatedSignificance Significance
	GrossInconsistency       bool
}

// NotesString joins the notes for tabular display.
func (r ResultRow) NotesString() string {
	if len(r.Notes) == 0 {
		return "-"
	}
	return strings.Join(r.Notes, " ")
}

// Columns are the display headers, in order.
var Columns = []string{"Consistent", "APA Reporting", "Reported P-value", "Valid P-value Range", "Notes"}

// Cells renders the row in Columns order.
func (r ResultRow) Cells() []string {
	return []string{r.Consistent.String(), r.APA, r.ReportedP, r.Range.String(), r.NotesString()}
}
