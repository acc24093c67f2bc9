package statcheck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"gostatcheck/domain/core"
	"gostatcheck/domain/record"
	"gostatcheck/domain/verdict"
)

// Notes attached to result rows
const (
	NoteReportedNS          = "Reported as ns."
	NoteExactZero           = "A p-value is never exactly 0."
	NoteCorrelationNeedsDF  = "Correlation test requires degrees of freedom."
	NoteFTestNeedsTwoDF     = "F-test requires two DF. Only one DF provided."
	NoteGrossInconsistency  = "Gross inconsistency: reported p-value and recalculated p-value differ in significance."
	NoteMismatch            = "Recalculated p-value does not match the reported p-value."
	NoteOneTailedConsistent = "Consistent for one-tailed, inconsistent for two-tailed."
)

// HuynhFeldtNote records the epsilon used to scale the degrees of freedom.
func HuynhFeldtNote(epsilon float64) string {
	return fmt.Sprintf("Degrees of freedom were adjusted due to a Huynh-Feldt correction. Epsilon = %s.", formatNumber(epsilon))
}

// UncomputableNote turns a record-scoped error into a sentence.
func UncomputableNote(err error) string {
	msg := err.Error()
	if msg == "" {
		return ""
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// Citation renders the test the way it is conventionally reported, e.g.
// "t(25) = 2.10" or "f(1.7, 34) = 4.50" after a Huynh-Feldt correction.
func Citation(rec record.TestRecord) string {
	value := citationValue(rec.TestValue)
	if eps, ok := rec.HuynhFeldt(); ok {
		df1, _ := rec.DF1.Float64()
		df2, _ := rec.DF2.Float64()
		return fmt.Sprintf("%s(%s, %s) = %s", rec.TestType, roundedDF(eps*df1), roundedDF(eps*df2), value)
	}
	if rec.DF1 != nil {
		if rec.DF2 != nil {
			return fmt.Sprintf("%s(%s, %s) = %s", rec.TestType, rec.DF1, rec.DF2, value)
		}
		return fmt.Sprintf("%s(%s) = %s", rec.TestType, rec.DF1, value)
	}
	return fmt.Sprintf("%s = %s", rec.TestType, value)
}

// ReportedDisplay renders the reported p-value with its operator.
func ReportedDisplay(rec record.TestRecord) string {
	if rec.ReportedPValue == nil {
		return ""
	}
	if ParseReported(rec.ReportedPValue).Kind == ReportedNotSignificant {
		return record.NotSignificantText
	}
	return fmt.Sprintf("%s %s", rec.Operator, rec.ReportedPValue)
}

func citationValue(lit *record.Literal) string {
	if lit == nil {
		return ""
	}
	if v, ok := lit.Float64(); ok {
		return fmt.Sprintf("%.2f", v)
	}
	return lit.Text
}

func roundedDF(df float64) string {
	rounded, err := stats.Round(df, 2)
	if err != nil {
		return formatNumber(df)
	}
	return formatNumber(rounded)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Evaluate checks one record at significance level alpha and composes its
// result row. Rows depend only on the record and alpha.
func Evaluate(rec record.TestRecord, alpha float64) verdict.ResultRow {
	if rec.TestType == record.TypeR && rec.DF1 == nil {
		return verdict.ResultRow{
			Consistent:           verdict.ConsistencyCannotDetermine,
			APA:                  Citation(rec),
			ReportedP:            ReportedDisplay(rec),
			Range:                verdict.Uncomputable,
			Notes:                []string{NoteCorrelationNeedsDF},
			ReportedSignificance: ClassifyReported(rec.Operator, ParseReported(rec.ReportedPValue), alpha),
		}
	}

	comp := Calculate(rec)
	row := verdict.ResultRow{
		Consistent:               comp.Consistency,
		APA:                      Citation(rec),
		ReportedP:                ReportedDisplay(rec),
		Range:                    comp.Range,
		ReportedSignificance:     ClassifyReported(rec.Operator, comp.Reported, alpha),
		RecalculatedSignificance: ClassifyRecalculated(comp.Range, alpha),
	}
	row.GrossInconsistency = GrossInconsistency(row.ReportedSignificance, row.RecalculatedSignificance)

	var notes []string
	switch {
	case comp.Reported.Kind == ReportedNotSignificant:
		notes = append(notes, NoteReportedNS)
	case comp.Reported.IsExactZero():
		notes = append(notes, NoteExactZero)
		row.Consistent = verdict.ConsistencyNo
	}

	if rec.TestType == record.TypeF && rec.DF2 == nil && errors.Is(comp.Err, core.ErrMissingDegreesOfFreedom) {
		notes = append(notes, NoteFTestNeedsTwoDF)
		row.Consistent = verdict.ConsistencyCannotDetermine
	} else if row.Consistent == verdict.ConsistencyNo {
		switch {
		case comp.Err != nil:
			notes = append(notes, UncomputableNote(comp.Err))
		case row.GrossInconsistency:
			notes = append(notes, NoteGrossInconsistency)
		default:
			notes = append(notes, NoteMismatch)
		}
	}

	if oneTailedFallback(rec, row, comp) {
		notes = append(notes, NoteOneTailedConsistent)
	}
	if eps, ok := rec.HuynhFeldt(); ok {
		notes = append(notes, HuynhFeldtNote(eps))
	}

	row.Notes = notes
	return row
}

// oneTailedFallback re-reads an inconsistent two-tailed test one-tailed.
// The verdict is kept; only a note is added when the one-tailed reading fits.
func oneTailedFallback(rec record.TestRecord, row verdict.ResultRow, comp Computation) bool {
	if comp.Err != nil || row.Consistent != verdict.ConsistencyNo {
		return false
	}
	if !rec.TestType.Symmetric() || rec.EffectiveTail() != record.TailTwo {
		return false
	}
	return Calculate(rec.OneTailed()).Consistency == verdict.ConsistencyYes
}
