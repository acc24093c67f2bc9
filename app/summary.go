package app

import (
	"github.com/montanaflynn/stats"

	"gostatcheck/domain/core"
	"gostatcheck/domain/verdict"
)

// Summary tallies the rows of one batch.
type Summary struct {
	Total                int         `json:"total"`
	Consistent           int         `json:"consistent"`
	Inconsistent         int         `json:"inconsistent"`
	CannotDetermine      int         `json:"cannot_determine"`
	GrossInconsistencies int         `json:"gross_inconsistencies"`
	Dropped              FilterStats `json:"dropped"`

	// Width of the recomputed p-value ranges, over rows that have one.
	MeanRangeWidth   float64 `json:"mean_range_width"`
	MedianRangeWidth float64 `json:"median_range_width"`
}

// Summarize counts verdicts and describes the recomputed range widths.
// Dropped counts are left for the caller.
func Summarize(rows []verdict.ResultRow) Summary {
	summary := Summary{Total: len(rows)}
	var widths stats.Float64Data
	for _, row := range rows {
		switch row.Consistent {
		case verdict.ConsistencyYes:
			summary.Consistent++
		case verdict.ConsistencyNo:
			summary.Inconsistent++
		default:
			summary.CannotDetermine++
		}
		if row.GrossInconsistency {
			summary.GrossInconsistencies++
		}
		if row.Range.Valid {
			widths = append(widths, row.Range.Upper-row.Range.Lower)
		}
	}

	// Both only fail on empty input, which leaves the zero value.
	if mean, err := stats.Mean(widths); err == nil {
		summary.MeanRangeWidth = mean
	}
	if median, err := stats.Median(widths); err == nil {
		summary.MedianRangeWidth = median
	}
	return summary
}

// Vote is the winner of a majority vote over repeated runs.
type Vote struct {
	Rows  []verdict.ResultRow
	Hash  core.TableHash
	Votes int // runs that produced this exact table
	Runs  int // non-empty runs taking part
}

// MostFrequent returns the result table produced most often across repeated
// runs over the same document. Tables compare by their rendered cells. Runs
// without rows do not vote; ties go to the table seen first.
func MostFrequent(runs [][]verdict.ResultRow) (Vote, bool) {
	counts := make(map[core.TableHash]int)
	var (
		order  []core.TableHash
		tables = make(map[core.TableHash][]verdict.ResultRow)
		voting int
	)
	for _, rows := range runs {
		if len(rows) == 0 {
			continue
		}
		voting++
		hash := TableHashOf(rows)
		if _, seen := counts[hash]; !seen {
			order = append(order, hash)
			tables[hash] = rows
		}
		counts[hash]++
	}
	if len(order) == 0 {
		return Vote{}, false
	}

	best := order[0]
	for _, hash := range order[1:] {
		if counts[hash] > counts[best] {
			best = hash
		}
	}
	return Vote{Rows: tables[best], Hash: best, Votes: counts[best], Runs: voting}, true
}

// TableHashOf fingerprints rows as they are displayed.
func TableHashOf(rows []verdict.ResultRow) core.TableHash {
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = row.Cells()
	}
	return core.ComputeTableHash(cells)
}
