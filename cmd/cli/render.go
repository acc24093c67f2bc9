package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"gostatcheck/app"
	"gostatcheck/domain/verdict"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#101F38"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	notesStyle   = cellStyle.Width(48)

	verdictColors = map[string]lipgloss.Color{
		verdict.ConsistencyYes.String():             lipgloss.Color("#8BC34A"),
		verdict.ConsistencyNo.String():              lipgloss.Color("#E53935"),
		verdict.ConsistencyCannotDetermine.String(): lipgloss.Color("#FFB300"),
	}
)

const notesColumn = 4

func renderTable(rows []verdict.ResultRow) string {
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = row.Cells()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(verdict.Columns...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == notesColumn:
				return notesStyle
			case col == 0 && row >= 0 && row < len(cells):
				if color, ok := verdictColors[cells[row][0]]; ok {
					return cellStyle.Foreground(color)
				}
			}
			return cellStyle
		})
	return t.String()
}

func renderSummary(s app.Summary) string {
	line := fmt.Sprintf("%d checked: %d consistent, %d inconsistent, %d cannot be determined",
		s.Total, s.Consistent, s.Inconsistent, s.CannotDetermine)
	if s.GrossInconsistencies > 0 {
		line += fmt.Sprintf(", %d gross", s.GrossInconsistencies)
	}
	if dropped := s.Dropped.Duplicates + s.Dropped.Incomplete; dropped > 0 {
		line += fmt.Sprintf(" (%d duplicate and %d incomplete records skipped)", s.Dropped.Duplicates, s.Dropped.Incomplete)
	}
	return line
}
