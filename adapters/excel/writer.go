package excel

import (
	"context"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"

	"gostatcheck/domain/core"
	"gostatcheck/domain/verdict"
	"gostatcheck/internal/errors"
)

const batchHeader = "Batch"

// Writer collects result rows into one workbook sheet and saves it on
// Close. It implements ports.ResultSink; each WriteRows call appends a batch.
type Writer struct {
	cfg ExcelConfig

	mu      sync.Mutex
	file    *excelize.File
	nextRow int
	closed  bool
}

// NewWriter creates the workbook with its header row.
func NewWriter(cfg ExcelConfig) (*Writer, error) {
	if cfg.FilePath == "" {
		return nil, errors.InvalidInput("workbook path is required")
	}
	if cfg.SheetName == "" {
		cfg.SheetName = DefaultExcelConfig(cfg.FilePath).SheetName
	}

	f := excelize.NewFile()
	// A new file starts with Sheet1; rename it rather than leaving it empty.
	if err := f.SetSheetName(f.GetSheetName(0), cfg.SheetName); err != nil {
		_ = f.Close()
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}

	w := &Writer{cfg: cfg, file: f, nextRow: 1}
	if err := w.writeHeader(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) headers() []string {
	if w.cfg.BatchColumn {
		return append([]string{batchHeader}, verdict.Columns...)
	}
	return verdict.Columns
}

func (w *Writer) writeHeader() error {
	sheet := w.cfg.SheetName
	headers := w.headers()
	if err := w.setRow(headers); err != nil {
		return err
	}

	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := w.file.SetCellStyle(sheet, "A1", last, style); err != nil {
		return errors.Wrap(err, "failed to style header row")
	}

	if w.cfg.ColumnWidth > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(headers))
		if err := w.file.SetColWidth(sheet, "A", lastCol, w.cfg.ColumnWidth); err != nil {
			return errors.Wrap(err, "failed to size columns")
		}
	}
	return nil
}

func (w *Writer) setRow(values []string) error {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, w.nextRow)
		if err := w.file.SetCellValue(w.cfg.SheetName, cell, v); err != nil {
			return errors.Wrapf(err, "failed to write cell %s", cell)
		}
	}
	w.nextRow++
	return nil
}

// WriteRows appends the rows of one batch below whatever is already there.
func (w *Writer) WriteRows(ctx context.Context, batchID core.BatchID, rows []verdict.ResultRow) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return errors.InternalError("workbook already closed")
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		cells := row.Cells()
		if w.cfg.BatchColumn {
			cells = append([]string{batchID.String()}, cells...)
		}
		if err := w.setRow(cells); err != nil {
			return err
		}
	}
	return nil
}

// Rows returns the number of data rows written so far.
func (w *Writer) Rows() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nextRow - 2
}

// Close saves the workbook to its path.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.file.SaveAs(w.cfg.FilePath); err != nil {
		_ = w.file.Close()
		return errors.IOError(w.cfg.FilePath, err)
	}
	return w.file.Close()
}

// ReadTable reads a result sheet back as header and data rows.
func ReadTable(path, sheet string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, errors.IOError(path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, errors.Wrap(err, fmt.Sprintf("failed to read sheet %s", sheet))
	}
	if len(rows) == 0 {
		return nil, nil, errors.InvalidInput(fmt.Sprintf("sheet %s has no header row", sheet))
	}
	return rows[0], rows[1:], nil
}
