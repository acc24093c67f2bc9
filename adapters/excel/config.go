package excel

import "gostatcheck/internal/config"

// ExcelConfig holds configuration for the result workbook
type ExcelConfig struct {
	FilePath  string `json:"file_path"`
	SheetName string `json:"sheet_name"`
	// BatchColumn prefixes every row with its batch ID, for workbooks that
	// collect several batches.
	BatchColumn bool    `json:"batch_column"`
	ColumnWidth float64 `json:"column_width"`
}

// DefaultExcelConfig returns sensible defaults for result workbooks
func DefaultExcelConfig(path string) ExcelConfig {
	return ExcelConfig{
		FilePath:    path,
		SheetName:   config.DefaultSheetName,
		BatchColumn: true,
		ColumnWidth: 24,
	}
}
