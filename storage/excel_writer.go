package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"vrm-crawler/models"
)

// defaultSheet is the placeholder sheet excelize creates in a fresh
// workbook. It is dropped once a state sheet exists.
const defaultSheet = "Sheet1"

// ExcelWriter appends property records to a date-stamped workbook with one
// sheet per state. Opening the same day's report twice resumes it: new
// records land below the rows a previous session wrote. Safe for
// concurrent use; sheet creation and row appends run under one lock.
//
// The caller must ensure the output directory exists. All I/O failures are
// returned as-is and are fatal to the run.
type ExcelWriter struct {
	mu      sync.Mutex
	file    *excelize.File
	path    string
	nextRow map[string]int // sheet name -> next 1-based row to write
}

// ReportPath resolves the workbook path for the given day.
func ReportPath(dir string, day time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("vrm_listings_%s.xlsx", day.Format("2006-01-02")))
}

// NewExcelWriter opens today's report in dir, loading it when it already
// exists so new records append to prior progress within the same day.
func NewExcelWriter(dir string) (*ExcelWriter, error) {
	path := ReportPath(dir, time.Now())

	var f *excelize.File
	if _, err := os.Stat(path); err == nil {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("excel: open %q: %w", path, err)
		}
	} else {
		f = excelize.NewFile()
	}

	w := &ExcelWriter{file: f, path: path, nextRow: make(map[string]int)}
	for _, sheet := range f.GetSheetList() {
		if sheet == defaultSheet {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("excel: read sheet %q: %w", sheet, err)
		}
		w.nextRow[sheet] = len(rows) + 1
	}
	return w, nil
}

// Path returns the resolved workbook path.
func (w *ExcelWriter) Path() string {
	return w.path
}

// Write appends the record to its state's sheet. The first record for a
// state creates the sheet and fixes its header row; the header of an
// existing sheet is never rewritten.
func (w *ExcelWriter) Write(rec *models.PropertyRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	sheet := rec.State
	row, ok := w.nextRow[sheet]
	if !ok {
		if _, err := w.file.NewSheet(sheet); err != nil {
			return fmt.Errorf("excel: create sheet %q: %w", sheet, err)
		}
		header := make([]any, len(models.HeaderFields))
		for i, h := range models.HeaderFields {
			header[i] = h
		}
		if err := w.file.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("excel: write header of %q: %w", sheet, err)
		}
		row = 2
	}

	values := rec.Values()
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("excel: row %d of %q: %w", row, sheet, err)
	}
	if err := w.file.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("excel: append row to %q: %w", sheet, err)
	}

	w.nextRow[sheet] = row + 1
	return nil
}

// Sheets returns the state sheets currently in the workbook.
func (w *ExcelWriter) Sheets() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var sheets []string
	for _, sheet := range w.file.GetSheetList() {
		if sheet != defaultSheet {
			sheets = append(sheets, sheet)
		}
	}
	return sheets
}

// Close persists the workbook to its resolved path, overwriting any prior
// version for the same day. The placeholder sheet is dropped once at least
// one state sheet exists (a workbook cannot be empty).
func (w *ExcelWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.nextRow) > 0 {
		if idx, err := w.file.GetSheetIndex(defaultSheet); err == nil && idx >= 0 {
			_ = w.file.DeleteSheet(defaultSheet)
		}
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("excel: save %q: %w", w.path, err)
	}
	return w.file.Close()
}
