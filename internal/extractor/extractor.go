// =============================================================================
// Financial Statements Generator - Extractor
// =============================================================================
//
// This module reads a filled-in bilingual template workbook and maps its
// labeled rows into a typed FinancialDataset. The label schema fixes, per
// section, the sheet name, the row span to scan, and the value-column shape.
//
// EXTRACTION RULES:
//   - A row with an empty column A is a spare row: it contributes nothing,
//     not even a diagnostic.
//   - An empty or unparseable value cell on a labeled row is substituted
//     with zero (numeric sections) or "" (notes) and recorded as exactly one
//     Diagnostic per cell.
//   - Duplicate labels within a section replace the earlier value in place
//     (last write wins).
//
// A missing required sheet, or a workbook that cannot be opened at all, is
// an ExtractionError: fatal, nothing downstream runs.
//
// =============================================================================

package extractor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/muhasib/financial-statements/internal/schema"
	"github.com/muhasib/financial-statements/internal/types"
)

// =============================================================================
// ERRORS
// =============================================================================

// ExtractionError is the fatal error class of the pipeline: the workbook is
// unreadable or a required sheet is absent. The Message is the bilingual
// text surfaced to the end user; Err carries the technical detail.
type ExtractionError struct {
	Message string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func newSheetMissingError(sheet string) *ExtractionError {
	return &ExtractionError{
		Message: fmt.Sprintf("الورقة المطلوبة غير موجودة | Required sheet not found: %q", sheet),
	}
}

// =============================================================================
// EXTRACTION
// =============================================================================

// Extract opens the workbook at path and extracts a dataset from it.
func Extract(path string) (*types.FinancialDataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ExtractionError{
			Message: "تعذر فتح ملف الإكسل | Could not open the Excel workbook",
			Err:     eris.Wrap(err, "extractor: open workbook"),
		}
	}
	defer f.Close()

	return ExtractFile(f)
}

// ExtractFile extracts a dataset from an already-open workbook.
func ExtractFile(f *excelize.File) (*types.FinancialDataset, error) {
	sheets := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		sheets[name] = true
	}
	for _, required := range schema.RequiredSheets() {
		if !sheets[required] {
			return nil, newSheetMissingError(required)
		}
	}

	ds := &types.FinancialDataset{Notes: make(types.Notes)}

	for _, section := range []schema.Section{schema.SectionIncome, schema.SectionBalance, schema.SectionCashFlow} {
		extractStatement(f, section, ds)
	}
	extractEquity(f, ds)
	extractNotes(f, ds)

	return ds, nil
}

// extractStatement scans one two-column section: label in column A, current
// year in B, previous year in C.
func extractStatement(f *excelize.File, section schema.Section, ds *types.FinancialDataset) {
	sheet := schema.SheetName(section)
	first, last := schema.RowRange(section)
	stmt := ds.Section(section)

	for row := first; row <= last; row++ {
		label := cellString(f, sheet, "A", row)
		if label == "" {
			continue
		}

		current := numericCell(f, sheet, "B", row, section, label, "current", ds)
		previous := numericCell(f, sheet, "C", row, section, label, "previous", ds)

		stmt.Add(types.LineItem{Label: label, Current: current, Previous: previous})
	}
}

// extractEquity scans the four-column equity roll-forward: capital (B),
// reserves (C), retained earnings (D) and total (E).
func extractEquity(f *excelize.File, ds *types.FinancialDataset) {
	sheet := schema.SheetName(schema.SectionEquity)
	first, last := schema.RowRange(schema.SectionEquity)

	for row := first; row <= last; row++ {
		label := cellString(f, sheet, "A", row)
		if label == "" {
			continue
		}

		item := types.EquityLineItem{
			Label:    label,
			Capital:  numericCell(f, sheet, "B", row, schema.SectionEquity, label, "capital", ds),
			Reserves: numericCell(f, sheet, "C", row, schema.SectionEquity, label, "reserves", ds),
			Retained: numericCell(f, sheet, "D", row, schema.SectionEquity, label, "retained", ds),
			Total:    numericCell(f, sheet, "E", row, schema.SectionEquity, label, "total", ds),
		}
		ds.Equity.Add(item)
	}
}

// extractNotes reads the free-text note cells at their fixed rows in column
// B. An empty note cell is recorded as "" with a diagnostic.
func extractNotes(f *excelize.File, ds *types.FinancialDataset) {
	titles := schema.NoteTitles()

	for id := 1; id <= 7; id++ {
		title := titles[id]
		text := cellString(f, schema.SheetNotes, "B", schema.NoteRows()[id])

		ds.Notes[id] = text
		if text == "" {
			ds.Diagnose(types.Diagnostic{
				Section: schema.SectionNotes,
				Item:    title,
				Field:   fmt.Sprintf("note%d", id),
				Detail:  "الملاحظة غير معبأة | Note text not provided",
				Assumed: "",
			})
		}
	}
}

// =============================================================================
// CELL HELPERS
// =============================================================================

// cellString reads a cell as a trimmed string; unreadable cells read as "".
func cellString(f *excelize.File, sheet, col string, row int) string {
	v, err := f.GetCellValue(sheet, fmt.Sprintf("%s%d", col, row))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// numericCell reads a value cell, substituting zero and recording one
// diagnostic when the cell is empty or not a number.
func numericCell(f *excelize.File, sheet, col string, row int, section schema.Section, label, field string, ds *types.FinancialDataset) float64 {
	raw := cellString(f, sheet, col, row)
	if raw == "" {
		ds.Diagnose(types.Diagnostic{
			Section: section,
			Item:    label,
			Field:   field,
			Detail:  "قيمة مفقودة | Missing value",
			Assumed: "0",
		})
		return 0
	}

	// Tolerate thousand separators the way spreadsheet users type them.
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		ds.Diagnose(types.Diagnostic{
			Section: section,
			Item:    label,
			Field:   field,
			Detail:  fmt.Sprintf("قيمة غير رقمية | Not a numeric value: %q", raw),
			Assumed: "0",
		})
		return 0
	}
	return v
}
