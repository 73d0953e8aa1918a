// =============================================================================
// Financial Statements Generator - Input Template Builder
// =============================================================================
//
// This module writes the blank bilingual workbook users fill in and upload.
// It is driven by the same label schema the extractor scans, so the two can
// never drift apart: every pre-filled label sits exactly on the row the
// extractor will read it from.
//
// SHEETS: Instructions, Income, Balance, Equity, Cash Flow, Notes.
//
// =============================================================================

package template

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/muhasib/financial-statements/internal/schema"
)

// Build creates the blank input template and returns its bytes.
func Build() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, eris.Wrap(err, "template: register header style")
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, eris.Wrap(err, "template: register title style")
	}

	if err := f.SetSheetName("Sheet1", schema.SheetInstructions); err != nil {
		return nil, eris.Wrap(err, "template: rename first sheet")
	}
	for _, name := range []string{
		schema.SheetIncome, schema.SheetBalance, schema.SheetEquity,
		schema.SheetCashFlow, schema.SheetNotes,
	} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, eris.Wrapf(err, "template: create sheet %q", name)
		}
	}

	writeInstructions(f, titleStyle)

	for _, section := range []schema.Section{schema.SectionIncome, schema.SectionBalance, schema.SectionCashFlow} {
		writeStatementSheet(f, section, headerStyle, titleStyle)
	}
	writeEquitySheet(f, headerStyle, titleStyle)
	writeNotesSheet(f, titleStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, eris.Wrap(err, "template: serialize workbook")
	}
	return buf.Bytes(), nil
}

// Save writes the template to a file path.
func Save(path string) error {
	data, err := Build()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "template: write file")
	}
	return nil
}

func writeInstructions(f *excelize.File, titleStyle int) {
	sheet := schema.SheetInstructions
	_ = f.SetColWidth(sheet, "A", "A", 90)

	set(f, sheet, "A1", "تعليمات استخدام القالب | Template Instructions")
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	lines := []string{
		"مرحباً بكم في قالب القوائم المالية! | Welcome to the Financial Statements Template!",
		"",
		"1. قم بتعبئة البيانات المالية في كل ورقة من أوراق هذا الملف.",
		"1. Fill in the financial data in each sheet of this file.",
		"",
		"2. تأكد من إدخال جميع المبالغ بالأرقام فقط (بدون رموز العملة).",
		"2. Make sure to enter all amounts as numbers only (without currency symbols).",
		"",
		"3. لا تغير نصوص البنود في العمود الأول، فهي مفاتيح القراءة.",
		"3. Do not change the item labels in the first column; they are the read keys.",
		"",
		"4. بعد الانتهاء، احفظ الملف وقم بإنشاء القوائم المالية منه.",
		"4. When finished, save the file and generate the financial statements from it.",
	}
	for i, line := range lines {
		set(f, sheet, fmt.Sprintf("A%d", i+3), line)
	}
}

// writeStatementSheet lays out one two-column section: labels down column
// A, year headers over columns B and C.
func writeStatementSheet(f *excelize.File, section schema.Section, headerStyle, titleStyle int) {
	sheet := schema.SheetName(section)
	_ = f.SetColWidth(sheet, "A", "A", 45)
	_ = f.SetColWidth(sheet, "B", "C", 18)

	set(f, sheet, "A1", sheet)
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	set(f, sheet, "A3", "البند | Item")
	set(f, sheet, "B3", "السنة الحالية | Current Year")
	set(f, sheet, "C3", "السنة السابقة | Previous Year")
	_ = f.SetCellStyle(sheet, "A3", "C3", headerStyle)

	first, _ := schema.RowRange(section)
	for i, label := range schema.Labels(section) {
		set(f, sheet, fmt.Sprintf("A%d", first+i), label)
	}
}

// writeEquitySheet lays out the four-column roll-forward.
func writeEquitySheet(f *excelize.File, headerStyle, titleStyle int) {
	sheet := schema.SheetEquity
	_ = f.SetColWidth(sheet, "A", "A", 45)
	_ = f.SetColWidth(sheet, "B", "E", 18)

	set(f, sheet, "A1", sheet)
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	headers := []string{
		"البند | Item",
		"رأس المال | Capital",
		"الاحتياطيات | Reserves",
		"الأرباح المبقاة | Retained Earnings",
		"الإجمالي | Total",
	}
	for i, h := range headers {
		ref, _ := excelize.CoordinatesToCellName(i+1, 3)
		set(f, sheet, ref, h)
	}
	_ = f.SetCellStyle(sheet, "A3", "E3", headerStyle)

	first, _ := schema.RowRange(schema.SectionEquity)
	for i, label := range schema.Labels(schema.SectionEquity) {
		set(f, sheet, fmt.Sprintf("A%d", first+i), label)
	}
}

// writeNotesSheet lays out the seven note prompts with their text cells.
func writeNotesSheet(f *excelize.File, titleStyle int) {
	sheet := schema.SheetNotes
	_ = f.SetColWidth(sheet, "A", "A", 50)
	_ = f.SetColWidth(sheet, "B", "B", 70)

	set(f, sheet, "A1", "الملاحظات | Notes")
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	titles := schema.NoteTitles()
	for id, row := range schema.NoteRows() {
		set(f, sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%d. %s", id, titles[id]))
	}
}

func set(f *excelize.File, sheet, cell string, value interface{}) {
	_ = f.SetCellValue(sheet, cell, value)
}
