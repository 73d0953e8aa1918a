package extractor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/muhasib/financial-statements/internal/schema"
	"github.com/muhasib/financial-statements/internal/types"
)

// writeWorkbook saves a workbook with all required sheets to a temp file,
// letting the test case fill in cells first.
func writeWorkbook(t *testing.T, fill func(f *excelize.File)) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for _, name := range schema.RequiredSheets() {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}
	if fill != nil {
		fill(f)
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// sectionDiags filters the dataset diagnostics down to one section.
func sectionDiags(ds *types.FinancialDataset, section schema.Section) []types.Diagnostic {
	var out []types.Diagnostic
	for _, d := range ds.Diagnostics {
		if d.Section == section {
			out = append(out, d)
		}
	}
	return out
}

func TestExtract_StatementValues(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		sheet := schema.SheetIncome
		require.NoError(t, f.SetCellValue(sheet, "A4", schema.KeyRevenue))
		require.NoError(t, f.SetCellValue(sheet, "B4", 100000))
		require.NoError(t, f.SetCellValue(sheet, "C4", 90000))
	})

	ds, err := Extract(path)
	require.NoError(t, err)

	item := ds.Income.Get(schema.KeyRevenue)
	assert.Equal(t, 100000.0, item.Current)
	assert.Equal(t, 90000.0, item.Previous)
	assert.Empty(t, sectionDiags(ds, schema.SectionIncome))
}

func TestExtract_EmptyCellSubstitutedWithDiagnostic(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		sheet := schema.SheetIncome
		require.NoError(t, f.SetCellValue(sheet, "A4", schema.KeyRevenue))
		require.NoError(t, f.SetCellValue(sheet, "B4", 100000))
		// C4 intentionally left empty.
	})

	ds, err := Extract(path)
	require.NoError(t, err)

	item := ds.Income.Get(schema.KeyRevenue)
	assert.Equal(t, 100000.0, item.Current)
	assert.Zero(t, item.Previous)

	diags := sectionDiags(ds, schema.SectionIncome)
	require.Len(t, diags, 1)
	assert.Equal(t, schema.KeyRevenue, diags[0].Item)
	assert.Equal(t, "previous", diags[0].Field)
	assert.Equal(t, "0", diags[0].Assumed)
}

func TestExtract_BothCellsEmptyYieldsTwoDiagnostics(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue(schema.SheetIncome, "A4", schema.KeyRevenue))
	})

	ds, err := Extract(path)
	require.NoError(t, err)

	diags := sectionDiags(ds, schema.SectionIncome)
	require.Len(t, diags, 2)
	assert.Equal(t, "current", diags[0].Field)
	assert.Equal(t, "previous", diags[1].Field)
}

func TestExtract_UnlabeledRowsSkippedSilently(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		// Values without a label in column A belong to no line item.
		require.NoError(t, f.SetCellValue(schema.SheetIncome, "B5", 12345))
		require.NoError(t, f.SetCellValue(schema.SheetIncome, "C5", 67890))
	})

	ds, err := Extract(path)
	require.NoError(t, err)

	assert.Zero(t, ds.Income.Len())
	assert.Empty(t, sectionDiags(ds, schema.SectionIncome))
}

func TestExtract_NonNumericValueSubstituted(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue(schema.SheetIncome, "A4", schema.KeyRevenue))
		require.NoError(t, f.SetCellValue(schema.SheetIncome, "B4", "abc"))
		require.NoError(t, f.SetCellValue(schema.SheetIncome, "C4", 90000))
	})

	ds, err := Extract(path)
	require.NoError(t, err)

	item := ds.Income.Get(schema.KeyRevenue)
	assert.Zero(t, item.Current)
	assert.Equal(t, 90000.0, item.Previous)

	diags := sectionDiags(ds, schema.SectionIncome)
	require.Len(t, diags, 1)
	assert.Equal(t, "current", diags[0].Field)
	assert.Contains(t, diags[0].Detail, "Not a numeric value")
}

func TestExtract_ThousandSeparatorsTolerated(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue(schema.SheetIncome, "A4", schema.KeyRevenue))
		require.NoError(t, f.SetCellValue(schema.SheetIncome, "B4", "1,250,000"))
		require.NoError(t, f.SetCellValue(schema.SheetIncome, "C4", "900,000.50"))
	})

	ds, err := Extract(path)
	require.NoError(t, err)

	item := ds.Income.Get(schema.KeyRevenue)
	assert.Equal(t, 1250000.0, item.Current)
	assert.Equal(t, 900000.50, item.Previous)
	assert.Empty(t, sectionDiags(ds, schema.SectionIncome))
}

func TestExtract_DuplicateLabelLastWriteWins(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		sheet := schema.SheetIncome
		require.NoError(t, f.SetCellValue(sheet, "A4", schema.KeyRevenue))
		require.NoError(t, f.SetCellValue(sheet, "B4", 100))
		require.NoError(t, f.SetCellValue(sheet, "C4", 200))
		require.NoError(t, f.SetCellValue(sheet, "A5", schema.KeyRevenue))
		require.NoError(t, f.SetCellValue(sheet, "B5", 300))
		require.NoError(t, f.SetCellValue(sheet, "C5", 400))
	})

	ds, err := Extract(path)
	require.NoError(t, err)

	assert.Equal(t, 1, ds.Income.Len())
	item := ds.Income.Get(schema.KeyRevenue)
	assert.Equal(t, 300.0, item.Current)
	assert.Equal(t, 400.0, item.Previous)
}

func TestExtract_EquityFourColumns(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		sheet := schema.SheetEquity
		require.NoError(t, f.SetCellValue(sheet, "A4", schema.KeyEquityOpening))
		require.NoError(t, f.SetCellValue(sheet, "B4", 200000))
		require.NoError(t, f.SetCellValue(sheet, "C4", 50000))
		require.NoError(t, f.SetCellValue(sheet, "D4", 50000))
		require.NoError(t, f.SetCellValue(sheet, "E4", 300000))
	})

	ds, err := Extract(path)
	require.NoError(t, err)

	item := ds.Equity.Get(schema.KeyEquityOpening)
	assert.Equal(t, 200000.0, item.Capital)
	assert.Equal(t, 50000.0, item.Reserves)
	assert.Equal(t, 50000.0, item.Retained)
	assert.Equal(t, 300000.0, item.Total)
	assert.Empty(t, sectionDiags(ds, schema.SectionEquity))
}

func TestExtract_MissingRequiredSheetIsFatal(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	// Equity deliberately omitted.
	for _, name := range []string{schema.SheetIncome, schema.SheetBalance, schema.SheetCashFlow} {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}
	path := filepath.Join(t.TempDir(), "partial.xlsx")
	require.NoError(t, f.SaveAs(path))

	ds, err := Extract(path)
	assert.Nil(t, ds)
	require.Error(t, err)

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Contains(t, extErr.Message, "Required sheet not found")
	assert.Contains(t, extErr.Message, schema.SheetEquity)
}

func TestExtract_UnreadableFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	ds, err := Extract(path)
	assert.Nil(t, ds)

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Contains(t, extErr.Message, "Could not open")
}

func TestExtract_MissingNotesSheetIsFatal(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	// Statement sheets only, notes omitted.
	for _, name := range []string{schema.SheetIncome, schema.SheetBalance, schema.SheetEquity, schema.SheetCashFlow} {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}
	path := filepath.Join(t.TempDir(), "no_notes.xlsx")
	require.NoError(t, f.SaveAs(path))

	ds, err := Extract(path)
	assert.Nil(t, ds)

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Contains(t, extErr.Message, schema.SheetNotes)
}

func TestExtract_EmptyNotesDiagnosed(t *testing.T) {
	path := writeWorkbook(t, nil)

	ds, err := Extract(path)
	require.NoError(t, err)

	// The notes sheet is present but unfilled: every note comes back empty,
	// each with its own diagnostic.
	require.Len(t, ds.Notes, 7)
	for id := 1; id <= 7; id++ {
		assert.Empty(t, ds.Notes[id])
	}
	assert.Len(t, sectionDiags(ds, schema.SectionNotes), 7)
}

func TestExtract_NotesTextRead(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		for id, row := range schema.NoteRows() {
			require.NoError(t, f.SetCellValue(schema.SheetNotes, cellRef("B", row), noteText(id)))
		}
	})

	ds, err := Extract(path)
	require.NoError(t, err)

	for id := 1; id <= 7; id++ {
		assert.Equal(t, noteText(id), ds.Notes[id])
	}
	assert.Empty(t, sectionDiags(ds, schema.SectionNotes))
}

func cellRef(col string, row int) string {
	name, _ := excelize.JoinCellName(col, row)
	return name
}

func noteText(id int) string {
	return map[int]string{
		1: "شركة تجارية | A trading company",
		2: "المعايير الدولية | IFRS",
		3: "التكلفة التاريخية | Historical cost",
		4: "لا توجد تقديرات جوهرية | No material estimates",
		5: "مخاطر ائتمانية محدودة | Limited credit risk",
		6: "لا يوجد | None",
		7: "لا توجد أحداث لاحقة | No subsequent events",
	}[id]
}
