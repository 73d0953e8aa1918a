package renderer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/muhasib/financial-statements/internal/derive"
	"github.com/muhasib/financial-statements/internal/schema"
	"github.com/muhasib/financial-statements/internal/types"
	"github.com/muhasib/financial-statements/internal/validator"
)

// consistentDataset builds a dataset whose three balancing identities hold.
func consistentDataset() *types.FinancialDataset {
	ds := &types.FinancialDataset{Notes: make(types.Notes)}

	ds.Income.Add(types.LineItem{Label: schema.KeyTotalRevenue, Current: 100000, Previous: 90000})
	ds.Income.Add(types.LineItem{Label: schema.KeyNetProfit, Current: 20000, Previous: 18000})

	ds.Balance.Add(types.LineItem{Label: schema.KeyTotalAssets, Current: 500000, Previous: 450000})
	ds.Balance.Add(types.LineItem{Label: schema.KeyTotalLiabilities, Current: 200000, Previous: 190000})
	ds.Balance.Add(types.LineItem{Label: schema.KeyTotalEquity, Current: 300000, Previous: 260000})

	ds.Equity.Add(types.EquityLineItem{Label: schema.KeyEquityOpening, Capital: 200000, Reserves: 50000, Retained: 50000, Total: 300000})
	ds.Equity.Add(types.EquityLineItem{Label: schema.KeyEquityEnding, Capital: 200000, Reserves: 50000, Retained: 50000, Total: 300000})

	ds.CashFlow.Add(types.LineItem{Label: schema.KeyCFOpeningCash, Current: 50000, Previous: 45000})
	ds.CashFlow.Add(types.LineItem{Label: schema.KeyCFNetChange, Current: 5000, Previous: 5000})
	ds.CashFlow.Add(types.LineItem{Label: schema.KeyCFEndingCash, Current: 55000, Previous: 50000})

	for id := 1; id <= 7; id++ {
		ds.Notes[id] = "نص | Text"
	}
	return ds
}

// render runs the full pipeline tail and reopens the produced workbook.
func render(t *testing.T, ds *types.FinancialDataset, issues []validator.Issue) *excelize.File {
	t.Helper()

	rep := derive.Build(ds)
	data, err := Render(ds, rep, issues)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, sheet, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, ref)
	require.NoError(t, err)
	return v
}

func TestRender_SheetOrder(t *testing.T) {
	f := render(t, consistentDataset(), nil)

	assert.Equal(t, []string{
		schema.OutSheetOverview,
		schema.OutSheetIncome,
		schema.OutSheetBalance,
		schema.OutSheetEquity,
		schema.OutSheetCashFlow,
		schema.OutSheetNotes,
		schema.OutSheetCharts,
		schema.OutSheetErrors,
	}, f.GetSheetList())
}

func TestRender_StatementRows(t *testing.T) {
	f := render(t, consistentDataset(), nil)
	sheet := schema.OutSheetIncome

	assert.Equal(t, headItem, cellValue(t, f, sheet, "A3"))
	assert.Equal(t, schema.KeyTotalRevenue, cellValue(t, f, sheet, "A4"))
	assert.Equal(t, "100000", cellValue(t, f, sheet, "B4"))
	assert.Equal(t, "90000", cellValue(t, f, sheet, "C4"))
	assert.Equal(t, "10000", cellValue(t, f, sheet, "D4"))
	assert.Equal(t, "11.11%", cellValue(t, f, sheet, "E4"))
}

func TestRender_PercentUndefinedShowsNA(t *testing.T) {
	ds := consistentDataset()
	ds.Income.Add(types.LineItem{Label: schema.KeyOtherIncome, Current: 5000, Previous: 0})

	f := render(t, ds, nil)
	// Third income row: revenue, profit, then the new item.
	assert.Equal(t, schema.KeyOtherIncome, cellValue(t, f, schema.OutSheetIncome, "A6"))
	assert.Equal(t, "N/A", cellValue(t, f, schema.OutSheetIncome, "E6"))
}

func TestRender_BalanceCheckRowPassing(t *testing.T) {
	f := render(t, consistentDataset(), nil)

	// Three balance rows at 4..6, check two rows below the data.
	sheet := schema.OutSheetBalance
	assert.Equal(t, derive.CheckBalanceName, cellValue(t, f, sheet, "A8"))
	assert.Equal(t, "متوازن ✓ | Balanced ✓", cellValue(t, f, sheet, "B8"))
}

func TestRender_BalanceCheckRowFailing(t *testing.T) {
	ds := consistentDataset()
	ds.Balance.Add(types.LineItem{Label: schema.KeyTotalEquity, Current: 290000, Previous: 260000})

	f := render(t, ds, nil)
	text := cellValue(t, f, schema.OutSheetBalance, "B8")
	assert.Contains(t, text, "غير متوازن")
	assert.Contains(t, text, "10000.00")
}

func TestRender_EquitySheetAndCheck(t *testing.T) {
	f := render(t, consistentDataset(), nil)
	sheet := schema.OutSheetEquity

	assert.Equal(t, schema.KeyEquityOpening, cellValue(t, f, sheet, "A4"))
	assert.Equal(t, "200000", cellValue(t, f, sheet, "B4"))
	assert.Equal(t, "300000", cellValue(t, f, sheet, "E4"))

	// Two equity rows at 4..5, check two rows below the data.
	assert.Equal(t, derive.CheckEquityName, cellValue(t, f, sheet, "A7"))
	assert.Equal(t, "متوازن ✓ | Balanced ✓", cellValue(t, f, sheet, "B7"))
}

func TestRender_CashFlowCheckRow(t *testing.T) {
	f := render(t, consistentDataset(), nil)

	// Three cash-flow rows at 4..6, check two rows below the data.
	sheet := schema.OutSheetCashFlow
	assert.Equal(t, derive.CheckCashName, cellValue(t, f, sheet, "A8"))
	assert.Equal(t, "متوازن ✓ | Balanced ✓", cellValue(t, f, sheet, "B8"))
}

func TestRender_CashCheckRowFailing(t *testing.T) {
	// Ending cash reported 1000 short of opening plus net change: the check
	// row shows the shortfall as a positive difference.
	ds := consistentDataset()
	ds.CashFlow.Add(types.LineItem{Label: schema.KeyCFEndingCash, Current: 54000, Previous: 50000})

	f := render(t, ds, nil)
	text := cellValue(t, f, schema.OutSheetCashFlow, "B8")
	assert.Contains(t, text, "غير متوازن")
	assert.Contains(t, text, "Difference: 1000.00")
}

func TestRender_OverviewMetrics(t *testing.T) {
	f := render(t, consistentDataset(), nil)
	sheet := schema.OutSheetOverview

	assert.Equal(t, schema.KeyTotalRevenue, cellValue(t, f, sheet, "A6"))
	assert.Equal(t, "100000", cellValue(t, f, sheet, "B6"))
	assert.Equal(t, "11.11%", cellValue(t, f, sheet, "E6"))

	assert.Equal(t, schema.KeyNetProfit, cellValue(t, f, sheet, "A7"))
	assert.Equal(t, "11.11%", cellValue(t, f, sheet, "E7"))

	// The margin is 20% both years, so its own delta is a defined zero.
	assert.Equal(t, "هامش صافي الربح ٪ | Net Profit Margin %", cellValue(t, f, sheet, "A11"))
	assert.Equal(t, "0.00%", cellValue(t, f, sheet, "E11"))
}

func TestRender_OverviewAssessments(t *testing.T) {
	f := render(t, consistentDataset(), nil)
	sheet := schema.OutSheetOverview

	// Assets/liabilities = 2.5, liabilities/equity = 0.67.
	assert.Equal(t, derive.AssessLiquidityExcellent, cellValue(t, f, sheet, "C14"))
	assert.Equal(t, derive.AssessLeverageModerate, cellValue(t, f, sheet, "C15"))
	assert.Equal(t, derive.AssessProfitImproved, cellValue(t, f, sheet, "C16"))
}

func TestRender_NotesSheet(t *testing.T) {
	ds := consistentDataset()
	ds.Notes[2] = ""

	f := render(t, ds, nil)
	sheet := schema.OutSheetNotes

	assert.Contains(t, cellValue(t, f, sheet, "A3"), schema.NoteTitles()[1])
	assert.Equal(t, "نص | Text", cellValue(t, f, sheet, "B4"))
	// The second note block starts three rows down; its text cell carries
	// the not-provided marker.
	assert.Equal(t, "لم يتم التزويد | Not provided", cellValue(t, f, sheet, "B7"))
}

func TestRender_ErrorsSheetEmpty(t *testing.T) {
	f := render(t, consistentDataset(), nil)
	assert.Equal(t, "لا توجد أخطاء | No issues recorded", cellValue(t, f, schema.OutSheetErrors, "A4"))
}

func TestRender_ErrorsSheetListsIssuesThenDiagnostics(t *testing.T) {
	ds := consistentDataset()
	ds.Diagnose(types.Diagnostic{
		Section: schema.SectionIncome,
		Item:    schema.KeyRevenue,
		Field:   "previous",
		Detail:  "قيمة مفقودة | Missing value",
		Assumed: "0",
	})
	issues := []validator.Issue{{
		Section: schema.SectionBalance,
		Item:    schema.KeyTotalAssets,
		Field:   "item",
		Detail:  "بند إلزامي مفقود | Required line item is missing",
		Assumed: "0",
	}}

	f := render(t, ds, issues)
	sheet := schema.OutSheetErrors

	// Validation issues first, extraction diagnostics after.
	assert.Equal(t, schema.SheetBalance, cellValue(t, f, sheet, "A4"))
	assert.Equal(t, schema.KeyTotalAssets, cellValue(t, f, sheet, "B4"))
	assert.Equal(t, schema.SheetIncome, cellValue(t, f, sheet, "A5"))
	assert.Equal(t, "previous", cellValue(t, f, sheet, "C5"))
	assert.Equal(t, "0", cellValue(t, f, sheet, "D5"))
}

func TestRender_ChartsSheetTables(t *testing.T) {
	f := render(t, consistentDataset(), nil)
	sheet := schema.OutSheetCharts

	// Profit table anchored at row 3.
	assert.Equal(t, schema.KeyTotalRevenue, cellValue(t, f, sheet, "A4"))
	assert.Equal(t, "100000", cellValue(t, f, sheet, "B4"))

	// Composition table anchored at row 20.
	assert.Equal(t, schema.KeyTotalAssets, cellValue(t, f, sheet, "A21"))
	assert.Equal(t, "500000", cellValue(t, f, sheet, "B21"))

	// Cash table anchored at row 37.
	assert.Equal(t, schema.KeyCFOperating, cellValue(t, f, sheet, "A38"))
}

func TestRender_Deterministic(t *testing.T) {
	ds1 := consistentDataset()
	ds2 := consistentDataset()
	rep1 := derive.Build(ds1)
	rep2 := derive.Build(ds2)

	out1, err := Render(ds1, rep1, nil)
	require.NoError(t, err)
	out2, err := Render(ds2, rep2, nil)
	require.NoError(t, err)

	f1, err := excelize.OpenReader(bytes.NewReader(out1))
	require.NoError(t, err)
	defer f1.Close()
	f2, err := excelize.OpenReader(bytes.NewReader(out2))
	require.NoError(t, err)
	defer f2.Close()

	require.Equal(t, f1.GetSheetList(), f2.GetSheetList())
	for _, sheet := range f1.GetSheetList() {
		rows1, err := f1.GetRows(sheet)
		require.NoError(t, err)
		rows2, err := f2.GetRows(sheet)
		require.NoError(t, err)
		assert.Equal(t, rows1, rows2, "sheet %q differs between runs", sheet)
	}
}
