// =============================================================================
// Financial Statements Generator - Charts Sheet
// =============================================================================
//
// The charts sheet carries three chart objects, each bound to a small data
// table written onto the same sheet:
//   1. Revenue vs. operating expenses vs. net profit (column chart)
//   2. Assets / liabilities / equity composition (pie chart)
//   3. Operating / investing / financing cash flows (column chart)
//
// Binding charts to on-sheet tables keeps the workbook self-contained: the
// numbers behind every chart are visible and auditable next to it.
//
// =============================================================================

package renderer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/muhasib/financial-statements/internal/schema"
	"github.com/muhasib/financial-statements/internal/types"
)

// Fixed anchor rows for the three data tables.
const (
	chartTableProfit = 3
	chartTablePie    = 20
	chartTableCash   = 37
)

func (r *renderer) charts(ds *types.FinancialDataset) {
	sheet := schema.OutSheetCharts
	r.setWidths(sheet, 45, 18)

	r.set(sheet, "A1", "الرسوم البيانية | Charts")
	apply(r.f, sheet, "A1", "A1", r.s.title)

	r.profitChart(sheet, ds)
	r.compositionChart(sheet, ds)
	r.cashChart(sheet, ds)
}

// profitChart renders the revenue/expenses/profit comparison.
func (r *renderer) profitChart(sheet string, ds *types.FinancialDataset) {
	rows := []types.LineItem{
		ds.Income.Get(schema.KeyTotalRevenue),
		ds.Income.Get(schema.KeyTotalOpExpenses),
		ds.Income.Get(schema.KeyNetProfit),
	}
	r.twoPeriodTable(sheet, chartTableProfit, rows)

	first, last := chartTableProfit+1, chartTableProfit+len(rows)
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       sheetRef(sheet, cellAbs("B", chartTableProfit)),
				Categories: sheetRef(sheet, rangeAbs("A", first, last)),
				Values:     sheetRef(sheet, rangeAbs("B", first, last)),
			},
			{
				Name:       sheetRef(sheet, cellAbs("C", chartTableProfit)),
				Categories: sheetRef(sheet, rangeAbs("A", first, last)),
				Values:     sheetRef(sheet, rangeAbs("C", first, last)),
			},
		},
		Title:  []excelize.RichTextRun{{Text: "الإيرادات والمصروفات والربح | Revenue, Expenses and Profit"}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	_ = r.f.AddChart(sheet, cell("E", chartTableProfit), chart)
}

// compositionChart renders the current-period balance composition pie.
func (r *renderer) compositionChart(sheet string, ds *types.FinancialDataset) {
	rows := []types.LineItem{
		ds.Balance.Get(schema.KeyTotalAssets),
		ds.Balance.Get(schema.KeyTotalLiabilities),
		ds.Balance.Get(schema.KeyTotalEquity),
	}

	r.headerRow(sheet, chartTablePie, headItem, "القيمة | Value")
	row := chartTablePie + 1
	for _, item := range rows {
		r.set(sheet, cell("A", row), item.Label)
		r.set(sheet, cell("B", row), item.Current)
		row++
	}

	first, last := chartTablePie+1, chartTablePie+len(rows)
	chart := &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{
			{
				Categories: sheetRef(sheet, rangeAbs("A", first, last)),
				Values:     sheetRef(sheet, rangeAbs("B", first, last)),
			},
		},
		Title:  []excelize.RichTextRun{{Text: "الأصول والخصوم وحقوق الملكية | Assets, Liabilities and Equity"}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	_ = r.f.AddChart(sheet, cell("E", chartTablePie), chart)
}

// cashChart renders the three cash-flow activity totals.
func (r *renderer) cashChart(sheet string, ds *types.FinancialDataset) {
	rows := []types.LineItem{
		ds.CashFlow.Get(schema.KeyCFOperating),
		ds.CashFlow.Get(schema.KeyCFInvesting),
		ds.CashFlow.Get(schema.KeyCFFinancing),
	}
	r.twoPeriodTable(sheet, chartTableCash, rows)

	first, last := chartTableCash+1, chartTableCash+len(rows)
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       sheetRef(sheet, cellAbs("B", chartTableCash)),
				Categories: sheetRef(sheet, rangeAbs("A", first, last)),
				Values:     sheetRef(sheet, rangeAbs("B", first, last)),
			},
			{
				Name:       sheetRef(sheet, cellAbs("C", chartTableCash)),
				Categories: sheetRef(sheet, rangeAbs("A", first, last)),
				Values:     sheetRef(sheet, rangeAbs("C", first, last)),
			},
		},
		Title:  []excelize.RichTextRun{{Text: "التدفقات النقدية حسب النشاط | Cash Flows by Activity"}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	_ = r.f.AddChart(sheet, cell("E", chartTableCash), chart)
}

// twoPeriodTable writes one header + rows data table with current and
// previous year columns.
func (r *renderer) twoPeriodTable(sheet string, headerRow int, rows []types.LineItem) {
	r.headerRow(sheet, headerRow, headItem, headCurrent, headPrevious)
	row := headerRow + 1
	for _, item := range rows {
		r.set(sheet, cell("A", row), item.Label)
		r.set(sheet, cell("B", row), item.Current)
		r.set(sheet, cell("C", row), item.Previous)
		row++
	}
}

// sheetRef builds a formula reference to a range on a named sheet. The
// bilingual sheet names contain spaces, so the name is always quoted.
func sheetRef(sheet, ref string) string {
	return fmt.Sprintf("'%s'!%s", sheet, ref)
}

func cellAbs(col string, row int) string {
	return fmt.Sprintf("$%s$%d", col, row)
}

func rangeAbs(col string, first, last int) string {
	return fmt.Sprintf("$%s$%d:$%s$%d", col, first, col, last)
}
