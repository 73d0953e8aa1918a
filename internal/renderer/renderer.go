// =============================================================================
// Financial Statements Generator - Renderer
// =============================================================================
//
// This module lays out the output workbook from a validated dataset and its
// derived report. The layout is deterministic: fixed sheet order, fixed
// header rows, fixed column widths, and style presets applied through the
// styleSet registered once per file.
//
// SHEETS, IN ORDER:
//   Overview, Income Statement, Balance Sheet (+ balance check row),
//   Equity (+ roll-forward check row), Cash Flow (+ roll-forward check row),
//   Notes, Charts, Errors.
//
// HIGHLIGHTING RULES (applied independently):
//   - Values substituted for missing/invalid source cells: yellow fill
//   - Computed change cells: green when positive, red when negative
//   - Subtotal/total rows (label contains a total/net keyword): bold on blue
//
// The renderer never fails on missing data: absent line items were already
// zeroed upstream, and style application errors are swallowed. The only
// error paths are workbook-level failures from the spreadsheet library.
//
// =============================================================================

package renderer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/muhasib/financial-statements/internal/derive"
	"github.com/muhasib/financial-statements/internal/schema"
	"github.com/muhasib/financial-statements/internal/types"
	"github.com/muhasib/financial-statements/internal/validator"
)

// Shared bilingual column headers.
const (
	headItem     = "البند | Item"
	headCurrent  = "السنة الحالية | Current Year"
	headPrevious = "السنة السابقة | Previous Year"
	headChange   = "التغيير | Change"
	headPercent  = "التغيير٪ | Change%"
)

// missKey identifies one substituted value cell.
type missKey struct {
	section schema.Section
	item    string
	field   string
}

// renderer carries the open output file and per-file state through the
// sheet builders.
type renderer struct {
	f       *excelize.File
	s       *styleSet
	missing map[missKey]bool
}

// Render builds the output workbook and returns its bytes. Validation
// issues are rendered on the Errors sheet alongside extraction diagnostics.
func Render(ds *types.FinancialDataset, rep *derive.Report, issues []validator.Issue) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, eris.Wrap(err, "renderer: register styles")
	}

	if err := f.SetSheetName("Sheet1", schema.OutSheetOverview); err != nil {
		return nil, eris.Wrap(err, "renderer: rename first sheet")
	}
	for _, name := range []string{
		schema.OutSheetIncome, schema.OutSheetBalance, schema.OutSheetEquity,
		schema.OutSheetCashFlow, schema.OutSheetNotes, schema.OutSheetCharts,
		schema.OutSheetErrors,
	} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, eris.Wrapf(err, "renderer: create sheet %q", name)
		}
	}

	r := &renderer{f: f, s: styles, missing: missingCells(ds, issues)}

	r.overview(ds, rep)
	r.statement(schema.OutSheetIncome, "قائمة الدخل | Income Statement", schema.SectionIncome, ds.Income.Items(), nil)
	r.statement(schema.OutSheetBalance, "قائمة المركز المالي | Balance Sheet", schema.SectionBalance, ds.Balance.Items(), &rep.BalanceCheck)
	r.equity(ds, &rep.EquityCheck)
	r.statement(schema.OutSheetCashFlow, "قائمة التدفقات النقدية | Cash Flow Statement", schema.SectionCashFlow, ds.CashFlow.Items(), &rep.CashCheck)
	r.notes(ds)
	r.charts(ds)
	r.errors(ds, issues)

	idx, err := f.GetSheetIndex(schema.OutSheetOverview)
	if err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, eris.Wrap(err, "renderer: serialize workbook")
	}
	return buf.Bytes(), nil
}

// missingCells indexes every substituted numeric value so the sheet
// builders can mark the affected cells.
func missingCells(ds *types.FinancialDataset, issues []validator.Issue) map[missKey]bool {
	m := make(map[missKey]bool)
	for _, d := range ds.Diagnostics {
		m[missKey{d.Section, d.Item, d.Field}] = true
	}
	for _, i := range issues {
		// A repaired required item has both period values assumed.
		m[missKey{i.Section, i.Item, "current"}] = true
		m[missKey{i.Section, i.Item, "previous"}] = true
	}
	return m
}

// =============================================================================
// OVERVIEW
// =============================================================================

func (r *renderer) overview(ds *types.FinancialDataset, rep *derive.Report) {
	sheet := schema.OutSheetOverview
	r.setWidths(sheet, 45, 18)

	r.set(sheet, "A1", "التقرير المالي الشامل | Comprehensive Financial Report")
	apply(r.f, sheet, "A1", "A1", r.s.title)
	r.set(sheet, "A3", "المؤشرات المالية الرئيسية | Key Financial Indicators")
	apply(r.f, sheet, "A3", "A3", r.s.subtitle)

	r.headerRow(sheet, 5, headItem, headCurrent, headPrevious, headChange, headPercent)

	metricSections := []schema.Section{
		schema.SectionIncome, schema.SectionIncome,
		schema.SectionBalance, schema.SectionBalance, schema.SectionBalance,
	}
	row := 6
	for i, m := range rep.Metrics {
		r.metricRow(sheet, row, metricSections[i], m)
		row++
	}
	// The profitability margin is derived, not read from the upload, so it
	// carries no missing-cell marks of its own.
	r.metricRow(sheet, row, "", rep.Profitability)
	row += 2

	r.set(sheet, cell("A", row), "التقييم النوعي | Qualitative Assessment")
	apply(r.f, sheet, cell("A", row), cell("A", row), r.s.subtitle)
	row++

	assessments := []struct {
		label string
		value float64
		text  string
	}{
		{"نسبة السيولة | Liquidity Ratio", rep.Liquidity, rep.LiquidityAssessment},
		{"نسبة الدين إلى حقوق الملكية | Debt to Equity", rep.DebtToEquity, rep.LeverageAssessment},
	}
	for _, a := range assessments {
		r.set(sheet, cell("A", row), a.label)
		r.set(sheet, cell("B", row), a.value)
		r.set(sheet, cell("C", row), a.text)
		row++
	}
	r.set(sheet, cell("A", row), "اتجاه صافي الربح | Net Profit Trend")
	r.set(sheet, cell("C", row), rep.ProfitTrend)
}

// metricRow writes one derived-metric row with the shared highlighting
// rules. An empty section means the metric is fully computed.
func (r *renderer) metricRow(sheet string, row int, section schema.Section, m types.DerivedMetric) {
	r.set(sheet, cell("A", row), m.Label)
	r.valueCell(sheet, "B", row, m.Current, section != "" && r.missing[missKey{section, m.Label, "current"}])
	r.valueCell(sheet, "C", row, m.Previous, section != "" && r.missing[missKey{section, m.Label, "previous"}])
	r.set(sheet, cell("D", row), m.Change)
	r.percentCell(sheet, "E", row, m)
}

// =============================================================================
// STATEMENT SHEETS
// =============================================================================

// statement renders one two-column statement sheet, with an optional
// identity check row two rows below the data.
func (r *renderer) statement(sheet, title string, section schema.Section, items []types.LineItem, chk *types.BalanceCheck) {
	r.setWidths(sheet, 45, 18)

	r.set(sheet, "A1", title)
	apply(r.f, sheet, "A1", "A1", r.s.title)
	r.headerRow(sheet, 3, headItem, headCurrent, headPrevious, headChange, headPercent)

	row := 4
	for _, item := range items {
		m := derive.Metric(item)
		r.set(sheet, cell("A", row), item.Label)
		r.valueCell(sheet, "B", row, item.Current, r.missing[missKey{section, item.Label, "current"}])
		r.valueCell(sheet, "C", row, item.Previous, r.missing[missKey{section, item.Label, "previous"}])
		r.set(sheet, cell("D", row), m.Change)
		r.percentCell(sheet, "E", row, m)

		if isTotalLabel(item.Label) {
			apply(r.f, sheet, cell("A", row), cell("E", row), r.s.total)
		}
		row++
	}

	if chk != nil {
		r.checkRow(sheet, row+1, *chk)
	}
}

// equity renders the four-column roll-forward sheet.
func (r *renderer) equity(ds *types.FinancialDataset, chk *types.BalanceCheck) {
	sheet := schema.OutSheetEquity
	r.setWidths(sheet, 45, 18)

	r.set(sheet, "A1", "قائمة التغيرات في حقوق الملكية | Statement of Changes in Equity")
	apply(r.f, sheet, "A1", "A1", r.s.title)
	r.headerRow(sheet, 3, headItem,
		"رأس المال | Capital",
		"الاحتياطيات | Reserves",
		"الأرباح المبقاة | Retained Earnings",
		"الإجمالي | Total",
	)

	row := 4
	for _, item := range ds.Equity.Items() {
		r.set(sheet, cell("A", row), item.Label)
		r.valueCell(sheet, "B", row, item.Capital, r.missing[missKey{schema.SectionEquity, item.Label, "capital"}])
		r.valueCell(sheet, "C", row, item.Reserves, r.missing[missKey{schema.SectionEquity, item.Label, "reserves"}])
		r.valueCell(sheet, "D", row, item.Retained, r.missing[missKey{schema.SectionEquity, item.Label, "retained"}])
		r.valueCell(sheet, "E", row, item.Total, r.missing[missKey{schema.SectionEquity, item.Label, "total"}])

		if isTotalLabel(item.Label) {
			apply(r.f, sheet, cell("A", row), cell("E", row), r.s.total)
		}
		row++
	}

	r.checkRow(sheet, row+1, *chk)
}

// checkRow writes one balancing-identity outcome row.
func (r *renderer) checkRow(sheet string, row int, chk types.BalanceCheck) {
	r.set(sheet, cell("A", row), chk.Name)
	apply(r.f, sheet, cell("A", row), cell("A", row), r.s.label)

	var text string
	if chk.Passed {
		text = "متوازن ✓ | Balanced ✓"
	} else {
		text = fmt.Sprintf("غير متوازن ✗ | Not Balanced ✗ (فرق | Difference: %.2f)", chk.Difference)
	}
	r.set(sheet, cell("B", row), text)
	apply(r.f, sheet, cell("B", row), cell("B", row), r.s.checkStyle(chk.Passed))
}

// =============================================================================
// NOTES
// =============================================================================

func (r *renderer) notes(ds *types.FinancialDataset) {
	sheet := schema.OutSheetNotes
	r.setWidths(sheet, 45, 70)

	r.set(sheet, "A1", "الإيضاحات المتممة للقوائم المالية | Notes to the Financial Statements")
	apply(r.f, sheet, "A1", "A1", r.s.title)

	titles := schema.NoteTitles()
	row := 3
	for id := 1; id <= 7; id++ {
		r.set(sheet, cell("A", row), fmt.Sprintf("%d. %s", id, titles[id]))
		apply(r.f, sheet, cell("A", row), cell("A", row), r.s.label)

		text := ds.Notes[id]
		if text == "" {
			text = "لم يتم التزويد | Not provided"
			apply(r.f, sheet, cell("B", row+1), cell("B", row+1), r.s.missing)
		}
		r.set(sheet, cell("B", row+1), text)
		row += 3
	}
}

// =============================================================================
// ERRORS
// =============================================================================

func (r *renderer) errors(ds *types.FinancialDataset, issues []validator.Issue) {
	sheet := schema.OutSheetErrors
	r.setWidths(sheet, 35, 28)

	r.set(sheet, "A1", "الأخطاء والقيم المفترضة | Errors and Assumed Values")
	apply(r.f, sheet, "A1", "A1", r.s.title)
	r.headerRow(sheet, 3,
		"القسم | Section",
		"البند | Item",
		"الحقل | Field",
		"القيمة المفترضة | Assumed Value",
		"التفاصيل | Details",
	)

	row := 4
	for _, issue := range issues {
		r.set(sheet, cell("A", row), schema.SheetName(issue.Section))
		r.set(sheet, cell("B", row), issue.Item)
		r.set(sheet, cell("C", row), issue.Field)
		r.set(sheet, cell("D", row), issue.Assumed)
		r.set(sheet, cell("E", row), issue.Detail)
		row++
	}
	for _, d := range ds.Diagnostics {
		r.set(sheet, cell("A", row), schema.SheetName(d.Section))
		r.set(sheet, cell("B", row), d.Item)
		r.set(sheet, cell("C", row), d.Field)
		r.set(sheet, cell("D", row), d.Assumed)
		r.set(sheet, cell("E", row), d.Detail)
		row++
	}

	if row == 4 {
		r.set(sheet, "A4", "لا توجد أخطاء | No issues recorded")
		apply(r.f, sheet, "A4", "A4", r.s.positive)
	}
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

func (r *renderer) set(sheet, cellRef string, value interface{}) {
	// Cell writes on sheets created in this render cannot fail for data
	// reasons; treat failures as cosmetic like style application.
	_ = r.f.SetCellValue(sheet, cellRef, value)
}

// valueCell writes a numeric value, marking it when it was substituted for
// a missing or invalid source cell.
func (r *renderer) valueCell(sheet, col string, row int, v float64, substituted bool) {
	r.set(sheet, cell(col, row), v)
	if substituted {
		apply(r.f, sheet, cell(col, row), cell(col, row), r.s.missing)
	}
}

// percentCell writes a change percentage with its conditional fill, or
// "N/A" when the percentage is undefined.
func (r *renderer) percentCell(sheet, col string, row int, m types.DerivedMetric) {
	if !m.PercentDefined {
		r.set(sheet, cell(col, row), "N/A")
		return
	}
	r.set(sheet, cell(col, row), fmt.Sprintf("%.2f%%", m.ChangePercent))
	if style := r.s.changeStyle(m.ChangePercent); style != 0 {
		apply(r.f, sheet, cell(col, row), cell(col, row), style)
	}
}

// headerRow writes a styled header row starting at column A.
func (r *renderer) headerRow(sheet string, row int, headers ...string) {
	for i, h := range headers {
		ref, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			continue
		}
		r.set(sheet, ref, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), row)
	apply(r.f, sheet, cell("A", row), last, r.s.header)
}

// setWidths fixes the label column and the value columns of one sheet.
func (r *renderer) setWidths(sheet string, labelWidth, valueWidth float64) {
	_ = r.f.SetColWidth(sheet, "A", "A", labelWidth)
	_ = r.f.SetColWidth(sheet, "B", "E", valueWidth)
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// isTotalLabel reports whether a row is a subtotal/total row by label
// keyword, in either language.
func isTotalLabel(label string) bool {
	lower := strings.ToLower(label)
	return strings.Contains(label, "إجمالي") ||
		strings.Contains(label, "صافي") ||
		strings.Contains(lower, "total") ||
		strings.Contains(lower, "net ")
}
