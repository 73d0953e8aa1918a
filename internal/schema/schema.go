// =============================================================================
// Financial Statements Generator - Label Schema
// =============================================================================
//
// This package is the single source of truth for the bilingual (Arabic |
// English) layout of both the input template and the generated statements.
// It defines, per statement section:
//   - The exact sheet name the section lives on
//   - The row span the extractor scans and the template pre-fills
//   - The ordered list of canonical row labels
//   - The value-column shape (two-column, four-column equity, notes text)
//
// The extractor and the renderer both read this catalog, which keeps them in
// lock-step on row positions and label strings. Lookups are exact-string
// matches: a label that drifted between template and data file is treated as
// a missing item, never fuzzy-matched.
//
// =============================================================================

package schema

// Section identifies one statement section of the input workbook.
type Section string

const (
	SectionIncome   Section = "income"
	SectionBalance  Section = "balance"
	SectionEquity   Section = "equity"
	SectionCashFlow Section = "cash_flow"
	SectionNotes    Section = "notes"
)

// Sections lists all input sections in template order.
func Sections() []Section {
	return []Section{SectionIncome, SectionBalance, SectionEquity, SectionCashFlow, SectionNotes}
}

// =============================================================================
// SHEET NAMES
// =============================================================================

// Input sheet names, exactly as they appear in the bilingual template.
const (
	SheetInstructions = "تعليمات | Instructions"
	SheetIncome       = "الإيرادات والمصروفات | Income"
	SheetBalance      = "الأصول والخصوم | Balance"
	SheetEquity       = "حقوق الملكية | Equity"
	SheetCashFlow     = "التدفقات النقدية | Cash Flow"
	SheetNotes        = "الملاحظات | Notes"
)

// Output sheet names, in the order they appear in the generated workbook.
const (
	OutSheetOverview  = "تقرير عام | Overview"
	OutSheetIncome    = "قائمة الدخل | Income Statement"
	OutSheetBalance   = "قائمة المركز المالي | Balance Sheet"
	OutSheetEquity    = "قائمة التغيرات في حقوق الملكية | Equity"
	OutSheetCashFlow  = "قائمة التدفقات النقدية | Cash Flow"
	OutSheetNotes     = "الملاحظات | Notes"
	OutSheetCharts    = "الرسوم البيانية | Charts"
	OutSheetErrors    = "الأخطاء | Errors"
)

// SheetName returns the input sheet a section is read from.
func SheetName(section Section) string {
	switch section {
	case SectionIncome:
		return SheetIncome
	case SectionBalance:
		return SheetBalance
	case SectionEquity:
		return SheetEquity
	case SectionCashFlow:
		return SheetCashFlow
	case SectionNotes:
		return SheetNotes
	}
	return ""
}

// RequiredSheets lists the input sheets that must be present for extraction
// to proceed: all five data sheets. Only the instructions sheet is optional,
// since nothing is ever read from it.
func RequiredSheets() []string {
	return []string{SheetIncome, SheetBalance, SheetEquity, SheetCashFlow, SheetNotes}
}

// =============================================================================
// ROW RANGES
// =============================================================================

// RowRange returns the inclusive first and last template rows the extractor
// scans for a section. Rows inside the range with an empty column A are
// spare rows and contribute nothing.
func RowRange(section Section) (first, last int) {
	switch section {
	case SectionIncome:
		return 4, 22
	case SectionBalance:
		return 4, 44
	case SectionEquity:
		return 4, 10
	case SectionCashFlow:
		return 4, 30
	case SectionNotes:
		return 4, 28
	}
	return 0, 0
}

// ValueColumns returns the number of value columns a section's rows carry
// (after the label in column A). Income, balance and cash-flow rows hold a
// current- and previous-year pair; equity rows hold capital, reserves,
// retained earnings and a total.
func ValueColumns(section Section) int {
	if section == SectionEquity {
		return 4
	}
	return 2
}

// NoteRows maps each note identifier (1..7) to the template row whose
// column B holds the note text.
func NoteRows() map[int]int {
	return map[int]int{
		1: 4, 2: 8, 3: 12, 4: 16, 5: 20, 6: 24, 7: 28,
	}
}

// NoteTitles returns the static bilingual section titles for the notes
// sheet, ordered by note identifier.
func NoteTitles() map[int]string {
	return map[int]string{
		1: "معلومات عامة | General Information",
		2: "أسس الإعداد | Basis of Preparation",
		3: "السياسات المحاسبية الهامة | Significant Accounting Policies",
		4: "الأحكام والتقديرات | Judgments and Estimates",
		5: "إدارة المخاطر المالية | Financial Risk Management",
		6: "معلومات إضافية | Additional Information",
		7: "الأحداث اللاحقة | Subsequent Events",
	}
}

// =============================================================================
// CANONICAL KEYS
// =============================================================================
// Every label a derivation or validation reads is named here so no caller
// hand-writes a bilingual string.

const (
	// Income statement.
	KeyRevenue           = "الإيرادات | Revenue"
	KeyOtherIncome       = "إيرادات أخرى | Other Income"
	KeyTotalRevenue      = "إجمالي الإيرادات | Total Revenue"
	KeyCostOfRevenue     = "تكلفة الإيرادات | Cost of Revenue"
	KeyGrossProfit       = "مجمل الربح | Gross Profit"
	KeySellingExpenses   = "مصروفات البيع والتسويق | Selling and Marketing Expenses"
	KeyAdminExpenses     = "المصروفات العمومية والإدارية | General and Administrative Expenses"
	KeyDepreciation      = "الاستهلاك والإطفاء | Depreciation and Amortization"
	KeyTotalOpExpenses   = "إجمالي المصروفات التشغيلية | Total Operating Expenses"
	KeyOperatingProfit   = "الربح التشغيلي | Operating Profit"
	KeyFinanceIncome     = "إيرادات التمويل | Finance Income"
	KeyFinanceCosts      = "مصروفات التمويل | Finance Costs"
	KeyProfitBeforeTax   = "الربح قبل الزكاة والضريبة | Profit Before Zakat and Tax"
	KeyZakatAndTax       = "الزكاة والضريبة | Zakat and Tax"
	KeyNetProfit         = "صافي الربح | Net Profit"

	// Balance sheet.
	KeyCash                 = "النقد وما في حكمه | Cash and Cash Equivalents"
	KeyReceivables          = "الذمم المدينة | Accounts Receivable"
	KeyInventory            = "المخزون | Inventory"
	KeyPrepaidExpenses      = "مصروفات مدفوعة مقدماً | Prepaid Expenses"
	KeyTotalCurrentAssets   = "إجمالي الأصول المتداولة | Total Current Assets"
	KeyPPE                  = "الممتلكات والآلات والمعدات | Property, Plant and Equipment"
	KeyIntangibles          = "الأصول غير الملموسة | Intangible Assets"
	KeyLongTermInvestments  = "استثمارات طويلة الأجل | Long-term Investments"
	KeyTotalNonCurrAssets   = "إجمالي الأصول غير المتداولة | Total Non-current Assets"
	KeyTotalAssets          = "إجمالي الأصول | Total Assets"
	KeyPayables             = "الذمم الدائنة | Accounts Payable"
	KeyAccruedExpenses      = "مصروفات مستحقة | Accrued Expenses"
	KeyShortTermLoans       = "قروض قصيرة الأجل | Short-term Loans"
	KeyTotalCurrentLiab     = "إجمالي الخصوم المتداولة | Total Current Liabilities"
	KeyLongTermLoans        = "قروض طويلة الأجل | Long-term Loans"
	KeyEndOfService         = "مخصص مكافأة نهاية الخدمة | End of Service Benefits Provision"
	KeyTotalNonCurrLiab     = "إجمالي الخصوم غير المتداولة | Total Non-current Liabilities"
	KeyTotalLiabilities     = "إجمالي الخصوم | Total Liabilities"
	KeyShareCapital         = "رأس المال | Share Capital"
	KeyStatutoryReserve     = "الاحتياطي النظامي | Statutory Reserve"
	KeyRetainedEarnings     = "الأرباح المبقاة | Retained Earnings"
	KeyTotalEquity          = "إجمالي حقوق الملكية | Total Equity"
	KeyTotalLiabAndEquity   = "إجمالي الخصوم وحقوق الملكية | Total Liabilities and Equity"

	// Equity roll-forward rows.
	KeyEquityOpening         = "الرصيد في بداية السنة | Opening Balance"
	KeyEquityNetProfit       = "صافي ربح السنة | Net Profit for the Year"
	KeyEquityDividends       = "توزيعات الأرباح | Dividends"
	KeyEquityCapitalIncrease = "زيادة رأس المال | Capital Increase"
	KeyEquityOtherChanges    = "تغيرات أخرى | Other Changes"
	KeyEquityEnding          = "الرصيد في نهاية السنة | Ending Balance"

	// Cash flow statement.
	KeyCFNetProfitBeforeWC = "صافي الربح قبل التغيرات في رأس المال العامل | Net Profit Before Working Capital Changes"
	KeyCFReceivablesChange = "التغير في الذمم المدينة | Change in Accounts Receivable"
	KeyCFInventoryChange   = "التغير في المخزون | Change in Inventory"
	KeyCFPayablesChange    = "التغير في الذمم الدائنة | Change in Accounts Payable"
	KeyCFOperating         = "صافي النقد من الأنشطة التشغيلية | Net Cash from Operating Activities"
	KeyCFPurchasePPE       = "شراء ممتلكات ومعدات | Purchase of Property and Equipment"
	KeyCFSaleInvestments   = "بيع استثمارات | Proceeds from Sale of Investments"
	KeyCFInvesting         = "صافي النقد من الأنشطة الاستثمارية | Net Cash from Investing Activities"
	KeyCFBorrowings        = "متحصلات من قروض | Proceeds from Borrowings"
	KeyCFRepayments        = "سداد قروض | Repayment of Borrowings"
	KeyCFDividendsPaid     = "توزيعات أرباح مدفوعة | Dividends Paid"
	KeyCFFinancing         = "صافي النقد من الأنشطة التمويلية | Net Cash from Financing Activities"
	KeyCFNetChange         = "صافي التغير في النقد | Net Change in Cash"
	KeyCFOpeningCash       = "النقد وما في حكمه في بداية السنة | Cash and cash equivalents at beginning of year"
	KeyCFEndingCash        = "النقد وما في حكمه في نهاية السنة | Cash and cash equivalents at end of year"
)

// Labels returns the ordered canonical row labels for a section. These are
// the labels the template pre-fills in column A; the equity and notes
// sections have their own fixed shapes.
func Labels(section Section) []string {
	switch section {
	case SectionIncome:
		return []string{
			KeyRevenue, KeyOtherIncome, KeyTotalRevenue,
			KeyCostOfRevenue, KeyGrossProfit,
			KeySellingExpenses, KeyAdminExpenses, KeyDepreciation, KeyTotalOpExpenses,
			KeyOperatingProfit, KeyFinanceIncome, KeyFinanceCosts,
			KeyProfitBeforeTax, KeyZakatAndTax, KeyNetProfit,
		}
	case SectionBalance:
		return []string{
			KeyCash, KeyReceivables, KeyInventory, KeyPrepaidExpenses, KeyTotalCurrentAssets,
			KeyPPE, KeyIntangibles, KeyLongTermInvestments, KeyTotalNonCurrAssets,
			KeyTotalAssets,
			KeyPayables, KeyAccruedExpenses, KeyShortTermLoans, KeyTotalCurrentLiab,
			KeyLongTermLoans, KeyEndOfService, KeyTotalNonCurrLiab,
			KeyTotalLiabilities,
			KeyShareCapital, KeyStatutoryReserve, KeyRetainedEarnings, KeyTotalEquity,
			KeyTotalLiabAndEquity,
		}
	case SectionEquity:
		return []string{
			KeyEquityOpening, KeyEquityNetProfit, KeyEquityDividends,
			KeyEquityCapitalIncrease, KeyEquityOtherChanges, KeyEquityEnding,
		}
	case SectionCashFlow:
		return []string{
			KeyCFNetProfitBeforeWC, KeyCFReceivablesChange, KeyCFInventoryChange,
			KeyCFPayablesChange, KeyCFOperating,
			KeyCFPurchasePPE, KeyCFSaleInvestments, KeyCFInvesting,
			KeyCFBorrowings, KeyCFRepayments, KeyCFDividendsPaid, KeyCFFinancing,
			KeyCFNetChange, KeyCFOpeningCash, KeyCFEndingCash,
		}
	}
	return nil
}
