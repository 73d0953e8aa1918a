// =============================================================================
// Financial Statements Generator - Derivation Engine
// =============================================================================
//
// This module computes everything the report shows that is not read directly
// from the upload: period-over-period deltas, profitability/liquidity/
// leverage ratios with their qualitative assessments, and the three
// cross-statement balancing identities.
//
// Every division is guarded: a zero denominator yields a zero ratio or an
// undefined change percentage, never a panic. Absent line items read as
// zero through the typed accessors, so the three identity checks degrade to
// a failed check with a computed difference instead of raising.
//
// =============================================================================

package derive

import (
	"math"

	"github.com/muhasib/financial-statements/internal/schema"
	"github.com/muhasib/financial-statements/internal/types"
)

// tolerance is the absolute tolerance for the balancing identities.
const tolerance = 0.01

// Bilingual names of the three identity checks.
const (
	CheckBalanceName = "توازن قائمة المركز المالي | Balance Sheet Check"
	CheckEquityName  = "ترحيل حقوق الملكية | Equity Roll-forward Check"
	CheckCashName    = "ترحيل النقد | Cash Roll-forward Check"
)

// Qualitative assessment strings. Thresholds are fixed for reproducibility.
const (
	AssessLiquidityExcellent = "ممتاز | excellent"
	AssessLiquidityGood      = "جيد | good"
	AssessLiquidityPoor      = "يحتاج إلى تحسين | needs improvement"

	AssessLeverageLow      = "مخاطر منخفضة | low risk"
	AssessLeverageModerate = "متوسط | moderate"
	AssessLeverageHigh     = "مخاطر مرتفعة | high risk"

	AssessProfitImproved = "تحسن | improved"
	AssessProfitDeclined = "تراجع | declined"
	AssessProfitStable   = "مستقر | stable"
)

// =============================================================================
// REPORT
// =============================================================================

// Report carries every derived value the renderer consumes.
type Report struct {
	// Headline period-over-period metrics, in Overview row order.
	Metrics []types.DerivedMetric

	// Profitability (net profit / total revenue, percent) for both periods
	// plus its own delta row.
	Profitability types.DerivedMetric

	// Current-period ratios with their qualitative assessments.
	Liquidity           float64
	DebtToEquity        float64
	LiquidityAssessment string
	LeverageAssessment  string
	ProfitTrend         string

	// The three balancing identities.
	BalanceCheck types.BalanceCheck
	EquityCheck  types.BalanceCheck
	CashCheck    types.BalanceCheck
}

// Build computes the full derived report for a validated dataset.
func Build(ds *types.FinancialDataset) *Report {
	revenue := ds.Income.Get(schema.KeyTotalRevenue)
	profit := ds.Income.Get(schema.KeyNetProfit)
	assets := ds.Balance.Get(schema.KeyTotalAssets)
	liabilities := ds.Balance.Get(schema.KeyTotalLiabilities)
	equity := ds.Balance.Get(schema.KeyTotalEquity)

	r := &Report{
		Metrics: []types.DerivedMetric{
			Metric(revenue),
			Metric(profit),
			Metric(assets),
			Metric(liabilities),
			Metric(equity),
		},
	}

	r.Profitability = Metric(types.LineItem{
		Label:    "هامش صافي الربح ٪ | Net Profit Margin %",
		Current:  ratio(profit.Current, revenue.Current) * 100,
		Previous: ratio(profit.Previous, revenue.Previous) * 100,
	})

	r.Liquidity = ratio(assets.Current, liabilities.Current)
	r.DebtToEquity = ratio(liabilities.Current, equity.Current)
	r.LiquidityAssessment = assessLiquidity(r.Liquidity)
	r.LeverageAssessment = assessLeverage(r.DebtToEquity)
	r.ProfitTrend = assessProfitTrend(profit.Current, profit.Previous)

	// The balance identity reports reported-side minus financing-side; the
	// two roll-forwards report computed ending minus reported ending.
	financing := liabilities.Current + equity.Current
	r.BalanceCheck = check(CheckBalanceName,
		financing, assets.Current,
		assets.Current-financing,
	)

	opening := ds.Equity.Get(schema.KeyEquityOpening)
	netProfit := ds.Equity.Get(schema.KeyEquityNetProfit)
	dividends := ds.Equity.Get(schema.KeyEquityDividends)
	capitalInc := ds.Equity.Get(schema.KeyEquityCapitalIncrease)
	other := ds.Equity.Get(schema.KeyEquityOtherChanges)
	ending := ds.Equity.Get(schema.KeyEquityEnding)
	computedEquity := opening.Total + netProfit.Total - dividends.Total + capitalInc.Total + other.Total
	r.EquityCheck = check(CheckEquityName,
		computedEquity, ending.Total,
		computedEquity-ending.Total,
	)

	openingCash := ds.CashFlow.Get(schema.KeyCFOpeningCash)
	netChange := ds.CashFlow.Get(schema.KeyCFNetChange)
	endingCash := ds.CashFlow.Get(schema.KeyCFEndingCash)
	computedCash := openingCash.Current + netChange.Current
	r.CashCheck = check(CheckCashName,
		computedCash, endingCash.Current,
		computedCash-endingCash.Current,
	)

	return r
}

// =============================================================================
// DELTAS AND RATIOS
// =============================================================================

// Delta returns the absolute change and the change percentage between two
// period values. The percentage is defined only when previous is non-zero.
func Delta(current, previous float64) (change, changePercent float64, defined bool) {
	change = current - previous
	if previous == 0 {
		return change, 0, false
	}
	return change, change / previous * 100, true
}

// Metric lifts one line item into its derived period-over-period metric.
func Metric(item types.LineItem) types.DerivedMetric {
	change, percent, defined := Delta(item.Current, item.Previous)
	return types.DerivedMetric{
		Label:          item.Label,
		Current:        item.Current,
		Previous:       item.Previous,
		Change:         change,
		ChangePercent:  percent,
		PercentDefined: defined,
	}
}

// ratio divides with a zero-denominator guard.
func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// =============================================================================
// QUALITATIVE ASSESSMENTS
// =============================================================================

func assessLiquidity(current float64) string {
	switch {
	case current >= 2:
		return AssessLiquidityExcellent
	case current >= 1:
		return AssessLiquidityGood
	default:
		return AssessLiquidityPoor
	}
}

func assessLeverage(debtToEquity float64) string {
	switch {
	case debtToEquity <= 0.5:
		return AssessLeverageLow
	case debtToEquity <= 1:
		return AssessLeverageModerate
	default:
		return AssessLeverageHigh
	}
}

func assessProfitTrend(current, previous float64) string {
	switch {
	case current > previous:
		return AssessProfitImproved
	case current < previous:
		return AssessProfitDeclined
	default:
		return AssessProfitStable
	}
}

// =============================================================================
// BALANCING IDENTITIES
// =============================================================================

func check(name string, expected, actual, difference float64) types.BalanceCheck {
	return types.BalanceCheck{
		Name:       name,
		Expected:   expected,
		Actual:     actual,
		Difference: difference,
		Passed:     math.Abs(difference) < tolerance,
	}
}
