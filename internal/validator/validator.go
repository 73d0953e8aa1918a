// =============================================================================
// Financial Statements Generator - Validator
// =============================================================================
//
// This module checks the extracted dataset for the aggregate line items the
// derivation engine depends on, and repairs what it can so rendering never
// crashes on absent data.
//
// REQUIRED KEYS:
//   income:    total revenue, net profit
//   balance:   total assets, total liabilities, total equity
//   cash flow: ending cash
//
// POLICIES:
//   lenient (default) - missing required items are recorded as issues and
//     replaced with zeroed placeholders; the run continues and every issue
//     is rendered on the Errors sheet.
//   strict - any unusable required key aborts the run before rendering with
//     one consolidated error.
//
// Exactly one of these behaviors applies per run; the validator never mixes
// raising and silent repair.
//
// =============================================================================

package validator

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/muhasib/financial-statements/internal/schema"
	"github.com/muhasib/financial-statements/internal/types"
)

// Policy selects the repair behavior for unusable required keys.
type Policy string

const (
	PolicyLenient Policy = "lenient"
	PolicyStrict  Policy = "strict"
)

// Issue is one structured validation finding. Like extraction diagnostics,
// issues are emitted once as records and never re-parsed from text.
type Issue struct {
	Section schema.Section
	Item    string
	Field   string
	Detail  string
	Assumed string
}

// String renders the issue for logs and consolidated strict-mode errors.
func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s (%s): %s", i.Section, i.Item, i.Field, i.Detail)
}

// Result is the outcome of validating one dataset. The dataset inside has
// been repaired in place under the lenient policy.
type Result struct {
	Issues   []Issue
	Repaired *types.FinancialDataset
}

// requiredKeys maps each section to the aggregate labels derivation reads.
func requiredKeys() map[schema.Section][]string {
	return map[schema.Section][]string{
		schema.SectionIncome:   {schema.KeyTotalRevenue, schema.KeyNetProfit},
		schema.SectionBalance:  {schema.KeyTotalAssets, schema.KeyTotalLiabilities, schema.KeyTotalEquity},
		schema.SectionCashFlow: {schema.KeyCFEndingCash},
	}
}

// Validate checks the required aggregates, repairs the dataset under the
// lenient policy, and returns the accumulated issues. Under the strict
// policy a non-empty issue list becomes one consolidated error and no
// repaired dataset is returned.
func Validate(ds *types.FinancialDataset, policy Policy) (*Result, error) {
	result := &Result{Repaired: ds}

	for _, section := range []schema.Section{schema.SectionIncome, schema.SectionBalance, schema.SectionCashFlow} {
		stmt := ds.Section(section)
		for _, key := range requiredKeys()[section] {
			switch {
			case stmt.Len() == 0:
				result.Issues = append(result.Issues, Issue{
					Section: section,
					Item:    key,
					Field:   "section",
					Detail:  "القسم فارغ بالكامل | Section is entirely empty",
					Assumed: "0",
				})
				stmt.Add(types.LineItem{Label: key})
			case !stmt.Has(key):
				result.Issues = append(result.Issues, Issue{
					Section: section,
					Item:    key,
					Field:   "item",
					Detail:  "بند إلزامي مفقود | Required line item is missing",
					Assumed: "0",
				})
				stmt.Add(types.LineItem{Label: key})
			default:
				item := stmt.Get(key)
				if repaired, bad := repairNonFinite(item); bad {
					result.Issues = append(result.Issues, Issue{
						Section: section,
						Item:    key,
						Field:   "value",
						Detail:  "قيمة غير صالحة | Value is not a usable number",
						Assumed: "0",
					})
					stmt.Add(repaired)
				}
			}
		}
	}

	if policy == PolicyStrict && len(result.Issues) > 0 {
		return nil, eris.New(consolidate(result.Issues))
	}
	return result, nil
}

// repairNonFinite zeroes NaN or infinite values, which can reach the
// dataset through formula cells that evaluate to errors.
func repairNonFinite(item types.LineItem) (types.LineItem, bool) {
	bad := false
	if !isFinite(item.Current) {
		item.Current = 0
		bad = true
	}
	if !isFinite(item.Previous) {
		item.Previous = 0
		bad = true
	}
	return item, bad
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func consolidate(issues []Issue) string {
	var b strings.Builder
	b.WriteString("البيانات المطلوبة غير مكتملة | Required data is incomplete:\n")
	for i, issue := range issues {
		fmt.Fprintf(&b, "%d. %s\n", i+1, issue.String())
	}
	return b.String()
}
