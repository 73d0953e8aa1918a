// =============================================================================
// Financial Statements Generator - Shared Types
// =============================================================================
//
// This package contains the data model shared across the pipeline stages to
// avoid import cycles. Types defined here are used by:
//   - extractor (produces a FinancialDataset)
//   - validator (annotates and repairs it)
//   - derive (augments it with computed metrics and identity checks)
//   - renderer (consumes it)
//
// A dataset is owned exclusively by one pipeline run: it is built during
// extraction and validation, read once by derivation and rendering, and then
// discarded. Nothing here is safe or intended for cross-run sharing.
//
// =============================================================================

package types

import "github.com/muhasib/financial-statements/internal/schema"

// =============================================================================
// LINE ITEMS
// =============================================================================

// LineItem is one labeled row of income, balance or cash-flow data. Both
// period values are always numeric; absent cells are extracted as zero with
// a recorded diagnostic.
type LineItem struct {
	Label    string
	Current  float64
	Previous float64
}

// EquityLineItem is one row of the equity roll-forward with its four value
// columns.
type EquityLineItem struct {
	Label    string
	Capital  float64
	Reserves float64
	Retained float64
	Total    float64
}

// =============================================================================
// STATEMENTS
// =============================================================================

// Statement holds the ordered line items of one two-column section. The
// label is the lookup key: duplicate labels replace the earlier value in
// place (last write wins) without disturbing row order.
type Statement struct {
	items []LineItem
	index map[string]int
}

// Add appends a line item, replacing any earlier item with the same label.
func (s *Statement) Add(item LineItem) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[item.Label]; ok {
		s.items[i] = item
		return
	}
	s.index[item.Label] = len(s.items)
	s.items = append(s.items, item)
}

// Get returns the line item for a canonical label. Absent labels yield a
// zero-valued item carrying the requested label, so derivation points never
// hand-write defensive lookups.
func (s *Statement) Get(label string) LineItem {
	if i, ok := s.index[label]; ok {
		return s.items[i]
	}
	return LineItem{Label: label}
}

// Has reports whether a label is present in the statement.
func (s *Statement) Has(label string) bool {
	_, ok := s.index[label]
	return ok
}

// Items returns the line items in extraction order.
func (s *Statement) Items() []LineItem { return s.items }

// Len returns the number of line items.
func (s *Statement) Len() int { return len(s.items) }

// EquityStatement holds the ordered rows of the equity roll-forward, with
// the same last-write-wins label semantics as Statement.
type EquityStatement struct {
	items []EquityLineItem
	index map[string]int
}

// Add appends an equity row, replacing any earlier row with the same label.
func (s *EquityStatement) Add(item EquityLineItem) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[item.Label]; ok {
		s.items[i] = item
		return
	}
	s.index[item.Label] = len(s.items)
	s.items = append(s.items, item)
}

// Get returns the equity row for a label, zero-valued when absent.
func (s *EquityStatement) Get(label string) EquityLineItem {
	if i, ok := s.index[label]; ok {
		return s.items[i]
	}
	return EquityLineItem{Label: label}
}

// Has reports whether a label is present.
func (s *EquityStatement) Has(label string) bool {
	_, ok := s.index[label]
	return ok
}

// Items returns the equity rows in extraction order.
func (s *EquityStatement) Items() []EquityLineItem { return s.items }

// Len returns the number of equity rows.
func (s *EquityStatement) Len() int { return len(s.items) }

// Notes maps a fixed note identifier (1..7) to its free-text content.
// Notes not supplied in the upload are present with an empty string.
type Notes map[int]string

// =============================================================================
// DIAGNOSTICS
// =============================================================================

// Diagnostic records one substituted or invalid input value. Diagnostics are
// structured records emitted once at extraction time and never re-parsed
// from message text. Ordering is insertion (extraction) order.
type Diagnostic struct {
	Section schema.Section
	Item    string
	Field   string // "current", "previous", "capital", ... or the note title
	Detail  string
	Assumed string // the value substituted, "0" or ""
}

// =============================================================================
// DATASET
// =============================================================================

// FinancialDataset aggregates everything extracted from one uploaded
// workbook plus the diagnostics recorded along the way.
type FinancialDataset struct {
	Income      Statement
	Balance     Statement
	Equity      EquityStatement
	CashFlow    Statement
	Notes       Notes
	Diagnostics []Diagnostic
}

// Section returns the two-column statement for a section, or nil for the
// equity and notes sections, which have their own shapes.
func (d *FinancialDataset) Section(section schema.Section) *Statement {
	switch section {
	case schema.SectionIncome:
		return &d.Income
	case schema.SectionBalance:
		return &d.Balance
	case schema.SectionCashFlow:
		return &d.CashFlow
	}
	return nil
}

// Diagnose appends a diagnostic in extraction order.
func (d *FinancialDataset) Diagnose(diag Diagnostic) {
	d.Diagnostics = append(d.Diagnostics, diag)
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// DerivedMetric is a period-over-period comparison computed from one line
// item. ChangePercent is meaningful only when PercentDefined is true; it is
// undefined (rendered "N/A") when the previous-period value is zero.
type DerivedMetric struct {
	Label          string
	Current        float64
	Previous       float64
	Change         float64
	ChangePercent  float64
	PercentDefined bool
}

// BalanceCheck is the outcome of one cross-statement balancing identity.
// Expected and Actual are the two sides of the identity; Passed applies the
// 0.01 absolute tolerance. Difference carries each identity's own sign:
// reported assets minus financing for the balance sheet, computed ending
// balance minus reported ending balance for the two roll-forwards.
type BalanceCheck struct {
	Name       string
	Expected   float64
	Actual     float64
	Difference float64
	Passed     bool
}
