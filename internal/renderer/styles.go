// =============================================================================
// Financial Statements Generator - Style Presets
// =============================================================================
//
// All visual formatting in the output workbook flows through the small set
// of named presets below. Style identifiers are registered once per output
// file and reused for every cell they apply to; nothing mutates a style
// after registration, so formatting cannot bleed between unrelated cells.
//
// =============================================================================

package renderer

import "github.com/xuri/excelize/v2"

// Workbook accent palette, matching the bilingual template.
const (
	colorAccent   = "4472C4" // header rows: white on blue
	colorTotalRow = "DDEBF7" // subtotal/total rows
	colorMissing  = "FFFF00" // values substituted for missing cells
	colorPositive = "C6EFCE" // positive changes, passed checks
	colorNegative = "FFC7CE" // negative changes, failed checks
)

// styleSet holds the registered style identifiers for one output file.
type styleSet struct {
	title    int // sheet title, bold 16pt
	subtitle int // block heading, bold 14pt
	header   int // tabular header: bold, white on accent, centered
	total    int // subtotal/total row: bold on light blue
	missing  int // substituted value: yellow fill
	positive int // positive change / passed check: green fill
	negative int // negative change / failed check: red fill
	label    int // bold label without fill
}

// newStyleSet registers the presets on a freshly created file.
func newStyleSet(f *excelize.File) (*styleSet, error) {
	s := &styleSet{}
	var err error

	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	}); err != nil {
		return nil, err
	}

	if s.subtitle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}); err != nil {
		return nil, err
	}

	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{colorAccent}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return nil, err
	}

	if s.total, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{colorTotalRow}, Pattern: 1},
	}); err != nil {
		return nil, err
	}

	if s.missing, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{colorMissing}, Pattern: 1},
	}); err != nil {
		return nil, err
	}

	if s.positive, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{colorPositive}, Pattern: 1},
	}); err != nil {
		return nil, err
	}

	if s.negative, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{colorNegative}, Pattern: 1},
	}); err != nil {
		return nil, err
	}

	if s.label, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	}); err != nil {
		return nil, err
	}

	return s, nil
}

// apply sets one preset on a cell range.
func apply(f *excelize.File, sheet, from, to string, styleID int) {
	// Styling is cosmetic; a failure here must never abort a render.
	_ = f.SetCellStyle(sheet, from, to, styleID)
}

// changeStyle picks the conditional preset for a computed change value.
// Zero stays neutral.
func (s *styleSet) changeStyle(value float64) int {
	switch {
	case value > 0:
		return s.positive
	case value < 0:
		return s.negative
	default:
		return 0
	}
}

// checkStyle picks the preset for an identity check outcome.
func (s *styleSet) checkStyle(passed bool) int {
	if passed {
		return s.positive
	}
	return s.negative
}
