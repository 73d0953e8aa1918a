// =============================================================================
// Financial Statements Generator - Template Command
// =============================================================================
//
// The template command writes the blank bilingual input workbook users fill
// in before running generate. The template is produced from the same label
// schema the extractor reads, so its labels and row positions always match.
//
// COMMAND USAGE:
//   finstmt template [--out path]
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/muhasib/financial-statements/internal/template"
	"github.com/muhasib/financial-statements/pkg/utils"
)

// templateOut overrides the default template path.
var templateOut string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write a blank bilingual input template",
	Long: `Writes the blank financial data template workbook: an instructions sheet
plus the five pre-labeled data sheets (income, balance, equity, cash flow,
notes). Fill it in and pass it to the generate command.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		path := templateOut
		if path == "" {
			if err := utils.EnsureDirectories(cfg.TemplateDir); err != nil {
				return err
			}
			path = filepath.Join(cfg.TemplateDir, "financial_template.xlsx")
		}

		if err := template.Save(path); err != nil {
			return err
		}
		fmt.Printf("تم إنشاء القالب | Template written: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)

	templateCmd.Flags().StringVar(
		&templateOut,
		"out",
		"",
		"Path for the template workbook (default: <template_dir>/financial_template.xlsx)",
	)
}
