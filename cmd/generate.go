// =============================================================================
// Financial Statements Generator - Generate Command
// =============================================================================
//
// The generate command is the main entry point of the pipeline: it consumes
// one filled-in template workbook and produces the statements workbook.
//
// COMMAND USAGE:
//   finstmt generate --file filled.xlsx [--strict] [--out dir]
//
// Fatal pipeline errors (unreadable workbook, missing required sheet,
// strict-mode validation failure) surface as one bilingual message; the
// generated workbook itself carries all non-fatal findings on its Errors
// sheet.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muhasib/financial-statements/internal/config"
	"github.com/muhasib/financial-statements/internal/pipeline"
)

// inputFile is the filled-in template workbook to process.
var inputFile string

// strict switches the validator from lenient repair to abort-on-missing.
var strict bool

// outDir overrides the configured output directory.
var outDir string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a statements workbook from a filled-in template",
	Long: `Reads a filled-in bilingual template workbook, validates and repairs the
extracted data, computes derived metrics and balancing checks, and writes
the formatted statements workbook into the output directory.

Under the default lenient policy every missing or invalid value is replaced
with zero, highlighted in the output, and listed on the Errors sheet. With
--strict the run aborts instead when a required aggregate is unusable.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile == "" {
			return eris.New("--file is required")
		}

		if strict {
			cfg.ValidationPolicy = config.PolicyStrict
		}
		if outDir != "" {
			cfg.OutputDir = outDir
		}

		result := pipeline.New(cfg, zap.L()).Run(inputFile)
		if !result.Success {
			return fmt.Errorf("حدث خطأ أثناء معالجة البيانات | An error occurred while processing data: %w", result.Error)
		}

		fmt.Printf("تم إنشاء القوائم المالية بنجاح | Financial statements generated: %s\n", result.OutputFile)
		if result.Diagnostics+result.Issues > 0 {
			fmt.Printf("  (%d substituted value(s) listed on the Errors sheet)\n", result.Diagnostics+result.Issues)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(
		&inputFile,
		"file",
		"",
		"Path to the filled-in template workbook",
	)
	generateCmd.Flags().BoolVar(
		&strict,
		"strict",
		false,
		"Abort when a required aggregate is missing instead of repairing",
	)
	generateCmd.Flags().StringVar(
		&outDir,
		"out",
		"",
		"Output directory (overrides the configured one)",
	)
}
