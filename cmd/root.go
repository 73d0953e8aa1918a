// =============================================================================
// Financial Statements Generator - Root Command
// =============================================================================
//
// The root command wires the configuration file and the logger, and carries
// the persistent flags shared by all subcommands:
//
//   finstmt generate --file filled.xlsx   Generate statements from an upload
//   finstmt template                      Write a blank bilingual template
//   finstmt version                       Display version information
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muhasib/financial-statements/internal/config"
)

// cfgFile is the path to the configuration file, overridable with --config.
var cfgFile string

// verbose raises the log level to debug regardless of the configured level.
var verbose bool

// cfg is the loaded configuration, available to all subcommands.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "finstmt",
	Short: "Generate bilingual financial statements from a filled-in Excel template",
	Long: `finstmt turns a filled-in bilingual (Arabic | English) financial data
template into a complete statements workbook: an overview with derived
ratios, the four standard statements with balancing checks, notes, charts,
and a sheet listing every substituted or invalid input value.`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		logCfg := cfg.Log
		if verbose {
			logCfg.Level = "debug"
		}
		if err := config.InitLogger(logCfg); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},

	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
