// =============================================================================
// Financial Statements Generator - Pipeline
// =============================================================================
//
// This module orchestrates one complete run over one uploaded workbook:
//
//   1. Extract the workbook into a typed dataset (fatal on missing sheets)
//   2. Validate required aggregates, repairing under the lenient policy
//   3. Derive metrics, ratios and the three balancing identities
//   4. Render the statements workbook
//   5. Write the output file and optionally archive the consumed input
//
// Each run owns its dataset exclusively. The pipeline holds no process-wide
// state, so concurrent runs over different files need no coordination.
//
// =============================================================================

package pipeline

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/muhasib/financial-statements/internal/config"
	"github.com/muhasib/financial-statements/internal/derive"
	"github.com/muhasib/financial-statements/internal/extractor"
	"github.com/muhasib/financial-statements/internal/renderer"
	"github.com/muhasib/financial-statements/internal/validator"
	"github.com/muhasib/financial-statements/pkg/utils"
)

// Result describes the outcome of one pipeline run.
type Result struct {
	InputFile   string
	OutputFile  string
	Success     bool
	Error       error
	Diagnostics int
	Issues      int
	Elapsed     time.Duration
}

// Pipeline runs the extract → validate → derive → render sequence under one
// configuration.
type Pipeline struct {
	cfg *config.Config
	log *zap.Logger
}

// New creates a pipeline. A nil logger falls back to the global one.
func New(cfg *config.Config, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.L()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// Run processes one uploaded workbook and writes the statements workbook
// into the configured output directory. Fatal errors abort before any
// output file is produced.
func (p *Pipeline) Run(inputPath string) Result {
	start := time.Now()
	result := Result{InputFile: inputPath}

	fail := func(err error) Result {
		result.Error = err
		result.Elapsed = time.Since(start)
		p.log.Error("pipeline failed",
			zap.String("input", inputPath),
			zap.Error(err),
		)
		return result
	}

	p.log.Info("processing workbook", zap.String("input", inputPath))

	ds, err := extractor.Extract(inputPath)
	if err != nil {
		return fail(err)
	}
	result.Diagnostics = len(ds.Diagnostics)
	p.log.Debug("extraction complete",
		zap.Int("income_items", ds.Income.Len()),
		zap.Int("balance_items", ds.Balance.Len()),
		zap.Int("diagnostics", len(ds.Diagnostics)),
	)

	vres, err := validator.Validate(ds, validator.Policy(p.cfg.ValidationPolicy))
	if err != nil {
		return fail(err)
	}
	result.Issues = len(vres.Issues)
	if len(vres.Issues) > 0 {
		p.log.Warn("validation repaired missing data", zap.Int("issues", len(vres.Issues)))
	}

	report := derive.Build(vres.Repaired)
	for _, chk := range []struct {
		name   string
		passed bool
	}{
		{"balance", report.BalanceCheck.Passed},
		{"equity", report.EquityCheck.Passed},
		{"cash", report.CashCheck.Passed},
	} {
		if !chk.passed {
			p.log.Warn("balancing identity failed", zap.String("check", chk.name))
		}
	}

	output, err := renderer.Render(vres.Repaired, report, vres.Issues)
	if err != nil {
		return fail(err)
	}

	outputPath, err := p.writeOutput(output, inputPath)
	if err != nil {
		return fail(err)
	}
	result.OutputFile = outputPath

	if p.cfg.ArchiveInputs {
		if archived, err := utils.ArchiveFile(inputPath, p.cfg.ArchiveDir); err != nil {
			// Archival is best-effort; the statements were produced.
			p.log.Warn("could not archive input", zap.Error(err))
		} else {
			p.log.Debug("input archived", zap.String("path", archived))
		}
	}

	result.Success = true
	result.Elapsed = time.Since(start)
	p.log.Info("workbook generated",
		zap.String("output", outputPath),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result
}

// writeOutput places the rendered workbook into the output directory under
// a name expanded from the configured format.
func (p *Pipeline) writeOutput(data []byte, inputPath string) (string, error) {
	if err := utils.EnsureDirectories(p.cfg.OutputDir); err != nil {
		return "", err
	}

	name := utils.GenerateOutputFileName(p.cfg.OutputNameFormat, inputPath)
	path := filepath.Join(p.cfg.OutputDir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", eris.Wrap(err, "pipeline: write output workbook")
	}
	return path, nil
}
