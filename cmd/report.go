package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ledgerline/ledgerline"
	"github.com/ledgerline/ledgerline/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	runFlags
	company           string
	period            string
	currency          string
	end               string
	netIncome         string
	depreciationStart string
	assetMode         string
	noFixes           bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "generate the full financial report from an export" }
func (*reportCmd) Usage() string {
	return `llc report [-company <name>] [-period annual|quarterly|monthly] [-profile <name>] <file>

  Runs the whole pipeline: detection, conversion, supplemental generation,
  validation, reconciliation and statement generation. Proposed reconciliation
  fixes are applied automatically unless -no-fixes is set.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.jsonPath, "jsonpath", "$", "JSONPath to the row array, for .json inputs")
	f.StringVar(&c.format, "format", "", "Override the detected format (wide, long)")
	f.StringVar(&c.profile, "profile", "", "Import profile to apply")
	f.StringVar(&c.company, "company", "", "Company name shown on the report")
	f.StringVar(&c.period, "period", "annual", "Report period (monthly, quarterly, annual)")
	f.StringVar(&c.currency, "currency", "USD", "Display currency. Formatting only, no conversion.")
	f.StringVar(&c.end, "end", "", "Report end date (YYYY-MM-DD). Defaults to the newest journal date.")
	f.StringVar(&c.netIncome, "net-income", "auto", "Roll net income into equity (auto, always, never)")
	f.StringVar(&c.depreciationStart, "depreciation-start", "next_month",
		"First depreciation month (acquisition_month, next_month)")
	f.StringVar(&c.assetMode, "asset-mode", "auto", "Asset handling (auto, external, journal_generation)")
	f.BoolVar(&c.noFixes, "no-fixes", false, "Do not apply proposed reconciliation fixes automatically")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: report takes exactly one file argument")
		return subcommands.ExitUsageError
	}

	cfg, err := c.engineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	engine, run, err := startRun(f.Arg(0), c.runFlags, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := engine.Validate(run); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := engine.Reconcile(run); err != nil {
		if c.noFixes || !c.tryFixes(engine, run, err) {
			printMarkdown(renderer.RenderReconciliation(renderer.NewReconciliation(run.Reconciliation, c.currency)))
			return subcommands.ExitFailure
		}
	}

	report, err := engine.BuildReport(run)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderReport(renderer.NewReport(report)))
	return subcommands.ExitSuccess
}

func (c *reportCmd) engineConfig() (ledgerline.EngineConfig, error) {
	opts := ledgerline.ReportOptions{
		CompanyName:           c.company,
		ReportPeriod:          ledgerline.ReportPeriod(c.period),
		DisplayCurrency:       c.currency,
		NetIncomeToEquityMode: ledgerline.NetIncomeMode(c.netIncome),
	}
	if c.end != "" {
		end, err := ledgerline.ParseDate(c.end)
		if err != nil {
			return ledgerline.EngineConfig{}, fmt.Errorf("parsing end date: %w", err)
		}
		opts.EndDate = end
	}
	return ledgerline.EngineConfig{
		AssetMode:         ledgerline.AssetHandlingMode(c.assetMode),
		DepreciationStart: ledgerline.DepreciationStart(c.depreciationStart),
		Options:           opts,
	}, nil
}

// tryFixes applies proposed reconciliation fixes, reporting whether the books
// now balance.
func (c *reportCmd) tryFixes(engine *ledgerline.Engine, run *ledgerline.Run, err error) bool {
	var recErr ledgerline.ReconciliationError
	for round := 0; round < 2 && errors.As(err, &recErr) && len(run.Reconciliation.Fixes) > 0; round++ {
		fix := run.Reconciliation.Fixes[0]
		fmt.Fprintf(os.Stderr, "Applying fix %q: %s\n", fix.Name, fix.Description)
		if err = engine.ApplyFix(run, fix); err == nil {
			return true
		}
	}
	return false
}
