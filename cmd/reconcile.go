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

// reconcileCmd holds the flags for the 'reconcile' subcommand.
type reconcileCmd struct {
	runFlags
	currency  string
	applyFix  bool
	netIncome string
}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "check the balance-sheet identity of an export" }
func (*reconcileCmd) Usage() string {
	return `llc reconcile [-apply-fixes] [-profile <name>] <file>

  Converts the export, validates the double-entry rules and checks that
  assets equal liabilities plus equity. When the books do not balance the
  diagnosis and any deterministic fixes are shown; -apply-fixes applies them
  and shows the outcome.
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.jsonPath, "jsonpath", "$", "JSONPath to the row array, for .json inputs")
	f.StringVar(&c.format, "format", "", "Override the detected format (wide, long)")
	f.StringVar(&c.profile, "profile", "", "Import profile to apply")
	f.StringVar(&c.currency, "currency", "USD", "Display currency for diagnostics")
	f.StringVar(&c.netIncome, "net-income", "auto", "Roll net income into equity (auto, always, never)")
	f.BoolVar(&c.applyFix, "apply-fixes", false, "Apply proposed fixes and re-reconcile")
}

func (c *reconcileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: reconcile takes exactly one file argument")
		return subcommands.ExitUsageError
	}

	cfg := ledgerline.EngineConfig{
		Options: ledgerline.ReportOptions{
			DisplayCurrency:       c.currency,
			NetIncomeToEquityMode: ledgerline.NetIncomeMode(c.netIncome),
		},
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

	err = engine.Reconcile(run)
	if c.applyFix && err != nil {
		// Each status proposes at most one fix, and fixes are idempotent, so
		// two rounds cover a single-entry imbalance that then needs an
		// opening balance.
		var recErr ledgerline.ReconciliationError
		for round := 0; round < 2 && errors.As(err, &recErr) && len(run.Reconciliation.Fixes) > 0; round++ {
			fix := run.Reconciliation.Fixes[0]
			fmt.Fprintf(os.Stderr, "Applying fix %q\n", fix.Name)
			if err = engine.ApplyFix(run, fix); err == nil {
				break
			}
		}
	}

	printMarkdown(renderer.RenderReconciliation(renderer.NewReconciliation(run.Reconciliation, c.currency)))
	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
