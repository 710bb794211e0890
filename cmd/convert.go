package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ledgerline/ledgerline"
)

// convertCmd holds the flags for the 'convert' subcommand.
type convertCmd struct {
	runFlags
	output string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "convert an export into a canonical journal" }
func (*convertCmd) Usage() string {
	return `llc convert [-format wide|long] [-profile <name>] [-o <journal.jsonl>] <file>

  Converts a tabular export into canonical double-entry journal lines and
  writes them as JSONL, one chronologically ordered line per entry. Asset
  registers and liability indicators found in auxiliary sheets are merged in.
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.jsonPath, "jsonpath", "$", "JSONPath to the row array, for .json inputs")
	f.StringVar(&c.format, "format", "", "Override the detected format (wide, long)")
	f.StringVar(&c.profile, "profile", "", "Import profile to apply")
	f.StringVar(&c.output, "o", "", "Output journal file. Defaults to stdout.")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: convert takes exactly one file argument")
		return subcommands.ExitUsageError
	}

	_, run, err := startRun(f.Arg(0), c.runFlags, ledgerline.EngineConfig{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, w := range run.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	for _, n := range run.Notices {
		fmt.Fprintf(os.Stderr, "Notice: %s\n", n)
	}

	out := os.Stdout
	if c.output != "" {
		out, err = os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot create %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}
	if err := ledgerline.EncodeJournal(out, run.Journal); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d journal lines to %s\n", run.Journal.Len(), c.output)
	}
	return subcommands.ExitSuccess
}
