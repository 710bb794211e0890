package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ledgerline/ledgerline"
	"github.com/ledgerline/ledgerline/renderer"
)

// detectCmd holds the flags for the 'detect' subcommand.
type detectCmd struct {
	jsonPath string
}

func (*detectCmd) Name() string     { return "detect" }
func (*detectCmd) Synopsis() string { return "detect the format of a tabular export" }
func (*detectCmd) Usage() string {
	return `llc detect [-jsonpath <path>] <file>

  Infers column types and classifies the dataset as wide (one row per period)
  or long (one row per transaction), printing every reason for the verdict.
`
}

func (c *detectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.jsonPath, "jsonpath", "$", "JSONPath to the row array, for .json inputs")
}

func (c *detectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: detect takes exactly one file argument")
		return subcommands.ExitUsageError
	}

	sheets, primary, err := ledgerline.LoadFile(f.Arg(0), c.jsonPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	rows := sheets[primary]
	columns := ledgerline.InferColumns(rows, ledgerline.ColumnNames(rows))
	detection := ledgerline.DetectFormat(rows, columns)

	printMarkdown(renderer.RenderDetection(renderer.NewDetection(detection)))
	return subcommands.ExitSuccess
}
