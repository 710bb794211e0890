package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ledgerline/ledgerline"
)

type fmtCmd struct {
	write bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats a journal file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `llc fmt [-w] <journal.jsonl>

  Validates and formats a canonical journal file. This command reads all
  journal lines, validates the double-entry rules, sorts them by date, and
  writes them back in a canonical JSONL format. By default the result goes to
  stdout; -w rewrites the file in place.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.write, "w", false, "Rewrite the journal file in place")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: fmt takes exactly one journal file argument")
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)

	in, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open journal %q: %v\n", path, err)
		return subcommands.ExitFailure
	}
	journal, err := ledgerline.DecodeJournal(in)
	in.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not decode journal %q: %v\n", path, err)
		return subcommands.ExitFailure
	}

	validation := ledgerline.ValidateJournal(journal)
	for _, w := range validation.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	if err := validation.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	out := os.Stdout
	if c.write {
		out, err = os.Create(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not rewrite journal %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}
	if err := ledgerline.EncodeJournal(out, journal); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.write {
		fmt.Fprintf(os.Stderr, "Formatted %d journal lines in %s\n", journal.Len(), path)
	}
	return subcommands.ExitSuccess
}
