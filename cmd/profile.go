package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ledgerline/ledgerline"
)

// profileCmd holds the flags for the 'profile' subcommand.
type profileCmd struct {
	runFlags
	save   string
	delete string
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "list, save or delete import profiles" }
func (*profileCmd) Usage() string {
	return `llc profile [-save <name> <file>] [-delete <name>]

  Without flags, lists the saved import profiles. With -save, detects the
  given file's format, derives its conversion config and saves both under the
  name, so the next import of the same export is one command. With -delete,
  removes the named profile.
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.save, "save", "", "Save the derived config of <file> as a named profile")
	f.StringVar(&c.delete, "delete", "", "Delete the named profile")
	f.StringVar(&c.jsonPath, "jsonpath", "$", "JSONPath to the row array, for .json inputs")
	f.StringVar(&c.format, "format", "", "Override the detected format (wide, long)")
}

func (c *profileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := LoadProfiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	switch {
	case c.save != "":
		return c.saveProfile(store, f)
	case c.delete != "":
		if !store.Delete(c.delete) {
			fmt.Fprintf(os.Stderr, "Error: profile %q not found\n", c.delete)
			return subcommands.ExitFailure
		}
		if err := SaveProfiles(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Deleted profile %q\n", c.delete)
		return subcommands.ExitSuccess
	default:
		names := store.Names()
		if len(names) == 0 {
			fmt.Println("No profiles saved.")
			return subcommands.ExitSuccess
		}
		for _, name := range names {
			p, _ := store.Get(name)
			fmt.Printf("%s\t%s\n", name, p.Format)
		}
		return subcommands.ExitSuccess
	}
}

func (c *profileCmd) saveProfile(store *ledgerline.ProfileStore, f *flag.FlagSet) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: -save needs the file to derive the profile from")
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

	format := detection.Format
	if c.format != "" {
		format = ledgerline.Format(c.format)
	}

	p := ledgerline.Profile{Name: c.save, Format: format}
	switch format {
	case ledgerline.FormatWide:
		cfg := ledgerline.DeriveWideConfig(columns)
		p.Wide = &cfg
	case ledgerline.FormatLong:
		m := ledgerline.DeriveLongMapping(columns)
		p.Long = &m
	default:
		fmt.Fprintln(os.Stderr, "Error: format is unknown; choose one explicitly with -format")
		return subcommands.ExitFailure
	}

	if err := store.Put(p); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveProfiles(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Saved profile %q (%s) to %s\n", c.save, format, *profilesFile)
	return subcommands.ExitSuccess
}
