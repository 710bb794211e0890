// Package cmd implements the CLI application to turn financial exports into
// reports.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/ledgerline/ledgerline"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&detectCmd{}, "import")
	c.Register(&convertCmd{}, "import")
	c.Register(&fmtCmd{}, "import")
	c.Register(&profileCmd{}, "import")

	c.Register(&reconcileCmd{}, "reports")
	c.Register(&reportCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var profilesFile = flag.String("profiles-file", "profiles.yaml", "Path to the import profiles file (YAML)")
var verbose = flag.Bool("v", false, "Enable verbose stage logging on stderr")

// Logger returns the application logger: human-readable stage logging on
// stderr when -v is set, disabled otherwise.
func Logger() zerolog.Logger {
	if !*verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(zerolog.DebugLevel)
}

// LoadProfiles reads the profile store from the app profiles file.
func LoadProfiles() (*ledgerline.ProfileStore, error) {
	return ledgerline.LoadProfiles(*profilesFile)
}

// SaveProfiles writes the profile store back to the app profiles file.
func SaveProfiles(store *ledgerline.ProfileStore) error {
	return ledgerline.SaveProfiles(*profilesFile, store)
}

// printMarkdown renders markdown for the terminal. On rendering errors the
// raw markdown is printed instead, so output is never lost.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
