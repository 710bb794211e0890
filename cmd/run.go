package cmd

import (
	"fmt"

	"github.com/ledgerline/ledgerline"
)

// runFlags are the flags shared by every command that drives the pipeline.
type runFlags struct {
	jsonPath string
	format   string
	profile  string
}

// startRun loads the input file, builds an engine, and runs detection and
// preview. A named profile overrides the detected format and derived configs.
func startRun(file string, flags runFlags, cfg ledgerline.EngineConfig) (*ledgerline.Engine, *ledgerline.Run, error) {
	sheets, primary, err := ledgerline.LoadFile(file, flags.jsonPath)
	if err != nil {
		return nil, nil, err
	}

	cfg.Logger = Logger()
	engine, err := ledgerline.NewEngine(cfg)
	if err != nil {
		return nil, nil, err
	}

	run, err := engine.Begin(sheets, primary)
	if err != nil {
		return nil, nil, err
	}

	if flags.profile != "" {
		store, err := LoadProfiles()
		if err != nil {
			return nil, nil, err
		}
		p, ok := store.Get(flags.profile)
		if !ok {
			return nil, nil, fmt.Errorf("profile %q not found in %s", flags.profile, *profilesFile)
		}
		applyProfile(run, p)
	}
	if flags.format != "" {
		run.Detection.Format = ledgerline.Format(flags.format)
	}

	if err := engine.Preview(run); err != nil {
		return nil, run, err
	}
	return engine, run, nil
}

// applyProfile overrides the run's detected format and derived configs with a
// saved profile.
func applyProfile(run *ledgerline.Run, p ledgerline.Profile) {
	run.Detection.Format = p.Format
	if p.Wide != nil {
		run.WideConfig = *p.Wide
	}
	if p.Long != nil {
		run.LongMapping = *p.Long
	}
}
