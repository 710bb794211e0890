package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete installs shell completion for the binary. It must run before flag
// parsing: when invoked by the shell completion machinery it prints the
// predictions and exits.
func Complete(name string) {
	inputFiles := predict.Files("*.csv")
	formats := predict.Set{"wide", "long"}

	cmd := &complete.Command{
		Flags: map[string]complete.Predictor{
			"profiles-file": predict.Files("*.yaml"),
			"v":             predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"detect": {
				Args:  inputFiles,
				Flags: map[string]complete.Predictor{"jsonpath": predict.Something},
			},
			"convert": {
				Args: inputFiles,
				Flags: map[string]complete.Predictor{
					"format":   formats,
					"profile":  predict.Something,
					"jsonpath": predict.Something,
					"o":        predict.Files("*.jsonl"),
				},
			},
			"reconcile": {
				Args: inputFiles,
				Flags: map[string]complete.Predictor{
					"format":      formats,
					"profile":     predict.Something,
					"jsonpath":    predict.Something,
					"currency":    predict.Something,
					"net-income":  predict.Set{"auto", "always", "never"},
					"apply-fixes": predict.Nothing,
				},
			},
			"report": {
				Args: inputFiles,
				Flags: map[string]complete.Predictor{
					"format":             formats,
					"profile":            predict.Something,
					"jsonpath":           predict.Something,
					"company":            predict.Something,
					"period":             predict.Set{"monthly", "quarterly", "annual"},
					"currency":           predict.Something,
					"end":                predict.Something,
					"net-income":         predict.Set{"auto", "always", "never"},
					"depreciation-start": predict.Set{"acquisition_month", "next_month"},
					"asset-mode":         predict.Set{"auto", "external", "journal_generation"},
					"no-fixes":           predict.Nothing,
				},
			},
			"fmt": {
				Args:  predict.Files("*.jsonl"),
				Flags: map[string]complete.Predictor{"w": predict.Nothing},
			},
			"profile": {
				Args: inputFiles,
				Flags: map[string]complete.Predictor{
					"save":   predict.Something,
					"delete": predict.Something,
					"format": formats,
				},
			},
			"topic": {
				Args: predict.Set{"readme", "formats", "categories", "reconciliation", "assets", "profiles"},
			},
		},
	}
	cmd.Complete(name)
}
