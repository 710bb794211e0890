package ledgerline

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a conversion configuration that cannot produce a
// journal (e.g. no amount or debit/credit mapping selected). It is surfaced
// immediately and blocks transformation.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// ValidationError reports malformed journal lines or category-sign violations.
// It blocks statement generation entirely and lists every individual problem,
// never just a count.
type ValidationError struct {
	Errors []string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("journal validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// ReconciliationError reports that Assets ≠ Liabilities + Equity beyond
// tolerance. It carries the structured diagnosis and zero or more proposed
// deterministic fixes; the caller may apply a fix and re-run, or abandon.
// No report exists while this error stands.
type ReconciliationError struct {
	Diagnostics ReconciliationDiagnostics
	Fixes       []ReconciliationFix
}

func (e ReconciliationError) Error() string {
	d := e.Diagnostics
	msg := fmt.Sprintf(
		"balance sheet does not reconcile: assets %s, liabilities %s, equity %s (difference %s); trial debits %s, trial credits %s",
		d.Assets, d.Liabilities, d.Equity, d.Difference, d.TrialBalance.Debits, d.TrialBalance.Credits)
	if len(e.Fixes) > 0 {
		names := make([]string, len(e.Fixes))
		for i, f := range e.Fixes {
			names[i] = f.Name
		}
		msg += "; proposed fixes: " + strings.Join(names, ", ")
	}
	return msg
}
