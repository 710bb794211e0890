package ledgerline

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TrialBalanceTolerance is the allowed absolute difference between total
// debits and total credits.
var TrialBalanceTolerance = A(decimal.RequireFromString("0.01"))

// TrialBalance is the sum of all debits and credits over a journal.
type TrialBalance struct {
	Debits     Amount `json:"debits"`
	Credits    Amount `json:"credits"`
	Difference Amount `json:"difference"` // debits - credits
}

// Balanced reports whether debits equal credits within tolerance.
func (t TrialBalance) Balanced() bool {
	return t.Difference.Abs().LessThanOrEqual(TrialBalanceTolerance)
}

func (t TrialBalance) String() string {
	return fmt.Sprintf("debits %s, credits %s, difference %s", t.Debits, t.Credits, t.Difference)
}

// NewTrialBalance sums every posting line. Informational lines (zero on both
// sides) carry no amounts, so they cannot move the balance.
func NewTrialBalance(j *Journal) TrialBalance {
	var t TrialBalance
	for _, line := range j.Lines() {
		t.Debits = t.Debits.Add(line.Debit)
		t.Credits = t.Credits.Add(line.Credit)
	}
	t.Difference = t.Debits.Sub(t.Credits)
	return t
}

// ValidationResult is the outcome of checking a journal against the
// double-entry rules. Errors block report generation; warnings do not.
type ValidationResult struct {
	IsValid      bool         `json:"isValid"`
	Errors       []string     `json:"errors,omitempty"`
	Warnings     []string     `json:"warnings,omitempty"`
	TrialBalance TrialBalance `json:"trialBalance"`
}

// Err returns nil for a valid journal and a ValidationError listing every
// blocking problem otherwise.
func (v ValidationResult) Err() error {
	if v.IsValid {
		return nil
	}
	return ValidationError{Errors: v.Errors}
}

// Merge combines a base journal with generated lines into a new journal,
// deduplicating by provenance: a generated line whose provenance key matches
// an existing line is dropped with a warning. Lines without sheet or asset
// provenance are never deduplicated. Neither input is modified, so re-merging
// the same generated lines is idempotent.
func Merge(base *Journal, generated []CanonicalTransaction) (*Journal, []string) {
	seen := make(map[string]bool, base.Len())
	for _, line := range base.Lines() {
		if key := line.provenanceKey(); key != "" {
			seen[key] = true
		}
	}

	lines := base.All()
	var warnings []string
	for _, line := range generated {
		key := line.provenanceKey()
		if key != "" && seen[key] {
			warnings = append(warnings, fmt.Sprintf("duplicate entry skipped: %s", line))
			continue
		}
		if key != "" {
			seen[key] = true
		}
		lines = append(lines, line)
	}
	return NewJournal(lines...), warnings
}

// ValidateJournal checks the double-entry rules over a canonical journal:
//
//   - every posting line has exactly one positive side (negative amounts and
//     two-sided lines are errors);
//   - every line carries a valid category and a date;
//   - no category's aggregate balance sits against its normal side;
//   - total debits equal total credits within tolerance.
//
// Informational lines are reported as warnings and excluded from all totals.
func ValidateJournal(j *Journal) ValidationResult {
	var result ValidationResult

	for i, line := range j.Lines() {
		where := fmt.Sprintf("line %d (%s %q)", i+1, line.Date, line.Account)

		if line.IsInformational() {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: informational, carries no amounts", where))
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: negative amount; post to the opposite side instead", where))
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: both debit and credit set; a line posts to exactly one side", where))
		}
		if _, err := ParseCategory(string(line.Category)); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: unknown category %q", where, line.Category))
		}
		if line.Date.IsZero() {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: missing date", where))
		}
	}

	// A contra posting on a single line is fine (paying down a liability
	// debits it); only an aggregate balance against the normal side is wrong.
	for _, c := range Categories {
		if !j.HasCategory(c) {
			continue
		}
		if total := j.CategoryTotal(c); total.IsNegative() {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"category %s nets to %s against its normal %s balance", c, total, c.NormalSide()))
		}
	}

	result.TrialBalance = NewTrialBalance(j)
	if !result.TrialBalance.Balanced() {
		result.Warnings = append(result.Warnings, fmt.Sprintf("trial balance off: %s", result.TrialBalance))
	}
	result.IsValid = len(result.Errors) == 0
	return result
}
