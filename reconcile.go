package ledgerline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the allowed absolute difference between assets and
// liabilities + equity for the balance sheet identity to hold.
var BalanceTolerance = A(decimal.RequireFromString("0.05"))

// Exported so the auto net-income policy can be tuned without touching the
// engine: closing evidence at or above Strong means the books were already
// closed, at or below Weak means they were not, in between the configured
// default decides.
const (
	ClosedEvidenceStrong = 0.75
	ClosedEvidenceWeak   = 0.4
)

// ClearingAccount is the fixed account synthetic per-day offsets post to.
const ClearingAccount = "Opening Balance Clearing"

// OpeningBalanceEquityAccount receives the single offsetting entry of the
// opening-balance fix.
const OpeningBalanceEquityAccount = "Opening Balance Equity"

// ReconciliationStatus is the outcome of the reconciliation state machine.
type ReconciliationStatus string

const (
	// StatusBalanced: |Assets − (Liabilities+Equity)| within tolerance, proceed.
	StatusBalanced ReconciliationStatus = "balanced"
	// StatusOpeningMissing: no opening balance-sheet positions were ever
	// posted; blocked with a proposed single offsetting entry.
	StatusOpeningMissing ReconciliationStatus = "opening_missing"
	// StatusSingleEntry: trial debits ≠ trial credits, the import was
	// single-sided; blocked with proposed per-day offsets.
	StatusSingleEntry ReconciliationStatus = "single_entry_imbalance"
	// StatusUnexplained: the imbalance persists and no deterministic fix
	// applies; generation is refused.
	StatusUnexplained ReconciliationStatus = "unexplained"
)

// ReconciliationDiagnostics is the structured diagnosis carried by a blocked
// reconciliation and echoed into the final report.
type ReconciliationDiagnostics struct {
	Assets            Amount       `json:"assets"`
	Liabilities       Amount       `json:"liabilities"`
	Equity            Amount       `json:"equity"` // includes net income roll-in used for the identity
	NetIncome         Amount       `json:"netIncome"`
	Difference        Amount       `json:"difference"` // assets - (liabilities + equity)
	TrialBalance      TrialBalance `json:"trialBalance"`
	OpeningEvidence   []string     `json:"openingEvidence"`
	ClosingEvidence   []string     `json:"closingEvidence"`
	ClosingScore      float64      `json:"closingScore"`
	NormalBalanceRule string       `json:"normalBalanceRule"`
}

const normalBalanceRule = "assets and expenses are debit-normal; liabilities, equity and revenue are credit-normal"

// ReconciliationFix is a deterministic, inspectable journal patch. Applying it
// produces a new merged journal and re-runs validation and reconciliation from
// scratch; nothing is patched in place.
type ReconciliationFix struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Lines       []CanonicalTransaction `json:"lines"`
}

// Reconciliation is the result of checking the balance-sheet identity.
type Reconciliation struct {
	Status      ReconciliationStatus      `json:"status"`
	Diagnostics ReconciliationDiagnostics `json:"diagnostics"`
	Fixes       []ReconciliationFix       `json:"fixes,omitempty"`
}

// Err returns nil for a balanced journal and the blocking
// ReconciliationError otherwise.
func (r Reconciliation) Err() error {
	if r.Status == StatusBalanced {
		return nil
	}
	return ReconciliationError{Diagnostics: r.Diagnostics, Fixes: r.Fixes}
}

// NetIncome computes revenue and other income minus COGS, operating and other
// expenses and tax over the journal.
func NetIncome(j *Journal) Amount {
	income := j.CategoryTotal(Revenue).Add(j.CategoryTotal(OtherIncome))
	expenses := j.CategoryTotal(CostOfGoodsSold).
		Add(j.CategoryTotal(OperatingExpense)).
		Add(j.CategoryTotal(OtherExpense)).
		Add(j.CategoryTotal(Tax))
	return income.Sub(expenses)
}

// DetectClosing scores the evidence that net income was already closed into
// equity (to avoid double counting when rolling it in). 1.0 when an equity
// line with a closing-style account matches net income exactly, 0.5 when
// closing-style equity lines exist with a different amount, 0 otherwise.
func DetectClosing(j *Journal) (score float64, notes []string) {
	netIncome := NetIncome(j)
	var closingTotal Amount
	found := false
	for _, line := range j.Lines() {
		if line.Category != Equity || line.IsInformational() {
			continue
		}
		label := strings.ToLower(line.Account + " " + line.Description)
		if strings.Contains(label, "retained earnings") ||
			strings.Contains(label, "net income") ||
			strings.Contains(label, "closing") {
			found = true
			closingTotal = closingTotal.Add(line.Credit).Sub(line.Debit)
			notes = append(notes, fmt.Sprintf("equity line %q looks like a closing entry", line.Account))
		}
	}
	if !found {
		return 0, []string{"no closing-style equity entries found"}
	}
	if closingTotal.Sub(netIncome).Abs().LessThanOrEqual(BalanceTolerance) {
		notes = append(notes, fmt.Sprintf("closing entries sum to net income (%s): books already closed", netIncome))
		return 1.0, notes
	}
	notes = append(notes, fmt.Sprintf("closing entries sum to %s but net income is %s", closingTotal, netIncome))
	return 0.5, notes
}

// resolveNetIncomeRollIn decides whether net income is added to equity, from
// the configured mode, the closing-detection score, and the user default for
// the ambiguous medium-signal band.
func resolveNetIncomeRollIn(mode NetIncomeMode, userDefault bool, closingScore float64) bool {
	switch mode {
	case NetIncomeAlways:
		return true
	case NetIncomeNever:
		return false
	default: // NetIncomeAuto
		switch {
		case closingScore >= ClosedEvidenceStrong:
			return false // already closed into equity, rolling in would double count
		case closingScore <= ClosedEvidenceWeak:
			return true
		default:
			return userDefault
		}
	}
}

// Reconcile runs the reconciliation state machine over a validated journal.
// The trial balance is taken from the validation result rather than recomputed.
// The report options decide whether net income counts toward equity, the same
// way the balance sheet will count it.
func Reconcile(j *Journal, validation ValidationResult, opts ReportOptions) Reconciliation {
	opts = opts.withDefaults()
	assets := j.CategoryTotal(CurrentAsset).Add(j.CategoryTotal(NonCurrentAsset))
	liabilities := j.CategoryTotal(CurrentLiability).Add(j.CategoryTotal(NonCurrentLiability))
	netIncome := NetIncome(j)
	closingScore, closingNotes := DetectClosing(j)

	equity := j.CategoryTotal(Equity)
	if resolveNetIncomeRollIn(opts.NetIncomeToEquityMode, opts.NetIncomeEquityDefault, closingScore) {
		equity = equity.Add(netIncome)
	}

	openingFound, openingNotes := openingEvidence(j)

	diag := ReconciliationDiagnostics{
		Assets:            assets,
		Liabilities:       liabilities,
		Equity:            equity,
		NetIncome:         netIncome,
		Difference:        assets.Sub(liabilities.Add(equity)),
		TrialBalance:      validation.TrialBalance,
		OpeningEvidence:   openingNotes,
		ClosingEvidence:   closingNotes,
		ClosingScore:      closingScore,
		NormalBalanceRule: normalBalanceRule,
	}

	r := Reconciliation{Diagnostics: diag}
	switch {
	case diag.Difference.Abs().LessThanOrEqual(BalanceTolerance):
		r.Status = StatusBalanced
	case !validation.TrialBalance.Balanced():
		r.Status = StatusSingleEntry
		if fix := openingInitializationFix(j); len(fix.Lines) > 0 {
			r.Fixes = append(r.Fixes, fix)
		}
	case !openingFound:
		r.Status = StatusOpeningMissing
		if diag.Difference.IsNegative() {
			// The offsetting entry only exists for the assets-short direction;
			// an asset surplus with no opening balances has no safe mechanical fix.
			r.Fixes = append(r.Fixes, openingEquityFix(j, diag.Difference))
		}
	default:
		r.Status = StatusUnexplained
	}
	return r
}

// openingEvidence reports whether any opening balance-sheet position was ever
// posted. Asset lines alone are not evidence: cash flowing in and out of the
// period says nothing about what the business started with. Openings show up
// as equity or liability balances.
func openingEvidence(j *Journal) (bool, []string) {
	var notes []string
	found := false
	for _, c := range []Category{CurrentLiability, NonCurrentLiability, Equity} {
		if j.HasCategory(c) {
			found = true
			notes = append(notes, fmt.Sprintf("%s balances present", c))
		}
	}
	if !found {
		notes = append(notes, "no opening liability or equity balances were ever posted")
	}
	return found, notes
}

// openingEquityFix proposes the single offsetting entry for a missing opening
// balance: debit a cash-like account, credit Opening Balance Equity, sized to
// the exact difference.
func openingEquityFix(j *Journal, difference Amount) ReconciliationFix {
	on := j.OldestDate()
	cashAccount := suggestCashAccount(j)

	debitLine := CanonicalTransaction{
		Date: on, Account: cashAccount, Category: CurrentAsset,
		Description: "Opening balance offset",
		Provenance:  Provenance{SourceSheet: "reconciliation"},
	}
	creditLine := CanonicalTransaction{
		Date: on, Account: OpeningBalanceEquityAccount, Category: Equity,
		Description: "Opening balance offset",
		Provenance:  Provenance{SourceSheet: "reconciliation"},
	}
	// Assets fall short of liabilities+equity: bring them in against opening equity.
	amount := difference.Neg()
	debitLine.Debit = amount
	creditLine.Credit = amount

	return ReconciliationFix{
		Name: "opening_balance_equity",
		Description: fmt.Sprintf("post a single opening entry of %s against %s",
			difference.Abs(), OpeningBalanceEquityAccount),
		Lines: []CanonicalTransaction{debitLine, creditLine},
	}
}

// suggestCashAccount returns the journal's most cash-like account, or "Cash".
func suggestCashAccount(j *Journal) string {
	for _, line := range j.Lines() {
		if strings.Contains(strings.ToLower(line.Account), "cash") {
			return line.Account
		}
	}
	return "Cash"
}

// openingInitializationFix proposes synthetic balancing lines against the
// fixed clearing account for a single-sided import, aggregated per day: one
// offset per date carrying that date's net imbalance, not one per row.
// Applying it to an already-balanced journal produces zero lines.
func openingInitializationFix(j *Journal) ReconciliationFix {
	perDay := make(map[Date]Amount)
	for _, line := range j.Lines() {
		if line.IsInformational() {
			continue
		}
		perDay[line.Date] = perDay[line.Date].Add(line.Debit).Sub(line.Credit)
	}
	dates := make([]Date, 0, len(perDay))
	for d := range perDay {
		if !perDay[d].IsZero() {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(a, b int) bool { return dates[a].Before(dates[b]) })

	var lines []CanonicalTransaction
	for _, on := range dates {
		net := perDay[on]
		line := CanonicalTransaction{
			Date:        on,
			Account:     ClearingAccount,
			Description: "Opening balance initialization",
			Provenance:  Provenance{SourceSheet: "reconciliation"},
		}
		if net.IsPositive() {
			// Day was debit-heavy: the offset credits equity.
			line.Category = Equity
			line.Credit = net
		} else {
			// Day was credit-heavy: the offset debits a cash-like clearing asset.
			line.Category = CurrentAsset
			line.Debit = net.Neg()
		}
		lines = append(lines, line)
	}
	return ReconciliationFix{
		Name: "opening_balance_initialization",
		Description: fmt.Sprintf(
			"post %d per-day offset(s) against %q to balance a single-sided import", len(lines), ClearingAccount),
		Lines: lines,
	}
}

// ApplyFix merges the fix lines into the journal, returning a new journal.
// The caller re-runs validation and reconciliation on the result; the prior
// journal is kept intact for undo.
func ApplyFix(j *Journal, fix ReconciliationFix) *Journal {
	merged, _ := Merge(j, fix.Lines)
	return merged
}
