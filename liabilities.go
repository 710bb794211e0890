package ledgerline

import (
	"fmt"
	"sort"
	"strings"
)

// LiabilityDetectionResult reports whether auxiliary sheets carry liability
// indicators, with every fired signal recorded for transparency.
type LiabilityDetectionResult struct {
	Detected bool     `json:"detected"`
	Signals  []string `json:"signals"`
	Reasons  []string `json:"reasons"`
	Columns  []string `json:"columns"`
	Sheets   []string `json:"sheets"`
}

// LiabilitySignal is one detected liability indicator: a column (or keyword
// cell) naming a liability, with the amount found next to it.
type LiabilitySignal struct {
	Sheet    string
	Column   string
	Row      int
	Account  string
	Category Category
	Amount   Amount
}

// liabilityKeywords mark a column or label as a liability indicator.
var liabilityKeywords = []string{
	"loan", "payable", "accrued", "liabilit", "borrowing", "debt", "overdraft", "deferred revenue",
}

// deferredTaxGuard excludes P&L deferred-tax lines from liability keyword
// matching: "deferred tax expense" and "deferred tax benefit" are tax items,
// not liabilities.
func deferredTaxGuard(label string) bool {
	lower := strings.ToLower(label)
	return strings.Contains(lower, "deferred tax expense") || strings.Contains(lower, "deferred tax benefit")
}

func liabilityKeywordMatch(label string) (string, bool) {
	if deferredTaxGuard(label) {
		return "", false
	}
	lower := strings.ToLower(label)
	for _, kw := range liabilityKeywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}

// DetectLiabilities scans the auxiliary sheets for liability indicators:
// numeric columns whose name matches a liability keyword. The deferred-tax
// guard keeps "deferred tax expense/benefit" columns out.
func DetectLiabilities(sheets map[string][]Row) (LiabilityDetectionResult, []LiabilitySignal) {
	var result LiabilityDetectionResult
	var signals []LiabilitySignal

	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, sheet := range names {
		rows := sheets[sheet]
		if len(rows) == 0 {
			continue
		}
		sheetMatched := false
		for _, column := range ColumnNames(rows) {
			kw, ok := liabilityKeywordMatch(column)
			if !ok {
				if deferredTaxGuard(column) {
					result.Reasons = append(result.Reasons, fmt.Sprintf(
						"sheet %q column %q excluded from liability matching (deferred tax expense/benefit guard)", sheet, column))
				}
				continue
			}
			// Take the latest parseable amount in the column.
			var amount Amount
			var rowIdx int
			found := false
			for i, row := range rows {
				if a, ok := NormalizeNumeric(row[column]); ok && a.IsPositive() {
					amount, rowIdx, found = a, i+1, true
				}
			}
			if !found {
				continue
			}
			category := CurrentLiability
			if c, ok := GuessCategory(column); ok && (c == CurrentLiability || c == NonCurrentLiability) {
				category = c
			}
			signals = append(signals, LiabilitySignal{
				Sheet:    sheet,
				Column:   column,
				Row:      rowIdx,
				Account:  strings.TrimSpace(column),
				Category: category,
				Amount:   amount,
			})
			result.Signals = append(result.Signals, fmt.Sprintf("column %q matches liability keyword %q", column, kw))
			result.Columns = append(result.Columns, column)
			sheetMatched = true
		}
		if sheetMatched {
			result.Sheets = append(result.Sheets, sheet)
		}
	}
	result.Detected = len(signals) > 0
	if result.Detected {
		result.Reasons = append(result.Reasons, fmt.Sprintf("%d liability signal(s) detected", len(signals)))
	} else {
		result.Reasons = append(result.Reasons, "no liability indicators found in auxiliary sheets")
	}
	return result, signals
}

// counterpartAccounts maps liability keywords to the asset or expense account
// debited when the liability is recognized.
var counterpartAccounts = []struct {
	keyword  string
	account  string
	category Category
}{
	{"loan", "Cash", CurrentAsset},
	{"borrowing", "Cash", CurrentAsset},
	{"overdraft", "Cash", CurrentAsset},
	{"deferred revenue", "Cash", CurrentAsset},
	{"payable", "Operating Expenses", OperatingExpense},
	{"accrued", "Operating Expenses", OperatingExpense},
}

// GenerateLiabilityJournal synthesizes one recognition entry per detected
// liability signal, dated on: credit the liability account, debit a matching
// asset or expense account. Every non-mechanical choice is recorded as an
// assumption string to surface to the user before commit.
func GenerateLiabilityJournal(signals []LiabilitySignal, on Date) (lines []CanonicalTransaction, assumptions []string) {
	for _, sig := range signals {
		debitAccount, debitCategory := "Other Expense", OtherExpense
		matched := false
		lower := strings.ToLower(sig.Account)
		for _, rule := range counterpartAccounts {
			if strings.Contains(lower, rule.keyword) {
				debitAccount, debitCategory = rule.account, rule.category
				matched = true
				break
			}
		}
		if matched {
			assumptions = append(assumptions, fmt.Sprintf(
				"liability %q recognized against %s (keyword match)", sig.Account, debitAccount))
		} else {
			assumptions = append(assumptions, fmt.Sprintf(
				"liability %q has no obvious counterpart account: debited %s", sig.Account, debitAccount))
		}

		desc := fmt.Sprintf("Recognition of %s", sig.Account)
		prov := Provenance{SourceSheet: sig.Sheet, SourceColumn: sig.Column, SourceRow: sig.Row}
		lines = append(lines,
			CanonicalTransaction{
				Date: on, Account: debitAccount, Category: debitCategory,
				Debit: sig.Amount, Description: desc, Provenance: prov,
			},
			CanonicalTransaction{
				Date: on, Account: sig.Account, Category: sig.Category,
				Credit: sig.Amount, Description: desc, Provenance: prov,
			},
		)
	}
	return lines, assumptions
}
