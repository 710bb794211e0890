package ledgerline

import (
	"fmt"
	"iter"
	"sort"
	"strings"
)

// TransactionType is the advisory income/expense tag carried over from the
// source data. It never drives accounting; the category's normal side does.
type TransactionType string

const (
	TypeIncome  TransactionType = "Income"
	TypeExpense TransactionType = "Expense"
	TypeNone    TransactionType = ""
)

// Provenance links a canonical transaction back to its originating
// sheet/row/column/asset for audit. All fields are optional.
type Provenance struct {
	SourceColumn  string `json:"sourceColumn,omitempty"`
	SourceRow     int    `json:"sourceRow,omitempty"`
	SourceSheet   string `json:"sourceSheet,omitempty"`
	SourceAssetID string `json:"sourceAssetId,omitempty"`
}

// CanonicalTransaction is a single normalized double-entry journal line.
// It is immutable once created: transformers and generators build new lines,
// journals only ever append, never mutate.
type CanonicalTransaction struct {
	Date        Date            `json:"date"`
	Account     string          `json:"account"`
	Category    Category        `json:"category"`
	Type        TransactionType `json:"type,omitempty"`
	Debit       Amount          `json:"debit"`
	Credit      Amount          `json:"credit"`
	Description string          `json:"description,omitempty"`
	Provenance
}

// IsInformational reports whether the line carries no amount on either side.
// Such lines are tolerated but excluded from all totals.
func (t CanonicalTransaction) IsInformational() bool {
	return t.Debit.IsZero() && t.Credit.IsZero()
}

// Amount returns the single positive side of a well-formed line.
func (t CanonicalTransaction) Amount() Amount {
	if t.Debit.IsPositive() {
		return t.Debit
	}
	return t.Credit
}

// Side returns the side the line posts to. Informational lines report the
// category's normal side.
func (t CanonicalTransaction) Side() Side {
	switch {
	case t.Debit.IsPositive():
		return DebitSide
	case t.Credit.IsPositive():
		return CreditSide
	default:
		return t.Category.NormalSide()
	}
}

// provenanceKey identifies a generated line for de-duplication. Only lines
// carrying sheet or asset provenance get a key: plain transformed lines may
// legitimately repeat (two cash sales on the same day) and are never deduped.
func (t CanonicalTransaction) provenanceKey() string {
	if t.SourceSheet == "" && t.SourceAssetID == "" {
		return ""
	}
	return strings.Join([]string{
		t.SourceSheet, t.SourceAssetID, t.SourceColumn, fmt.Sprint(t.SourceRow),
		t.Date.String(), string(t.Category), t.Side().String(),
	}, "|")
}

func (t CanonicalTransaction) String() string {
	return fmt.Sprintf("%s %s [%s] Dr %s / Cr %s", t.Date, t.Account, t.Category, t.Debit, t.Credit)
}

// Journal holds a chronologically sorted, immutable list of canonical
// transactions. Operations that change a journal return a new one.
type Journal struct {
	lines []CanonicalTransaction
}

// NewJournal creates a journal from the given lines, sorted chronologically.
// The sort is stable: lines on the same day keep their original relative order,
// which is what makes transformation deterministic.
func NewJournal(lines ...CanonicalTransaction) *Journal {
	j := &Journal{lines: append([]CanonicalTransaction(nil), lines...)}
	j.stableSort()
	return j
}

func (j *Journal) stableSort() {
	sort.SliceStable(j.lines, func(a, b int) bool {
		return j.lines[a].Date.Before(j.lines[b].Date)
	})
}

// Len returns the number of lines in the journal.
func (j *Journal) Len() int { return len(j.lines) }

// Lines returns an iterator over the journal lines in chronological order.
func (j *Journal) Lines() iter.Seq2[int, CanonicalTransaction] {
	return func(yield func(int, CanonicalTransaction) bool) {
		for i, line := range j.lines {
			if !yield(i, line) {
				return
			}
		}
	}
}

// All returns a copy of the journal lines, for export.
func (j *Journal) All() []CanonicalTransaction {
	return append([]CanonicalTransaction(nil), j.lines...)
}

// OldestDate returns the date of the earliest line, or the zero date for an
// empty journal.
func (j *Journal) OldestDate() Date {
	if len(j.lines) == 0 {
		return Date{}
	}
	return j.lines[0].Date
}

// NewestDate returns the date of the latest line, or the zero date for an
// empty journal.
func (j *Journal) NewestDate() Date {
	if len(j.lines) == 0 {
		return Date{}
	}
	return j.lines[len(j.lines)-1].Date
}

// CategoryTotal sums the normal-side balance of a category: debits minus
// credits for debit-normal categories, credits minus debits otherwise.
func (j *Journal) CategoryTotal(c Category) Amount {
	var debits, credits Amount
	for _, line := range j.lines {
		if line.Category != c || line.IsInformational() {
			continue
		}
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	if c.NormalSide() == DebitSide {
		return debits.Sub(credits)
	}
	return credits.Sub(debits)
}

// HasCategory reports whether any non-informational line posts to the category.
func (j *Journal) HasCategory(c Category) bool {
	for _, line := range j.lines {
		if line.Category == c && !line.IsInformational() {
			return true
		}
	}
	return false
}

// HasAccountKeyword reports whether any line's account name contains the
// keyword (case-insensitive). Used by the supplemental generator to detect
// whether matching entries already exist.
func (j *Journal) HasAccountKeyword(keyword string) bool {
	lower := strings.ToLower(keyword)
	for _, line := range j.lines {
		if strings.Contains(strings.ToLower(line.Account), lower) {
			return true
		}
	}
	return false
}
