package renderer

import (
	"fmt"

	"github.com/ledgerline/ledgerline"
)

// Reconciliation is the display view of a reconciliation outcome.
type Reconciliation struct {
	Status     string
	Difference string

	Assets      string
	Liabilities string
	Equity      string
	NetIncome   string

	TrialDebits  string
	TrialCredits string

	OpeningEvidence []string
	ClosingEvidence []string
	Rule            string

	Fixes []Fix
}

// Fix is one proposed fix with its lines rendered as journal entries.
type Fix struct {
	Name        string
	Description string
	Lines       []FixLine
}

// FixLine is one display-ready journal line of a fix.
type FixLine struct {
	Date    string
	Account string
	Debit   string
	Credit  string
}

// NewReconciliation builds the view from a reconciliation result.
func NewReconciliation(r ledgerline.Reconciliation, currency string) *Reconciliation {
	money := func(a ledgerline.Amount) string { return a.Display(currency) }
	d := r.Diagnostics
	v := &Reconciliation{
		Status:          string(r.Status),
		Difference:      money(d.Difference),
		Assets:          money(d.Assets),
		Liabilities:     money(d.Liabilities),
		Equity:          money(d.Equity),
		NetIncome:       money(d.NetIncome),
		TrialDebits:     money(d.TrialBalance.Debits),
		TrialCredits:    money(d.TrialBalance.Credits),
		OpeningEvidence: d.OpeningEvidence,
		ClosingEvidence: d.ClosingEvidence,
		Rule:            d.NormalBalanceRule,
	}
	for _, fix := range r.Fixes {
		f := Fix{Name: fix.Name, Description: fix.Description}
		for _, line := range fix.Lines {
			f.Lines = append(f.Lines, FixLine{
				Date:    line.Date.String(),
				Account: line.Account,
				Debit:   money(line.Debit),
				Credit:  money(line.Credit),
			})
		}
		v.Fixes = append(v.Fixes, f)
	}
	return v
}

// Detection is the display view of a format detection verdict.
type Detection struct {
	Format     string
	Confidence string
	Reasons    []string
}

// NewDetection builds the view from a detection result.
func NewDetection(d ledgerline.FormatDetection) *Detection {
	return &Detection{
		Format:     string(d.Format),
		Confidence: fmt.Sprintf("%.0f%%", d.Confidence*100),
		Reasons:    d.Reasons,
	}
}
