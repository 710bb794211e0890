package ledgerline

import (
	"strings"
	"testing"
)

func TestDetectLiabilities(t *testing.T) {
	sheets := map[string][]Row{
		"Balances": {
			{"Bank Loan": "10000", "Accounts Payable": "2500", "Deferred Tax Expense": "300", "Sales": "900"},
			{"Bank Loan": "9500", "Accounts Payable": "2100", "Deferred Tax Expense": "300", "Sales": "1100"},
		},
	}

	result, signals := DetectLiabilities(sheets)
	if !result.Detected {
		t.Fatalf("Detected = false, reasons: %v", result.Reasons)
	}
	if len(signals) != 2 {
		t.Fatalf("signals = %+v, want loan and payable only", signals)
	}

	byAccount := make(map[string]LiabilitySignal, len(signals))
	for _, s := range signals {
		byAccount[s.Account] = s
	}

	loan, ok := byAccount["Bank Loan"]
	if !ok {
		t.Fatal("no signal for Bank Loan")
	}
	// The latest parseable amount in the column wins.
	if !loan.Amount.Equal(A(9500)) || loan.Row != 2 {
		t.Errorf("loan signal = %+v, want amount 9500 from row 2", loan)
	}

	payable, ok := byAccount["Accounts Payable"]
	if !ok {
		t.Fatal("no signal for Accounts Payable")
	}
	if payable.Category != CurrentLiability {
		t.Errorf("payable category = %s, want current_liability", payable.Category)
	}

	guarded := false
	for _, reason := range result.Reasons {
		if strings.Contains(reason, "deferred tax") {
			guarded = true
		}
	}
	if !guarded {
		t.Errorf("deferred tax exclusion not surfaced in reasons: %v", result.Reasons)
	}
}

func TestDetectLiabilities_None(t *testing.T) {
	sheets := map[string][]Row{
		"Summary": {{"Date": "2024-01-31", "Sales": "100", "Rent": "50"}},
	}
	result, signals := DetectLiabilities(sheets)
	if result.Detected || len(signals) != 0 {
		t.Errorf("Detected = %v, signals = %+v, want none", result.Detected, signals)
	}
}

func TestGenerateLiabilityJournal(t *testing.T) {
	signals := []LiabilitySignal{
		{Sheet: "Balances", Column: "Bank Loan", Row: 2, Account: "Bank Loan",
			Category: NonCurrentLiability, Amount: A(9500)},
		{Sheet: "Balances", Column: "Accounts Payable", Row: 2, Account: "Accounts Payable",
			Category: CurrentLiability, Amount: A(2100)},
		{Sheet: "Balances", Column: "Warranty Liability", Row: 1, Account: "Warranty Liability",
			Category: CurrentLiability, Amount: A(400)},
	}
	on := MustParseDate("2024-12-31")

	lines, assumptions := GenerateLiabilityJournal(signals, on)
	if len(lines) != 6 {
		t.Fatalf("len(lines) = %d, want one debit/credit pair per signal", len(lines))
	}
	if len(assumptions) != 3 {
		t.Fatalf("assumptions = %v, want one per signal", assumptions)
	}

	// A loan is cash received; a payable is an expense incurred.
	if lines[0].Account != "Cash" || lines[0].Category != CurrentAsset {
		t.Errorf("loan counterpart = %s, want Dr Cash", lines[0])
	}
	if lines[2].Account != "Operating Expenses" || lines[2].Category != OperatingExpense {
		t.Errorf("payable counterpart = %s, want Dr Operating Expenses", lines[2])
	}
	// No keyword counterpart: falls back to other expense with an assumption.
	if lines[4].Account != "Other Expense" || lines[4].Category != OtherExpense {
		t.Errorf("fallback counterpart = %s, want Dr Other Expense", lines[4])
	}
	if !strings.Contains(assumptions[2], "no obvious counterpart") {
		t.Errorf("fallback assumption = %q", assumptions[2])
	}

	// Every pair balances and lands on the recognition date.
	var dr, cr Amount
	for _, line := range lines {
		if line.Date != on {
			t.Errorf("line %s dated %s, want %s", line.Account, line.Date, on)
		}
		dr = dr.Add(line.Debit)
		cr = cr.Add(line.Credit)
	}
	if !dr.Equal(cr) {
		t.Errorf("generated lines do not balance: Dr %s / Cr %s", dr, cr)
	}
}
