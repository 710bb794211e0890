package ledgerline

import (
	"testing"
)

func TestDetectAssetRegister(t *testing.T) {
	sheets := map[string][]Row{
		"Assets": {
			{"Asset": "Delivery Van", "Cost": "12000", "Useful Life": "12", "Acquisition Date": "2024-01-15"},
			{"Asset": "", "Cost": "n/a", "Useful Life": "", "Acquisition Date": ""},
		},
		"Notes": {
			{"Note": "nothing to see"},
		},
	}

	assets, reasons, warnings := DetectAssetRegister(sheets)
	if len(assets) != 1 {
		t.Fatalf("assets = %+v, want 1", assets)
	}
	a := assets[0]
	if a.Name != "Delivery Van" || !a.Cost.Equal(A(12000)) || a.UsefulLifeMonths != 12 {
		t.Errorf("parsed asset = %+v", a)
	}
	if a.AcquisitionDate.String() != "2024-01-15" {
		t.Errorf("AcquisitionDate = %s, want 2024-01-15", a.AcquisitionDate)
	}
	if a.Method != "straight_line" || a.Financing != FinancedCash {
		t.Errorf("defaults = %q/%q, want straight_line/cash", a.Method, a.Financing)
	}
	if len(reasons) != 1 {
		t.Errorf("reasons = %v, want one recognition reason", reasons)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one skipped-row warning", warnings)
	}
}

func TestDetectAssetRegister_NoRegister(t *testing.T) {
	sheets := map[string][]Row{
		"Summary": {{"Date": "2024-01-31", "Sales": "100"}},
	}
	assets, reasons, _ := DetectAssetRegister(sheets)
	if len(assets) != 0 || len(reasons) != 0 {
		t.Errorf("assets = %+v, reasons = %v, want none", assets, reasons)
	}
}

// Cost 12000 over 12 months acquired mid January, depreciating from the next
// month: one acquisition pair plus 12 monthly entries of 1000 each.
func TestGenerateAssetJournal_NextMonth(t *testing.T) {
	assets := []AssetRegisterRow{{
		ID: "A-1", Name: "Delivery Van",
		AcquisitionDate:  MustParseDate("2024-01-15"),
		Cost:             A(12000),
		UsefulLifeMonths: 12,
		Method:           "straight_line",
		Financing:        FinancedCash,
	}}

	lines, notices := GenerateAssetJournal(assets, StartNextMonth, Date{})
	if len(lines) != 2+2*12 {
		t.Fatalf("len(lines) = %d, want 26", len(lines))
	}

	acqDr, acqCr := lines[0], lines[1]
	if acqDr.Account != "Fixed Assets" || acqDr.Category != NonCurrentAsset || !acqDr.Debit.Equal(A(12000)) {
		t.Errorf("acquisition debit = %s", acqDr)
	}
	if acqCr.Account != "Cash" || acqCr.Category != CurrentAsset || !acqCr.Credit.Equal(A(12000)) {
		t.Errorf("acquisition credit = %s", acqCr)
	}
	if acqDr.Date.String() != "2024-01-15" {
		t.Errorf("acquisition date = %s, want 2024-01-15", acqDr.Date)
	}

	first := lines[2]
	if first.Date.String() != "2024-02-29" {
		t.Errorf("first depreciation date = %s, want 2024-02-29", first.Date)
	}
	if first.Account != "Depreciation Expense" || !first.Debit.Equal(A(1000)) {
		t.Errorf("first depreciation debit = %s", first)
	}
	if lines[3].Account != "Accumulated Depreciation" || !lines[3].Credit.Equal(A(1000)) {
		t.Errorf("first depreciation credit = %s", lines[3])
	}
	last := lines[len(lines)-2]
	if last.Date.String() != "2025-01-31" {
		t.Errorf("last depreciation date = %s, want 2025-01-31", last.Date)
	}

	var depreciated Amount
	for _, line := range lines[2:] {
		depreciated = depreciated.Add(line.Debit)
	}
	if !depreciated.Equal(A(12000)) {
		t.Errorf("schedule sums to %s, want cost 12000", depreciated)
	}
	if len(notices) != 2 {
		t.Errorf("notices = %v, want acquisition and schedule", notices)
	}
}

func TestGenerateAssetJournal_AcquisitionMonth(t *testing.T) {
	assets := []AssetRegisterRow{{
		ID: "A-1", Name: "Laptop",
		AcquisitionDate:  MustParseDate("2024-01-15"),
		Cost:             A(1200),
		UsefulLifeMonths: 12,
		Method:           "straight_line",
	}}
	lines, _ := GenerateAssetJournal(assets, StartAcquisitionMonth, Date{})
	if lines[2].Date.String() != "2024-01-31" {
		t.Errorf("first depreciation date = %s, want 2024-01-31", lines[2].Date)
	}
}

func TestGenerateAssetJournal_RemainderAbsorbedByLastMonth(t *testing.T) {
	assets := []AssetRegisterRow{{
		ID: "A-1", Name: "Printer",
		AcquisitionDate:  MustParseDate("2024-01-01"),
		Cost:             A(1000),
		UsefulLifeMonths: 3,
		Method:           "straight_line",
	}}
	lines, _ := GenerateAssetJournal(assets, StartNextMonth, Date{})
	// 1000/3 rounds to 333.33; the last month carries 333.34.
	if got := lines[2].Debit.String(); got != "333.33" {
		t.Errorf("first month = %s, want 333.33", got)
	}
	if got := lines[len(lines)-2].Debit.String(); got != "333.34" {
		t.Errorf("last month = %s, want 333.34", got)
	}
}

func TestGenerateAssetJournal_TruncatesAtEndDate(t *testing.T) {
	assets := []AssetRegisterRow{{
		ID: "A-1", Name: "Van",
		AcquisitionDate:  MustParseDate("2024-01-15"),
		Cost:             A(12000),
		UsefulLifeMonths: 12,
		Method:           "straight_line",
	}}
	lines, _ := GenerateAssetJournal(assets, StartNextMonth, MustParseDate("2024-06-30"))
	// Acquisition pair plus February through June.
	if len(lines) != 2+2*5 {
		t.Errorf("len(lines) = %d, want 12", len(lines))
	}
}

func TestGenerateAssetJournal_FinancingVariants(t *testing.T) {
	tests := []struct {
		financing    FinancingType
		wantAccount  string
		wantCategory Category
	}{
		{FinancedCash, "Cash", CurrentAsset},
		{FinancedPayable, "Accounts Payable", CurrentLiability},
		{FinancedLoan, "Loan Payable", NonCurrentLiability},
	}
	for _, tt := range tests {
		t.Run(string(tt.financing), func(t *testing.T) {
			assets := []AssetRegisterRow{{
				ID: "A-1", Name: "Machine",
				AcquisitionDate:  MustParseDate("2024-03-01"),
				Cost:             A(5000),
				UsefulLifeMonths: 0, // no schedule, acquisition only
				Method:           "straight_line",
				Financing:        tt.financing,
			}}
			lines, _ := GenerateAssetJournal(assets, StartNextMonth, Date{})
			if len(lines) != 2 {
				t.Fatalf("len(lines) = %d, want 2", len(lines))
			}
			cr := lines[1]
			if cr.Account != tt.wantAccount || cr.Category != tt.wantCategory {
				t.Errorf("credit = %s, want %s (%s)", cr, tt.wantAccount, tt.wantCategory)
			}
		})
	}
}
