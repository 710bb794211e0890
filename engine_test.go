package ledgerline

import (
	"errors"
	"strings"
	"testing"
)

// monthlySheets is a wide primary sheet plus a loan-financed asset register.
func monthlySheets() map[string][]Row {
	return map[string][]Row{
		"Summary": {
			{"Date": "2024-01-31", "Sales": "5000", "Rent": "1000"},
			{"Date": "2024-02-29", "Sales": "6000", "Rent": "1000"},
			{"Date": "2024-03-31", "Sales": "7000", "Rent": "1000"},
		},
		"Assets": {
			{"Asset": "Delivery Van", "Cost": "12000", "Useful Life": "12",
				"Acquisition Date": "2024-01-15", "Financing": "loan"},
		},
	}
}

func TestEngine_Generate(t *testing.T) {
	var milestones []int
	cfg := EngineConfig{
		Options:  ReportOptions{CompanyName: "Acme Trading"},
		Progress: func(percent int, _ string) { milestones = append(milestones, percent) },
	}
	engine, err := NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}

	report, run, err := engine.Generate(monthlySheets(), "Summary")
	if err != nil {
		t.Fatalf("Generate: %v (stage %s, reconciliation %s)", err, run.Stage, run.Reconciliation.Status)
	}
	if run.Stage != StageReported {
		t.Fatalf("Stage = %s, want reported", run.Stage)
	}

	if run.Detection.Format != FormatWide {
		t.Errorf("detected format = %s, want wide", run.Detection.Format)
	}

	// The single-sided import was balanced by the auto-applied clearing fix.
	if run.Reconciliation.Status != StatusBalanced {
		t.Errorf("final reconciliation = %s, want balanced", run.Reconciliation.Status)
	}
	if !report.BalanceSheet.IsBalanced {
		t.Error("report balance sheet is not balanced")
	}
	if !report.ProfitAndLoss.TotalRevenue.Equal(A(18000)) {
		t.Errorf("TotalRevenue = %s, want 18000", report.ProfitAndLoss.TotalRevenue)
	}
	// Van cost entered the books; two months of the schedule fit the period.
	if !report.BalanceSheet.NonCurrentAssets.Equal(A(10000)) {
		t.Errorf("NonCurrentAssets = %s, want 10000 (12000 cost less 2000 depreciation)",
			report.BalanceSheet.NonCurrentAssets)
	}
	if !report.BalanceSheet.NonCurrentLiabilities.Equal(A(12000)) {
		t.Errorf("NonCurrentLiabilities = %s, want the loan financing", report.BalanceSheet.NonCurrentLiabilities)
	}

	if report.CompanyName != "Acme Trading" || report.Currency != "USD" {
		t.Errorf("header = %q/%q, want company name and default currency", report.CompanyName, report.Currency)
	}
	if report.RunID == "" {
		t.Error("RunID is empty")
	}
	if report.StartDate.String() != "2024-01-15" || report.EndDate.String() != "2024-03-31" {
		t.Errorf("period = %s..%s", report.StartDate, report.EndDate)
	}

	// The auto fallback to local asset generation is announced.
	fallback := false
	for _, n := range run.Notices {
		if strings.Contains(n, "falling back to local journal generation") {
			fallback = true
		}
	}
	if !fallback {
		t.Errorf("notices %v omit the asset-mode fallback", run.Notices)
	}
	if len(report.AuditTrail) == 0 {
		t.Error("report carries no audit trail")
	}

	for _, want := range []int{10, 40, 60, 80, 100} {
		found := false
		for _, got := range milestones {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("milestones %v omit %d%%", milestones, want)
		}
	}
}

func TestEngine_BeginRequiresPrimarySheet(t *testing.T) {
	engine, err := NewEngine(EngineConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Begin(map[string][]Row{"Summary": nil}, "Summary"); err == nil {
		t.Error("empty primary sheet accepted")
	}
	if _, err := engine.Begin(monthlySheets(), "Nope"); err == nil {
		t.Error("missing primary sheet accepted")
	}
}

func TestEngine_PreviewRejectsUnknownFormat(t *testing.T) {
	engine, err := NewEngine(EngineConfig{})
	if err != nil {
		t.Fatal(err)
	}
	sheets := map[string][]Row{"Data": {{"Note": "hello"}, {"Note": "world"}}}
	run, err := engine.Begin(sheets, "Data")
	if err != nil {
		t.Fatal(err)
	}
	if run.Detection.Format != FormatUnknown {
		t.Fatalf("Format = %s, want unknown", run.Detection.Format)
	}
	var cfgErr ConfigurationError
	if err := engine.Preview(run); !errors.As(err, &cfgErr) {
		t.Errorf("Preview error = %v, want ConfigurationError", err)
	}
}

func TestEngine_SupplementSkipsExistingAssetEntries(t *testing.T) {
	engine, err := NewEngine(EngineConfig{})
	if err != nil {
		t.Fatal(err)
	}
	sheets := monthlySheets()
	// The primary already carries a depreciation column: the register must not
	// generate on top of it.
	sheets["Summary"] = []Row{
		{"Date": "2024-01-31", "Sales": "5000", "Rent": "1000", "Depreciation": "100"},
		{"Date": "2024-02-29", "Sales": "6000", "Rent": "1000", "Depreciation": "100"},
	}

	run, err := engine.Begin(sheets, "Summary")
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Preview(run); err != nil {
		t.Fatal(err)
	}

	skipped := false
	for _, n := range run.Notices {
		if strings.Contains(n, "generation skipped") {
			skipped = true
		}
	}
	if !skipped {
		t.Errorf("notices %v omit the skip", run.Notices)
	}
	if run.Journal.HasAccountKeyword("fixed asset") {
		t.Error("acquisition entries were generated despite existing asset entries")
	}
}

// fakeAssetModule is a canned external asset source.
type fakeAssetModule struct {
	flows bool
	lines []CanonicalTransaction
	err   error
}

func (m fakeAssetModule) Name() string              { return "fake" }
func (m fakeAssetModule) FlowsToBalanceSheet() bool { return m.flows }
func (m fakeAssetModule) Ingest([]AssetRegisterRow, Date) ([]CanonicalTransaction, error) {
	return m.lines, m.err
}

func TestEngine_ExternalAssetModule(t *testing.T) {
	module := fakeAssetModule{
		flows: true,
		lines: []CanonicalTransaction{
			{Date: MustParseDate("2024-01-15"), Account: "Fixed Assets", Category: NonCurrentAsset,
				Debit: A(12000), Provenance: Provenance{SourceSheet: "module", SourceAssetID: "A-1"}},
			{Date: MustParseDate("2024-01-15"), Account: "Loan Payable", Category: NonCurrentLiability,
				Credit: A(12000), Provenance: Provenance{SourceSheet: "module", SourceAssetID: "A-1"}},
		},
	}
	engine, err := NewEngine(EngineConfig{AssetModule: module})
	if err != nil {
		t.Fatal(err)
	}

	run, err := engine.Begin(monthlySheets(), "Summary")
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Preview(run); err != nil {
		t.Fatal(err)
	}

	ingested := false
	for _, n := range run.Notices {
		if strings.Contains(n, "ingested from external module") {
			ingested = true
		}
	}
	if !ingested {
		t.Errorf("notices %v omit the external ingestion", run.Notices)
	}
	// The module's lines, not a locally generated schedule.
	if run.Journal.HasAccountKeyword("accumulated depreciation") {
		t.Error("local schedule generated despite the external module")
	}
	if !run.Journal.HasAccountKeyword("fixed asset") {
		t.Error("module lines missing from the journal")
	}
}

func TestNewEngine_ExternalModeRequiresModule(t *testing.T) {
	if _, err := NewEngine(EngineConfig{AssetMode: AssetExternal}); err == nil {
		t.Error("external asset mode without a module accepted")
	}
}

func TestEngine_BuildReportRequiresReconciledRun(t *testing.T) {
	engine, err := NewEngine(EngineConfig{})
	if err != nil {
		t.Fatal(err)
	}
	run, err := engine.Begin(monthlySheets(), "Summary")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := engine.BuildReport(run); err == nil {
		t.Error("report built from an unreconciled run")
	}
}
