package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"

	"github.com/ledgerline/ledgerline"
)

func sampleReport(t *testing.T) *ledgerline.FinancialReport {
	t.Helper()
	j := ledgerline.NewJournal(
		ledgerline.CanonicalTransaction{
			Date: ledgerline.MustParseDate("2024-01-15"), Account: "Cash",
			Category: ledgerline.CurrentAsset, Debit: ledgerline.A(5000),
		},
		ledgerline.CanonicalTransaction{
			Date: ledgerline.MustParseDate("2024-01-15"), Account: "Sales",
			Category: ledgerline.Revenue, Credit: ledgerline.A(5000),
		},
		ledgerline.CanonicalTransaction{
			Date: ledgerline.MustParseDate("2024-02-10"), Account: "Rent",
			Category: ledgerline.OperatingExpense, Debit: ledgerline.A(1200),
		},
		ledgerline.CanonicalTransaction{
			Date: ledgerline.MustParseDate("2024-02-10"), Account: "Cash",
			Category: ledgerline.CurrentAsset, Credit: ledgerline.A(1200),
		},
	)
	validation := ledgerline.ValidateJournal(j)
	if err := validation.Err(); err != nil {
		t.Fatalf("sample journal should validate: %v", err)
	}
	opts := ledgerline.ReportOptions{CompanyName: "Acme Trading"}
	rec := ledgerline.Reconcile(j, validation, opts)
	if err := rec.Err(); err != nil {
		t.Fatalf("sample journal should reconcile: %v", err)
	}
	r := ledgerline.NewFinancialReport(j, rec, opts)
	r.GeneratedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return r
}

// assertMarkdown fails when the rendered output is not parseable markdown or
// still carries template syntax.
func assertMarkdown(t *testing.T, got string) {
	t.Helper()
	if strings.Contains(got, "{{") || strings.Contains(got, "}}") {
		t.Fatalf("output still contains template syntax:\n%s", got)
	}
	if strings.Contains(got, "error ") && strings.Contains(got, "template") {
		t.Fatalf("template error leaked into output:\n%s", got)
	}
	md := goldmark.New()
	if node := md.Parser().Parse(text.NewReader([]byte(got))); node == nil {
		t.Fatalf("output did not parse as markdown:\n%s", got)
	}
}

func TestRenderReport(t *testing.T) {
	got := RenderReport(NewReport(sampleReport(t)))
	assertMarkdown(t, got)

	for _, want := range []string{
		"Financial Report — Acme Trading",
		"## Profit & Loss",
		"## Balance Sheet",
		"## Cash Flow",
		"## Ratios",
		"$5,000.00", // revenue in display currency
		"$3,800.00", // net income
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered report missing %q:\n%s", want, got)
		}
	}
}

func TestRenderReconciliationWithFix(t *testing.T) {
	// Single-sided import: only debits.
	j := ledgerline.NewJournal(
		ledgerline.CanonicalTransaction{
			Date: ledgerline.MustParseDate("2024-01-10"), Account: "Rent",
			Category: ledgerline.OperatingExpense, Debit: ledgerline.A(800),
		},
	)
	validation := ledgerline.ValidateJournal(j)
	rec := ledgerline.Reconcile(j, validation, ledgerline.ReportOptions{})
	if rec.Status != ledgerline.StatusSingleEntry {
		t.Fatalf("Status = %q, want %q", rec.Status, ledgerline.StatusSingleEntry)
	}

	got := RenderReconciliation(NewReconciliation(rec, "USD"))
	assertMarkdown(t, got)

	for _, want := range []string{
		"single_entry_imbalance",
		"## Proposed Fixes",
		"opening_balance_initialization",
		"Opening Balance Clearing",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered reconciliation missing %q:\n%s", want, got)
		}
	}
}

func TestRenderDetection(t *testing.T) {
	v := &Detection{Format: "wide", Confidence: "83%", Reasons: []string{"one row per period"}}
	got := RenderDetection(v)
	assertMarkdown(t, got)
	if !strings.Contains(got, "**wide**") || !strings.Contains(got, "one row per period") {
		t.Errorf("rendered detection missing verdict or reasons:\n%s", got)
	}
}
