package ledgerline

import (
	"fmt"
	"strings"
	"testing"
)

func inferred(t *testing.T, rows []Row) []ColumnInfo {
	t.Helper()
	return InferColumns(rows, ColumnNames(rows))
}

func TestDetectFormat_Long(t *testing.T) {
	rows := []Row{
		{"Date": "2024-01-01", "Account": "Sales", "Debit": "", "Credit": "100"},
		{"Date": "2024-01-01", "Account": "Cash", "Debit": "100", "Credit": ""},
		{"Date": "2024-01-02", "Account": "Rent", "Debit": "50", "Credit": ""},
		{"Date": "2024-01-02", "Account": "Cash", "Debit": "", "Credit": "50"},
	}
	d := DetectFormat(rows, inferred(t, rows))
	if d.Format != FormatLong {
		t.Fatalf("Format = %s (%.2f), want long; reasons: %v", d.Format, d.Confidence, d.Reasons)
	}
	if d.Confidence <= 0.5 {
		t.Errorf("Confidence = %v, want > 0.5", d.Confidence)
	}
	if !d.Metrics.HasDebitCredit {
		t.Error("HasDebitCredit = false with explicit Debit/Credit columns")
	}
	found := false
	for _, r := range d.Reasons {
		if strings.Contains(r, "debit/credit") {
			found = true
		}
	}
	if !found {
		t.Errorf("reasons %v omit the debit/credit signal", d.Reasons)
	}
}

func TestDetectFormat_Wide(t *testing.T) {
	var rows []Row
	for i := 1; i <= 6; i++ {
		rows = append(rows, Row{
			"Date":  fmt.Sprintf("2024-%02d-28", i),
			"Sales": "1000", "Rent": "400", "Payroll": "300", "Marketing": "150", "Interest": "20",
		})
	}
	d := DetectFormat(rows, inferred(t, rows))
	if d.Format != FormatWide {
		t.Fatalf("Format = %s (%.2f), want wide; reasons: %v", d.Format, d.Confidence, d.Reasons)
	}
	if !d.Metrics.OneRowPerPeriod {
		t.Error("OneRowPerPeriod = false for monthly rows")
	}
	if d.Metrics.CategoryLikeCols < 2 {
		t.Errorf("CategoryLikeCols = %d, want >= 2", d.Metrics.CategoryLikeCols)
	}
}

func TestDetectFormat_NoSignal(t *testing.T) {
	rows := []Row{
		{"Note": "hello"},
		{"Note": "world"},
	}
	d := DetectFormat(rows, inferred(t, rows))
	if d.Format != FormatUnknown || d.Confidence != 0 {
		t.Fatalf("Format = %s (%.2f), want unknown with zero confidence", d.Format, d.Confidence)
	}
	found := false
	for _, r := range d.Reasons {
		if strings.Contains(r, "no format signal") {
			found = true
		}
	}
	if !found {
		t.Errorf("reasons %v omit the no-signal explanation", d.Reasons)
	}
}

func TestDetectFormat_TypeColumn(t *testing.T) {
	rows := []Row{
		{"Date": "2024-01-01", "Type": "Income", "Amount": "100", "Memo": "invoice"},
		{"Date": "2024-01-01", "Type": "Expense", "Amount": "40", "Memo": "stamps"},
		{"Date": "2024-01-02", "Type": "Expense", "Amount": "60", "Memo": "coffee"},
	}
	d := DetectFormat(rows, inferred(t, rows))
	if !d.Metrics.HasTypeColumn {
		t.Error("HasTypeColumn = false for an income/expense type column")
	}
	if d.Format != FormatLong {
		t.Errorf("Format = %s (%.2f), want long; reasons: %v", d.Format, d.Confidence, d.Reasons)
	}
}
