package ledgerline

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeJournal(t *testing.T) {
	j := NewJournal(
		cr("2024-01-02", "Sales", Revenue, 1000),
		dr("2024-01-01", "Cash", CurrentAsset, 1000),
	)

	var buf bytes.Buffer
	if err := EncodeJournal(&buf, j); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("encoded %d lines, want 2", len(lines))
	}
	// Chronological order, zero side omitted, amounts unquoted.
	if !strings.Contains(lines[0], `"date":"2024-01-01"`) {
		t.Errorf("first line = %s, want the earlier date first", lines[0])
	}
	if !strings.Contains(lines[0], `"debit":1000`) || strings.Contains(lines[0], `"credit"`) {
		t.Errorf("first line = %s, want unquoted debit and no credit key", lines[0])
	}
}

func TestDecodeJournal_RoundTrip(t *testing.T) {
	in := NewJournal(
		dr("2024-01-01", "Cash", CurrentAsset, 1234.56),
		cr("2024-01-01", "Sales", Revenue, 1234.56),
		CanonicalTransaction{
			Date: MustParseDate("2024-02-29"), Account: "Fixed Assets", Category: NonCurrentAsset,
			Debit: A(500), Description: "Acquisition of Van",
			Provenance: Provenance{SourceSheet: "Assets", SourceAssetID: "A-1", SourceRow: 3},
		},
	)

	var first bytes.Buffer
	if err := EncodeJournal(&first, in); err != nil {
		t.Fatal(err)
	}
	out, err := DecodeJournal(&first)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != in.Len() {
		t.Fatalf("decoded %d lines, want %d", out.Len(), in.Len())
	}
	for i, want := range in.All() {
		got := out.All()[i]
		if got.String() != want.String() || got.Provenance != want.Provenance || got.Description != want.Description {
			t.Errorf("line %d = %#v, want %#v", i, got, want)
		}
	}

	// Canonical: re-encoding reproduces the bytes.
	if err := EncodeJournal(&first, in); err != nil {
		t.Fatal(err)
	}
	var second bytes.Buffer
	if err := EncodeJournal(&second, out); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Error("re-encoded journal differs from the original encoding")
	}
}

func TestDecodeJournal_SkipsEmptyLines(t *testing.T) {
	input := `{"date":"2024-01-01","account":"Cash","category":"current_asset","debit":10}

{"date":"2024-01-02","account":"Sales","category":"revenue","credit":10}
`
	j, err := DecodeJournal(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if j.Len() != 2 {
		t.Errorf("Len() = %d, want 2", j.Len())
	}
}

func TestDecodeJournal_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // substring of the error
	}{
		{
			name:  "malformed json",
			input: `{"date":"2024-01-01","account":` + "\n",
			want:  "line 1",
		},
		{
			name: "unknown category",
			input: `{"date":"2024-01-01","account":"Cash","category":"current_asset","debit":10}
{"date":"2024-01-02","account":"X","category":"slush_fund","debit":5}
`,
			want: "line 2",
		},
		{
			name:  "loose date format",
			input: `{"date":"Jan 1, 2024","account":"Cash","category":"current_asset","debit":10}` + "\n",
			want:  "line 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJournal(strings.NewReader(tt.input))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
