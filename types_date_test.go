package ledgerline

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-15", "2024-01-15"},
		{"2024-1-5", "2024-01-05"},
		{"2024/01/05", "2024-01-05"},
		{"1/5/2024", "2024-01-05"},
		{"Jan 5, 2024", "2024-01-05"},
		{"5 Jan 2024", "2024-01-05"},
		{"2024-01-15T10:30:00Z", "2024-01-15"},
		{"2024-01-15 10:30:00", "2024-01-15"},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "soon", "15/15/2024"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) succeeded", bad)
		}
	}
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.January, 31)
	if got := d.Add(1).String(); got != "2024-02-01" {
		t.Errorf("Add(1) = %s", got)
	}
	if got := d.StartOfMonth().String(); got != "2024-01-01" {
		t.Errorf("StartOfMonth = %s", got)
	}
	if got := NewDate(2024, time.February, 10).EndOfMonth().String(); got != "2024-02-29" {
		t.Errorf("EndOfMonth = %s, want leap-day", got)
	}
	if got := NewDate(2024, time.December, 15).AddMonth(1).String(); got != "2025-01-15" {
		t.Errorf("AddMonth(1) across year = %s", got)
	}
	if !NewDate(2024, time.March, 1).After(NewDate(2024, time.February, 29)) {
		t.Error("After() misordered adjacent dates")
	}
	if !(Date{}).IsZero() || d.IsZero() {
		t.Error("IsZero misreports")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	in := MustParseDate("2024-06-30")
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `"2024-06-30"` {
		t.Fatalf("marshaled as %s", raw)
	}
	var out Date
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip = %s, want %s", out, in)
	}
	if err := json.Unmarshal([]byte(`"June 30"`), &out); err == nil {
		t.Error("loose date accepted in data file")
	}
}
