package ledgerline

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one raw record of an uploaded dataset: cell values keyed by column
// name. Values are whatever the loader produced (string, float64, bool,
// time.Time, nil).
type Row map[string]any

// ColumnType classifies the dominant value type of a column.
type ColumnType string

const (
	ColumnNumber ColumnType = "number"
	ColumnDate   ColumnType = "date"
	ColumnString ColumnType = "string"
)

// ColumnInfo is the inferred metadata of one dataset column.
type ColumnInfo struct {
	Name      string
	Type      ColumnType
	NullCount int // cells that were empty or unparseable
}

const (
	// inferSampleSize caps how many non-empty values are sampled per column.
	inferSampleSize = 20
	// inferThreshold is the share of sampled values that must parse as a type
	// for the column to be classified as that type.
	inferThreshold = 0.7
)

// numericReplacer strips currency symbols and thousands separators before
// numeric parsing.
var numericReplacer = strings.NewReplacer(
	"$", "", "€", "", "£", "", "¥", "", "₹", "",
	",", "", " ", "", " ", "",
)

// NormalizeNumeric parses a loosely formatted numeric cell. It strips
// currency symbols and thousands separators and treats parenthesized numbers
// as negative. A cell counts as numeric only if it parses after
// normalization; nothing is ever thrown for garbage input.
func NormalizeNumeric(v any) (Amount, bool) {
	switch n := v.(type) {
	case nil:
		return Amount{}, false
	case float64:
		return A(n), true
	case float32:
		return A(n), true
	case int:
		return A(n), true
	case int64:
		return A(n), true
	case decimal.Decimal:
		return A(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return Amount{}, false
		}
		negative := false
		if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
			negative = true
			s = s[1 : len(s)-1]
		}
		s = strings.TrimSpace(numericReplacer.Replace(s))
		if s == "" || s == "-" {
			return Amount{}, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return Amount{}, false
		}
		if negative {
			d = d.Neg()
		}
		return A(d), true
	}
	return Amount{}, false
}

// NormalizeDate parses a date-like cell value.
func NormalizeDate(v any) (Date, bool) {
	switch d := v.(type) {
	case nil:
		return Date{}, false
	case Date:
		return d, d != Date{}
	case time.Time:
		return NewDate(d.Date()), true
	case string:
		parsed, err := ParseDate(d)
		if err != nil {
			return Date{}, false
		}
		return parsed, true
	}
	return Date{}, false
}

// NormalizeBool parses a boolean-ish cell value ("yes", "true", "1", ...).
func NormalizeBool(v any) (value, ok bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "y", "1":
			return true, true
		case "false", "no", "n", "0":
			return false, true
		}
	}
	return false, false
}

// CellEmpty reports whether the cell has no usable content.
func CellEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// InferColumns infers the type of every column by sampling up to 20 non-empty
// values: a column is a number (or date) column when at least 70% of the
// sample parses as such, otherwise it is a string column. Empty and
// unparseable cells count toward the column's null count.
func InferColumns(rows []Row, columns []string) []ColumnInfo {
	infos := make([]ColumnInfo, 0, len(columns))
	for _, name := range columns {
		info := ColumnInfo{Name: name, Type: ColumnString}
		var sampled, numeric, dates int
		for _, row := range rows {
			v, present := row[name]
			if !present || CellEmpty(v) {
				info.NullCount++
				continue
			}
			if sampled >= inferSampleSize {
				continue
			}
			sampled++
			if _, ok := NormalizeNumeric(v); ok {
				numeric++
				continue // a numeric cell is not also a date cell
			}
			if _, ok := NormalizeDate(v); ok {
				dates++
			} else {
				info.NullCount++
			}
		}
		if sampled > 0 {
			switch {
			case float64(numeric)/float64(sampled) >= inferThreshold:
				info.Type = ColumnNumber
			case float64(dates)/float64(sampled) >= inferThreshold:
				info.Type = ColumnDate
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// ColumnNames extracts the union of column names from the rows, in first-seen
// order, so that downstream processing is deterministic even for map-keyed rows.
func ColumnNames(rows []Row) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		// map iteration order is random: collect then sort new names per row.
		var fresh []string
		for name := range row {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				fresh = append(fresh, name)
			}
		}
		sort.Strings(fresh)
		names = append(names, fresh...)
	}
	return names
}
