package ledgerline

import (
	"fmt"
	"strings"
)

// Format identifies the shape of an uploaded dataset.
type Format string

const (
	FormatWide    Format = "wide"    // one row per period, multiple measure columns
	FormatLong    Format = "long"    // one row per transaction
	FormatUnknown Format = "unknown"
)

// DatasetMetrics are the precomputed statistics the detector rules are
// evaluated against. Computed once per upload.
type DatasetMetrics struct {
	RowCount           int     `json:"rowCount"`
	ColumnCount        int     `json:"columnCount"`
	NumericColumnRatio float64 `json:"numericColumnRatio"`
	DateColumnCount    int     `json:"dateColumnCount"`
	RepeatedDateRows   int     `json:"repeatedDateRows"` // rows sharing a date with another row
	HasDebitCredit     bool    `json:"hasDebitCredit"`
	HasTypeColumn      bool    `json:"hasTypeColumn"` // income/expense type signal
	CategoryLikeCols   int     `json:"categoryLikeNumericColumns"`
	OneRowPerPeriod    bool    `json:"oneRowPerPeriod"`
}

// FormatDetection is the advisory result of format classification. The UI may
// override the detected format; the engine accepts a forced mode as-is.
type FormatDetection struct {
	Format     Format         `json:"format"`
	Confidence float64        `json:"confidence"`
	Reasons    []string       `json:"reasons"`
	Metrics    DatasetMetrics `json:"metrics"`
}

// detectRule is one scored heuristic: when the predicate fires against the
// metrics, its weight is added to the score of the format it votes for and
// its reason is recorded verbatim.
type detectRule struct {
	votes  Format
	weight float64
	reason string
	fires  func(DatasetMetrics) bool
}

var detectRules = []detectRule{
	{FormatLong, 3.0, "explicit debit/credit columns present",
		func(m DatasetMetrics) bool { return m.HasDebitCredit }},
	{FormatLong, 2.0, "income/expense type column present",
		func(m DatasetMetrics) bool { return m.HasTypeColumn }},
	{FormatLong, 1.5, "many rows share the same date (several transactions per day)",
		func(m DatasetMetrics) bool { return m.RowCount > 0 && float64(m.RepeatedDateRows)/float64(m.RowCount) > 0.3 }},
	{FormatLong, 1.0, "low numeric-column ratio (mostly descriptive columns)",
		func(m DatasetMetrics) bool { return m.NumericColumnRatio > 0 && m.NumericColumnRatio < 0.4 }},
	{FormatWide, 2.5, "one row per period (dates never repeat across rows)",
		func(m DatasetMetrics) bool { return m.OneRowPerPeriod && m.RowCount > 1 }},
	{FormatWide, 2.0, "high numeric-column ratio with a single date column",
		func(m DatasetMetrics) bool { return m.NumericColumnRatio >= 0.6 && m.DateColumnCount <= 1 }},
	{FormatWide, 1.5, "several category-like numeric columns",
		func(m DatasetMetrics) bool { return m.CategoryLikeCols >= 2 }},
	{FormatWide, 0.5, "wide table shape (more columns than typical transaction logs)",
		func(m DatasetMetrics) bool { return m.ColumnCount >= 6 && m.NumericColumnRatio >= 0.5 }},
}

// typeColumnValues are the values that mark an income/expense type column.
var typeColumnValues = map[string]struct{}{"income": {}, "expense": {}}

// ComputeMetrics derives the detector metrics from the inferred columns and
// raw rows.
func ComputeMetrics(rows []Row, columns []ColumnInfo) DatasetMetrics {
	m := DatasetMetrics{RowCount: len(rows), ColumnCount: len(columns)}
	if len(columns) == 0 {
		return m
	}

	var numericCols int
	var dateColumn string
	for _, col := range columns {
		lower := strings.ToLower(col.Name)
		switch col.Type {
		case ColumnNumber:
			numericCols++
			if _, ok := GuessCategory(col.Name); ok {
				m.CategoryLikeCols++
			}
			if lower == "debit" || lower == "credit" {
				m.HasDebitCredit = true
			}
		case ColumnDate:
			m.DateColumnCount++
			if dateColumn == "" {
				dateColumn = col.Name
			}
		case ColumnString:
			if lower == "type" || lower == "transaction type" {
				m.HasTypeColumn = columnMatchesTypeValues(rows, col.Name)
			}
			if lower == "debit" || lower == "credit" {
				// All-empty debit or credit columns infer as string; the header
				// is still a strong long-format signal.
				m.HasDebitCredit = true
			}
		}
	}
	m.NumericColumnRatio = float64(numericCols) / float64(len(columns))

	if dateColumn != "" {
		seen := make(map[Date]int)
		for _, row := range rows {
			if d, ok := NormalizeDate(row[dateColumn]); ok {
				seen[d]++
			}
		}
		for _, count := range seen {
			if count > 1 {
				m.RepeatedDateRows += count
			}
		}
		m.OneRowPerPeriod = len(seen) == m.RowCount && m.RowCount > 0
	}
	return m
}

func columnMatchesTypeValues(rows []Row, column string) bool {
	var sampled, matched int
	for _, row := range rows {
		v, ok := row[column].(string)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		sampled++
		if _, ok := typeColumnValues[strings.ToLower(strings.TrimSpace(v))]; ok {
			matched++
		}
		if sampled >= inferSampleSize {
			break
		}
	}
	return sampled > 0 && float64(matched)/float64(sampled) >= inferThreshold
}

// DetectFormat classifies a dataset as wide, long, or unknown by evaluating
// the ordered rule set against the precomputed metrics. Every rule that fires
// is recorded verbatim in Reasons for user-facing transparency.
func DetectFormat(rows []Row, columns []ColumnInfo) FormatDetection {
	metrics := ComputeMetrics(rows, columns)
	detection := FormatDetection{Format: FormatUnknown, Metrics: metrics}

	var wide, long float64
	for _, rule := range detectRules {
		if !rule.fires(metrics) {
			continue
		}
		detection.Reasons = append(detection.Reasons, rule.reason)
		switch rule.votes {
		case FormatWide:
			wide += rule.weight
		case FormatLong:
			long += rule.weight
		}
	}

	total := wide + long
	if total == 0 {
		detection.Confidence = 0
		detection.Reasons = append(detection.Reasons, "no format signal found")
		return detection
	}

	winner, score := FormatWide, wide
	if long > wide {
		winner, score = FormatLong, long
	}
	detection.Confidence = score / total
	if wide == long || detection.Confidence < 0.5 {
		// A tie never reaches 0.5 by construction, but keep the guard explicit.
		detection.Format = FormatUnknown
		detection.Confidence = 0.45
		detection.Reasons = append(detection.Reasons, "conflicting format signals")
		return detection
	}
	detection.Format = winner
	detection.Reasons = append(detection.Reasons,
		fmt.Sprintf("classified as %s with confidence %.2f", winner, detection.Confidence))
	return detection
}
