package ledgerline

import "fmt"

// TransformWide turns a wide dataset (one row per period, one measure per
// column) into canonical journal lines. For each row and each configured
// income/expense column it emits one line whose sign follows accounting
// convention: income posts a credit, expense posts a debit. Account and
// category come from the per-column mappings or the column name itself.
//
// The transformer is pure and deterministic: identical rows and configuration
// always produce the identical line list. Rows or cells that do not parse are
// skipped and recorded as warnings, never errors.
func TransformWide(rows []Row, cfg WideConversionConfig) (*Journal, []string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var lines []CanonicalTransaction
	var warnings []string

	emit := func(rowIdx int, row Row, date Date, column string, side Side) {
		raw, present := row[column]
		if !present || CellEmpty(raw) {
			warnings = append(warnings, fmt.Sprintf("row %d: column %q is empty, skipped", rowIdx+1, column))
			return
		}
		amount, ok := NormalizeNumeric(raw)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("row %d: column %q value %v is not numeric, skipped", rowIdx+1, column, raw))
			return
		}
		if amount.IsNegative() {
			// A negative measure flips to the opposite side (e.g. a refund
			// in an income column is a debit).
			amount = amount.Neg()
			if side == CreditSide {
				side = DebitSide
			} else {
				side = CreditSide
			}
		}
		line := CanonicalTransaction{
			Date:        date,
			Account:     wideAccount(cfg, column),
			Category:    wideCategory(cfg, column, side),
			Description: cfg.DefaultDescription,
			Provenance:  Provenance{SourceColumn: column, SourceRow: rowIdx + 1},
		}
		if side == CreditSide {
			line.Type = TypeIncome
			line.Credit = amount
		} else {
			line.Type = TypeExpense
			line.Debit = amount
		}
		lines = append(lines, line)
	}

	for i, row := range rows {
		date, ok := NormalizeDate(row[cfg.DateColumn])
		if !ok {
			warnings = append(warnings, fmt.Sprintf("row %d: no parseable date in column %q, row skipped", i+1, cfg.DateColumn))
			continue
		}
		for _, column := range cfg.IncomeColumns {
			emit(i, row, date, column, CreditSide)
		}
		for _, column := range cfg.ExpenseColumns {
			emit(i, row, date, column, DebitSide)
		}
	}
	return NewJournal(lines...), warnings, nil
}

func wideAccount(cfg WideConversionConfig, column string) string {
	if mapped, ok := cfg.AccountMappings[column]; ok && mapped != "" {
		return mapped
	}
	return column
}

func wideCategory(cfg WideConversionConfig, column string, side Side) Category {
	if mapped, ok := cfg.CategoryMappings[column]; ok {
		if c, err := ParseCategory(mapped); err == nil {
			return c
		}
	}
	if c, ok := GuessCategory(column); ok {
		return c
	}
	if side == CreditSide {
		return Revenue
	}
	return OperatingExpense
}
