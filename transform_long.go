package ledgerline

import (
	"fmt"
	"strings"
)

// TransformLong turns a long dataset (one row per transaction) into canonical
// journal lines using the column mapping.
//
// Amount resolution, in order:
//   - mapped debit/credit columns post directly to their side;
//   - a single mapped amount column combined with the type column (Income
//     credits, Expense debits), the amount's sign flipping the side;
//   - absent a type, the category's normal side receives positive amounts and
//     the opposite side receives negative ones.
//
// Rows missing both an amount and a debit/credit pair are rejected with a
// warning and excluded from the journal. The transformer is pure and
// deterministic.
func TransformLong(rows []Row, mapping LongMapping) (*Journal, []string, error) {
	if err := mapping.Validate(); err != nil {
		return nil, nil, err
	}

	var lines []CanonicalTransaction
	var warnings []string

	for i, row := range rows {
		date, ok := NormalizeDate(row[mapping.DateColumn])
		if !ok {
			warnings = append(warnings, fmt.Sprintf("row %d: no parseable date in column %q, row skipped", i+1, mapping.DateColumn))
			continue
		}

		line := CanonicalTransaction{
			Date:       date,
			Provenance: Provenance{SourceRow: i + 1},
		}
		if mapping.AccountColumn != "" {
			line.Account = cellString(row[mapping.AccountColumn])
		}
		if mapping.DescriptionColumn != "" {
			line.Description = cellString(row[mapping.DescriptionColumn])
		}
		line.Type = longType(row, mapping)
		line.Category = longCategory(row, mapping, line)
		if line.Account == "" {
			line.Account = defaultAccount(line.Category)
		}

		debit, hasDebit := mappedAmount(row, mapping.DebitColumn)
		credit, hasCredit := mappedAmount(row, mapping.CreditColumn)
		switch {
		case hasDebit || hasCredit:
			line.Debit = debit
			line.Credit = credit
			line.SourceColumn = pickSourceColumn(hasDebit, mapping)
		case mapping.AmountColumn != "":
			amount, ok := NormalizeNumeric(row[mapping.AmountColumn])
			if !ok {
				warnings = append(warnings, fmt.Sprintf("row %d: no parseable amount, row skipped", i+1))
				continue
			}
			side := longSide(line, amount)
			if amount.IsNegative() {
				amount = amount.Neg()
			}
			if side == DebitSide {
				line.Debit = amount
			} else {
				line.Credit = amount
			}
			line.SourceColumn = mapping.AmountColumn
		default:
			warnings = append(warnings, fmt.Sprintf("row %d: no amount and no debit/credit values, row skipped", i+1))
			continue
		}

		lines = append(lines, line)
	}
	return NewJournal(lines...), warnings, nil
}

// longSide resolves which side a signed single-amount row posts to: the type
// column decides when present, else the category's normal side, with the
// amount's sign interpreted against that convention.
func longSide(line CanonicalTransaction, amount Amount) Side {
	var natural Side
	switch line.Type {
	case TypeIncome:
		natural = CreditSide
	case TypeExpense:
		natural = DebitSide
	default:
		natural = line.Category.NormalSide()
	}
	if amount.IsNegative() {
		if natural == DebitSide {
			return CreditSide
		}
		return DebitSide
	}
	return natural
}

func longType(row Row, mapping LongMapping) TransactionType {
	if mapping.TypeColumn == "" {
		return TypeNone
	}
	switch strings.ToLower(cellString(row[mapping.TypeColumn])) {
	case "income":
		return TypeIncome
	case "expense":
		return TypeExpense
	}
	return TypeNone
}

func longCategory(row Row, mapping LongMapping, line CanonicalTransaction) Category {
	if mapping.CategoryColumn != "" {
		label := cellString(row[mapping.CategoryColumn])
		if c, ok := GuessCategory(label); ok {
			return c
		}
	}
	if c, ok := GuessCategory(line.Account); ok {
		return c
	}
	if line.Type == TypeIncome {
		return Revenue
	}
	return OperatingExpense
}

func defaultAccount(c Category) string {
	switch c {
	case Revenue:
		return "Revenue"
	case CurrentAsset:
		return "Cash"
	case Equity:
		return "Equity"
	default:
		// Title-case the canonical form: operating_expense -> Operating Expense.
		words := strings.Split(string(c), "_")
		for i, w := range words {
			if len(w) > 0 {
				words[i] = strings.ToUpper(w[:1]) + w[1:]
			}
		}
		return strings.Join(words, " ")
	}
}

func mappedAmount(row Row, column string) (Amount, bool) {
	if column == "" {
		return Amount{}, false
	}
	a, ok := NormalizeNumeric(row[column])
	if !ok || !a.IsPositive() {
		return Amount{}, false
	}
	return a, true
}

func pickSourceColumn(hasDebit bool, mapping LongMapping) string {
	if hasDebit {
		return mapping.DebitColumn
	}
	return mapping.CreditColumn
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
