package ledgerline

import (
	"fmt"
	"strings"
)

// Category is the closed set of ledger account categories. Keeping it a
// typed enum (instead of free strings matched by keyword) makes the
// normal-balance rules a total function and lets the validator be exhaustive.
type Category string

const (
	CurrentAsset        Category = "current_asset"
	NonCurrentAsset     Category = "non_current_asset"
	CurrentLiability    Category = "current_liability"
	NonCurrentLiability Category = "non_current_liability"
	Equity              Category = "equity"
	Revenue             Category = "revenue"
	CostOfGoodsSold     Category = "cost_of_goods_sold"
	OperatingExpense    Category = "operating_expense"
	OtherIncome         Category = "other_income"
	OtherExpense        Category = "other_expense"
	Tax                 Category = "tax"
)

// Categories lists every category in a fixed order, for exhaustive iteration.
var Categories = []Category{
	CurrentAsset, NonCurrentAsset,
	CurrentLiability, NonCurrentLiability,
	Equity,
	Revenue, CostOfGoodsSold, OperatingExpense,
	OtherIncome, OtherExpense, Tax,
}

// ParseCategory parses a category from its canonical string form.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// categoryKeywords maps loose spreadsheet labels onto categories, checked in
// order so that more specific phrases win over generic ones.
var categoryKeywords = []struct {
	keyword  string
	category Category
}{
	{"cost of goods", CostOfGoodsSold},
	{"cogs", CostOfGoodsSold},
	{"cost of sales", CostOfGoodsSold},
	{"deferred tax", Tax}, // before the liability keywords: deferred tax expense/benefit is P&L, not a liability
	{"tax", Tax},
	{"non-current liabilit", NonCurrentLiability},
	{"long-term liabilit", NonCurrentLiability},
	{"long term debt", NonCurrentLiability},
	{"loan payable", NonCurrentLiability},
	{"liabilit", CurrentLiability},
	{"payable", CurrentLiability},
	{"accrued", CurrentLiability},
	{"fixed asset", NonCurrentAsset},
	{"non-current asset", NonCurrentAsset},
	{"property", NonCurrentAsset},
	{"equipment", NonCurrentAsset},
	{"accumulated depreciation", NonCurrentAsset},
	{"asset", CurrentAsset},
	{"cash", CurrentAsset},
	{"receivable", CurrentAsset},
	{"inventory", CurrentAsset},
	{"equity", Equity},
	{"capital", Equity},
	{"retained earnings", Equity},
	{"revenue", Revenue},
	{"sales", Revenue},
	{"income", Revenue},
	{"depreciation", OperatingExpense},
	{"expense", OperatingExpense},
	{"rent", OperatingExpense},
	{"salar", OperatingExpense},
	{"wage", OperatingExpense},
	{"interest", OtherExpense},
}

// GuessCategory maps a loose account or column label onto a category.
// It first tries the canonical form, then keyword matching. The boolean
// reports whether any rule matched.
func GuessCategory(label string) (Category, bool) {
	if c, err := ParseCategory(label); err == nil {
		return c, true
	}
	lower := strings.ToLower(label)
	for _, rule := range categoryKeywords {
		if strings.Contains(lower, rule.keyword) {
			return rule.category, true
		}
	}
	return "", false
}

// Side identifies the debit or credit side of a journal line.
type Side int

const (
	DebitSide Side = iota
	CreditSide
)

func (s Side) String() string {
	if s == DebitSide {
		return "debit"
	}
	return "credit"
}

// NormalSide returns the normal-balance side of the category:
// assets and expenses are debit-normal, liabilities, equity and revenue are
// credit-normal. Total over the enum.
func (c Category) NormalSide() Side {
	switch c {
	case CurrentAsset, NonCurrentAsset, CostOfGoodsSold, OperatingExpense, OtherExpense, Tax:
		return DebitSide
	case CurrentLiability, NonCurrentLiability, Equity, Revenue, OtherIncome:
		return CreditSide
	}
	// Unreachable for a value produced by ParseCategory.
	return DebitSide
}

// IsBalanceSheet reports whether the category belongs on the balance sheet.
func (c Category) IsBalanceSheet() bool {
	switch c {
	case CurrentAsset, NonCurrentAsset, CurrentLiability, NonCurrentLiability, Equity:
		return true
	}
	return false
}

// IsProfitAndLoss reports whether the category belongs on the P&L.
func (c Category) IsProfitAndLoss() bool { return !c.IsBalanceSheet() }

// Activity is a cash-flow statement activity bucket.
type Activity string

const (
	Operating Activity = "operating"
	Investing Activity = "investing"
	Financing Activity = "financing"
)

// Activity classifies a category into a cash-flow activity. Total over the enum.
func (c Category) Activity() Activity {
	switch c {
	case NonCurrentAsset:
		return Investing
	case NonCurrentLiability, Equity:
		return Financing
	default:
		return Operating
	}
}
