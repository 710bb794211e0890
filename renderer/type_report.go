package renderer

import (
	"fmt"

	"github.com/ledgerline/ledgerline"
)

// Report is the flat, display-ready view of a financial report. All amounts
// are pre-formatted in the report's display currency.
type Report struct {
	CompanyName string
	Period      string
	Currency    string
	GeneratedAt string
	StartDate   string
	EndDate     string

	// Profit and loss.
	TotalRevenue      string
	CostOfGoodsSold   string
	GrossProfit       string
	OperatingExpenses string
	OperatingIncome   string
	OtherIncome       string
	OtherExpenses     string
	Tax               string
	NetIncome         string
	GrossMargin       string
	OperatingMargin   string
	NetMargin         string

	// Balance sheet.
	CurrentAssets         string
	NonCurrentAssets      string
	TotalAssets           string
	CurrentLiabilities    string
	NonCurrentLiabilities string
	TotalLiabilities      string
	ContributedEquity     string
	RetainedEarnings      string
	TotalEquity           string
	LiabilitiesAndEquity  string
	NetIncomeRolledIn     bool
	IsBalanced            bool

	// Cash flow.
	Operating     string
	Investing     string
	Financing     string
	NetCashChange string
	EndingCash    string

	Ratios      []Ratio
	HealthScore int

	Warnings   []string
	AuditTrail []string
}

// Ratio is one display-ready ratio line.
type Ratio struct {
	Name        string
	Value       string
	Status      string
	Description string
}

// NewReport builds the view from a generated report.
func NewReport(r *ledgerline.FinancialReport) *Report {
	cur := r.Currency
	money := func(a ledgerline.Amount) string { return a.Display(cur) }
	percent := func(f float64) string { return fmt.Sprintf("%.1f%%", f*100) }

	v := &Report{
		CompanyName: r.CompanyName,
		Period:      string(r.Period),
		Currency:    cur,
		GeneratedAt: r.GeneratedAt.Format("2006-01-02 15:04:05"),
		StartDate:   r.StartDate.String(),
		EndDate:     r.EndDate.String(),

		TotalRevenue:      money(r.ProfitAndLoss.TotalRevenue),
		CostOfGoodsSold:   money(r.ProfitAndLoss.CostOfGoodsSold),
		GrossProfit:       money(r.ProfitAndLoss.GrossProfit),
		OperatingExpenses: money(r.ProfitAndLoss.OperatingExpenses),
		OperatingIncome:   money(r.ProfitAndLoss.OperatingIncome),
		OtherIncome:       money(r.ProfitAndLoss.OtherIncome),
		OtherExpenses:     money(r.ProfitAndLoss.OtherExpenses),
		Tax:               money(r.ProfitAndLoss.Tax),
		NetIncome:         money(r.ProfitAndLoss.NetIncome),
		GrossMargin:       percent(r.ProfitAndLoss.GrossMargin),
		OperatingMargin:   percent(r.ProfitAndLoss.OperatingMargin),
		NetMargin:         percent(r.ProfitAndLoss.NetMargin),

		CurrentAssets:         money(r.BalanceSheet.CurrentAssets),
		NonCurrentAssets:      money(r.BalanceSheet.NonCurrentAssets),
		TotalAssets:           money(r.BalanceSheet.TotalAssets),
		CurrentLiabilities:    money(r.BalanceSheet.CurrentLiabilities),
		NonCurrentLiabilities: money(r.BalanceSheet.NonCurrentLiabilities),
		TotalLiabilities:      money(r.BalanceSheet.TotalLiabilities),
		ContributedEquity:     money(r.BalanceSheet.ContributedEquity),
		RetainedEarnings:      money(r.BalanceSheet.RetainedEarnings),
		TotalEquity:           money(r.BalanceSheet.TotalEquity),
		LiabilitiesAndEquity:  money(r.BalanceSheet.LiabilitiesAndEquity),
		NetIncomeRolledIn:     r.BalanceSheet.NetIncomeRolledIn,
		IsBalanced:            r.BalanceSheet.IsBalanced,

		Operating:     money(r.CashFlow.Operating),
		Investing:     money(r.CashFlow.Investing),
		Financing:     money(r.CashFlow.Financing),
		NetCashChange: money(r.CashFlow.NetChange),
		EndingCash:    money(r.CashFlow.EndingCash),

		HealthScore: r.HealthScore,
		Warnings:    r.Warnings,
		AuditTrail:  r.AuditTrail,
	}
	for _, ratio := range r.Ratios {
		v.Ratios = append(v.Ratios, Ratio{
			Name:        ratio.Name,
			Value:       fmt.Sprintf("%.2f", ratio.Value),
			Status:      string(ratio.Status),
			Description: ratio.Description,
		})
	}
	return v
}
