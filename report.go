package ledgerline

import (
	"time"

	"github.com/google/uuid"
)

// FinancialReport is the final deliverable: all three statements plus ratios,
// the health score, and the full audit trail of the run that produced it.
type FinancialReport struct {
	RunID       string       `json:"runId"`
	CompanyName string       `json:"companyName"`
	Period      ReportPeriod `json:"period"`
	Currency    string       `json:"currency"`
	GeneratedAt time.Time    `json:"generatedAt"`
	StartDate   Date         `json:"startDate"`
	EndDate     Date         `json:"endDate"`

	ProfitAndLoss ProfitAndLoss         `json:"profitAndLoss"`
	BalanceSheet  BalanceSheet          `json:"balanceSheet"`
	CashFlow      CashFlow              `json:"cashFlow"`
	Ratios        []RatioInterpretation `json:"ratios"`
	HealthScore   int                   `json:"healthScore"`

	Warnings    []string                  `json:"warnings,omitempty"`
	AuditTrail  []string                  `json:"auditTrail,omitempty"`
	Diagnostics ReconciliationDiagnostics `json:"diagnostics"`
}

// NewFinancialReport assembles the statements from a journal that already
// passed validation and reconciliation. The reconciliation's closing score
// carries over so the balance sheet rolls net income in (or not) exactly the
// way the identity was checked.
func NewFinancialReport(j *Journal, rec Reconciliation, opts ReportOptions) *FinancialReport {
	opts = opts.withDefaults()
	pl := NewProfitAndLoss(j)
	bs := NewBalanceSheet(j, pl, opts, rec.Diagnostics.ClosingScore)
	ratios := ComputeRatios(pl, bs)

	end := opts.EndDate
	if end.IsZero() {
		end = j.NewestDate()
	}

	return &FinancialReport{
		RunID:         uuid.NewString(),
		CompanyName:   opts.CompanyName,
		Period:        opts.ReportPeriod,
		Currency:      opts.DisplayCurrency,
		GeneratedAt:   time.Now().UTC(),
		StartDate:     j.OldestDate(),
		EndDate:       end,
		ProfitAndLoss: pl,
		BalanceSheet:  bs,
		CashFlow:      NewCashFlow(j),
		Ratios:        ratios,
		HealthScore:   HealthScore(ratios),
		Diagnostics:   rec.Diagnostics,
	}
}
