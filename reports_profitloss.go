package ledgerline

// ProfitAndLoss is the income statement aggregated from a validated journal.
type ProfitAndLoss struct {
	TotalRevenue      Amount `json:"totalRevenue"`
	CostOfGoodsSold   Amount `json:"costOfGoodsSold"`
	GrossProfit       Amount `json:"grossProfit"`
	OperatingExpenses Amount `json:"operatingExpenses"`
	OperatingIncome   Amount `json:"operatingIncome"`
	OtherIncome       Amount `json:"otherIncome"`
	OtherExpenses     Amount `json:"otherExpenses"`
	Tax               Amount `json:"tax"`
	NetIncome         Amount `json:"netIncome"`

	GrossMargin     float64 `json:"grossMargin"`
	OperatingMargin float64 `json:"operatingMargin"`
	NetMargin       float64 `json:"netMargin"`
}

// NewProfitAndLoss buckets the journal by category and computes margins.
// Pure aggregation: the journal must already be validated.
func NewProfitAndLoss(j *Journal) ProfitAndLoss {
	pl := ProfitAndLoss{
		TotalRevenue:      j.CategoryTotal(Revenue),
		CostOfGoodsSold:   j.CategoryTotal(CostOfGoodsSold),
		OperatingExpenses: j.CategoryTotal(OperatingExpense),
		OtherIncome:       j.CategoryTotal(OtherIncome),
		OtherExpenses:     j.CategoryTotal(OtherExpense),
		Tax:               j.CategoryTotal(Tax),
	}
	pl.GrossProfit = pl.TotalRevenue.Sub(pl.CostOfGoodsSold)
	pl.OperatingIncome = pl.GrossProfit.Sub(pl.OperatingExpenses)
	pl.NetIncome = pl.OperatingIncome.Add(pl.OtherIncome).Sub(pl.OtherExpenses).Sub(pl.Tax)

	pl.GrossMargin = pl.GrossProfit.Ratio(pl.TotalRevenue)
	pl.OperatingMargin = pl.OperatingIncome.Ratio(pl.TotalRevenue)
	pl.NetMargin = pl.NetIncome.Ratio(pl.TotalRevenue)
	return pl
}
