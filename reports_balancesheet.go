package ledgerline

// BalanceSheet is the statement of financial position aggregated from a
// validated journal.
type BalanceSheet struct {
	CurrentAssets         Amount `json:"currentAssets"`
	NonCurrentAssets      Amount `json:"nonCurrentAssets"`
	TotalAssets           Amount `json:"totalAssets"`
	CurrentLiabilities    Amount `json:"currentLiabilities"`
	NonCurrentLiabilities Amount `json:"nonCurrentLiabilities"`
	TotalLiabilities      Amount `json:"totalLiabilities"`
	ContributedEquity     Amount `json:"contributedEquity"`
	RetainedEarnings      Amount `json:"retainedEarnings"` // net income rolled in, zero when the books were closed
	TotalEquity           Amount `json:"totalEquity"`
	LiabilitiesAndEquity  Amount `json:"liabilitiesAndEquity"`

	NetIncomeRolledIn bool `json:"netIncomeRolledIn"`
	IsBalanced        bool `json:"isBalanced"`
}

// NewBalanceSheet aggregates balance-sheet categories and applies the same
// net-income-to-equity decision reconciliation used, so the identity checked
// there is the identity shown here.
func NewBalanceSheet(j *Journal, pl ProfitAndLoss, opts ReportOptions, closingScore float64) BalanceSheet {
	opts = opts.withDefaults()
	bs := BalanceSheet{
		CurrentAssets:         j.CategoryTotal(CurrentAsset),
		NonCurrentAssets:      j.CategoryTotal(NonCurrentAsset),
		CurrentLiabilities:    j.CategoryTotal(CurrentLiability),
		NonCurrentLiabilities: j.CategoryTotal(NonCurrentLiability),
		ContributedEquity:     j.CategoryTotal(Equity),
	}
	bs.TotalAssets = bs.CurrentAssets.Add(bs.NonCurrentAssets)
	bs.TotalLiabilities = bs.CurrentLiabilities.Add(bs.NonCurrentLiabilities)

	bs.NetIncomeRolledIn = resolveNetIncomeRollIn(opts.NetIncomeToEquityMode, opts.NetIncomeEquityDefault, closingScore)
	bs.TotalEquity = bs.ContributedEquity
	if bs.NetIncomeRolledIn {
		bs.RetainedEarnings = pl.NetIncome
		bs.TotalEquity = bs.TotalEquity.Add(pl.NetIncome)
	}
	bs.LiabilitiesAndEquity = bs.TotalLiabilities.Add(bs.TotalEquity)
	bs.IsBalanced = bs.TotalAssets.Sub(bs.LiabilitiesAndEquity).Abs().LessThanOrEqual(BalanceTolerance)
	return bs
}
