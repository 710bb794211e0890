package ledgerline

import "strings"

// CashFlow is an indirect-style cash flow statement derived from the journal.
type CashFlow struct {
	Operating Amount `json:"operating"`
	Investing Amount `json:"investing"`
	Financing Amount `json:"financing"`
	NetChange Amount `json:"netChange"`

	BeginningCash Amount `json:"beginningCash"`
	EndingCash    Amount `json:"endingCash"`
}

// NewCashFlow classifies every posting line by its category's activity and
// sums the cash effect per activity. Current-asset lines other than
// depreciation offsets are the cash side itself, so they are excluded; the
// remaining lines' credit-minus-debit is their cash effect (revenue credits
// bring cash in, expense debits take it out, borrowings in, asset purchases
// out). Depreciation offsets are non-cash and moved back into operating as an
// add-back, the usual indirect-method treatment.
//
// With the whole journal as the period, beginning cash is zero and ending
// cash equals the net change.
func NewCashFlow(j *Journal) CashFlow {
	var cf CashFlow
	for _, line := range j.Lines() {
		if line.IsInformational() || line.Category == CurrentAsset {
			continue
		}
		effect := line.Credit.Sub(line.Debit)
		switch {
		case isDepreciationOffset(line):
			cf.Operating = cf.Operating.Add(effect)
		default:
			switch line.Category.Activity() {
			case Investing:
				cf.Investing = cf.Investing.Add(effect)
			case Financing:
				cf.Financing = cf.Financing.Add(effect)
			default:
				cf.Operating = cf.Operating.Add(effect)
			}
		}
	}
	cf.NetChange = cf.Operating.Add(cf.Investing).Add(cf.Financing)
	cf.EndingCash = cf.BeginningCash.Add(cf.NetChange)
	return cf
}

// isDepreciationOffset matches the accumulated-depreciation credit generated
// alongside depreciation expense.
func isDepreciationOffset(line CanonicalTransaction) bool {
	return line.Category == NonCurrentAsset &&
		strings.Contains(strings.ToLower(line.Account), "depreciation")
}
