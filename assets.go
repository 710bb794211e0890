package ledgerline

import (
	"fmt"
	"sort"
	"strings"
)

// AssetRegisterRow is one fixed asset parsed from an auxiliary sheet.
type AssetRegisterRow struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	AcquisitionDate  Date          `json:"acquisitionDate"`
	Cost             Amount        `json:"cost"`
	UsefulLifeMonths int           `json:"usefulLifeMonths"`
	Method           string        `json:"method"` // only straight_line is generated
	Financing        FinancingType `json:"financing"`
	SourceSheet      string        `json:"sourceSheet,omitempty"`
}

// assetColumnAliases maps register field roles to the column names they are
// recognized under.
var assetColumnAliases = map[string][]string{
	"name":      {"asset", "asset name", "name", "description"},
	"date":      {"acquisition date", "purchase date", "date acquired", "date"},
	"cost":      {"cost", "acquisition cost", "purchase price", "amount"},
	"life":      {"useful life", "useful life (months)", "life months", "life"},
	"method":    {"depreciation method", "method"},
	"financing": {"financing", "financing type", "funded by", "payment method"},
	"id":        {"id", "asset id", "tag", "asset tag"},
}

func matchAssetColumn(columns []string, role string) string {
	for _, alias := range assetColumnAliases[role] {
		for _, col := range columns {
			if strings.EqualFold(strings.TrimSpace(col), alias) {
				return col
			}
		}
	}
	return ""
}

// DetectAssetRegister scans the auxiliary sheets for one that looks like a
// fixed-asset register (a cost column, a useful-life column and an
// acquisition-date column) and parses its rows. Reasons record which columns
// matched; unparseable rows become warnings.
func DetectAssetRegister(sheets map[string][]Row) (assets []AssetRegisterRow, reasons, warnings []string) {
	// Deterministic sheet order.
	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, sheet := range names {
		rows := sheets[sheet]
		if len(rows) == 0 {
			continue
		}
		columns := ColumnNames(rows)
		costCol := matchAssetColumn(columns, "cost")
		lifeCol := matchAssetColumn(columns, "life")
		dateCol := matchAssetColumn(columns, "date")
		if costCol == "" || lifeCol == "" || dateCol == "" {
			continue
		}
		reasons = append(reasons, fmt.Sprintf(
			"sheet %q recognized as asset register (cost column %q, useful life column %q, acquisition date column %q)",
			sheet, costCol, lifeCol, dateCol))

		nameCol := matchAssetColumn(columns, "name")
		methodCol := matchAssetColumn(columns, "method")
		financingCol := matchAssetColumn(columns, "financing")
		idCol := matchAssetColumn(columns, "id")

		for i, row := range rows {
			cost, okCost := NormalizeNumeric(row[costCol])
			life, okLife := NormalizeNumeric(row[lifeCol])
			acquired, okDate := NormalizeDate(row[dateCol])
			if !okCost || !okLife || !okDate || !cost.IsPositive() || !life.IsPositive() {
				warnings = append(warnings, fmt.Sprintf("sheet %q row %d: incomplete asset register row skipped", sheet, i+1))
				continue
			}
			asset := AssetRegisterRow{
				Cost:             cost,
				UsefulLifeMonths: int(life.Decimal().IntPart()),
				AcquisitionDate:  acquired,
				Method:           "straight_line",
				Financing:        FinancedCash,
				SourceSheet:      sheet,
			}
			if nameCol != "" {
				asset.Name = cellString(row[nameCol])
			}
			if asset.Name == "" {
				asset.Name = fmt.Sprintf("Asset %d", i+1)
			}
			if idCol != "" {
				asset.ID = cellString(row[idCol])
			}
			if asset.ID == "" {
				asset.ID = fmt.Sprintf("%s-%d", sheet, i+1)
			}
			if methodCol != "" {
				if m := strings.ToLower(cellString(row[methodCol])); m != "" {
					asset.Method = strings.ReplaceAll(m, " ", "_")
				}
			}
			if financingCol != "" {
				asset.Financing = parseFinancing(cellString(row[financingCol]))
			}
			assets = append(assets, asset)
		}
		break // first matching sheet wins
	}
	return assets, reasons, warnings
}

func parseFinancing(s string) FinancingType {
	switch strings.ToLower(s) {
	case "loan", "financed", "debt":
		return FinancedLoan
	case "payable", "accounts payable", "credit", "on account":
		return FinancedPayable
	default:
		return FinancedCash
	}
}

// financedAccount returns the account credited by an acquisition entry and
// its category.
func financedAccount(f FinancingType) (string, Category) {
	switch f {
	case FinancedLoan:
		return "Loan Payable", NonCurrentLiability
	case FinancedPayable:
		return "Accounts Payable", CurrentLiability
	default:
		return "Cash", CurrentAsset
	}
}

// GenerateAssetJournal synthesizes acquisition and straight-line depreciation
// entries for the register. Depreciation is monthly, starting either the
// acquisition month or the next month, and runs through end when end is set
// (zero end means the full useful life). Every line keeps full provenance.
// Notices record every generated schedule for the audit trail.
func GenerateAssetJournal(assets []AssetRegisterRow, start DepreciationStart, end Date) (lines []CanonicalTransaction, notices []string) {
	for _, asset := range assets {
		creditAccount, creditCategory := financedAccount(asset.Financing)

		// Acquisition: the asset enters the books at cost on the acquisition day.
		lines = append(lines,
			CanonicalTransaction{
				Date:        asset.AcquisitionDate,
				Account:     "Fixed Assets",
				Category:    NonCurrentAsset,
				Debit:       asset.Cost,
				Description: fmt.Sprintf("Acquisition of %s", asset.Name),
				Provenance:  Provenance{SourceSheet: asset.SourceSheet, SourceAssetID: asset.ID},
			},
			CanonicalTransaction{
				Date:        asset.AcquisitionDate,
				Account:     creditAccount,
				Category:    creditCategory,
				Credit:      asset.Cost,
				Description: fmt.Sprintf("Acquisition of %s", asset.Name),
				Provenance:  Provenance{SourceSheet: asset.SourceSheet, SourceAssetID: asset.ID},
			},
		)
		notices = append(notices, fmt.Sprintf(
			"generated acquisition entry for asset %q: debit Fixed Assets %s, credit %s",
			asset.Name, asset.Cost, creditAccount))

		if asset.Method != "straight_line" || asset.UsefulLifeMonths <= 0 {
			notices = append(notices, fmt.Sprintf(
				"asset %q uses method %q: no depreciation schedule generated", asset.Name, asset.Method))
			continue
		}

		first := asset.AcquisitionDate.StartOfMonth()
		if start == StartNextMonth {
			first = first.AddMonth(1)
		}
		monthly := asset.Cost.Div(A(int64(asset.UsefulLifeMonths))).Round(2)
		var accumulated Amount
		months := 0
		for i := 0; i < asset.UsefulLifeMonths; i++ {
			on := first.AddMonth(i).EndOfMonth()
			if !end.IsZero() && on.After(end) {
				break
			}
			amount := monthly
			if i == asset.UsefulLifeMonths-1 {
				// Last month absorbs the rounding remainder so the schedule
				// sums exactly to cost.
				amount = asset.Cost.Sub(accumulated)
			}
			accumulated = accumulated.Add(amount)
			months++
			desc := fmt.Sprintf("Depreciation of %s (%d/%d)", asset.Name, i+1, asset.UsefulLifeMonths)
			lines = append(lines,
				CanonicalTransaction{
					Date:        on,
					Account:     "Depreciation Expense",
					Category:    OperatingExpense,
					Debit:       amount,
					Description: desc,
					Provenance:  Provenance{SourceSheet: asset.SourceSheet, SourceAssetID: asset.ID},
				},
				CanonicalTransaction{
					Date:        on,
					Account:     "Accumulated Depreciation",
					Category:    NonCurrentAsset,
					Credit:      amount,
					Description: desc,
					Provenance:  Provenance{SourceSheet: asset.SourceSheet, SourceAssetID: asset.ID},
				},
			)
		}
		notices = append(notices, fmt.Sprintf(
			"generated %d monthly straight-line depreciation entries of %s for asset %q",
			months, monthly, asset.Name))
	}
	return lines, notices
}
