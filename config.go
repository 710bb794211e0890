package ledgerline

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// WideConversionConfig drives the wide→canonical transformer. It is
// user-editable before conversion; defaults are derived from the detection.
type WideConversionConfig struct {
	DateColumn         string            `json:"dateColumn" yaml:"dateColumn"`
	IncomeColumns      []string          `json:"incomeColumns" yaml:"incomeColumns"`
	ExpenseColumns     []string          `json:"expenseColumns" yaml:"expenseColumns"`
	AccountMappings    map[string]string `json:"accountMappings,omitempty" yaml:"accountMappings,omitempty"`
	CategoryMappings   map[string]string `json:"categoryMappings,omitempty" yaml:"categoryMappings,omitempty"`
	DefaultDescription string            `json:"defaultDescription,omitempty" yaml:"defaultDescription,omitempty"`
}

// Validate checks the configuration before transformation runs.
func (c WideConversionConfig) Validate() error {
	if c.DateColumn == "" {
		return ConfigurationError{Reason: "no date column selected"}
	}
	if len(c.IncomeColumns) == 0 && len(c.ExpenseColumns) == 0 {
		return ConfigurationError{Reason: "no income or expense columns selected"}
	}
	expense := make(map[string]struct{}, len(c.ExpenseColumns))
	for _, col := range c.ExpenseColumns {
		expense[col] = struct{}{}
	}
	for _, col := range c.IncomeColumns {
		if _, both := expense[col]; both {
			return ConfigurationError{Reason: fmt.Sprintf("column %q mapped as both income and expense", col)}
		}
	}
	return nil
}

// DeriveWideConfig builds a default wide configuration from the detection
// metrics: the first date column, numeric columns split into income/expense by
// their guessed category's normal side. The user can edit the result before
// conversion; the engine never re-derives an explicitly edited config.
func DeriveWideConfig(columns []ColumnInfo) WideConversionConfig {
	cfg := WideConversionConfig{DefaultDescription: "Imported from period summary"}
	for _, col := range columns {
		switch col.Type {
		case ColumnDate:
			if cfg.DateColumn == "" {
				cfg.DateColumn = col.Name
			}
		case ColumnNumber:
			cat, ok := GuessCategory(col.Name)
			if !ok {
				cat = OperatingExpense
			}
			if cat.NormalSide() == CreditSide {
				cfg.IncomeColumns = append(cfg.IncomeColumns, col.Name)
			} else {
				cfg.ExpenseColumns = append(cfg.ExpenseColumns, col.Name)
			}
		}
	}
	return cfg
}

// LongMapping maps dataset columns onto canonical transaction fields for the
// long→canonical transformer. Only Date plus either Amount or Debit/Credit
// are required.
type LongMapping struct {
	DateColumn        string `json:"dateColumn" yaml:"dateColumn"`
	AccountColumn     string `json:"accountColumn,omitempty" yaml:"accountColumn,omitempty"`
	CategoryColumn    string `json:"categoryColumn,omitempty" yaml:"categoryColumn,omitempty"`
	TypeColumn        string `json:"typeColumn,omitempty" yaml:"typeColumn,omitempty"`
	DebitColumn       string `json:"debitColumn,omitempty" yaml:"debitColumn,omitempty"`
	CreditColumn      string `json:"creditColumn,omitempty" yaml:"creditColumn,omitempty"`
	AmountColumn      string `json:"amountColumn,omitempty" yaml:"amountColumn,omitempty"`
	DescriptionColumn string `json:"descriptionColumn,omitempty" yaml:"descriptionColumn,omitempty"`
}

// Validate checks that the mapping can produce journal lines at all.
func (m LongMapping) Validate() error {
	if m.DateColumn == "" {
		return ConfigurationError{Reason: "no date column selected"}
	}
	if m.AmountColumn == "" && m.DebitColumn == "" && m.CreditColumn == "" {
		return ConfigurationError{Reason: "no amount or debit/credit columns selected"}
	}
	return nil
}

// DeriveLongMapping guesses a column mapping from column names.
func DeriveLongMapping(columns []ColumnInfo) LongMapping {
	var m LongMapping
	for _, col := range columns {
		switch strings.ToLower(col.Name) {
		case "date", "transaction date", "posting date":
			if m.DateColumn == "" {
				m.DateColumn = col.Name
			}
		case "account", "account name":
			m.AccountColumn = col.Name
		case "category":
			m.CategoryColumn = col.Name
		case "type", "transaction type":
			m.TypeColumn = col.Name
		case "debit", "dr":
			m.DebitColumn = col.Name
		case "credit", "cr":
			m.CreditColumn = col.Name
		case "amount", "value":
			m.AmountColumn = col.Name
		case "description", "memo", "narrative", "details":
			m.DescriptionColumn = col.Name
		}
	}
	if m.DateColumn == "" {
		for _, col := range columns {
			if col.Type == ColumnDate {
				m.DateColumn = col.Name
				break
			}
		}
	}
	return m
}

// AssetHandlingMode selects how a detected asset register flows into the report.
type AssetHandlingMode string

const (
	// AssetAuto prefers a configured external asset module when one is present
	// and can flow to the balance sheet, falling back to local journal
	// generation. The fallback is always announced as a notice.
	AssetAuto AssetHandlingMode = "auto"
	// AssetExternal delegates asset ingestion to the external asset module.
	AssetExternal AssetHandlingMode = "external"
	// AssetJournalGeneration synthesizes acquisition and depreciation entries
	// locally.
	AssetJournalGeneration AssetHandlingMode = "journal_generation"
)

// DepreciationStart selects the first month of a depreciation schedule.
type DepreciationStart string

const (
	StartAcquisitionMonth DepreciationStart = "acquisition_month"
	StartNextMonth        DepreciationStart = "next_month"
)

// FinancingType describes how an asset acquisition was financed, which
// decides the credited account.
type FinancingType string

const (
	FinancedCash    FinancingType = "cash"
	FinancedPayable FinancingType = "accounts_payable"
	FinancedLoan    FinancingType = "loan"
)

// ReportPeriod selects the aggregation granularity of the report.
type ReportPeriod string

const (
	Monthly   ReportPeriod = "monthly"
	Quarterly ReportPeriod = "quarterly"
	Annual    ReportPeriod = "annual"
)

// NetIncomeMode controls rolling net income into equity on the balance sheet.
type NetIncomeMode string

const (
	// NetIncomeAuto adds net income to equity unless closing-detection
	// evidence shows it was already closed into equity.
	NetIncomeAuto   NetIncomeMode = "auto"
	NetIncomeAlways NetIncomeMode = "always"
	NetIncomeNever  NetIncomeMode = "never"
)

// AssetModule is the optional externally-configured module that can take over
// asset-journal ingestion instead of local generation. Out-of-process details
// are the caller's concern; the engine only needs the capability surface.
type AssetModule interface {
	// Name identifies the module in notices and the audit trail.
	Name() string
	// FlowsToBalanceSheet reports whether the module's output reaches the
	// balance sheet. Auto mode only delegates when it does.
	FlowsToBalanceSheet() bool
	// Ingest consumes the register rows and returns journal lines, or an error.
	Ingest(assets []AssetRegisterRow, end Date) ([]CanonicalTransaction, error)
}

// ReportOptions are the user-chosen options of a report run.
type ReportOptions struct {
	CompanyName            string        `json:"companyName" yaml:"companyName"`
	ReportPeriod           ReportPeriod  `json:"reportPeriod" yaml:"reportPeriod"`
	NetIncomeToEquityMode  NetIncomeMode `json:"netIncomeToEquityMode" yaml:"netIncomeToEquityMode"`
	NetIncomeEquityDefault bool          `json:"netIncomeEquityDefault" yaml:"netIncomeEquityDefault"`
	// DisplayCurrency only affects rendering, never arithmetic.
	DisplayCurrency string `json:"displayCurrency,omitempty" yaml:"displayCurrency,omitempty"`
	// EndDate bounds depreciation schedules and cash flow. Zero means the
	// journal's newest date.
	EndDate Date `json:"endDate,omitzero" yaml:"-"`
}

func (o ReportOptions) withDefaults() ReportOptions {
	if o.ReportPeriod == "" {
		o.ReportPeriod = Annual
	}
	if o.NetIncomeToEquityMode == "" {
		o.NetIncomeToEquityMode = NetIncomeAuto
	}
	if o.DisplayCurrency == "" {
		o.DisplayCurrency = "USD"
	}
	return o
}

// EngineConfig is the explicit configuration of an engine run. Nothing is read
// from the ambient environment: availability of the asset module, depreciation
// policy and report options all arrive here.
type EngineConfig struct {
	AssetMode         AssetHandlingMode
	AssetModule       AssetModule // nil when no external module is configured
	DepreciationStart DepreciationStart
	Options           ReportOptions

	// Progress, when set, receives coarse (percent, message) milestones.
	// Advisory only.
	Progress func(percent int, message string)

	// Logger receives structured stage logging. Defaults to a no-op logger.
	Logger zerolog.Logger
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.AssetMode == "" {
		c.AssetMode = AssetAuto
	}
	if c.DepreciationStart == "" {
		c.DepreciationStart = StartNextMonth
	}
	c.Options = c.Options.withDefaults()
	if c.Progress == nil {
		c.Progress = func(int, string) {}
	}
	return c
}
