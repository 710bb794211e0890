package ledgerline

import (
	"fmt"
	"strings"
)

// Stage is a step of the report pipeline. A run only moves forward; applying
// a reconciliation fix starts validation over on the merged journal rather
// than patching the blocked run.
type Stage string

const (
	StageUploadPending  Stage = "upload_pending"
	StageFormatDetected Stage = "format_detected"
	StageConfiguring    Stage = "configuring"
	StagePreviewing     Stage = "previewing"
	StageValidated      Stage = "validated"
	StageReconciled     Stage = "reconciled"
	StageBlocked        Stage = "blocked"
	StageReported       Stage = "reported"
)

// Run carries the state of one report pipeline run between stages. Everything
// the engine decided is on the record: detection reasons, derived configs,
// generation notices and assumptions, validation and reconciliation results.
type Run struct {
	Stage   Stage
	Sheets  map[string][]Row // primary dataset plus auxiliary sheets
	Primary string           // key of the primary sheet in Sheets

	Columns   []ColumnInfo
	Detection FormatDetection

	// Exactly one of these is consulted at preview time, per Detection.Format.
	WideConfig  WideConversionConfig
	LongMapping LongMapping

	Journal        *Journal
	Validation     ValidationResult
	Reconciliation Reconciliation
	Report         *FinancialReport

	Warnings    []string
	Notices     []string
	Assumptions []string
	AuditTrail  []string
}

func (r *Run) audit(format string, args ...any) {
	r.AuditTrail = append(r.AuditTrail, fmt.Sprintf(format, args...))
}

// Engine drives the pipeline. It is stateless between runs; all per-run state
// lives on the Run.
type Engine struct {
	cfg EngineConfig
}

// NewEngine validates and defaults the configuration.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.AssetMode == AssetExternal && cfg.AssetModule == nil {
		return nil, ConfigurationError{Reason: "asset mode is external but no asset module is configured"}
	}
	return &Engine{cfg: cfg.withDefaults()}, nil
}

// Begin starts a run over the uploaded sheets: column inference and format
// detection on the primary sheet, then default conversion configs derived
// from the detection. The run lands in Configuring so the caller can edit the
// configs before Preview.
func (e *Engine) Begin(sheets map[string][]Row, primary string) (*Run, error) {
	rows, ok := sheets[primary]
	if !ok || len(rows) == 0 {
		return nil, ConfigurationError{Reason: fmt.Sprintf("primary sheet %q is missing or empty", primary)}
	}

	run := &Run{Stage: StageUploadPending, Sheets: sheets, Primary: primary}
	run.Columns = InferColumns(rows, ColumnNames(rows))
	run.Detection = DetectFormat(rows, run.Columns)
	run.Stage = StageFormatDetected
	run.audit("format detected: %s (confidence %.2f)", run.Detection.Format, run.Detection.Confidence)

	e.cfg.Logger.Info().
		Str("format", string(run.Detection.Format)).
		Float64("confidence", run.Detection.Confidence).
		Strs("reasons", run.Detection.Reasons).
		Msg("format detected")
	e.cfg.Progress(10, "format detected")

	run.WideConfig = DeriveWideConfig(run.Columns)
	run.LongMapping = DeriveLongMapping(run.Columns)
	run.Stage = StageConfiguring
	if run.Detection.Format == FormatUnknown {
		run.Warnings = append(run.Warnings,
			"format could not be detected with confidence: review the derived configuration before converting")
	}
	return run, nil
}

// Preview converts the primary sheet into a canonical journal with the run's
// current configuration and merges supplemental entries generated from the
// auxiliary sheets. The journal is on the run for inspection; nothing is
// validated yet.
func (e *Engine) Preview(run *Run) error {
	rows := run.Sheets[run.Primary]

	var j *Journal
	var warnings []string
	var err error
	switch run.Detection.Format {
	case FormatWide:
		j, warnings, err = TransformWide(rows, run.WideConfig)
	case FormatLong:
		j, warnings, err = TransformLong(rows, run.LongMapping)
	default:
		return ConfigurationError{Reason: "cannot convert an unrecognized format: choose wide or long explicitly"}
	}
	if err != nil {
		return err
	}
	run.Warnings = append(run.Warnings, warnings...)
	run.audit("converted %d rows into %d journal lines (%s format)", len(rows), j.Len(), run.Detection.Format)

	j, err = e.supplement(run, j)
	if err != nil {
		return err
	}

	run.Journal = j
	run.Stage = StagePreviewing
	e.cfg.Progress(40, "journal preview ready")
	return nil
}

// supplement generates asset and liability entries from the auxiliary sheets
// and merges them into the journal. Generation is skipped when matching
// entries already exist, so re-running a preview never duplicates postings.
func (e *Engine) supplement(run *Run, j *Journal) (*Journal, error) {
	end := e.cfg.Options.EndDate
	if end.IsZero() {
		end = j.NewestDate()
	}

	aux := make(map[string][]Row, len(run.Sheets))
	for name, rows := range run.Sheets {
		if name != run.Primary {
			aux[name] = rows
		}
	}

	assets, reasons, warnings := DetectAssetRegister(aux)
	run.Notices = append(run.Notices, reasons...)
	run.Warnings = append(run.Warnings, warnings...)
	if len(assets) > 0 {
		if j.HasAccountKeyword("depreciation") || j.HasAccountKeyword("fixed asset") {
			run.Notices = append(run.Notices,
				"asset register detected but the journal already carries asset entries: generation skipped")
		} else {
			lines, err := e.assetLines(run, assets, end)
			if err != nil {
				return nil, err
			}
			var mergeWarnings []string
			j, mergeWarnings = Merge(j, lines)
			run.Warnings = append(run.Warnings, mergeWarnings...)
			run.audit("merged %d asset journal lines for %d register rows", len(lines), len(assets))
		}
	}

	detection, signals := DetectLiabilities(aux)
	run.Notices = append(run.Notices, detection.Reasons...)
	if detection.Detected {
		fresh := signals[:0:0]
		for _, sig := range signals {
			if j.HasAccountKeyword(strings.ToLower(sig.Account)) {
				run.Notices = append(run.Notices, fmt.Sprintf(
					"liability %q already present in the journal: generation skipped", sig.Account))
				continue
			}
			fresh = append(fresh, sig)
		}
		if len(fresh) > 0 {
			lines, assumptions := GenerateLiabilityJournal(fresh, end)
			run.Assumptions = append(run.Assumptions, assumptions...)
			var mergeWarnings []string
			j, mergeWarnings = Merge(j, lines)
			run.Warnings = append(run.Warnings, mergeWarnings...)
			run.audit("merged %d liability recognition lines", len(lines))
		}
	}
	return j, nil
}

// assetLines resolves the asset handling mode and produces the asset journal,
// either from the external module or by local generation. The auto fallback
// is always announced.
func (e *Engine) assetLines(run *Run, assets []AssetRegisterRow, end Date) ([]CanonicalTransaction, error) {
	mode := e.cfg.AssetMode
	if mode == AssetAuto {
		if e.cfg.AssetModule != nil && e.cfg.AssetModule.FlowsToBalanceSheet() {
			mode = AssetExternal
		} else {
			mode = AssetJournalGeneration
			switch {
			case e.cfg.AssetModule == nil:
				run.Notices = append(run.Notices, "no external asset module configured: falling back to local journal generation")
			default:
				run.Notices = append(run.Notices, fmt.Sprintf(
					"asset module %q does not flow to the balance sheet: falling back to local journal generation",
					e.cfg.AssetModule.Name()))
			}
		}
	}

	if mode == AssetExternal {
		lines, err := e.cfg.AssetModule.Ingest(assets, end)
		if err != nil {
			return nil, fmt.Errorf("asset module %s: %w", e.cfg.AssetModule.Name(), err)
		}
		run.Notices = append(run.Notices, fmt.Sprintf(
			"asset entries ingested from external module %q", e.cfg.AssetModule.Name()))
		return lines, nil
	}

	lines, notices := GenerateAssetJournal(assets, e.cfg.DepreciationStart, end)
	run.Notices = append(run.Notices, notices...)
	return lines, nil
}

// Validate checks the previewed journal against the double-entry rules.
// Blocking errors move the run to Blocked.
func (e *Engine) Validate(run *Run) error {
	run.Validation = ValidateJournal(run.Journal)
	run.Warnings = append(run.Warnings, run.Validation.Warnings...)
	run.audit("validation: %d error(s), %d warning(s), trial balance %s",
		len(run.Validation.Errors), len(run.Validation.Warnings), run.Validation.TrialBalance)
	e.cfg.Progress(60, "journal validated")

	if err := run.Validation.Err(); err != nil {
		run.Stage = StageBlocked
		e.cfg.Logger.Warn().Strs("errors", run.Validation.Errors).Msg("validation blocked")
		return err
	}
	run.Stage = StageValidated
	return nil
}

// Reconcile checks the balance-sheet identity. A blocked reconciliation
// carries its diagnostics and any deterministic fixes on the run.
func (e *Engine) Reconcile(run *Run) error {
	run.Reconciliation = Reconcile(run.Journal, run.Validation, e.cfg.Options)
	run.audit("reconciliation: %s (difference %s)",
		run.Reconciliation.Status, run.Reconciliation.Diagnostics.Difference)
	e.cfg.Progress(80, "reconciliation complete")

	if err := run.Reconciliation.Err(); err != nil {
		run.Stage = StageBlocked
		e.cfg.Logger.Warn().
			Str("status", string(run.Reconciliation.Status)).
			Int("fixes", len(run.Reconciliation.Fixes)).
			Msg("reconciliation blocked")
		return err
	}
	run.Stage = StageReconciled
	return nil
}

// ApplyFix merges a proposed fix into the run's journal and re-runs
// validation and reconciliation from scratch on the merged journal.
func (e *Engine) ApplyFix(run *Run, fix ReconciliationFix) error {
	run.Journal = ApplyFix(run.Journal, fix)
	run.audit("applied fix %q (%d lines)", fix.Name, len(fix.Lines))
	if err := e.Validate(run); err != nil {
		return err
	}
	return e.Reconcile(run)
}

// BuildReport assembles the final report from a reconciled run.
func (e *Engine) BuildReport(run *Run) (*FinancialReport, error) {
	if run.Stage != StageReconciled {
		return nil, ConfigurationError{Reason: fmt.Sprintf("cannot report from stage %q", run.Stage)}
	}
	report := NewFinancialReport(run.Journal, run.Reconciliation, e.cfg.Options)
	report.Warnings = append(report.Warnings, run.Warnings...)
	report.AuditTrail = append(report.AuditTrail, run.AuditTrail...)
	report.AuditTrail = append(report.AuditTrail, run.Notices...)
	report.AuditTrail = append(report.AuditTrail, run.Assumptions...)
	run.Report = report
	run.Stage = StageReported
	e.cfg.Progress(100, "report generated")
	e.cfg.Logger.Info().Str("runId", report.RunID).Int("healthScore", report.HealthScore).Msg("report generated")
	return report, nil
}

// Generate runs the whole pipeline with the derived default configuration,
// applying proposed reconciliation fixes automatically. The run comes back
// even on error so callers can inspect where it blocked.
func (e *Engine) Generate(sheets map[string][]Row, primary string) (*FinancialReport, *Run, error) {
	run, err := e.Begin(sheets, primary)
	if err != nil {
		return nil, nil, err
	}
	if err := e.Preview(run); err != nil {
		return nil, run, err
	}
	if err := e.Validate(run); err != nil {
		return nil, run, err
	}
	if err := e.Reconcile(run); err != nil {
		for _, fix := range run.Reconciliation.Fixes {
			if err = e.ApplyFix(run, fix); err == nil {
				break
			}
		}
		if err != nil {
			return nil, run, err
		}
	}
	report, err := e.BuildReport(run)
	return report, run, err
}
