// Package ledgerline turns heterogeneous tabular financial exports into a
// canonical double-entry journal and generates financial statements from it.
// It is designed to be local-first, deterministic, and auditable: the same
// input and configuration always produce the same journal, and every
// generated entry carries provenance back to its source cell.
//
// The core functionalities include:
//   - Ingestion: loading CSV, XLSX and JSON exports into untyped rows, with
//     column type inference over a sample of the data.
//   - Format Detection: a transparent scoring rule engine that classifies a
//     dataset as wide (one row per period) or long (one row per transaction)
//     and records every reason for its verdict.
//   - Transformation: pure converters from either shape into canonical
//     double-entry journal lines, driven by user-editable configurations.
//   - Supplemental Generation: fixed-asset registers and liability indicators
//     found in auxiliary sheets become acquisition, depreciation and
//     recognition entries, merged with provenance-based deduplication.
//   - Validation and Reconciliation: double-entry rules, the trial balance,
//     and the balance-sheet identity, with deterministic, inspectable fixes
//     proposed when the books do not balance.
//   - Reporting: profit and loss, balance sheet, cash flow, financial ratios
//     with plain-language interpretations, and a composite health score.
//
// This package serves as the foundational logic for the `llc` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package ledgerline
