package ledgerline

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// journalLine is the on-disk shape of one canonical transaction. Amounts are
// plain decimal strings; the zero side is omitted.
type journalLine struct {
	Date        Date            `json:"date"`
	Account     string          `json:"account"`
	Category    Category        `json:"category"`
	Type        TransactionType `json:"type,omitempty"`
	Debit       decimal.Decimal `json:"debit,omitzero"`
	Credit      decimal.Decimal `json:"credit,omitzero"`
	Description string          `json:"description,omitempty"`

	SourceColumn  string `json:"sourceColumn,omitempty"`
	SourceRow     int    `json:"sourceRow,omitempty"`
	SourceSheet   string `json:"sourceSheet,omitempty"`
	SourceAssetID string `json:"sourceAssetId,omitempty"`
}

// EncodeLine marshals a single transaction to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeLine(w io.Writer, tx CanonicalTransaction) error {
	jl := journalLine{
		Date:          tx.Date,
		Account:       tx.Account,
		Category:      tx.Category,
		Type:          tx.Type,
		Debit:         tx.Debit.Decimal(),
		Credit:        tx.Credit.Decimal(),
		Description:   tx.Description,
		SourceColumn:  tx.SourceColumn,
		SourceRow:     tx.SourceRow,
		SourceSheet:   tx.SourceSheet,
		SourceAssetID: tx.SourceAssetID,
	}
	data, err := json.Marshal(jl)
	if err != nil {
		return fmt.Errorf("failed to marshal journal line: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write journal line: %w", err)
	}
	return nil
}

// EncodeJournal persists a journal to an io.Writer in JSONL format, one line
// per transaction, chronologically ordered. The output is canonical: encoding
// the decoded journal reproduces it byte for byte.
func EncodeJournal(w io.Writer, j *Journal) error {
	for _, tx := range j.Lines() {
		if err := EncodeLine(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeJournal reads a JSONL stream of canonical transactions and returns a
// sorted journal. Empty lines are skipped; any malformed line fails the whole
// decode with its position.
func DecodeJournal(r io.Reader) (*Journal, error) {
	var lines []CanonicalTransaction
	scanner := bufio.NewScanner(r)

	n := 0
	for scanner.Scan() {
		n++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}

		var jl journalLine
		if err := json.Unmarshal(lineBytes, &jl); err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", n, err)
		}
		if _, err := ParseCategory(string(jl.Category)); err != nil {
			return nil, fmt.Errorf("format error on line %d: %w", n, err)
		}

		lines = append(lines, CanonicalTransaction{
			Date:        jl.Date,
			Account:     jl.Account,
			Category:    jl.Category,
			Type:        jl.Type,
			Debit:       A(jl.Debit),
			Credit:      A(jl.Credit),
			Description: jl.Description,
			Provenance: Provenance{
				SourceColumn:  jl.SourceColumn,
				SourceRow:     jl.SourceRow,
				SourceSheet:   jl.SourceSheet,
				SourceAssetID: jl.SourceAssetID,
			},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return NewJournal(lines...), nil
}
