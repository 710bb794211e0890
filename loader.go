package ledgerline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/xuri/excelize/v2"
)

// LoadCSV reads a CSV stream into rows keyed by the header line. Cells come
// back as raw strings; typing happens later in column inference. Ragged rows
// are tolerated, missing trailing cells are simply absent from the row.
func LoadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}

	header := records[0]
	var rows []Row
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			name = strings.TrimSpace(name)
			if name == "" || i >= len(record) {
				continue
			}
			row[name] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadWorkbook reads every sheet of an xlsx workbook into rows, keyed by each
// sheet's first line. The first sheet name returned is the workbook's primary
// sheet in its native order.
func LoadWorkbook(r io.Reader) (sheets map[string][]Row, primary string, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("could not open workbook: %w", err)
	}
	defer f.Close()

	sheets = make(map[string][]Row)
	for i, name := range f.GetSheetList() {
		records, err := f.GetRows(name)
		if err != nil {
			return nil, "", fmt.Errorf("could not read sheet %q: %w", name, err)
		}
		if len(records) == 0 {
			continue
		}
		header := records[0]
		var rows []Row
		for _, record := range records[1:] {
			row := make(Row, len(header))
			for j, col := range header {
				col = strings.TrimSpace(col)
				if col == "" || j >= len(record) {
					continue
				}
				row[col] = record[j]
			}
			rows = append(rows, row)
		}
		sheets[name] = rows
		if i == 0 {
			primary = name
		}
	}
	if len(sheets) == 0 {
		return nil, "", fmt.Errorf("workbook has no non-empty sheets")
	}
	return sheets, primary, nil
}

// LoadJSONRows reads a JSON document and extracts rows at the given JSONPath
// expression (for example "$.data[*]" or "$" for a top-level array). Each
// matched element must be an object; its fields become the row's cells.
func LoadJSONRows(r io.Reader, path string) ([]Row, error) {
	if path == "" {
		path = "$"
	}
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not parse json: %w", err)
	}
	matched, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("jsonpath %q: %w", path, err)
	}

	elements, ok := matched.([]any)
	if !ok {
		elements = []any{matched}
	}
	var rows []Row
	for i, el := range elements {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("jsonpath %q element %d is not an object", path, i)
		}
		rows = append(rows, Row(obj))
	}
	return rows, nil
}

// LoadFile dispatches on the file extension: .csv and .json load a single
// primary sheet named after the file, .xlsx loads every sheet. jsonPath only
// applies to .json inputs.
func LoadFile(path, jsonPath string) (sheets map[string][]Row, primary string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err := LoadCSV(f)
		if err != nil {
			return nil, "", err
		}
		return map[string][]Row{name: rows}, name, nil
	case ".json":
		rows, err := LoadJSONRows(f, jsonPath)
		if err != nil {
			return nil, "", err
		}
		return map[string][]Row{name: rows}, name, nil
	case ".xlsx", ".xlsm":
		return LoadWorkbook(f)
	default:
		return nil, "", fmt.Errorf("unsupported input format %q", filepath.Ext(path))
	}
}
