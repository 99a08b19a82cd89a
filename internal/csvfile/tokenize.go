// File path: internal/csvfile/tokenize.go

// Package csvfile tokenizes uploaded CSV bytes into header-keyed rows for
// the import engine. It is deliberately not a general-purpose CSV layer:
// encoding/csv semantics with lazy quoting and ragged-row tolerance cover
// the dashboard's vendor exports.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Table is a tokenized CSV file: the header row as it appeared in the
// source plus one map per data row keyed by those headers.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// Tokenize parses CSV content. The first row is treated as headers; each
// subsequent row becomes a header→cell map. A duplicated header name keeps
// its first non-empty cell. Rows with no cells at all are dropped.
func Tokenize(content []byte) (Table, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(content)) == 0 {
		return Table{}, nil
	}

	r := csv.NewReader(bytes.NewReader(content))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return Table{}, nil
		}
		return Table{}, fmt.Errorf("read headers: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	table := Table{Headers: headers}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read row %d: %w", len(table.Rows)+2, err)
		}

		row := make(map[string]string, len(headers))
		empty := true
		for i, cell := range record {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				empty = false
			}
			if existing, ok := row[headers[i]]; ok && existing != "" {
				continue
			}
			row[headers[i]] = cell
		}
		if empty {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
