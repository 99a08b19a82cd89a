// File path: internal/importer/filter.go
package importer

import "strings"

// FilterDecision reports whether a row belongs to the selected customer and
// which column the decision was based on. MatchedColumn is empty when no
// candidate column was present (or no filtering was requested), which lets a
// caller diagnose why rows were excluded.
type FilterDecision struct {
	Include       bool
	MatchedColumn string
}

// CustomerFilter decides row ownership by fuzzy substring matching across a
// fixed priority list of customer-ish columns. When none of the candidate
// columns exist the filter fails open and includes the row: rejecting data
// it cannot inspect would silently discard legitimate rows.
type CustomerFilter struct {
	columns []string
}

// NewCustomerFilter builds a filter over the given canonical column names in
// priority order. An empty list falls back to DefaultCustomerColumns.
func NewCustomerFilter(columns ...string) *CustomerFilter {
	if len(columns) == 0 {
		columns = DefaultCustomerColumns()
	}
	return &CustomerFilter{columns: columns}
}

// Match applies the filter to one normalized row. An empty target disables
// filtering entirely. Only the first candidate column present in the row is
// consulted; a present-but-mismatched column excludes the row and is
// reported so false negatives can be traced to their source column.
func (f *CustomerFilter) Match(row NormalizedRow, target string) FilterDecision {
	folded := FoldValue(target)
	if folded == "" {
		return FilterDecision{Include: true}
	}
	column, ok := row.HasColumn(f.columns)
	if !ok {
		return FilterDecision{Include: true}
	}
	cell := FoldValue(row[column])
	if strings.Contains(cell, folded) || strings.Contains(folded, cell) {
		return FilterDecision{Include: true, MatchedColumn: column}
	}
	return FilterDecision{Include: false, MatchedColumn: column}
}
