// File path: internal/importer/row.go

// Package importer implements the structured CSV import and reconciliation
// engine behind the dashboard's bulk-entry screens. It consumes rows already
// tokenized by the csvfile collaborator, canonicalizes their headers, filters
// them by customer, classifies the batch dialect, derives one of the three
// domain sections, and merges the result against previously entered state.
//
// Every function in the package is total: failure is represented as skip and
// filter counters on the returned result, never as an error value.
package importer

import "strings"

// RawRow maps a header string exactly as it appeared in the source file to a
// cell value. Produced by the tokenizer, consumed once by Normalize.
type RawRow map[string]string

// NormalizedRow maps canonical header keys (lowercase, punctuation and
// whitespace runs collapsed to single spaces) to trimmed cell values.
type NormalizedRow map[string]string

// NormalizeKey folds a raw header into its canonical form: lowercase with
// every run of whitespace, underscores, dashes and other punctuation
// collapsed to a single space, then trimmed.
func NormalizeKey(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	pendingSpace := false
	for _, r := range strings.ToLower(raw) {
		if isWordRune(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r >= 0x80:
		// Keep non-ASCII letters intact; exports from localized tooling
		// occasionally carry accented header text.
		return true
	}
	return false
}

// FoldValue normalizes a cell value for comparison purposes using the same
// case and whitespace folding applied to header keys.
func FoldValue(raw string) string {
	return NormalizeKey(raw)
}

// Normalize canonicalizes one raw row. Pure and total: an empty input row
// yields an empty normalized row. When two raw headers collapse to the same
// canonical key the first non-empty value wins.
func Normalize(raw RawRow) NormalizedRow {
	if len(raw) == 0 {
		return NormalizedRow{}
	}
	out := make(NormalizedRow, len(raw))
	for header, cell := range raw {
		key := NormalizeKey(header)
		if key == "" {
			continue
		}
		value := strings.TrimSpace(cell)
		if existing, ok := out[key]; ok && existing != "" {
			continue
		}
		out[key] = value
	}
	return out
}

// Lookup resolves a logical field against the row using the alias list from
// the table: the field's own canonical name is consulted first, then each
// alias in declared order. The first non-empty value wins.
func (r NormalizedRow) Lookup(aliases AliasTable, field string) string {
	if v := r[field]; v != "" {
		return v
	}
	for _, alias := range aliases[field] {
		if v := r[alias]; v != "" {
			return v
		}
	}
	return ""
}

// HasColumn reports whether the row carries any of the listed canonical
// columns, returning the first one present. Presence is keyed on the header
// existing at all, not on the cell being non-empty.
func (r NormalizedRow) HasColumn(columns []string) (string, bool) {
	for _, col := range columns {
		if _, ok := r[col]; ok {
			return col, true
		}
	}
	return "", false
}
