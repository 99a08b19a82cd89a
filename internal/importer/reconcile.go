// File path: internal/importer/reconcile.go
package importer

import (
	"fmt"
	"strings"
)

// Mode selects how a freshly built section is reconciled against the
// section the caller already holds.
type Mode int

const (
	// ModeReplace discards the prior content and adopts the incoming section.
	ModeReplace Mode = iota
	// ModeMerge keeps prior content, fills empty scalars, and folds list
	// entries together under their identity keys without duplication.
	ModeMerge
)

func (m Mode) String() string {
	if m == ModeMerge {
		return "merge"
	}
	return "replace"
}

// ParseMode converts the wire form ("replace" or "merge") into a Mode.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "replace":
		return ModeReplace, nil
	case "merge":
		return ModeMerge, nil
	}
	return ModeReplace, fmt.Errorf("unknown reconcile mode %q", raw)
}

// ReconcileContracts merges an incoming contracts section into the current
// one. Replace depends only on the incoming section; merge fills empty
// scalars, keeps current list entries first, and guarantees at most one
// highlight per normalized label and one key note per folded text.
func ReconcileContracts(current, incoming ContractsSection, provided ContractsProvided, mode Mode) ContractsSection {
	if mode == ModeReplace {
		return copyContracts(incoming)
	}
	out := copyContracts(current)
	if provided.Title {
		out.Title = mergeScalar(out.Title, incoming.Title)
	}
	if provided.Summary {
		out.Summary = mergeScalar(out.Summary, incoming.Summary)
	}
	if provided.ScreenshotCaption {
		out.ScreenshotCaption = mergeScalar(out.ScreenshotCaption, incoming.ScreenshotCaption)
	}
	out.KeyNotes = mergeStrings(out.KeyNotes, incoming.KeyNotes)
	out.StatusHighlights = mergeHighlights(out.StatusHighlights, incoming.StatusHighlights)
	out.ProductHighlights = mergeHighlights(out.ProductHighlights, incoming.ProductHighlights)
	return out
}

// ReconcileConnectivity merges connectivity inventories. Rows are keyed by
// their derived asset identity across both lists, so an asset that changed
// connection state between imports lands once, in the incoming state.
// The summary is recomputed from the merged lists.
func ReconcileConnectivity(current, incoming ConnectivitySection, provided ConnectivityProvided, mode Mode) ConnectivitySection {
	if mode == ModeReplace {
		out := copyConnectivity(incoming)
		out.Summary = ConnectivitySummary{
			TotalAssets:    len(out.Connected) + len(out.NotConnected),
			ConnectedCount: len(out.Connected),
		}
		return out
	}

	type placedRow struct {
		row       ConnectivityRow
		connected bool
	}
	var order []string
	placed := make(map[string]placedRow)
	absorb := func(rows []ConnectivityRow, connected bool) {
		for _, row := range rows {
			key := row.IdentityKey()
			if key == "" {
				continue
			}
			if _, seen := placed[key]; !seen {
				order = append(order, key)
			}
			placed[key] = placedRow{row: row, connected: connected}
		}
	}
	absorb(current.Connected, true)
	absorb(current.NotConnected, false)
	absorb(incoming.Connected, true)
	absorb(incoming.NotConnected, false)

	var out ConnectivitySection
	for _, key := range order {
		entry := placed[key]
		if entry.connected {
			out.Connected = append(out.Connected, entry.row)
			continue
		}
		out.NotConnected = append(out.NotConnected, entry.row)
	}
	out.Notes = mergeStrings(current.Notes, incoming.Notes)
	out.Summary = ConnectivitySummary{
		TotalAssets:    len(out.Connected) + len(out.NotConnected),
		ConnectedCount: len(out.Connected),
	}
	return out
}

// ReconcileTopProducts merges product tables keyed case-insensitively by
// product name. The incoming row wins wholesale at an existing key, incoming
// casing included.
func ReconcileTopProducts(current, incoming TopProductsSection, provided TopProductsProvided, mode Mode) TopProductsSection {
	if mode == ModeReplace {
		return TopProductsSection{Rows: append([]ProductRow(nil), incoming.Rows...)}
	}
	var order []string
	rows := make(map[string]ProductRow)
	absorb := func(list []ProductRow) {
		for _, row := range list {
			key := FoldValue(row.Product)
			if key == "" {
				continue
			}
			if _, seen := rows[key]; !seen {
				order = append(order, key)
			}
			rows[key] = row
		}
	}
	absorb(current.Rows)
	absorb(incoming.Rows)

	out := TopProductsSection{}
	for _, key := range order {
		out.Rows = append(out.Rows, rows[key])
	}
	return out
}

// mergeScalar keeps the current value unless it is empty: imported text
// fills gaps but never clobbers curated content.
func mergeScalar(current, incoming string) string {
	if strings.TrimSpace(current) != "" {
		return current
	}
	return incoming
}

// mergeStrings deduplicates by case-folded text, current entries first,
// preserving first-appearance order.
func mergeStrings(current, incoming []string) []string {
	var order []string
	values := make(map[string]string)
	absorb := func(list []string) {
		for _, text := range list {
			key := FoldValue(text)
			if key == "" {
				continue
			}
			if _, seen := values[key]; !seen {
				order = append(order, key)
			}
			values[key] = text
		}
	}
	absorb(current)
	absorb(incoming)
	if len(order) == 0 {
		return nil
	}
	out := make([]string, 0, len(order))
	for _, key := range order {
		out = append(out, values[key])
	}
	return out
}

// mergeHighlights deduplicates by normalized label with the incoming value
// winning at an existing key.
func mergeHighlights(current, incoming []Highlight) []Highlight {
	var order []string
	values := make(map[string]Highlight)
	absorb := func(list []Highlight) {
		for _, h := range list {
			key := FoldValue(h.Label)
			if key == "" {
				continue
			}
			if _, seen := values[key]; !seen {
				order = append(order, key)
			}
			values[key] = h
		}
	}
	absorb(current)
	absorb(incoming)
	if len(order) == 0 {
		return nil
	}
	out := make([]Highlight, 0, len(order))
	for _, key := range order {
		out = append(out, values[key])
	}
	return out
}

func copyContracts(s ContractsSection) ContractsSection {
	out := s
	out.KeyNotes = append([]string(nil), s.KeyNotes...)
	out.StatusHighlights = append([]Highlight(nil), s.StatusHighlights...)
	out.ProductHighlights = append([]Highlight(nil), s.ProductHighlights...)
	return out
}

func copyConnectivity(s ConnectivitySection) ConnectivitySection {
	out := s
	out.Connected = append([]ConnectivityRow(nil), s.Connected...)
	out.NotConnected = append([]ConnectivityRow(nil), s.NotConnected...)
	out.Notes = append([]string(nil), s.Notes...)
	return out
}
