// File path: internal/importer/freq.go
package importer

import "sort"

// freqEntry pairs a display value with its occurrence count.
type freqEntry struct {
	Display string
	Count   int
}

// freqTable tallies case-insensitive value frequencies while remembering the
// first-seen spelling for display and the order of first appearance for
// stable tie-breaking.
type freqTable struct {
	counts map[string]int
	names  map[string]string
	order  []string
}

func newFreqTable() *freqTable {
	return &freqTable{
		counts: make(map[string]int),
		names:  make(map[string]string),
	}
}

func (t *freqTable) add(value string) {
	key := FoldValue(value)
	if key == "" {
		return
	}
	if _, seen := t.counts[key]; !seen {
		t.names[key] = value
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// top returns the n most frequent entries, ordered by descending count with
// ties broken by first appearance.
func (t *freqTable) top(n int) []freqEntry {
	rank := make(map[string]int, len(t.order))
	for i, key := range t.order {
		rank[key] = i
	}
	keys := append([]string(nil), t.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		if t.counts[keys[i]] != t.counts[keys[j]] {
			return t.counts[keys[i]] > t.counts[keys[j]]
		}
		return rank[keys[i]] < rank[keys[j]]
	})
	if n > len(keys) {
		n = len(keys)
	}
	out := make([]freqEntry, 0, n)
	for _, key := range keys[:n] {
		out = append(out, freqEntry{Display: t.names[key], Count: t.counts[key]})
	}
	return out
}
