// File path: internal/importer/reconcile_test.go
package importer

import (
	"reflect"
	"testing"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		raw     string
		want    Mode
		wantErr bool
	}{
		{"", ModeReplace, false},
		{"replace", ModeReplace, false},
		{"Merge", ModeMerge, false},
		{" merge ", ModeMerge, false},
		{"append", ModeReplace, true},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.raw)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMode(%q) err = %v", tc.raw, err)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestReconcileContractsReplaceIdempotent(t *testing.T) {
	incoming := ContractsSection{
		Title:    "Q3 Review",
		KeyNotes: []string{"Note one", "note one", "Note two"},
		StatusHighlights: []Highlight{
			{Label: "Active", Value: "10 assets"},
		},
	}
	provided := ContractsProvided{Title: true, KeyNotes: 3, StatusHighlights: 1}

	once := ReconcileContracts(ContractsSection{Title: "stale", Summary: "stale"}, incoming, provided, ModeReplace)
	twice := ReconcileContracts(once, incoming, provided, ModeReplace)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("replace not idempotent:\nonce  = %+v\ntwice = %+v", once, twice)
	}
	// Replace adopts duplicates as-is; only merge deduplicates.
	if len(once.KeyNotes) != 3 {
		t.Fatalf("replace deduplicated notes: %v", once.KeyNotes)
	}
	if once.Summary != "" {
		t.Fatalf("replace kept prior summary %q", once.Summary)
	}
}

func TestReconcileContractsMerge(t *testing.T) {
	current := ContractsSection{
		Title:    "Curated title",
		KeyNotes: []string{"Renew VxRail early"},
		StatusHighlights: []Highlight{
			{Label: "Active", Value: "10 assets"},
		},
	}
	incoming := ContractsSection{
		Title:   "Imported title",
		Summary: "Imported summary",
		KeyNotes: []string{
			"renew vxrail early",
			"Confirm Networker entitlements",
		},
		StatusHighlights: []Highlight{
			{Label: "active", Value: "12 assets"},
			{Label: "Expired", Value: "2 assets"},
		},
	}
	provided := ContractsProvided{Title: true, Summary: true, KeyNotes: 2, StatusHighlights: 2}

	out := ReconcileContracts(current, incoming, provided, ModeMerge)

	if out.Title != "Curated title" {
		t.Fatalf("merge clobbered non-empty title: %q", out.Title)
	}
	if out.Summary != "Imported summary" {
		t.Fatalf("merge must fill empty summary, got %q", out.Summary)
	}
	if len(out.KeyNotes) != 2 || out.KeyNotes[0] != "Renew VxRail early" {
		t.Fatalf("key notes = %v", out.KeyNotes)
	}
	if len(out.StatusHighlights) != 2 {
		t.Fatalf("status highlights = %v", out.StatusHighlights)
	}
	if out.StatusHighlights[0].Value != "12 assets" {
		t.Fatalf("incoming highlight value must win at the shared key: %+v", out.StatusHighlights[0])
	}
	assertNoDuplicateHighlightKeys(t, out.StatusHighlights)
}

func TestReconcileContractsMergeSkipsUnprovidedScalars(t *testing.T) {
	current := ContractsSection{}
	incoming := ContractsSection{Title: "ghost"}
	// provided.Title false: the batch never carried a title row, so even a
	// stray value must not land.
	out := ReconcileContracts(current, incoming, ContractsProvided{}, ModeMerge)
	if out.Title != "" {
		t.Fatalf("unprovided title leaked through merge: %q", out.Title)
	}
}

func TestReconcileConnectivityMergeMovesAsset(t *testing.T) {
	current := ConnectivitySection{
		Connected: []ConnectivityRow{
			{AssetID: "VX1", Status: statusConnected},
			{AssetID: "VX2", Status: statusConnected},
		},
		Notes: []string{"Gateway flaky"},
	}
	incoming := ConnectivitySection{
		NotConnected: []ConnectivityRow{
			{AssetID: "vx1", Status: statusNotConnected, HealthLabel: "Poor"},
		},
		Notes: []string{"gateway flaky", "Replaced switch"},
	}
	provided := ConnectivityProvided{NotConnected: 1, Notes: 2}

	out := ReconcileConnectivity(current, incoming, provided, ModeMerge)

	if len(out.Connected) != 1 || out.Connected[0].AssetID != "VX2" {
		t.Fatalf("connected = %+v", out.Connected)
	}
	if len(out.NotConnected) != 1 || out.NotConnected[0].AssetID != "vx1" {
		t.Fatalf("asset must land once in the incoming state: %+v", out.NotConnected)
	}
	if out.NotConnected[0].HealthLabel != "Poor" {
		t.Fatalf("incoming row fields must win: %+v", out.NotConnected[0])
	}
	if len(out.Notes) != 2 || out.Notes[0] != "Gateway flaky" {
		t.Fatalf("notes = %v", out.Notes)
	}
	if out.Summary.TotalAssets != 2 || out.Summary.ConnectedCount != 1 {
		t.Fatalf("summary = %+v", out.Summary)
	}

	seen := make(map[string]int)
	for _, row := range append(append([]ConnectivityRow(nil), out.Connected...), out.NotConnected...) {
		seen[row.IdentityKey()]++
	}
	for key, n := range seen {
		if n > 1 {
			t.Fatalf("identity %q appears %d times across lists", key, n)
		}
	}
}

func TestReconcileConnectivityReplaceRecomputesSummary(t *testing.T) {
	incoming := ConnectivitySection{
		Connected: []ConnectivityRow{{AssetID: "VX1"}},
		Summary:   ConnectivitySummary{TotalAssets: 99, ConnectedCount: 99},
	}
	out := ReconcileConnectivity(ConnectivitySection{}, incoming, ConnectivityProvided{Connected: 1}, ModeReplace)
	if out.Summary.TotalAssets != 1 || out.Summary.ConnectedCount != 1 {
		t.Fatalf("summary = %+v", out.Summary)
	}
}

func TestReconcileTopProductsMergeCaseInsensitive(t *testing.T) {
	current := TopProductsSection{Rows: []ProductRow{
		{Product: "VXRAIL", Count: 10, Percent: 40},
		{Product: "Networker", Count: 5, Percent: 20},
	}}
	incoming := TopProductsSection{Rows: []ProductRow{
		{Product: "VxRail", Count: 12, Percent: 48},
		{Product: "PowerStore", Count: 3, Percent: 12},
	}}

	out := ReconcileTopProducts(current, incoming, TopProductsProvided{Rows: 2}, ModeMerge)

	if len(out.Rows) != 3 {
		t.Fatalf("rows = %+v", out.Rows)
	}
	// The incoming row wins wholesale, its casing included, at the slot where
	// the product first appeared.
	if out.Rows[0].Product != "VxRail" || out.Rows[0].Count != 12 || out.Rows[0].Percent != 48 {
		t.Fatalf("merged row = %+v", out.Rows[0])
	}
	if out.Rows[1].Product != "Networker" || out.Rows[2].Product != "PowerStore" {
		t.Fatalf("ordering = %+v", out.Rows)
	}
}

func TestReconcileTopProductsReplace(t *testing.T) {
	current := TopProductsSection{Rows: []ProductRow{{Product: "Old", Count: 1}}}
	incoming := TopProductsSection{Rows: []ProductRow{{Product: "New", Count: 2}}}
	out := ReconcileTopProducts(current, incoming, TopProductsProvided{Rows: 1}, ModeReplace)
	if len(out.Rows) != 1 || out.Rows[0].Product != "New" {
		t.Fatalf("rows = %+v", out.Rows)
	}
}

func assertNoDuplicateHighlightKeys(t *testing.T, highlights []Highlight) {
	t.Helper()
	seen := make(map[string]struct{}, len(highlights))
	for _, h := range highlights {
		key := FoldValue(h.Label)
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate highlight key %q", key)
		}
		seen[key] = struct{}{}
	}
}
