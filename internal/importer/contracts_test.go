// File path: internal/importer/contracts_test.go
package importer

import (
	"strings"
	"testing"
	"time"
)

func TestBuildManualContracts(t *testing.T) {
	aliases := DefaultAliases()
	rows := []NormalizedRow{
		{"category": "title", "value": "Q3 Contracts Review"},
		{"category": "summary", "value": "Coverage is healthy overall."},
		{"category": "note", "value": "Renew VxRail support early"},
		{"category": "note", "value": "Confirm Networker entitlements"},
		{"category": "status", "label": "Active support", "value": "12 assets"},
		{"category": "product", "label": "VxRail", "value": "5 assets"},
		{"category": "caption", "value": "Snapshot from vendor portal"},
		{"category": "mystery", "value": "dropped"},
		{"category": "note", "value": ""},
	}
	var stats ImportStats
	section, provided := buildManualContracts(rows, aliases, &stats)

	if section.Title != "Q3 Contracts Review" || !provided.Title {
		t.Fatalf("title = %q provided=%v", section.Title, provided.Title)
	}
	if section.Summary != "Coverage is healthy overall." {
		t.Fatalf("summary = %q", section.Summary)
	}
	if section.ScreenshotCaption != "Snapshot from vendor portal" {
		t.Fatalf("caption = %q", section.ScreenshotCaption)
	}
	if len(section.KeyNotes) != 2 || provided.KeyNotes != 2 {
		t.Fatalf("key notes = %v provided=%d", section.KeyNotes, provided.KeyNotes)
	}
	if len(section.StatusHighlights) != 1 || section.StatusHighlights[0].Label != "Active support" {
		t.Fatalf("status highlights = %v", section.StatusHighlights)
	}
	if len(section.ProductHighlights) != 1 || section.ProductHighlights[0].Label != "VxRail" {
		t.Fatalf("product highlights = %v", section.ProductHighlights)
	}
	if stats.ProcessedRows != 7 {
		t.Fatalf("processed = %d, want 7", stats.ProcessedRows)
	}
	if stats.Skipped != 2 {
		t.Fatalf("skipped = %d, want 2 (unknown category + empty note)", stats.Skipped)
	}
}

func TestBuildManualContractsLastWriteWins(t *testing.T) {
	aliases := DefaultAliases()
	rows := []NormalizedRow{
		{"category": "title", "value": "First title"},
		{"category": "title", "value": "Second title"},
	}
	var stats ImportStats
	section, _ := buildManualContracts(rows, aliases, &stats)
	if section.Title != "Second title" {
		t.Fatalf("title = %q, want last write", section.Title)
	}
}

func TestAssetContractsBuckets(t *testing.T) {
	aliases := DefaultAliases()
	now := day(2024, time.December, 1)
	builder := newAssetContractsBuilder(now)
	var stats ImportStats

	// 35 days out lands in within90; 2099 is beyond180.
	builder.add(NormalizedRow{"product name": "VxRail", "contract end date": "2025-01-05"}, aliases, &stats)
	builder.add(NormalizedRow{"product name": "Networker", "contract end date": "2099-01-01"}, aliases, &stats)

	if builder.buckets.Within90 != 1 || builder.buckets.Beyond180 != 1 {
		t.Fatalf("buckets = %+v", builder.buckets)
	}
	if builder.buckets.Within30 != 0 || builder.buckets.Total() != 2 {
		t.Fatalf("bucket partition violated: %+v", builder.buckets)
	}
	if stats.ProcessedRows != 2 || stats.Skipped != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestAssetContractsSkipsEmptyRows(t *testing.T) {
	aliases := DefaultAliases()
	builder := newAssetContractsBuilder(day(2024, time.December, 1))
	var stats ImportStats

	builder.add(NormalizedRow{"unrelated": "noise"}, aliases, &stats)
	builder.add(NormalizedRow{"product name": "", "contract end date": "", "serial number": ""}, aliases, &stats)

	if stats.Skipped != 2 || stats.ProcessedRows != 0 {
		t.Fatalf("stats = %+v, want 2 skipped", stats)
	}
}

func TestAssetContractsSection(t *testing.T) {
	aliases := DefaultAliases()
	now := day(2024, time.December, 1)
	builder := newAssetContractsBuilder(now)
	var stats ImportStats

	rows := []NormalizedRow{
		{"product name": "VxRail", "contract end date": "2025-01-05", "serial number": "VX1", "service level": "ProSupport", "contract type": "Renewal"},
		{"product name": "VxRail", "contract end date": "2024-11-01", "serial number": "VX2", "service level": "ProSupport", "contract type": "Renewal"},
		{"product name": "Networker", "contract end date": "2099-01-01", "serial number": "NW1", "service level": "Basic", "contract type": "New"},
		{"product name": "PowerStore", "contract end date": "nonsense", "serial number": "PS1"},
	}
	for _, row := range rows {
		builder.add(row, aliases, &stats)
	}
	section, provided := builder.finish(&stats)

	if !provided.Summary || section.Summary == "" {
		t.Fatal("asset export must synthesize a summary")
	}
	if provided.StatusHighlights != len(section.StatusHighlights) {
		t.Fatalf("provided.StatusHighlights = %d, list = %d", provided.StatusHighlights, len(section.StatusHighlights))
	}

	// Buckets: expired 1, within90 1, beyond180 1, unknown 1.
	wantLabels := map[string]string{
		"Expired":           "1 asset(s) (25%)",
		"Due in 31-90 days": "1 asset(s) (25%)",
		"Beyond 180 days":   "1 asset(s) (25%)",
		"Unknown expiry":    "1 asset(s) (25%)",
	}
	if len(section.StatusHighlights) != len(wantLabels) {
		t.Fatalf("status highlights = %v", section.StatusHighlights)
	}
	for _, h := range section.StatusHighlights {
		want, ok := wantLabels[h.Label]
		if !ok {
			t.Fatalf("unexpected status highlight %q", h.Label)
		}
		if h.Value != want {
			t.Fatalf("highlight %q = %q, want %q", h.Label, h.Value, want)
		}
	}

	// VxRail appears twice, so it leads the product highlights.
	if len(section.ProductHighlights) != 3 {
		t.Fatalf("product highlights = %v", section.ProductHighlights)
	}
	if section.ProductHighlights[0].Label != "VxRail" {
		t.Fatalf("top product = %q", section.ProductHighlights[0].Label)
	}

	var sawNext, sawExpired bool
	for _, note := range section.KeyNotes {
		if strings.Contains(note, "Next renewal") {
			sawNext = true
			if !strings.Contains(note, "2025-01-05") || !strings.Contains(note, "35 day(s)") {
				t.Fatalf("next renewal note = %q", note)
			}
		}
		if strings.Contains(note, "Earliest expired") {
			sawExpired = true
			if !strings.Contains(note, "2024-11-01") {
				t.Fatalf("expired note = %q", note)
			}
		}
	}
	if !sawNext || !sawExpired {
		t.Fatalf("key notes missing renewal narrative: %v", section.KeyNotes)
	}

	if len(builder.renewals) != 3 {
		t.Fatalf("renewals = %v, want 3 dated records", builder.renewals)
	}
}

func TestAssetContractsEmptyBatch(t *testing.T) {
	builder := newAssetContractsBuilder(day(2024, time.December, 1))
	var stats ImportStats
	section, provided := builder.finish(&stats)
	if !section.IsEmpty() {
		t.Fatalf("empty batch produced section %+v", section)
	}
	if provided.Summary || provided.KeyNotes != 0 {
		t.Fatalf("empty batch set provided flags: %+v", provided)
	}
}
