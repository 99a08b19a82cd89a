// File path: internal/importer/dialect_test.go
package importer

import "testing"

func TestClassifyDialect(t *testing.T) {
	aliases := DefaultAliases()

	manual := []NormalizedRow{
		{"product name": "VxRail"},
		{"category": "note", "value": "Renew early"},
	}
	if got := ClassifyDialect(manual, aliases); got != DialectManual {
		t.Fatalf("one tagged row should force manual, got %s", got)
	}

	export := []NormalizedRow{
		{"product name": "VxRail", "contract end date": "2025-01-05"},
		{"product name": "Networker", "contract end date": "2099-01-01"},
	}
	if got := ClassifyDialect(export, aliases); got != DialectAssetExport {
		t.Fatalf("untagged rows should classify as asset export, got %s", got)
	}

	if got := ClassifyDialect(nil, aliases); got != DialectAssetExport {
		t.Fatalf("empty batch should classify as asset export, got %s", got)
	}

	// An empty category cell is not a tag.
	blank := []NormalizedRow{{"category": "", "product name": "VxRail"}}
	if got := ClassifyDialect(blank, aliases); got != DialectAssetExport {
		t.Fatalf("blank category should not force manual, got %s", got)
	}
}

func TestClassifyDialectAlias(t *testing.T) {
	aliases := DefaultAliases()
	rows := []NormalizedRow{{"row type": "status", "label": "Coverage", "value": "Good"}}
	if got := ClassifyDialect(rows, aliases); got != DialectManual {
		t.Fatalf("category alias should trigger manual, got %s", got)
	}
}
