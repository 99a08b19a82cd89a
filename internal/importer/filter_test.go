// File path: internal/importer/filter_test.go
package importer

import "testing"

func TestCustomerFilterSubstringMatch(t *testing.T) {
	filter := NewCustomerFilter()

	row := NormalizedRow{"customer name": "CRDB BANK PLC"}
	decision := filter.Match(row, "CRDB")
	if !decision.Include {
		t.Fatal("substring match should include the row")
	}
	if decision.MatchedColumn != "customer name" {
		t.Fatalf("matched column = %q", decision.MatchedColumn)
	}

	row = NormalizedRow{"customer name": "NMB BANK PLC"}
	decision = filter.Match(row, "CRDB")
	if decision.Include {
		t.Fatal("mismatched customer should be excluded")
	}
	if decision.MatchedColumn != "customer name" {
		t.Fatalf("exclusion should report the consulted column, got %q", decision.MatchedColumn)
	}
}

func TestCustomerFilterTargetContainsCell(t *testing.T) {
	filter := NewCustomerFilter()
	row := NormalizedRow{"account": "CRDB"}
	if d := filter.Match(row, "CRDB Bank PLC"); !d.Include {
		t.Fatal("cell contained in target should include the row")
	}
}

func TestCustomerFilterEmptyTarget(t *testing.T) {
	filter := NewCustomerFilter()
	row := NormalizedRow{"customer name": "Anyone"}
	d := filter.Match(row, "")
	if !d.Include || d.MatchedColumn != "" {
		t.Fatalf("empty target must include with no matched column, got %+v", d)
	}
}

func TestCustomerFilterFailOpen(t *testing.T) {
	filter := NewCustomerFilter()
	row := NormalizedRow{"product name": "VxRail", "serial number": "ABC123"}
	d := filter.Match(row, "CRDB")
	if !d.Include {
		t.Fatal("row without customer columns must be included")
	}
	if d.MatchedColumn != "" {
		t.Fatalf("fail-open should report no column, got %q", d.MatchedColumn)
	}
}

func TestCustomerFilterColumnPriority(t *testing.T) {
	filter := NewCustomerFilter()
	// "customer" outranks "site name"; only the first present column is
	// consulted even when a later one would match.
	row := NormalizedRow{
		"customer":  "NMB BANK PLC",
		"site name": "CRDB HQ",
	}
	d := filter.Match(row, "CRDB")
	if d.Include {
		t.Fatal("first candidate column mismatch must exclude the row")
	}
	if d.MatchedColumn != "customer" {
		t.Fatalf("matched column = %q, want customer", d.MatchedColumn)
	}
}

func TestCustomerFilterFoldsCase(t *testing.T) {
	filter := NewCustomerFilter()
	row := NormalizedRow{"customer name": "crdb   bank plc"}
	if d := filter.Match(row, "CRDB Bank"); !d.Include {
		t.Fatal("folded comparison should match across case and spacing")
	}
}
