// File path: internal/csvfile/tokenize_test.go
package csvfile

import "testing"

func TestTokenize(t *testing.T) {
	content := []byte("Product,End Date,Customer\nVxRail,2025-01-05,CRDB Bank PLC\nNetworker,,CRDB Bank PLC\n")
	table, err := Tokenize(content)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(table.Headers) != 3 || table.Headers[0] != "Product" {
		t.Fatalf("headers = %v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %v", table.Rows)
	}
	if table.Rows[0]["End Date"] != "2025-01-05" {
		t.Fatalf("row 0 = %v", table.Rows[0])
	}
	if table.Rows[1]["End Date"] != "" {
		t.Fatalf("row 1 = %v", table.Rows[1])
	}
}

func TestTokenizeStripsBOM(t *testing.T) {
	content := []byte("\xef\xbb\xbfProduct\nVxRail\n")
	table, err := Tokenize(content)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if table.Headers[0] != "Product" {
		t.Fatalf("BOM survived: %q", table.Headers[0])
	}
}

func TestTokenizeEmptyContent(t *testing.T) {
	for _, content := range [][]byte{nil, []byte(""), []byte("  \n\t")} {
		table, err := Tokenize(content)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", content, err)
		}
		if len(table.Headers) != 0 || len(table.Rows) != 0 {
			t.Fatalf("Tokenize(%q) = %+v", content, table)
		}
	}
}

func TestTokenizeRaggedRows(t *testing.T) {
	content := []byte("A,B,C\n1,2\n1,2,3,4\n")
	table, err := Tokenize(content)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %v", table.Rows)
	}
	if table.Rows[0]["C"] != "" {
		t.Fatalf("short row = %v", table.Rows[0])
	}
	if _, ok := table.Rows[1]["D"]; ok {
		t.Fatalf("overflow cell kept: %v", table.Rows[1])
	}
}

func TestTokenizeDuplicateHeaderKeepsFirstNonEmpty(t *testing.T) {
	content := []byte("Name,Name\n,second\nfirst,second\n")
	table, err := Tokenize(content)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if table.Rows[0]["Name"] != "second" {
		t.Fatalf("row 0 = %v", table.Rows[0])
	}
	if table.Rows[1]["Name"] != "first" {
		t.Fatalf("row 1 = %v", table.Rows[1])
	}
}

func TestTokenizeDropsAllEmptyRows(t *testing.T) {
	content := []byte("A,B\n,\nx,y\n")
	table, err := Tokenize(content)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(table.Rows) != 1 || table.Rows[0]["A"] != "x" {
		t.Fatalf("rows = %v", table.Rows)
	}
}

func TestTokenizeLazyQuotes(t *testing.T) {
	content := []byte("Note\nsaid \"ok\" twice\n")
	table, err := Tokenize(content)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %v", table.Rows)
	}
}
