// File path: internal/importer/dialect.go
package importer

// Dialect identifies which of the two supported CSV shapes a batch uses.
// The decision is made once for the whole batch; mixed files are not
// supported and are treated entirely as the dialect that triggered.
type Dialect int

const (
	// DialectManual marks hand-curated rows where each row tags itself with a
	// category (title, summary, note, status, product).
	DialectManual Dialect = iota
	// DialectAssetExport marks raw inventory exports where each row is one
	// asset or contract record with many columns.
	DialectAssetExport
)

func (d Dialect) String() string {
	if d == DialectManual {
		return "manual"
	}
	return "asset-export"
}

// ClassifyDialect inspects the full row set: if any row carries a non-empty
// category value the whole batch is manual. Manual sheets are explicitly
// self-describing and may be interleaved with incidental noise, so one tag is
// a strong signal; asset exports never carry a category column.
func ClassifyDialect(rows []NormalizedRow, aliases AliasTable) Dialect {
	for _, row := range rows {
		if row.Lookup(aliases, FieldCategory) != "" {
			return DialectManual
		}
	}
	return DialectAssetExport
}
