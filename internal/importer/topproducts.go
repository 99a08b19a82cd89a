// File path: internal/importer/topproducts.go
package importer

import (
	"strconv"
	"strings"
)

// buildTopProducts turns product tally rows into a top-products section. A
// manual-dialect batch supplies category=product rows with the tally in the
// value cell; a raw table supplies product/count/percent columns directly.
// Either way a row without a product name is a counted skip, and count and
// percent default to zero when the source omits them.
func buildTopProducts(rows []NormalizedRow, dialect Dialect, aliases AliasTable, stats *ImportStats) (TopProductsSection, TopProductsProvided) {
	var section TopProductsSection
	var provided TopProductsProvided

	for _, row := range rows {
		var entry ProductRow
		if dialect == DialectManual {
			category := FoldValue(row.Lookup(aliases, FieldCategory))
			if category != categoryProduct {
				stats.Skipped++
				continue
			}
			entry.Product = firstNonEmpty(row.Lookup(aliases, FieldLabel), row.Lookup(aliases, FieldProductName))
			entry.Count = parseCount(row.Lookup(aliases, FieldValue))
			entry.Percent = parsePercent(row.Lookup(aliases, FieldPercent))
		} else {
			entry.Product = row.Lookup(aliases, FieldProductName)
			entry.Count = parseCount(row.Lookup(aliases, FieldCount))
			entry.Percent = parsePercent(row.Lookup(aliases, FieldPercent))
		}

		if entry.Product == "" {
			stats.Skipped++
			continue
		}
		stats.ProcessedRows++
		section.Rows = append(section.Rows, entry)
		provided.Rows++
	}

	return section, provided
}

func parseCount(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	if n, err := strconv.Atoi(trimmed); err == nil && n >= 0 {
		return n
	}
	// Some exports render counts as floats ("12.0").
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && f >= 0 {
		return int(f)
	}
	return 0
}

func parsePercent(text string) float64 {
	trimmed := strings.TrimSuffix(strings.TrimSpace(text), "%")
	if trimmed == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64); err == nil && f >= 0 {
		return f
	}
	return 0
}
