// File path: internal/importer/connectivity.go
package importer

import (
	"strconv"
	"strings"
)

// Health labels accepted on connectivity rows. Anything else is dropped
// rather than coerced; a mangled export must not invent a health rating.
var allowedHealthLabels = map[string]string{
	"good": "Good",
	"fair": "Fair",
	"poor": "Poor",
}

const (
	statusConnected    = "Connected"
	statusNotConnected = "Not Connected"
)

// buildConnectivityRow converts one asset-export row into a connectivity
// entry. Rows lacking every identifying field are reported as unusable.
func buildConnectivityRow(row NormalizedRow, aliases AliasTable) (ConnectivityRow, bool) {
	out := ConnectivityRow{
		AssetID:          row.Lookup(aliases, FieldAssetID),
		AlternateAssetID: row.Lookup(aliases, FieldAltAssetID),
		ProductName:      row.Lookup(aliases, FieldProductName),
		AssetAlias:       row.Lookup(aliases, FieldAssetAlias),
	}
	if out.IdentityKey() == "" {
		return ConnectivityRow{}, false
	}

	out.Status = connectivityStatus(row.Lookup(aliases, FieldConnectivity))

	if scoreText := row.Lookup(aliases, FieldHealthScore); scoreText != "" {
		if score, err := strconv.ParseFloat(strings.TrimSpace(scoreText), 64); err == nil {
			out.HealthScore = &score
		}
	}
	if label, ok := allowedHealthLabels[FoldValue(row.Lookup(aliases, FieldHealthLabel))]; ok {
		out.HealthLabel = label
	}
	return out, true
}

// connectivityStatus defaults to Connected unless the export explicitly says
// otherwise.
func connectivityStatus(raw string) string {
	folded := FoldValue(raw)
	if folded == "not connected" || folded == "disconnected" || folded == "offline" {
		return statusNotConnected
	}
	return statusConnected
}

// buildConnectivity routes each filtered row into the connected or
// not-connected list. Manual-dialect batches contribute note rows instead of
// asset rows; any other manual category is a counted skip.
func buildConnectivity(rows []NormalizedRow, dialect Dialect, aliases AliasTable, stats *ImportStats) (ConnectivitySection, ConnectivityProvided) {
	var section ConnectivitySection
	var provided ConnectivityProvided

	for _, row := range rows {
		if dialect == DialectManual {
			category := FoldValue(row.Lookup(aliases, FieldCategory))
			if category != categoryNote {
				stats.Skipped++
				continue
			}
			text := firstNonEmpty(row.Lookup(aliases, FieldValue), row.Lookup(aliases, FieldNote), row.Lookup(aliases, FieldLabel))
			if text == "" {
				stats.Skipped++
				continue
			}
			section.Notes = append(section.Notes, text)
			provided.Notes++
			stats.ProcessedRows++
			continue
		}

		entry, usable := buildConnectivityRow(row, aliases)
		if !usable {
			stats.Skipped++
			continue
		}
		stats.ProcessedRows++
		if entry.Status == statusNotConnected {
			section.NotConnected = append(section.NotConnected, entry)
			provided.NotConnected++
			continue
		}
		section.Connected = append(section.Connected, entry)
		provided.Connected++
	}

	section.Summary = ConnectivitySummary{
		TotalAssets:    len(section.Connected) + len(section.NotConnected),
		ConnectedCount: len(section.Connected),
	}
	return section, provided
}
