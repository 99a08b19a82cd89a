// File path: internal/importer/section.go
package importer

import (
	"fmt"
	"math"
	"strings"
)

// Highlight is one labeled value in a contracts section, e.g.
// ("Due within 30 days", "4 assets (12%)").
type Highlight struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ContractsSection is the contracts-review slice of an engagement report.
type ContractsSection struct {
	Title             string      `json:"title"`
	Summary           string      `json:"summary"`
	KeyNotes          []string    `json:"keyNotes"`
	StatusHighlights  []Highlight `json:"statusHighlights"`
	ProductHighlights []Highlight `json:"productHighlights"`
	ScreenshotCaption string      `json:"screenshotCaption"`
}

// IsEmpty reports whether the section holds no content at all.
func (s ContractsSection) IsEmpty() bool {
	return s.Title == "" && s.Summary == "" && s.ScreenshotCaption == "" &&
		len(s.KeyNotes) == 0 && len(s.StatusHighlights) == 0 && len(s.ProductHighlights) == 0
}

// ConnectivityRow is one asset in the connectivity inventory.
type ConnectivityRow struct {
	AssetID          string   `json:"assetId"`
	AlternateAssetID string   `json:"alternateAssetId"`
	ProductName      string   `json:"productName"`
	AssetAlias       string   `json:"assetAlias"`
	Status           string   `json:"status"`
	HealthScore      *float64 `json:"healthScore,omitempty"`
	HealthLabel      string   `json:"healthLabel,omitempty"`
}

// IdentityKey derives the deduplication key for merge reconciliation: the
// first non-empty identifying field, lowercased.
func (r ConnectivityRow) IdentityKey() string {
	for _, field := range []string{r.AssetID, r.AlternateAssetID, r.ProductName, r.AssetAlias} {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			return strings.ToLower(trimmed)
		}
	}
	return ""
}

// ConnectivitySummary carries the headline counts for a connectivity section.
type ConnectivitySummary struct {
	TotalAssets    int `json:"totalAssets"`
	ConnectedCount int `json:"connectedCount"`
}

// ConnectivitySection is the connectivity slice of an engagement report.
type ConnectivitySection struct {
	Summary      ConnectivitySummary `json:"summary"`
	Connected    []ConnectivityRow   `json:"connectedRows"`
	NotConnected []ConnectivityRow   `json:"notConnectedRows"`
	Notes        []string            `json:"notes"`
}

// IsEmpty reports whether the section holds no content at all.
func (s ConnectivitySection) IsEmpty() bool {
	return len(s.Connected) == 0 && len(s.NotConnected) == 0 && len(s.Notes) == 0
}

// ProductRow is one entry in a top-products table.
type ProductRow struct {
	Product string  `json:"product"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// TopProductsSection is the top-products slice of an engagement report,
// ordered and merge-keyed by product name (case-insensitive).
type TopProductsSection struct {
	Rows []ProductRow `json:"rows"`
}

// IsEmpty reports whether the section holds no rows.
func (s TopProductsSection) IsEmpty() bool {
	return len(s.Rows) == 0
}

// ImportStats carries the per-batch accounting every builder returns. A batch
// with ProcessedRows == 0 produced nothing usable; Skipped and
// Filtered.ByCustomer account for every dropped input row so the caller can
// tell the user why.
type ImportStats struct {
	TotalRows      int            `json:"totalRows"`
	ProcessedRows  int            `json:"processedRows"`
	Skipped        int            `json:"skipped"`
	Filtered       FilteredCounts `json:"filtered"`
	CustomerColumn string         `json:"customerColumn,omitempty"`
	Dialect        string         `json:"dialect,omitempty"`
}

// FilteredCounts breaks down rows excluded before building.
type FilteredCounts struct {
	ByCustomer int `json:"byCustomer"`
}

// NothingDetected reports whether the batch produced zero usable rows.
func (s ImportStats) NothingDetected() bool {
	return s.ProcessedRows == 0
}

// ContractsProvided flags which contracts-section slots this batch actually
// populated. Merge reconciliation never touches a slot the batch did not
// provide.
type ContractsProvided struct {
	Title             bool `json:"title"`
	Summary           bool `json:"summary"`
	ScreenshotCaption bool `json:"screenshotCaption"`
	KeyNotes          int  `json:"keyNotes"`
	StatusHighlights  int  `json:"statusHighlights"`
	ProductHighlights int  `json:"productHighlights"`
}

// ConnectivityProvided flags which connectivity slots this batch populated.
type ConnectivityProvided struct {
	Connected    int `json:"connected"`
	NotConnected int `json:"notConnected"`
	Notes        int `json:"notes"`
}

// TopProductsProvided flags which top-products slots this batch populated.
type TopProductsProvided struct {
	Rows int `json:"rows"`
}

// ContractsResult is the full outcome of one contracts import call. It is
// constructed fresh per call and never mutated after being returned.
type ContractsResult struct {
	Section  ContractsSection  `json:"section"`
	Provided ContractsProvided `json:"provided"`
	Buckets  BucketCounts      `json:"buckets"`
	Renewals []Renewal         `json:"renewals,omitempty"`
	Stats    ImportStats       `json:"stats"`
}

// Renewal is one dated contract record surfaced for downstream scheduling;
// the renewal digest re-buckets these against the current day.
type Renewal struct {
	Description string `json:"description"`
	EndDate     string `json:"endDate"`
}

// ConnectivityResult is the full outcome of one connectivity import call.
type ConnectivityResult struct {
	Section  ConnectivitySection  `json:"section"`
	Provided ConnectivityProvided `json:"provided"`
	Stats    ImportStats          `json:"stats"`
}

// TopProductsResult is the full outcome of one top-products import call.
type TopProductsResult struct {
	Section  TopProductsSection  `json:"section"`
	Provided TopProductsProvided `json:"provided"`
	Stats    ImportStats         `json:"stats"`
}

// FormatPercentage renders count/total as an integer percentage string.
// A zero total yields "0%" rather than a division error.
func FormatPercentage(count, total int) string {
	if total <= 0 {
		return "0%"
	}
	pct := int(math.Round(float64(count) / float64(total) * 100))
	return fmt.Sprintf("%d%%", pct)
}
