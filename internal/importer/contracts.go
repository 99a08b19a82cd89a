// File path: internal/importer/contracts.go
package importer

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Manual-dialect category tags. The mapping to section slots is total:
// anything outside this set is a counted skip, never a silent fallthrough.
const (
	categoryTitle   = "title"
	categorySummary = "summary"
	categoryCaption = "caption"
	categoryNote    = "note"
	categoryStatus  = "status"
	categoryProduct = "product"
)

// buildManualContracts dispatches each self-tagged row into its section
// slot. Note, status and product rows accumulate in order; title, summary
// and caption are single-valued with last write winning.
func buildManualContracts(rows []NormalizedRow, aliases AliasTable, stats *ImportStats) (ContractsSection, ContractsProvided) {
	var section ContractsSection
	var provided ContractsProvided

	for _, row := range rows {
		category := FoldValue(row.Lookup(aliases, FieldCategory))
		label := row.Lookup(aliases, FieldLabel)
		value := row.Lookup(aliases, FieldValue)
		note := row.Lookup(aliases, FieldNote)

		switch category {
		case categoryTitle:
			text := firstNonEmpty(value, note)
			if text == "" {
				stats.Skipped++
				continue
			}
			section.Title = text
			provided.Title = true
		case categorySummary:
			text := firstNonEmpty(value, note)
			if text == "" {
				stats.Skipped++
				continue
			}
			section.Summary = text
			provided.Summary = true
		case categoryCaption:
			text := firstNonEmpty(value, note)
			if text == "" {
				stats.Skipped++
				continue
			}
			section.ScreenshotCaption = text
			provided.ScreenshotCaption = true
		case categoryNote:
			text := firstNonEmpty(value, note, label)
			if text == "" {
				stats.Skipped++
				continue
			}
			section.KeyNotes = append(section.KeyNotes, text)
			provided.KeyNotes++
		case categoryStatus:
			highlight, ok := buildHighlight(label, value, note)
			if !ok {
				stats.Skipped++
				continue
			}
			section.StatusHighlights = append(section.StatusHighlights, highlight)
			provided.StatusHighlights++
		case categoryProduct:
			highlight, ok := buildHighlight(label, value, note)
			if !ok {
				stats.Skipped++
				continue
			}
			section.ProductHighlights = append(section.ProductHighlights, highlight)
			provided.ProductHighlights++
		default:
			stats.Skipped++
			continue
		}
		stats.ProcessedRows++
	}

	return section, provided
}

func buildHighlight(label, value, note string) (Highlight, bool) {
	text := firstNonEmpty(value, note)
	if label == "" && text == "" {
		return Highlight{}, false
	}
	if label == "" {
		label = text
		text = ""
	}
	return Highlight{Label: label, Value: text}, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

const topProductHighlights = 5

// assetContractsBuilder accumulates raw asset-export contract rows and
// synthesizes the derived contracts section.
type assetContractsBuilder struct {
	now      time.Time
	buckets  BucketCounts
	products *freqTable
	statuses *freqTable
	types    *freqTable
	renewals []Renewal

	nextRenewal     Renewal
	nextRenewalDays int
	hasNextRenewal  bool

	earliestExpiry    Renewal
	earliestExpiryDay time.Time
	hasExpired        bool
}

func newAssetContractsBuilder(now time.Time) *assetContractsBuilder {
	return &assetContractsBuilder{
		now:      now,
		products: newFreqTable(),
		statuses: newFreqTable(),
		types:    newFreqTable(),
	}
}

// add consumes one asset row. Rows lacking a product name, an end date and
// an asset identifier all at once carry no usable signal and are skipped --
// the builder never zero-fills a record it has no raw basis for.
func (b *assetContractsBuilder) add(row NormalizedRow, aliases AliasTable, stats *ImportStats) {
	product := row.Lookup(aliases, FieldProductName)
	endText := row.Lookup(aliases, FieldEndDate)
	assetID := row.Lookup(aliases, FieldAssetID)
	if product == "" && endText == "" && assetID == "" {
		stats.Skipped++
		return
	}
	stats.ProcessedRows++

	day, ok := ParseDay(endText)
	bucket := BucketFor(day, ok, b.now)
	b.buckets.Add(bucket)

	if product != "" {
		b.products.add(product)
	}
	if status := row.Lookup(aliases, FieldServiceLevel); status != "" {
		b.statuses.add(status)
	}
	if contractType := row.Lookup(aliases, FieldContractType); contractType != "" {
		b.types.add(contractType)
	}

	if !ok {
		return
	}
	description := assetDescription(product, assetID, row.Lookup(aliases, FieldAssetAlias))
	endDate := day.Format("2006-01-02")
	b.renewals = append(b.renewals, Renewal{Description: description, EndDate: endDate})

	diff := DaysUntil(day, b.now)
	if diff >= 0 {
		if !b.hasNextRenewal || diff < b.nextRenewalDays {
			b.nextRenewal = Renewal{Description: description, EndDate: endDate}
			b.nextRenewalDays = diff
			b.hasNextRenewal = true
		}
		return
	}
	if !b.hasExpired || day.Before(b.earliestExpiryDay) {
		b.earliestExpiry = Renewal{Description: description, EndDate: endDate}
		b.earliestExpiryDay = day
		b.hasExpired = true
	}
}

func assetDescription(product, assetID, alias string) string {
	name := firstNonEmpty(product, alias, assetID)
	id := firstNonEmpty(assetID, alias)
	if id != "" && id != name {
		return fmt.Sprintf("%s (%s)", name, id)
	}
	return name
}

// finish synthesizes the section from everything accumulated so far.
func (b *assetContractsBuilder) finish(stats *ImportStats) (ContractsSection, ContractsProvided) {
	var section ContractsSection
	var provided ContractsProvided
	processed := stats.ProcessedRows
	if processed == 0 {
		return section, provided
	}

	for _, bucket := range bucketOrder {
		count := b.buckets.Count(bucket)
		if count == 0 {
			continue
		}
		section.StatusHighlights = append(section.StatusHighlights, Highlight{
			Label: bucketLabels[bucket],
			Value: fmt.Sprintf("%d asset(s) (%s)", count, FormatPercentage(count, processed)),
		})
	}
	provided.StatusHighlights = len(section.StatusHighlights)

	for _, entry := range b.products.top(topProductHighlights) {
		section.ProductHighlights = append(section.ProductHighlights, Highlight{
			Label: entry.Display,
			Value: fmt.Sprintf("%d asset(s) (%s)", entry.Count, FormatPercentage(entry.Count, processed)),
		})
	}
	provided.ProductHighlights = len(section.ProductHighlights)

	section.KeyNotes = b.keyNotes(processed)
	provided.KeyNotes = len(section.KeyNotes)

	dueSoon := b.buckets.Expired + b.buckets.Within30 + b.buckets.Within90
	printer := message.NewPrinter(language.English)
	section.Summary = printer.Sprintf("%d contract record(s) on file; %d due within 90 days or expired; %d already expired.",
		processed, dueSoon, b.buckets.Expired)
	provided.Summary = true

	return section, provided
}

func (b *assetContractsBuilder) keyNotes(processed int) []string {
	printer := message.NewPrinter(language.English)
	notes := []string{
		printer.Sprintf("Detected %d contract record(s) in the uploaded export.", processed),
	}

	dueSoon := b.buckets.Expired + b.buckets.Within30 + b.buckets.Within90
	notes = append(notes, printer.Sprintf("%d record(s) are due within 90 days or already expired.", dueSoon))

	if top := b.statuses.top(3); len(top) > 0 {
		notes = append(notes, "Top service statuses: "+joinFreqEntries(top)+".")
	}
	if top := b.types.top(3); len(top) > 0 {
		notes = append(notes, "Top contract types: "+joinFreqEntries(top)+".")
	}
	if b.hasNextRenewal {
		notes = append(notes, fmt.Sprintf("Next renewal: %s on %s (%d day(s) out).",
			b.nextRenewal.Description, b.nextRenewal.EndDate, b.nextRenewalDays))
	}
	if b.hasExpired {
		notes = append(notes, fmt.Sprintf("Earliest expired contract: %s on %s.",
			b.earliestExpiry.Description, b.earliestExpiry.EndDate))
	}
	return notes
}

func joinFreqEntries(entries []freqEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s (%d)", e.Display, e.Count))
	}
	return strings.Join(parts, ", ")
}
