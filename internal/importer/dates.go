// File path: internal/importer/dates.go
package importer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Bucket classifies a contract end date relative to a reference day.
type Bucket string

const (
	BucketExpired   Bucket = "expired"
	BucketWithin30  Bucket = "within30"
	BucketWithin90  Bucket = "within90"
	BucketWithin180 Bucket = "within180"
	BucketBeyond180 Bucket = "beyond180"
	BucketUnknown   Bucket = "unknown"
)

// bucketOrder fixes the presentation order of buckets, most urgent first.
var bucketOrder = []Bucket{
	BucketExpired,
	BucketWithin30,
	BucketWithin90,
	BucketWithin180,
	BucketBeyond180,
	BucketUnknown,
}

// BucketCounts holds how many processed rows fell into each bucket. The sum
// of all counts equals the number of processed rows.
type BucketCounts struct {
	Expired   int `json:"expired"`
	Within30  int `json:"within30"`
	Within90  int `json:"within90"`
	Within180 int `json:"within180"`
	Beyond180 int `json:"beyond180"`
	Unknown   int `json:"unknown"`
}

// Add increments the named bucket.
func (c *BucketCounts) Add(b Bucket) {
	switch b {
	case BucketExpired:
		c.Expired++
	case BucketWithin30:
		c.Within30++
	case BucketWithin90:
		c.Within90++
	case BucketWithin180:
		c.Within180++
	case BucketBeyond180:
		c.Beyond180++
	default:
		c.Unknown++
	}
}

// Count returns the tally for the named bucket.
func (c BucketCounts) Count(b Bucket) int {
	switch b {
	case BucketExpired:
		return c.Expired
	case BucketWithin30:
		return c.Within30
	case BucketWithin90:
		return c.Within90
	case BucketWithin180:
		return c.Within180
	case BucketBeyond180:
		return c.Beyond180
	default:
		return c.Unknown
	}
}

// Total returns the sum across all buckets.
func (c BucketCounts) Total() int {
	return c.Expired + c.Within30 + c.Within90 + c.Within180 + c.Beyond180 + c.Unknown
}

var slashDateRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)

var dayLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
}

// ParseDay parses a free-form date string into a UTC calendar day. It tries
// ISO and common locale layouts first, then M/D/YYYY and M-D-YYYY with two or
// four digit years. Two-digit years below 50 map to 20xx, the rest to 19xx.
// It never fails loudly: unparseable input reports ok=false.
func ParseDay(text string) (time.Time, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return truncateDay(t), true
		}
	}
	if m := slashDateRe.FindStringSubmatch(trimmed); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) <= 2 {
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
		}
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the whole-day difference between day and the reference
// day, rounding partial days up.
func DaysUntil(day, ref time.Time) int {
	diff := truncateDay(day).Sub(truncateDay(ref))
	return int(math.Ceil(diff.Hours() / 24))
}

// BucketFor classifies a parsed day against the reference day. Boundary
// values fall in the more urgent bucket: a difference of exactly 30 days is
// within30, not within90. A day that failed to parse is unknown.
func BucketFor(day time.Time, ok bool, ref time.Time) Bucket {
	if !ok {
		return BucketUnknown
	}
	diff := DaysUntil(day, ref)
	switch {
	case diff < 0:
		return BucketExpired
	case diff <= 30:
		return BucketWithin30
	case diff <= 90:
		return BucketWithin90
	case diff <= 180:
		return BucketWithin180
	default:
		return BucketBeyond180
	}
}

// bucketLabels maps buckets to the display labels used for status highlights.
var bucketLabels = map[Bucket]string{
	BucketExpired:   "Expired",
	BucketWithin30:  "Due within 30 days",
	BucketWithin90:  "Due in 31-90 days",
	BucketWithin180: "Due in 91-180 days",
	BucketBeyond180: "Beyond 180 days",
	BucketUnknown:   "Unknown expiry",
}
