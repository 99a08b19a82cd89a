// File path: internal/importer/dates_test.go
package importer

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDay(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want time.Time
		ok   bool
	}{
		{"iso", "2025-01-05", day(2025, time.January, 5), true},
		{"iso with time", "2025-01-05 13:45:00", day(2025, time.January, 5), true},
		{"rfc3339", "2025-01-05T00:00:00Z", day(2025, time.January, 5), true},
		{"us slash", "1/5/2025", day(2025, time.January, 5), true},
		{"us dash", "1-5-2025", day(2025, time.January, 5), true},
		{"two digit year low", "1/5/25", day(2025, time.January, 5), true},
		{"two digit year high", "1/5/99", day(1999, time.January, 5), true},
		{"long month", "January 5, 2025", day(2025, time.January, 5), true},
		{"whitespace", "  2025-01-05  ", day(2025, time.January, 5), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "soon", time.Time{}, false},
		{"month out of range", "13/5/2025", time.Time{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDay(tc.in)
			if ok != tc.ok {
				t.Fatalf("ParseDay(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			}
			if ok && !got.Equal(tc.want) {
				t.Fatalf("ParseDay(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestBucketForBoundaries(t *testing.T) {
	ref := day(2024, time.December, 1)
	cases := []struct {
		name string
		day  time.Time
		want Bucket
	}{
		{"yesterday", ref.AddDate(0, 0, -1), BucketExpired},
		{"today", ref, BucketWithin30},
		{"exactly 30", ref.AddDate(0, 0, 30), BucketWithin30},
		{"31", ref.AddDate(0, 0, 31), BucketWithin90},
		{"exactly 90", ref.AddDate(0, 0, 90), BucketWithin90},
		{"91", ref.AddDate(0, 0, 91), BucketWithin180},
		{"exactly 180", ref.AddDate(0, 0, 180), BucketWithin180},
		{"181", ref.AddDate(0, 0, 181), BucketBeyond180},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BucketFor(tc.day, true, ref); got != tc.want {
				t.Fatalf("BucketFor(%v) = %s, want %s", tc.day, got, tc.want)
			}
		})
	}

	if got := BucketFor(time.Time{}, false, ref); got != BucketUnknown {
		t.Fatalf("unparsed day bucketed as %s, want unknown", got)
	}
}

// Every date lands in exactly one bucket and the counts sum to the number
// of inputs.
func TestBucketPartition(t *testing.T) {
	ref := day(2024, time.December, 1)
	inputs := []string{
		"2024-11-01", "2024-12-01", "2024-12-31", "2025-03-01",
		"2025-05-30", "2026-01-01", "not a date", "",
	}
	var counts BucketCounts
	for _, in := range inputs {
		d, ok := ParseDay(in)
		counts.Add(BucketFor(d, ok, ref))
	}
	if counts.Total() != len(inputs) {
		t.Fatalf("bucket total = %d, want %d", counts.Total(), len(inputs))
	}
	if counts.Unknown != 2 {
		t.Fatalf("unknown = %d, want 2", counts.Unknown)
	}
	if counts.Expired != 1 {
		t.Fatalf("expired = %d, want 1", counts.Expired)
	}
}

func TestDaysUntil(t *testing.T) {
	ref := day(2024, time.December, 1)
	if got := DaysUntil(day(2025, time.January, 5), ref); got != 35 {
		t.Fatalf("DaysUntil = %d, want 35", got)
	}
	if got := DaysUntil(day(2024, time.November, 30), ref); got != -1 {
		t.Fatalf("DaysUntil = %d, want -1", got)
	}
}

func TestFormatPercentage(t *testing.T) {
	cases := []struct {
		count, total int
		want         string
	}{
		{0, 0, "0%"},
		{5, 0, "0%"},
		{1, 1, "100%"},
		{1, 3, "33%"},
		{2, 3, "67%"},
		{0, 10, "0%"},
	}
	for _, tc := range cases {
		if got := FormatPercentage(tc.count, tc.total); got != tc.want {
			t.Errorf("FormatPercentage(%d, %d) = %q, want %q", tc.count, tc.total, got, tc.want)
		}
	}
}
