// File path: internal/common/telemetry/telemetry_test.go
package telemetry

import (
	"testing"
	"time"
)

func TestRecordImport(t *testing.T) {
	RecordImport("contracts", 8, 1, 1)
	RecordImport("contracts", 2, 0, 0)
	RecordImport("", 1, 0, 0)

	if got := importBatchTotal.Value(); got != 3 {
		t.Fatalf("batches = %d", got)
	}
	if got := importRowsTotal.Value(); got != 11 {
		t.Fatalf("rows = %d", got)
	}
	if got := importSkippedTotal.Value(); got != 1 {
		t.Fatalf("skipped = %d", got)
	}
	if kind := importKindTotal.Get("contracts"); kind == nil || kind.String() != "2" {
		t.Fatalf("kind counter = %v", kind)
	}
}

func TestRecordDigest(t *testing.T) {
	RecordDigest(0)
	RecordDigest(5)
	if got := digestExpiringAssets.Value(); got != 5 {
		t.Fatalf("expiring = %d", got)
	}
}

func TestRecordRequest(t *testing.T) {
	RecordRequest("", 10*time.Millisecond)
	if counter := requestTotal.Get("unknown"); counter == nil {
		t.Fatal("blank route not recorded as unknown")
	}
}
