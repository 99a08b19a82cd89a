// File path: internal/common/telemetry/telemetry.go
package telemetry

import (
	"expvar"
	"sync"
	"time"
)

var (
	initOnce sync.Once

	importBatchTotal    *expvar.Int
	importRowsTotal     *expvar.Int
	importSkippedTotal  *expvar.Int
	importFilteredTotal *expvar.Int
	importKindTotal     *expvar.Map

	digestRunTotal       *expvar.Int
	digestExpiringAssets *expvar.Int

	requestTotal     *expvar.Map
	requestLatencyMS *expvar.Map
)

func ensureInit() {
	initOnce.Do(func() {
		importBatchTotal = expvar.NewInt("opsboard_import_batches_total")
		importRowsTotal = expvar.NewInt("opsboard_import_rows_total")
		importSkippedTotal = expvar.NewInt("opsboard_import_skipped_total")
		importFilteredTotal = expvar.NewInt("opsboard_import_filtered_total")
		importKindTotal = expvar.NewMap("opsboard_import_kind_total")

		digestRunTotal = expvar.NewInt("opsboard_digest_runs_total")
		digestExpiringAssets = expvar.NewInt("opsboard_digest_expiring_assets")

		requestTotal = expvar.NewMap("opsboard_request_total")
		requestLatencyMS = expvar.NewMap("opsboard_request_latency_ms")
	})
}

// RecordImport tallies one engine invocation by section kind.
func RecordImport(kind string, processed, skipped, filtered int) {
	ensureInit()
	importBatchTotal.Add(1)
	importRowsTotal.Add(int64(processed))
	importSkippedTotal.Add(int64(skipped))
	importFilteredTotal.Add(int64(filtered))
	if kind != "" {
		importKindTotal.Add(kind, 1)
	}
}

// RecordDigest tallies one renewal digest run and the expiring assets found.
func RecordDigest(expiring int) {
	ensureInit()
	digestRunTotal.Add(1)
	if expiring > 0 {
		digestExpiringAssets.Add(int64(expiring))
	}
}

// RecordRequest tallies a served HTTP request by route pattern.
func RecordRequest(route string, dur time.Duration) {
	ensureInit()
	if route == "" {
		route = "unknown"
	}
	requestTotal.Add(route, 1)
	requestLatencyMS.Add(route, dur.Milliseconds())
}
