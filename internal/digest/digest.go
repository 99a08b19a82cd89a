// File path: internal/digest/digest.go

// Package digest runs the scheduled contract renewal digest: it re-buckets
// every stored contract renewal against the current day and logs which
// customers have contracts already expired or due within 30 days. The
// digest is purely observational; it never mutates stored sections.
package digest

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"opsboard/internal/common"
	"opsboard/internal/common/telemetry"
	"opsboard/internal/importer"
	"opsboard/internal/store"
)

const defaultSchedule = "0 6 * * *"

// Config controls the digest schedule.
type Config struct {
	// Schedule is a standard cron expression. Empty disables the digest.
	Schedule string
}

// LoadConfig resolves the schedule from OPSBOARD_DIGEST_SCHEDULE, falling
// back to a daily 06:00 run.
func LoadConfig() Config {
	cfg := Config{Schedule: defaultSchedule}
	if env, ok := os.LookupEnv("OPSBOARD_DIGEST_SCHEDULE"); ok {
		cfg.Schedule = strings.TrimSpace(env)
	}
	return cfg
}

// Digest owns the cron runner.
type Digest struct {
	store *store.Store
	cron  *cron.Cron
	now   func() time.Time
}

// New constructs a digest over an opened store.
func New(st *store.Store) *Digest {
	return &Digest{store: st, now: time.Now}
}

// Start registers the schedule and launches the cron runner. An empty
// schedule is a no-op.
func (d *Digest) Start(cfg Config) error {
	logger := common.Logger()
	if strings.TrimSpace(cfg.Schedule) == "" {
		logger.Info("digest: schedule empty, digest disabled")
		return nil
	}
	d.cron = cron.New()
	if _, err := d.cron.AddFunc(cfg.Schedule, func() {
		d.Run(context.Background())
	}); err != nil {
		return err
	}
	d.cron.Start()
	logger.Info("digest: scheduled", "schedule", cfg.Schedule)
	return nil
}

// Stop halts the cron runner and waits for an in-flight run to finish.
func (d *Digest) Stop() {
	if d == nil || d.cron == nil {
		return
	}
	ctx := d.cron.Stop()
	<-ctx.Done()
}

// Run executes one digest pass. It is exported so an operator can trigger
// it out of schedule.
func (d *Digest) Run(ctx context.Context) {
	logger := common.Logger()
	renewals, err := d.store.ListRenewals(ctx)
	if err != nil {
		logger.Error("digest: list renewals failed", "error", err)
		return
	}

	now := d.now()
	type customerCounts struct {
		name     string
		expired  int
		dueSoon  int
		earliest string
	}
	perCustomer := make(map[int64]*customerCounts)
	var order []int64
	expiring := 0

	for _, renewal := range renewals {
		day, ok := importer.ParseDay(renewal.EndDate)
		bucket := importer.BucketFor(day, ok, now)
		if bucket != importer.BucketExpired && bucket != importer.BucketWithin30 {
			continue
		}
		counts, seen := perCustomer[renewal.CustomerID]
		if !seen {
			counts = &customerCounts{name: renewal.CustomerName}
			perCustomer[renewal.CustomerID] = counts
			order = append(order, renewal.CustomerID)
		}
		if bucket == importer.BucketExpired {
			counts.expired++
		} else {
			counts.dueSoon++
		}
		if counts.earliest == "" || renewal.EndDate < counts.earliest {
			counts.earliest = renewal.EndDate
		}
		expiring++
	}

	for _, id := range order {
		counts := perCustomer[id]
		logger.Warn("digest: contracts need attention",
			"customer", counts.name,
			"expired", counts.expired,
			"due_within_30", counts.dueSoon,
			"earliest_end_date", counts.earliest)
	}
	telemetry.RecordDigest(expiring)
	logger.Info("digest: run complete", "renewals", len(renewals), "flagged", expiring, "customers", len(order))
}
