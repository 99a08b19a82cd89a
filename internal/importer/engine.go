// File path: internal/importer/engine.go
package importer

import "time"

// Engine ties the normalizer, customer filter, dialect classifier and
// section builders together. It holds no state across calls: every Import
// method is a pure transform over its input rows, so concurrent imports
// against different current-section snapshots never interfere. Racing
// applies against the same stored section is the caller's hazard to
// serialize.
type Engine struct {
	aliases AliasTable
	filter  *CustomerFilter
	now     func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithAliases replaces the compiled-in alias table.
func WithAliases(aliases AliasTable) Option {
	return func(e *Engine) {
		if len(aliases) > 0 {
			e.aliases = aliases
		}
	}
}

// WithCustomerColumns replaces the customer filter's column priority list.
func WithCustomerColumns(columns []string) Option {
	return func(e *Engine) {
		if len(columns) > 0 {
			e.filter = NewCustomerFilter(columns...)
		}
	}
}

// WithNow fixes the reference clock used for date bucketing. Tests and the
// renewal digest pin this; production uses the wall clock.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine builds an Engine with the default alias table, customer columns
// and wall clock unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		aliases: DefaultAliases(),
		filter:  NewCustomerFilter(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// prepare normalizes the batch, classifies its dialect, and applies the
// customer filter, returning the surviving rows plus the shared accounting.
func (e *Engine) prepare(rows []RawRow, customer string) ([]NormalizedRow, Dialect, ImportStats) {
	normalized := make([]NormalizedRow, 0, len(rows))
	for _, raw := range rows {
		normalized = append(normalized, Normalize(raw))
	}
	dialect := ClassifyDialect(normalized, e.aliases)

	stats := ImportStats{TotalRows: len(rows), Dialect: dialect.String()}
	kept := normalized[:0]
	for _, row := range normalized {
		decision := e.filter.Match(row, customer)
		if decision.MatchedColumn != "" && stats.CustomerColumn == "" {
			stats.CustomerColumn = decision.MatchedColumn
		}
		if !decision.Include {
			stats.Filtered.ByCustomer++
			continue
		}
		kept = append(kept, row)
	}
	return kept, dialect, stats
}

// ImportContracts builds a contracts-review section from the batch. The
// dialect decides which builder runs: manual rows dispatch by category,
// asset exports aggregate buckets, frequency tables and narrative notes.
func (e *Engine) ImportContracts(rows []RawRow, customer string) *ContractsResult {
	kept, dialect, stats := e.prepare(rows, customer)
	result := &ContractsResult{}

	if dialect == DialectManual {
		result.Section, result.Provided = buildManualContracts(kept, e.aliases, &stats)
	} else {
		builder := newAssetContractsBuilder(e.now())
		for _, row := range kept {
			builder.add(row, e.aliases, &stats)
		}
		result.Section, result.Provided = builder.finish(&stats)
		result.Buckets = builder.buckets
		result.Renewals = builder.renewals
	}

	result.Stats = stats
	return result
}

// ImportConnectivity builds a connectivity section from the batch.
func (e *Engine) ImportConnectivity(rows []RawRow, customer string) *ConnectivityResult {
	kept, dialect, stats := e.prepare(rows, customer)
	result := &ConnectivityResult{}
	result.Section, result.Provided = buildConnectivity(kept, dialect, e.aliases, &stats)
	result.Stats = stats
	return result
}

// ImportTopProducts builds a top-products section from the batch.
func (e *Engine) ImportTopProducts(rows []RawRow, customer string) *TopProductsResult {
	kept, dialect, stats := e.prepare(rows, customer)
	result := &TopProductsResult{}
	result.Section, result.Provided = buildTopProducts(kept, dialect, e.aliases, &stats)
	result.Stats = stats
	return result
}
