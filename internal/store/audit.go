// File path: internal/store/audit.go
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// RecordImport inserts one import audit row.
func (s *Store) RecordImport(ctx context.Context, audit ImportAudit) error {
	if s == nil || s.db == nil {
		return errors.New("store not initialised")
	}
	if strings.TrimSpace(audit.BatchID) == "" {
		return errors.New("audit batch id required")
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO import_audit(batch_id, customer_id, kind, mode, dialect, total_rows, processed_rows, skipped, filtered_by_customer, applied)
                 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		audit.BatchID, audit.CustomerID, audit.Kind, audit.Mode, audit.Dialect,
		audit.TotalRows, audit.ProcessedRows, audit.Skipped, audit.FilteredByCustomer, audit.Applied); err != nil {
		return fmt.Errorf("insert import audit: %w", err)
	}
	return nil
}

// ListImports returns recent import audit rows, newest first.
func (s *Store) ListImports(ctx context.Context, limit int) ([]ImportAudit, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store not initialised")
	}
	if limit <= 0 {
		limit = 50
	}
	audits := []ImportAudit{}
	if err := s.db.SelectContext(ctx, &audits,
		`SELECT * FROM import_audit ORDER BY created_at DESC, id DESC LIMIT ?`, limit); err != nil {
		return nil, fmt.Errorf("select import audit: %w", err)
	}
	return audits, nil
}
