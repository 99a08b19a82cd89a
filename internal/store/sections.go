// File path: internal/store/sections.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"opsboard/internal/importer"
)

const (
	highlightKindStatus  = "status"
	highlightKindProduct = "product"
)

// ContractsSection loads the stored contracts-review section for a customer.
// A customer with no stored section yields the zero section.
func (s *Store) ContractsSection(ctx context.Context, customerID int64) (importer.ContractsSection, error) {
	var section importer.ContractsSection
	if s == nil || s.db == nil {
		return section, errors.New("store not initialised")
	}

	var head struct {
		Title             string `db:"title"`
		Summary           string `db:"summary"`
		ScreenshotCaption string `db:"screenshot_caption"`
	}
	err := s.db.GetContext(ctx, &head,
		`SELECT COALESCE(title, '') AS title,
                        COALESCE(summary, '') AS summary,
                        COALESCE(screenshot_caption, '') AS screenshot_caption
                 FROM contract_sections WHERE customer_id = ?`, customerID)
	if errors.Is(err, sql.ErrNoRows) {
		return section, nil
	}
	if err != nil {
		return section, fmt.Errorf("select contract section: %w", err)
	}
	section.Title = head.Title
	section.Summary = head.Summary
	section.ScreenshotCaption = head.ScreenshotCaption

	if err := s.db.SelectContext(ctx, &section.KeyNotes,
		`SELECT note FROM contract_notes WHERE customer_id = ? ORDER BY position`, customerID); err != nil {
		return section, fmt.Errorf("select contract notes: %w", err)
	}
	section.StatusHighlights, err = s.contractHighlights(ctx, customerID, highlightKindStatus)
	if err != nil {
		return section, err
	}
	section.ProductHighlights, err = s.contractHighlights(ctx, customerID, highlightKindProduct)
	if err != nil {
		return section, err
	}
	return section, nil
}

func (s *Store) contractHighlights(ctx context.Context, customerID int64, kind string) ([]importer.Highlight, error) {
	highlights := []importer.Highlight{}
	if err := s.db.SelectContext(ctx, &highlights,
		`SELECT label, COALESCE(value, '') AS value FROM contract_highlights
                 WHERE customer_id = ? AND kind = ? ORDER BY position`, customerID, kind); err != nil {
		return nil, fmt.Errorf("select %s highlights: %w", kind, err)
	}
	if len(highlights) == 0 {
		return nil, nil
	}
	return highlights, nil
}

// SaveContractsSection replaces the stored contracts section and its renewal
// records for a customer in a single transaction.
func (s *Store) SaveContractsSection(ctx context.Context, customerID int64, section importer.ContractsSection, renewals []importer.Renewal) error {
	if s == nil || s.db == nil {
		return errors.New("store not initialised")
	}
	return withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO contract_sections(customer_id, title, summary, screenshot_caption, updated_at)
                         VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
                         ON CONFLICT(customer_id) DO UPDATE SET
                                title = excluded.title,
                                summary = excluded.summary,
                                screenshot_caption = excluded.screenshot_caption,
                                updated_at = CURRENT_TIMESTAMP`,
			customerID, section.Title, section.Summary, section.ScreenshotCaption); err != nil {
			return fmt.Errorf("upsert contract section: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM contract_notes WHERE customer_id = ?`, customerID); err != nil {
			return fmt.Errorf("clear contract notes: %w", err)
		}
		for i, note := range section.KeyNotes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO contract_notes(customer_id, position, note) VALUES (?, ?, ?)`,
				customerID, i, note); err != nil {
				return fmt.Errorf("insert contract note: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM contract_highlights WHERE customer_id = ?`, customerID); err != nil {
			return fmt.Errorf("clear contract highlights: %w", err)
		}
		if err := insertHighlights(ctx, tx, customerID, highlightKindStatus, section.StatusHighlights); err != nil {
			return err
		}
		if err := insertHighlights(ctx, tx, customerID, highlightKindProduct, section.ProductHighlights); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM contract_renewals WHERE customer_id = ?`, customerID); err != nil {
			return fmt.Errorf("clear contract renewals: %w", err)
		}
		for _, renewal := range renewals {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO contract_renewals(customer_id, description, end_date) VALUES (?, ?, ?)`,
				customerID, renewal.Description, renewal.EndDate); err != nil {
				return fmt.Errorf("insert contract renewal: %w", err)
			}
		}
		return nil
	})
}

func insertHighlights(ctx context.Context, tx *sqlx.Tx, customerID int64, kind string, highlights []importer.Highlight) error {
	for i, h := range highlights {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO contract_highlights(customer_id, kind, position, label, value) VALUES (?, ?, ?, ?, ?)`,
			customerID, kind, i, h.Label, h.Value); err != nil {
			return fmt.Errorf("insert %s highlight: %w", kind, err)
		}
	}
	return nil
}

type connectivityRowRecord struct {
	Connected   bool     `db:"connected"`
	AssetID     string   `db:"asset_id"`
	AltAssetID  string   `db:"alt_asset_id"`
	ProductName string   `db:"product_name"`
	AssetAlias  string   `db:"asset_alias"`
	Status      string   `db:"status"`
	HealthScore *float64 `db:"health_score"`
	HealthLabel string   `db:"health_label"`
}

// ConnectivitySection loads the stored connectivity section for a customer.
func (s *Store) ConnectivitySection(ctx context.Context, customerID int64) (importer.ConnectivitySection, error) {
	var section importer.ConnectivitySection
	if s == nil || s.db == nil {
		return section, errors.New("store not initialised")
	}

	var head struct {
		TotalAssets    int `db:"total_assets"`
		ConnectedCount int `db:"connected_count"`
	}
	err := s.db.GetContext(ctx, &head,
		`SELECT total_assets, connected_count FROM connectivity_sections WHERE customer_id = ?`, customerID)
	if errors.Is(err, sql.ErrNoRows) {
		return section, nil
	}
	if err != nil {
		return section, fmt.Errorf("select connectivity section: %w", err)
	}
	section.Summary = importer.ConnectivitySummary{TotalAssets: head.TotalAssets, ConnectedCount: head.ConnectedCount}

	records := []connectivityRowRecord{}
	if err := s.db.SelectContext(ctx, &records,
		`SELECT connected,
                        COALESCE(asset_id, '') AS asset_id,
                        COALESCE(alt_asset_id, '') AS alt_asset_id,
                        COALESCE(product_name, '') AS product_name,
                        COALESCE(asset_alias, '') AS asset_alias,
                        COALESCE(status, '') AS status,
                        health_score,
                        COALESCE(health_label, '') AS health_label
                 FROM connectivity_rows WHERE customer_id = ? ORDER BY connected DESC, position`, customerID); err != nil {
		return section, fmt.Errorf("select connectivity rows: %w", err)
	}
	for _, rec := range records {
		row := importer.ConnectivityRow{
			AssetID:          rec.AssetID,
			AlternateAssetID: rec.AltAssetID,
			ProductName:      rec.ProductName,
			AssetAlias:       rec.AssetAlias,
			Status:           rec.Status,
			HealthScore:      rec.HealthScore,
			HealthLabel:      rec.HealthLabel,
		}
		if rec.Connected {
			section.Connected = append(section.Connected, row)
			continue
		}
		section.NotConnected = append(section.NotConnected, row)
	}

	if err := s.db.SelectContext(ctx, &section.Notes,
		`SELECT note FROM connectivity_notes WHERE customer_id = ? ORDER BY position`, customerID); err != nil {
		return section, fmt.Errorf("select connectivity notes: %w", err)
	}
	return section, nil
}

// SaveConnectivitySection replaces the stored connectivity section for a
// customer in a single transaction.
func (s *Store) SaveConnectivitySection(ctx context.Context, customerID int64, section importer.ConnectivitySection) error {
	if s == nil || s.db == nil {
		return errors.New("store not initialised")
	}
	return withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO connectivity_sections(customer_id, total_assets, connected_count, updated_at)
                         VALUES (?, ?, ?, CURRENT_TIMESTAMP)
                         ON CONFLICT(customer_id) DO UPDATE SET
                                total_assets = excluded.total_assets,
                                connected_count = excluded.connected_count,
                                updated_at = CURRENT_TIMESTAMP`,
			customerID, section.Summary.TotalAssets, section.Summary.ConnectedCount); err != nil {
			return fmt.Errorf("upsert connectivity section: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM connectivity_rows WHERE customer_id = ?`, customerID); err != nil {
			return fmt.Errorf("clear connectivity rows: %w", err)
		}
		if err := insertConnectivityRows(ctx, tx, customerID, true, section.Connected); err != nil {
			return err
		}
		if err := insertConnectivityRows(ctx, tx, customerID, false, section.NotConnected); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM connectivity_notes WHERE customer_id = ?`, customerID); err != nil {
			return fmt.Errorf("clear connectivity notes: %w", err)
		}
		for i, note := range section.Notes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO connectivity_notes(customer_id, position, note) VALUES (?, ?, ?)`,
				customerID, i, note); err != nil {
				return fmt.Errorf("insert connectivity note: %w", err)
			}
		}
		return nil
	})
}

func insertConnectivityRows(ctx context.Context, tx *sqlx.Tx, customerID int64, connected bool, rows []importer.ConnectivityRow) error {
	for i, row := range rows {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO connectivity_rows(customer_id, connected, position, asset_id, alt_asset_id, product_name, asset_alias, status, health_score, health_label)
                         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			customerID, connected, i, row.AssetID, row.AlternateAssetID, row.ProductName,
			row.AssetAlias, row.Status, row.HealthScore, row.HealthLabel); err != nil {
			return fmt.Errorf("insert connectivity row: %w", err)
		}
	}
	return nil
}

// TopProductsSection loads the stored top-products section for a customer.
func (s *Store) TopProductsSection(ctx context.Context, customerID int64) (importer.TopProductsSection, error) {
	var section importer.TopProductsSection
	if s == nil || s.db == nil {
		return section, errors.New("store not initialised")
	}
	rows := []importer.ProductRow{}
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT product, count, percent FROM top_product_rows WHERE customer_id = ? ORDER BY position`, customerID); err != nil {
		return section, fmt.Errorf("select top products: %w", err)
	}
	if len(rows) > 0 {
		section.Rows = rows
	}
	return section, nil
}

// SaveTopProductsSection replaces the stored top-products section for a
// customer in a single transaction.
func (s *Store) SaveTopProductsSection(ctx context.Context, customerID int64, section importer.TopProductsSection) error {
	if s == nil || s.db == nil {
		return errors.New("store not initialised")
	}
	return withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM top_product_rows WHERE customer_id = ?`, customerID); err != nil {
			return fmt.Errorf("clear top products: %w", err)
		}
		for i, row := range section.Rows {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO top_product_rows(customer_id, position, product, count, percent) VALUES (?, ?, ?, ?, ?)`,
				customerID, i, row.Product, row.Count, row.Percent); err != nil {
				return fmt.Errorf("insert top product: %w", err)
			}
		}
		return nil
	})
}

// ListRenewals returns every stored contract renewal joined with its
// customer, ordered by end date.
func (s *Store) ListRenewals(ctx context.Context) ([]CustomerRenewal, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store not initialised")
	}
	renewals := []CustomerRenewal{}
	if err := s.db.SelectContext(ctx, &renewals,
		`SELECT r.customer_id, c.name AS customer_name, COALESCE(r.description, '') AS description, r.end_date
                 FROM contract_renewals r
                 INNER JOIN customers c ON c.id = r.customer_id
                 ORDER BY r.end_date, c.name`); err != nil {
		return nil, fmt.Errorf("select renewals: %w", err)
	}
	return renewals, nil
}
