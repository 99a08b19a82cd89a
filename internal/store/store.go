// File path: internal/store/store.go

// Package store persists the dashboard's customers, engagement reports and
// imported report sections in SQLite. The import engine itself owns no
// state; everything durable lives here.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store wraps a pooled sqlx.DB connection to the SQLite database.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store backed by the SQLite database at the provided
// path. The schema is migrated (and optionally seeded) on first use.
func Open(path string) (*Store, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		cfg.Path = trimmed
	}
	return OpenWithConfig(cfg)
}

// OpenWithConfig constructs a Store using the provided configuration.
func OpenWithConfig(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("store path required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve store path: %w", err)
	}
	busy := int(cfg.BusyTimeout / time.Millisecond)
	if busy <= 0 {
		busy = 5000
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	pingTimeout := cfg.BusyTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	if cfg.SeedDemoData {
		if err := store.seed(context.Background()); err != nil {
			db.Close()
			return nil, err
		}
	}
	return store, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the raw connection for tests.
func (s *Store) DB() *sqlx.DB {
	if s == nil {
		return nil
	}
	return s.db
}

func (s *Store) migrate(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("store not initialised")
	}
	// SQLite rejects journal-mode changes inside a transaction, so run the
	// PRAGMA statements before the migration transaction begins.
	for i, stmt := range schemaStatements {
		if !strings.HasPrefix(stmt, "PRAGMA") {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
	}
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	for i, stmt := range schemaStatements {
		if strings.HasPrefix(stmt, "PRAGMA") {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

func (s *Store) seed(ctx context.Context) error {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM customers`); err != nil {
		return fmt.Errorf("count customers: %w", err)
	}
	if count > 0 {
		return nil
	}
	return withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		for _, c := range demoCustomers {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO customers(name, industry, region) VALUES (?, ?, ?)`,
				c.Name, c.Industry, c.Region); err != nil {
				return fmt.Errorf("seed customer %s: %w", c.Name, err)
			}
		}
		return nil
	})
}

var demoCustomers = []Customer{
	{Name: "CRDB Bank PLC", Industry: "Banking", Region: "Dar es Salaam"},
	{Name: "NMB Bank PLC", Industry: "Banking", Region: "Dar es Salaam"},
	{Name: "Vodacom Tanzania", Industry: "Telecom", Region: "Dar es Salaam"},
	{Name: "TANESCO", Industry: "Energy", Region: "Dodoma"},
}

func withTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

var schemaStatements = []string{
	`PRAGMA journal_mode = WAL;`,
	`PRAGMA foreign_keys = ON;`,
	`CREATE TABLE IF NOT EXISTS customers (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                name TEXT NOT NULL UNIQUE,
                industry TEXT,
                region TEXT,
                created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	`CREATE TABLE IF NOT EXISTS reports (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                customer_id INTEGER NOT NULL,
                period TEXT NOT NULL,
                title TEXT,
                created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                FOREIGN KEY(customer_id) REFERENCES customers(id) ON DELETE CASCADE,
                UNIQUE(customer_id, period)
        );`,
	`CREATE TABLE IF NOT EXISTS contract_sections (
                customer_id INTEGER PRIMARY KEY,
                title TEXT,
                summary TEXT,
                screenshot_caption TEXT,
                updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                FOREIGN KEY(customer_id) REFERENCES customers(id) ON DELETE CASCADE
        );`,
	`CREATE TABLE IF NOT EXISTS contract_notes (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                customer_id INTEGER NOT NULL,
                position INTEGER NOT NULL,
                note TEXT NOT NULL,
                FOREIGN KEY(customer_id) REFERENCES contract_sections(customer_id) ON DELETE CASCADE
        );`,
	`CREATE TABLE IF NOT EXISTS contract_highlights (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                customer_id INTEGER NOT NULL,
                kind TEXT NOT NULL,
                position INTEGER NOT NULL,
                label TEXT NOT NULL,
                value TEXT,
                FOREIGN KEY(customer_id) REFERENCES contract_sections(customer_id) ON DELETE CASCADE
        );`,
	`CREATE TABLE IF NOT EXISTS contract_renewals (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                customer_id INTEGER NOT NULL,
                description TEXT,
                end_date TEXT NOT NULL,
                FOREIGN KEY(customer_id) REFERENCES contract_sections(customer_id) ON DELETE CASCADE
        );`,
	`CREATE TABLE IF NOT EXISTS connectivity_sections (
                customer_id INTEGER PRIMARY KEY,
                total_assets INTEGER NOT NULL DEFAULT 0,
                connected_count INTEGER NOT NULL DEFAULT 0,
                updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                FOREIGN KEY(customer_id) REFERENCES customers(id) ON DELETE CASCADE
        );`,
	`CREATE TABLE IF NOT EXISTS connectivity_rows (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                customer_id INTEGER NOT NULL,
                connected INTEGER NOT NULL,
                position INTEGER NOT NULL,
                asset_id TEXT,
                alt_asset_id TEXT,
                product_name TEXT,
                asset_alias TEXT,
                status TEXT,
                health_score REAL,
                health_label TEXT,
                FOREIGN KEY(customer_id) REFERENCES connectivity_sections(customer_id) ON DELETE CASCADE
        );`,
	`CREATE TABLE IF NOT EXISTS connectivity_notes (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                customer_id INTEGER NOT NULL,
                position INTEGER NOT NULL,
                note TEXT NOT NULL,
                FOREIGN KEY(customer_id) REFERENCES connectivity_sections(customer_id) ON DELETE CASCADE
        );`,
	`CREATE TABLE IF NOT EXISTS top_product_rows (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                customer_id INTEGER NOT NULL,
                position INTEGER NOT NULL,
                product TEXT NOT NULL,
                count INTEGER NOT NULL DEFAULT 0,
                percent REAL NOT NULL DEFAULT 0,
                FOREIGN KEY(customer_id) REFERENCES customers(id) ON DELETE CASCADE
        );`,
	`CREATE TABLE IF NOT EXISTS import_audit (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                batch_id TEXT NOT NULL,
                customer_id INTEGER,
                kind TEXT NOT NULL,
                mode TEXT NOT NULL,
                dialect TEXT,
                total_rows INTEGER NOT NULL DEFAULT 0,
                processed_rows INTEGER NOT NULL DEFAULT 0,
                skipped INTEGER NOT NULL DEFAULT 0,
                filtered_by_customer INTEGER NOT NULL DEFAULT 0,
                applied INTEGER NOT NULL DEFAULT 0,
                created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                FOREIGN KEY(customer_id) REFERENCES customers(id) ON DELETE SET NULL
        );`,
	`CREATE INDEX IF NOT EXISTS idx_reports_customer ON reports(customer_id, period);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_notes_customer ON contract_notes(customer_id, position);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_highlights_customer ON contract_highlights(customer_id, kind, position);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_renewals_customer ON contract_renewals(customer_id, end_date);`,
	`CREATE INDEX IF NOT EXISTS idx_connectivity_rows_customer ON connectivity_rows(customer_id, connected, position);`,
	`CREATE INDEX IF NOT EXISTS idx_top_product_rows_customer ON top_product_rows(customer_id, position);`,
	`CREATE INDEX IF NOT EXISTS idx_import_audit_customer ON import_audit(customer_id, created_at);`,
}
