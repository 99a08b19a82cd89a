// File path: internal/store/customers.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ListCustomers returns all customers ordered by name.
func (s *Store) ListCustomers(ctx context.Context) ([]Customer, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store not initialised")
	}
	customers := []Customer{}
	if err := s.db.SelectContext(ctx, &customers, `SELECT * FROM customers ORDER BY name`); err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	return customers, nil
}

// CustomerByID retrieves a single customer.
func (s *Store) CustomerByID(ctx context.Context, id int64) (*Customer, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store not initialised")
	}
	var customer Customer
	if err := s.db.GetContext(ctx, &customer, `SELECT * FROM customers WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select customer: %w", err)
	}
	return &customer, nil
}

// CreateCustomer inserts a customer and returns it with its generated id.
func (s *Store) CreateCustomer(ctx context.Context, customer Customer) (*Customer, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store not initialised")
	}
	name := strings.TrimSpace(customer.Name)
	if name == "" {
		return nil, errors.New("customer name required")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO customers(name, industry, region) VALUES (?, ?, ?)`,
		name, strings.TrimSpace(customer.Industry), strings.TrimSpace(customer.Region))
	if err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("customer id: %w", err)
	}
	return s.CustomerByID(ctx, id)
}

// ListReports returns a customer's engagement reports, newest period first.
func (s *Store) ListReports(ctx context.Context, customerID int64) ([]Report, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store not initialised")
	}
	reports := []Report{}
	if err := s.db.SelectContext(ctx, &reports,
		`SELECT * FROM reports WHERE customer_id = ? ORDER BY period DESC`, customerID); err != nil {
		return nil, fmt.Errorf("select reports: %w", err)
	}
	return reports, nil
}

// CreateReport inserts an engagement report shell for a customer.
func (s *Store) CreateReport(ctx context.Context, report Report) (*Report, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store not initialised")
	}
	period := strings.TrimSpace(report.Period)
	if period == "" {
		return nil, errors.New("report period required")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO reports(customer_id, period, title) VALUES (?, ?, ?)`,
		report.CustomerID, period, strings.TrimSpace(report.Title))
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("report id: %w", err)
	}
	var created Report
	if err := s.db.GetContext(ctx, &created, `SELECT * FROM reports WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("select report: %w", err)
	}
	return &created, nil
}
