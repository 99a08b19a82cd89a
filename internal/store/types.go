// File path: internal/store/types.go
package store

import "time"

// Customer is one account the dashboard tracks.
type Customer struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Industry  string    `db:"industry" json:"industry,omitempty"`
	Region    string    `db:"region" json:"region,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Report is one engagement report shell for a customer and period.
type Report struct {
	ID         int64     `db:"id" json:"id"`
	CustomerID int64     `db:"customer_id" json:"customerId"`
	Period     string    `db:"period" json:"period"`
	Title      string    `db:"title" json:"title,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// ImportAudit records one engine invocation and its accounting, keyed by a
// generated batch identifier.
type ImportAudit struct {
	ID                 int64     `db:"id" json:"id"`
	BatchID            string    `db:"batch_id" json:"batchId"`
	CustomerID         *int64    `db:"customer_id" json:"customerId,omitempty"`
	Kind               string    `db:"kind" json:"kind"`
	Mode               string    `db:"mode" json:"mode"`
	Dialect            string    `db:"dialect" json:"dialect,omitempty"`
	TotalRows          int       `db:"total_rows" json:"totalRows"`
	ProcessedRows      int       `db:"processed_rows" json:"processedRows"`
	Skipped            int       `db:"skipped" json:"skipped"`
	FilteredByCustomer int       `db:"filtered_by_customer" json:"filteredByCustomer"`
	Applied            bool      `db:"applied" json:"applied"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
}

// CustomerRenewal is one dated contract record joined with its customer,
// consumed by the renewal digest.
type CustomerRenewal struct {
	CustomerID   int64  `db:"customer_id" json:"customerId"`
	CustomerName string `db:"customer_name" json:"customerName"`
	Description  string `db:"description" json:"description"`
	EndDate      string `db:"end_date" json:"endDate"`
}
