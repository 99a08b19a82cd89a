// File path: internal/api/import_handler.go
package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"opsboard/internal/common"
	"opsboard/internal/common/telemetry"
	"opsboard/internal/csvfile"
	"opsboard/internal/importer"
	"opsboard/internal/store"
)

// importRequest carries the decoded multipart form for one import call.
type importRequest struct {
	kind       string
	customerID int64
	customer   string
	mode       importer.Mode
	apply      bool
	rows       []importer.RawRow
	totalRows  int
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	req, err := s.decodeImportRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// A selected customer implies filtering by that customer's name unless
	// the form supplied an explicit filter string.
	if req.customer == "" && req.customerID > 0 {
		customer, err := s.store.CustomerByID(r.Context(), req.customerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, fmt.Errorf("customer %d not found", req.customerID))
				return
			}
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		req.customer = customer.Name
	}

	batchID := uuid.NewString()
	logger.Info("import: batch received", "batch", batchID, "kind", req.kind,
		"customer", req.customer, "rows", req.totalRows, "mode", req.mode.String(), "apply", req.apply)

	switch req.kind {
	case kindContracts:
		s.importContracts(w, r, req, batchID)
	case kindConnectivity:
		s.importConnectivity(w, r, req, batchID)
	case kindTopProducts:
		s.importTopProducts(w, r, req, batchID)
	}
}

func (s *Server) decodeImportRequest(r *http.Request) (importRequest, error) {
	req := importRequest{}
	kind, err := sectionKindParam(r)
	if err != nil {
		return req, err
	}
	req.kind = kind

	r.Body = http.MaxBytesReader(nil, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return req, fmt.Errorf("parse upload form: %w", err)
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	req.customer = strings.TrimSpace(r.FormValue("customer"))
	if raw := strings.TrimSpace(r.FormValue("customer_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return req, fmt.Errorf("invalid customer_id %q", raw)
		}
		req.customerID = id
	}
	mode, err := importer.ParseMode(r.FormValue("mode"))
	if err != nil {
		return req, err
	}
	req.mode = mode
	if raw := strings.TrimSpace(r.FormValue("apply")); raw != "" {
		apply, err := strconv.ParseBool(raw)
		if err != nil {
			return req, fmt.Errorf("invalid apply flag %q", raw)
		}
		req.apply = apply
	}
	if req.apply && req.customerID == 0 {
		return req, fmt.Errorf("customer_id is required to apply an import")
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return req, fmt.Errorf("csv file is required: %w", err)
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return req, fmt.Errorf("read upload: %w", err)
	}
	table, err := csvfile.Tokenize(content)
	if err != nil {
		return req, fmt.Errorf("tokenize csv: %w", err)
	}
	req.rows = make([]importer.RawRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		req.rows = append(req.rows, importer.RawRow(row))
	}
	req.totalRows = len(req.rows)
	return req, nil
}

// nothingDetected writes the diagnostic 422 for a batch with zero usable
// rows, carrying enough accounting for the user to see why.
func nothingDetected(w http.ResponseWriter, stats importer.ImportStats) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"error": "no rows detected after filtering",
		"stats": stats,
	})
}

func (s *Server) importContracts(w http.ResponseWriter, r *http.Request, req importRequest, batchID string) {
	result := s.engine.ImportContracts(req.rows, req.customer)
	telemetry.RecordImport(req.kind, result.Stats.ProcessedRows, result.Stats.Skipped, result.Stats.Filtered.ByCustomer)
	if err := s.audit(r, req, batchID, result.Stats); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if result.Stats.NothingDetected() {
		nothingDetected(w, result.Stats)
		return
	}
	if !req.apply {
		writeJSON(w, http.StatusOK, map[string]interface{}{"batchId": batchID, "result": result})
		return
	}

	lock := s.customerLock(req.customerID)
	lock.Lock()
	defer lock.Unlock()

	ctx := r.Context()
	current, err := s.store.ContractsSection(ctx, req.customerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	merged := importer.ReconcileContracts(current, result.Section, result.Provided, req.mode)
	if err := s.store.SaveContractsSection(ctx, req.customerID, merged, result.Renewals); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"batchId": batchID,
		"result":  result,
		"section": merged,
	})
}

func (s *Server) importConnectivity(w http.ResponseWriter, r *http.Request, req importRequest, batchID string) {
	result := s.engine.ImportConnectivity(req.rows, req.customer)
	telemetry.RecordImport(req.kind, result.Stats.ProcessedRows, result.Stats.Skipped, result.Stats.Filtered.ByCustomer)
	if err := s.audit(r, req, batchID, result.Stats); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if result.Stats.NothingDetected() {
		nothingDetected(w, result.Stats)
		return
	}
	if !req.apply {
		writeJSON(w, http.StatusOK, map[string]interface{}{"batchId": batchID, "result": result})
		return
	}

	lock := s.customerLock(req.customerID)
	lock.Lock()
	defer lock.Unlock()

	ctx := r.Context()
	current, err := s.store.ConnectivitySection(ctx, req.customerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	merged := importer.ReconcileConnectivity(current, result.Section, result.Provided, req.mode)
	if err := s.store.SaveConnectivitySection(ctx, req.customerID, merged); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"batchId": batchID,
		"result":  result,
		"section": merged,
	})
}

func (s *Server) importTopProducts(w http.ResponseWriter, r *http.Request, req importRequest, batchID string) {
	result := s.engine.ImportTopProducts(req.rows, req.customer)
	telemetry.RecordImport(req.kind, result.Stats.ProcessedRows, result.Stats.Skipped, result.Stats.Filtered.ByCustomer)
	if err := s.audit(r, req, batchID, result.Stats); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if result.Stats.NothingDetected() {
		nothingDetected(w, result.Stats)
		return
	}
	if !req.apply {
		writeJSON(w, http.StatusOK, map[string]interface{}{"batchId": batchID, "result": result})
		return
	}

	lock := s.customerLock(req.customerID)
	lock.Lock()
	defer lock.Unlock()

	ctx := r.Context()
	current, err := s.store.TopProductsSection(ctx, req.customerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	merged := importer.ReconcileTopProducts(current, result.Section, result.Provided, req.mode)
	if err := s.store.SaveTopProductsSection(ctx, req.customerID, merged); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"batchId": batchID,
		"result":  result,
		"section": merged,
	})
}

func (s *Server) audit(r *http.Request, req importRequest, batchID string, stats importer.ImportStats) error {
	audit := store.ImportAudit{
		BatchID:            batchID,
		Kind:               req.kind,
		Mode:               req.mode.String(),
		Dialect:            stats.Dialect,
		TotalRows:          stats.TotalRows,
		ProcessedRows:      stats.ProcessedRows,
		Skipped:            stats.Skipped,
		FilteredByCustomer: stats.Filtered.ByCustomer,
		Applied:            req.apply && !stats.NothingDetected(),
	}
	if req.customerID > 0 {
		id := req.customerID
		audit.CustomerID = &id
	}
	return s.store.RecordImport(r.Context(), audit)
}

func (s *Server) handleListImports(w http.ResponseWriter, r *http.Request) {
	audits, err := s.store.ListImports(r.Context(), s.cfg.AuditLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"imports": audits})
}
