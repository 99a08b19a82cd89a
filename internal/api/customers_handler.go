// File path: internal/api/customers_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"opsboard/internal/common"
	"opsboard/internal/store"
)

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.store.ListCustomers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"customers": customers})
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req store.Customer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("name is required"))
		return
	}
	customer, err := s.store.CreateCustomer(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: customer created", "id", customer.ID, "name", customer.Name)
	writeJSON(w, http.StatusCreated, customer)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := customerIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	customer, err := s.store.CustomerByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Errorf("customer %d not found", id))
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	id, err := customerIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	reports, err := s.store.ListReports(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reports": reports})
}

func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	id, err := customerIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var req store.Report
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.CustomerID = id
	if strings.TrimSpace(req.Period) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("period is required"))
		return
	}
	report, err := s.store.CreateReport(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (s *Server) handleGetSection(w http.ResponseWriter, r *http.Request) {
	id, err := customerIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	kind, err := sectionKindParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ctx := r.Context()
	switch kind {
	case kindContracts:
		section, err := s.store.ContractsSection(ctx, id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, section)
	case kindConnectivity:
		section, err := s.store.ConnectivitySection(ctx, id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, section)
	case kindTopProducts:
		section, err := s.store.TopProductsSection(ctx, id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, section)
	}
}

const (
	kindContracts    = "contracts"
	kindConnectivity = "connectivity"
	kindTopProducts  = "top-products"
)

func sectionKindParam(r *http.Request) (string, error) {
	kind := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "kind")))
	switch kind {
	case kindContracts, kindConnectivity, kindTopProducts:
		return kind, nil
	}
	return "", fmt.Errorf("unknown section kind %q", kind)
}

func customerIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "customerID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid customer id %q", raw)
	}
	return id, nil
}
