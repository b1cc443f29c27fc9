package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rioplata-erp/tesoreria/internal/adapter/http/dto"
	"github.com/rioplata-erp/tesoreria/internal/domain"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
)

// TaxService defines the behavior needed by TaxHandler.
type TaxService interface {
	Attach(ctx context.Context, input usecase.AttachTaxInput) (*domain.ClientTax, error)
	Update(ctx context.Context, clientID, taxID int64, input usecase.UpdateTaxInput) (*domain.ClientTax, error)
	Detach(ctx context.Context, clientID, taxID int64) error
	ListByClient(ctx context.Context, clientID int64) ([]*domain.ClientTax, error)
}

// TaxHandler handles client tax association HTTP requests.
type TaxHandler struct {
	taxUC TaxService
}

// NewTaxHandler creates a new TaxHandler.
func NewTaxHandler(taxUC TaxService) *TaxHandler {
	return &TaxHandler{taxUC: taxUC}
}

// Create attaches a tax to a client.
func (h *TaxHandler) Create(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}

	var req dto.AttachTaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	tax, err := h.taxUC.Attach(r.Context(), req.ToUseCaseInput(clientID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to attach tax", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ClientTaxFromDomain(tax))
}

// Update applies a partial update to a client tax.
func (h *TaxHandler) Update(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}
	taxID, err := parseIDParam(r, "taxID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tax ID", "")
		return
	}

	var req dto.UpdateTaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	tax, err := h.taxUC.Update(r.Context(), clientID, taxID, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update tax", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientTaxFromDomain(tax))
}

// Delete detaches a tax from a client.
func (h *TaxHandler) Delete(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}
	taxID, err := parseIDParam(r, "taxID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tax ID", "")
		return
	}

	if err := h.taxUC.Detach(r.Context(), clientID, taxID); err != nil {
		writeError(w, mapDomainError(err), "failed to detach tax", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists the tax associations of one client.
func (h *TaxHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}

	taxes, err := h.taxUC.ListByClient(r.Context(), clientID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list taxes", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientTaxesFromDomain(taxes))
}
