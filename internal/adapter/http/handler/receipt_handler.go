package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rioplata-erp/tesoreria/internal/adapter/http/dto"
	"github.com/rioplata-erp/tesoreria/internal/domain"
	"github.com/rioplata-erp/tesoreria/internal/infrastructure/metrics"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
)

// ReceiptService defines the behavior needed by ReceiptHandler.
type ReceiptService interface {
	Create(ctx context.Context, input usecase.CreateReceiptInput) (*domain.Receipt, error)
	Get(ctx context.Context, id int64) (*domain.Receipt, error)
	List(ctx context.Context, input usecase.ListReceiptsInput) ([]*domain.Receipt, error)
	Delete(ctx context.Context, id int64) error
}

// ReceiptHandler handles receipt-related HTTP requests.
type ReceiptHandler struct {
	receiptUC ReceiptService
	retrier   usecase.Retrier
	metrics   *metrics.Metrics
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receiptUC ReceiptService, retrier usecase.Retrier, m *metrics.Metrics) *ReceiptHandler {
	return &ReceiptHandler{receiptUC: receiptUC, retrier: retrier, metrics: m}
}

// Create creates a receipt and posts its ledger credit.
func (h *ReceiptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	var receipt *domain.Receipt
	err := h.retrier.Retry(r.Context(), func() error {
		var opErr error
		receipt, opErr = h.receiptUC.Create(r.Context(), req.ToUseCaseInput())
		return opErr
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create receipt", err.Error())
		return
	}

	h.metrics.ReceiptsCreated.Inc()
	total, _ := receipt.Total.Float64()
	h.metrics.ReceiptTotal.Observe(total)

	writeJSON(w, http.StatusCreated, dto.ReceiptFromDomain(receipt))
}

// Get retrieves a receipt with its items.
func (h *ReceiptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid receipt ID", "")
		return
	}

	receipt, err := h.receiptUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get receipt", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceiptFromDomain(receipt))
}

// List lists receipts, optionally filtered by client.
func (h *ReceiptHandler) List(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.receiptUC.List(r.Context(), usecase.ListReceiptsInput{
		ClientID: int64(parseIntQuery(r, "client_id", 0)),
		Limit:    parseIntQuery(r, "limit", usecase.DefaultPageSize),
		Offset:   parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list receipts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceiptsFromDomain(receipts))
}

// Delete soft-deletes a receipt. The ledger movement it originated stays.
func (h *ReceiptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid receipt ID", "")
		return
	}

	if err := h.receiptUC.Delete(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete receipt", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
