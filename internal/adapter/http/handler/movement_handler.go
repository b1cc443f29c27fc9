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

// MovementService defines the behavior needed by MovementHandler.
type MovementService interface {
	Append(ctx context.Context, input usecase.AppendMovementInput) (*domain.Movement, error)
	Remove(ctx context.Context, clientID, movementID int64) error
	GetMovement(ctx context.Context, clientID, movementID int64) (*domain.Movement, error)
	ListMovements(ctx context.Context, input usecase.ListMovementsInput) ([]*domain.Movement, error)
	GetBalance(ctx context.Context, clientID int64) (*usecase.BalanceSummary, error)
}

// MovementHandler handles current-account HTTP requests. Mutations run
// through the retrier since concurrent writers on one ledger can deadlock.
type MovementHandler struct {
	movementUC MovementService
	retrier    usecase.Retrier
	metrics    *metrics.Metrics
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(movementUC MovementService, retrier usecase.Retrier, m *metrics.Metrics) *MovementHandler {
	return &MovementHandler{movementUC: movementUC, retrier: retrier, metrics: m}
}

// Create appends a movement to the client's ledger.
func (h *MovementHandler) Create(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}

	var req dto.CreateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	var movement *domain.Movement
	err = h.retrier.Retry(r.Context(), func() error {
		var opErr error
		movement, opErr = h.movementUC.Append(r.Context(), req.ToUseCaseInput(clientID))
		return opErr
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create movement", err.Error())
		return
	}

	h.metrics.MovementsCreated.Inc()
	amount, _ := movement.Debe.Add(movement.Haber).Float64()
	h.metrics.MovementAmount.Observe(amount)

	writeJSON(w, http.StatusCreated, dto.MovementFromDomain(movement))
}

// Get retrieves one movement of a client.
func (h *MovementHandler) Get(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}
	movementID, err := parseIDParam(r, "movementID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movement ID", "")
		return
	}

	movement, err := h.movementUC.GetMovement(r.Context(), clientID, movementID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get movement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MovementFromDomain(movement))
}

// Delete removes a movement and restamps the ledger behind it.
func (h *MovementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}
	movementID, err := parseIDParam(r, "movementID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movement ID", "")
		return
	}

	err = h.retrier.Retry(r.Context(), func() error {
		return h.movementUC.Remove(r.Context(), clientID, movementID)
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to delete movement", err.Error())
		return
	}

	h.metrics.MovementsDeleted.Inc()
	w.WriteHeader(http.StatusNoContent)
}

// List lists the client's movements, newest first.
func (h *MovementHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}

	movements, err := h.movementUC.ListMovements(r.Context(), usecase.ListMovementsInput{
		ClientID: clientID,
		Limit:    parseIntQuery(r, "limit", usecase.DefaultPageSize),
		Offset:   parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list movements", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListMovementsResponse{
		Movements: dto.MovementsFromDomain(movements),
		Total:     int64(len(movements)),
	})
}

// Balance returns the client's ledger summary recomputed from storage.
func (h *MovementHandler) Balance(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}

	summary, err := h.movementUC.GetBalance(r.Context(), clientID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromSummary(summary))
}
