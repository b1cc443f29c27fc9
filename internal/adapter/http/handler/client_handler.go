package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rioplata-erp/tesoreria/internal/adapter/http/dto"
	"github.com/rioplata-erp/tesoreria/internal/domain"
	"github.com/rioplata-erp/tesoreria/internal/infrastructure/metrics"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
)

// ClientService defines the behavior needed by ClientHandler.
type ClientService interface {
	Create(ctx context.Context, input usecase.CreateClientInput) (*domain.Client, error)
	Update(ctx context.Context, id int64, input usecase.UpdateClientInput) (*domain.Client, error)
	SoftDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) (*domain.Client, error)
	Get(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context, filter usecase.ListClientsFilter) ([]*domain.Client, error)
}

// ClientHandler handles client-related HTTP requests.
type ClientHandler struct {
	clientUC ClientService
	metrics  *metrics.Metrics
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientUC ClientService, m *metrics.Metrics) *ClientHandler {
	return &ClientHandler{clientUC: clientUC, metrics: m}
}

// Create creates a new client with its opening current-account movement.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	client, err := h.clientUC.Create(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create client", err.Error())
		return
	}

	h.metrics.ClientsCreated.Inc()
	writeJSON(w, http.StatusCreated, dto.ClientFromDomain(client))
}

// Get retrieves a client by ID.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}

	client, err := h.clientUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get client", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientFromDomain(client))
}

// Update applies a partial update to a client.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}

	var req dto.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := dto.Validate(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	client, err := h.clientUC.Update(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update client", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientFromDomain(client))
}

// Delete soft-deletes a client when the ledger guard allows it.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}

	if err := h.clientUC.SoftDelete(r.Context(), id); err != nil {
		h.countGuardDenial(err)
		writeError(w, mapDomainError(err), "failed to delete client", err.Error())
		return
	}

	h.metrics.ClientsDeleted.Inc()
	w.WriteHeader(http.StatusNoContent)
}

// Restore returns a soft-deleted client to the active state.
func (h *ClientHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID", "")
		return
	}

	client, err := h.clientUC.Restore(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to restore client", err.Error())
		return
	}

	h.metrics.ClientsRestored.Inc()
	writeJSON(w, http.StatusOK, dto.ClientFromDomain(client))
}

// List lists clients with optional search and role filters.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ListClientsFilter{
		Search:        r.URL.Query().Get("search"),
		OnlyClients:   r.URL.Query().Get("es_cliente") == "true",
		OnlyProviders: r.URL.Query().Get("es_proveedor") == "true",
		Limit:         parseIntQuery(r, "limit", usecase.DefaultPageSize),
		Offset:        parseIntQuery(r, "offset", 0),
	}

	clients, err := h.clientUC.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list clients", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListClientsResponse{
		Clients: dto.ClientsFromDomain(clients),
		Total:   int64(len(clients)),
	})
}

func (h *ClientHandler) countGuardDenial(err error) {
	switch {
	case errors.Is(err, domain.ErrClientHasBalance):
		h.metrics.DeleteGuardDenied.WithLabelValues("balance").Inc()
	case errors.Is(err, domain.ErrClientHasMovements):
		h.metrics.DeleteGuardDenied.WithLabelValues("movements").Inc()
	}
}
