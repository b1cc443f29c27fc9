package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/rioplata-erp/tesoreria/internal/adapter/http/dto"
	"github.com/rioplata-erp/tesoreria/internal/domain"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
)

type clientServiceStub struct {
	createFn     func(ctx context.Context, input usecase.CreateClientInput) (*domain.Client, error)
	updateFn     func(ctx context.Context, id int64, input usecase.UpdateClientInput) (*domain.Client, error)
	softDeleteFn func(ctx context.Context, id int64) error
	restoreFn    func(ctx context.Context, id int64) (*domain.Client, error)
	getFn        func(ctx context.Context, id int64) (*domain.Client, error)
	listFn       func(ctx context.Context, filter usecase.ListClientsFilter) ([]*domain.Client, error)
}

func (s *clientServiceStub) Create(ctx context.Context, input usecase.CreateClientInput) (*domain.Client, error) {
	return s.createFn(ctx, input)
}

func (s *clientServiceStub) Update(ctx context.Context, id int64, input usecase.UpdateClientInput) (*domain.Client, error) {
	return s.updateFn(ctx, id, input)
}

func (s *clientServiceStub) SoftDelete(ctx context.Context, id int64) error {
	return s.softDeleteFn(ctx, id)
}

func (s *clientServiceStub) Restore(ctx context.Context, id int64) (*domain.Client, error) {
	return s.restoreFn(ctx, id)
}

func (s *clientServiceStub) Get(ctx context.Context, id int64) (*domain.Client, error) {
	return s.getFn(ctx, id)
}

func (s *clientServiceStub) List(ctx context.Context, filter usecase.ListClientsFilter) ([]*domain.Client, error) {
	return s.listFn(ctx, filter)
}

func TestClientHandler_Create_Success(t *testing.T) {
	client := &domain.Client{
		ID:            1,
		Nombre:        "Maria",
		Apellido:      "Gonzalez",
		Documento:     "20-12345678-6",
		TipoDocumento: domain.DocumentCUIT,
		TipoPersona:   domain.PersonFisica,
		CodigoInterno: "CLI-000001",
		EsCliente:     true,
		Saldo:         decimal.Zero,
	}

	var captured usecase.CreateClientInput
	handler := NewClientHandler(&clientServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateClientInput) (*domain.Client, error) {
			captured = input
			return client, nil
		},
	}, newTestMetrics())

	body, _ := json.Marshal(dto.CreateClientRequest{
		Nombre:        "Maria",
		Apellido:      "Gonzalez",
		Documento:     "20-12345678-6",
		TipoDocumento: "CUIT",
		TipoPersona:   "fisica",
		EsCliente:     true,
	})

	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Nombre != "Maria" || captured.TipoDocumento != domain.DocumentCUIT {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.ClientResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CodigoInterno != "CLI-000001" {
		t.Fatalf("expected codigo CLI-000001, got %s", resp.CodigoInterno)
	}
}

func TestClientHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewClientHandler(&clientServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateClientInput) (*domain.Client, error) {
			t.Fatal("Create should not be called for invalid payload")
			return nil, nil
		},
	}, newTestMetrics())

	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestClientHandler_Create_ValidationFailure(t *testing.T) {
	handler := NewClientHandler(&clientServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateClientInput) (*domain.Client, error) {
			t.Fatal("Create should not be called when validation fails")
			return nil, nil
		},
	}, newTestMetrics())

	// Missing nombre and unknown document type
	body, _ := json.Marshal(dto.CreateClientRequest{
		Documento:     "12345678",
		TipoDocumento: "LIBRETA",
		TipoPersona:   "fisica",
	})

	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestClientHandler_Get_NotFound(t *testing.T) {
	handler := NewClientHandler(&clientServiceStub{
		getFn: func(ctx context.Context, id int64) (*domain.Client, error) {
			return nil, domain.ErrClientNotFound
		},
	}, newTestMetrics())

	req := httptest.NewRequest(http.MethodGet, "/clients/99", nil)
	req = setChiURLParam(req, "id", "99")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestClientHandler_Delete_GuardDenied(t *testing.T) {
	m := newTestMetrics()
	handler := NewClientHandler(&clientServiceStub{
		softDeleteFn: func(ctx context.Context, id int64) error {
			return domain.ErrClientHasBalance
		},
	}, m)

	req := httptest.NewRequest(http.MethodDelete, "/clients/1", nil)
	req = setChiURLParam(req, "id", "1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	denied := m.DeleteGuardDenied.WithLabelValues("balance")
	if got := testutil.ToFloat64(denied); got != 1 {
		t.Fatalf("expected guard denial counter to be 1, got %v", got)
	}
}

func TestClientHandler_Delete_Success(t *testing.T) {
	handler := NewClientHandler(&clientServiceStub{
		softDeleteFn: func(ctx context.Context, id int64) error {
			if id != 3 {
				t.Fatalf("expected id 3, got %d", id)
			}
			return nil
		},
	}, newTestMetrics())

	req := httptest.NewRequest(http.MethodDelete, "/clients/3", nil)
	req = setChiURLParam(req, "id", "3")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestClientHandler_List(t *testing.T) {
	handler := NewClientHandler(&clientServiceStub{
		listFn: func(ctx context.Context, filter usecase.ListClientsFilter) ([]*domain.Client, error) {
			if filter.Limit != 5 || filter.Offset != 2 || !filter.OnlyProviders {
				t.Fatalf("expected limit=5 offset=2 providers, got %+v", filter)
			}
			return []*domain.Client{{ID: 1}, {ID: 2}}, nil
		},
	}, newTestMetrics())

	req := httptest.NewRequest(http.MethodGet, "/clients?limit=5&offset=2&es_proveedor=true", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListClientsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Clients) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(resp.Clients))
	}
}
