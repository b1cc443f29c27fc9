package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rioplata-erp/tesoreria/internal/adapter/http/dto"
	"github.com/rioplata-erp/tesoreria/internal/domain"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
)

type movementServiceStub struct {
	appendFn  func(ctx context.Context, input usecase.AppendMovementInput) (*domain.Movement, error)
	removeFn  func(ctx context.Context, clientID, movementID int64) error
	getFn     func(ctx context.Context, clientID, movementID int64) (*domain.Movement, error)
	listFn    func(ctx context.Context, input usecase.ListMovementsInput) ([]*domain.Movement, error)
	balanceFn func(ctx context.Context, clientID int64) (*usecase.BalanceSummary, error)
}

func (s *movementServiceStub) Append(ctx context.Context, input usecase.AppendMovementInput) (*domain.Movement, error) {
	return s.appendFn(ctx, input)
}

func (s *movementServiceStub) Remove(ctx context.Context, clientID, movementID int64) error {
	return s.removeFn(ctx, clientID, movementID)
}

func (s *movementServiceStub) GetMovement(ctx context.Context, clientID, movementID int64) (*domain.Movement, error) {
	return s.getFn(ctx, clientID, movementID)
}

func (s *movementServiceStub) ListMovements(ctx context.Context, input usecase.ListMovementsInput) ([]*domain.Movement, error) {
	return s.listFn(ctx, input)
}

func (s *movementServiceStub) GetBalance(ctx context.Context, clientID int64) (*usecase.BalanceSummary, error) {
	return s.balanceFn(ctx, clientID)
}

type retrierStub struct {
	calls int
}

func (r *retrierStub) Retry(ctx context.Context, operation func() error) error {
	r.calls++
	return operation()
}

func TestMovementHandler_Create_Success(t *testing.T) {
	movement := &domain.Movement{
		ID:       2,
		ClientID: 1,
		Concepto: "Factura 0001",
		Debe:     decimal.RequireFromString("1500.50"),
		Haber:    decimal.Zero,
		Saldo:    decimal.RequireFromString("1500.50"),
	}

	retrier := &retrierStub{}
	var captured usecase.AppendMovementInput
	handler := NewMovementHandler(&movementServiceStub{
		appendFn: func(ctx context.Context, input usecase.AppendMovementInput) (*domain.Movement, error) {
			captured = input
			return movement, nil
		},
	}, retrier, newTestMetrics())

	body, _ := json.Marshal(dto.CreateMovementRequest{
		Concepto: "Factura 0001",
		Debe:     decimal.RequireFromString("1500.50"),
	})

	req := httptest.NewRequest(http.MethodPost, "/clients/1/movements", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if retrier.calls != 1 {
		t.Fatalf("expected mutation to run through the retrier, got %d calls", retrier.calls)
	}
	if captured.ClientID != 1 || !captured.Debe.Equal(decimal.RequireFromString("1500.50")) {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.MovementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Saldo.Equal(decimal.RequireFromString("1500.50")) {
		t.Fatalf("expected saldo 1500.50, got %s", resp.Saldo)
	}
}

func TestMovementHandler_Create_ZeroMovement(t *testing.T) {
	handler := NewMovementHandler(&movementServiceStub{
		appendFn: func(ctx context.Context, input usecase.AppendMovementInput) (*domain.Movement, error) {
			return nil, domain.ErrZeroMovement
		},
	}, &retrierStub{}, newTestMetrics())

	body, _ := json.Marshal(dto.CreateMovementRequest{Concepto: "Nada"})
	req := httptest.NewRequest(http.MethodPost, "/clients/1/movements", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMovementHandler_Delete_Success(t *testing.T) {
	retrier := &retrierStub{}
	handler := NewMovementHandler(&movementServiceStub{
		removeFn: func(ctx context.Context, clientID, movementID int64) error {
			if clientID != 1 || movementID != 7 {
				t.Fatalf("expected client 1 movement 7, got %d/%d", clientID, movementID)
			}
			return nil
		},
	}, retrier, newTestMetrics())

	req := httptest.NewRequest(http.MethodDelete, "/clients/1/movements/7", nil)
	req = setChiURLParam(req, "id", "1")
	req = setChiURLParam(req, "movementID", "7")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if retrier.calls != 1 {
		t.Fatalf("expected deletion to run through the retrier, got %d calls", retrier.calls)
	}
}

func TestMovementHandler_Balance(t *testing.T) {
	handler := NewMovementHandler(&movementServiceStub{
		balanceFn: func(ctx context.Context, clientID int64) (*usecase.BalanceSummary, error) {
			return &usecase.BalanceSummary{
				SaldoActual:         decimal.RequireFromString("300.25"),
				TotalDebe:           decimal.RequireFromString("500.25"),
				TotalHaber:          decimal.RequireFromString("200"),
				CantidadMovimientos: 3,
			}, nil
		},
	}, &retrierStub{}, newTestMetrics())

	req := httptest.NewRequest(http.MethodGet, "/clients/1/balance", nil)
	req = setChiURLParam(req, "id", "1")
	rec := httptest.NewRecorder()

	handler.Balance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.SaldoActual.Equal(resp.TotalDebe.Sub(resp.TotalHaber)) {
		t.Fatalf("expected saldo to equal debe minus haber, got %+v", resp)
	}
}

func TestMovementHandler_Get_NotFound(t *testing.T) {
	handler := NewMovementHandler(&movementServiceStub{
		getFn: func(ctx context.Context, clientID, movementID int64) (*domain.Movement, error) {
			return nil, domain.ErrMovementNotFound
		},
	}, &retrierStub{}, newTestMetrics())

	req := httptest.NewRequest(http.MethodGet, "/clients/1/movements/99", nil)
	req = setChiURLParam(req, "id", "1")
	req = setChiURLParam(req, "movementID", "99")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
