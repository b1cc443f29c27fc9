package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rioplata-erp/tesoreria/internal/domain"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
	"github.com/rioplata-erp/tesoreria/internal/usecase/mocks"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type ledgerFixture struct {
	txManager    *mocks.MockTransactionManager
	clientRepo   *mocks.MockClientRepository
	movementRepo *mocks.MockMovementRepository
	clients      *usecase.ClientUseCase
	movements    *usecase.MovementUseCase
}

func newLedgerFixture() *ledgerFixture {
	txManager := mocks.NewMockTransactionManager()
	clientRepo := mocks.NewMockClientRepository()
	movementRepo := mocks.NewMockMovementRepository()
	logger := zerolog.Nop()

	return &ledgerFixture{
		txManager:    txManager,
		clientRepo:   clientRepo,
		movementRepo: movementRepo,
		clients:      usecase.NewClientUseCase(txManager, clientRepo, movementRepo, logger),
		movements:    usecase.NewMovementUseCase(txManager, clientRepo, movementRepo, logger),
	}
}

// seedClient creates a client through the usecase so the ledger carries the
// opening movement, like production rows do.
func (f *ledgerFixture) seedClient(t *testing.T) *domain.Client {
	t.Helper()
	client, err := f.clients.Create(context.Background(), usecase.CreateClientInput{
		Nombre:        "Maria",
		Apellido:      "Gonzalez",
		Documento:     "20-12345678-6",
		TipoDocumento: domain.DocumentCUIT,
		TipoPersona:   domain.PersonFisica,
		EsCliente:     true,
	})
	require.NoError(t, err)
	return client
}

func (f *ledgerFixture) append(t *testing.T, clientID int64, debe, haber string) *domain.Movement {
	t.Helper()
	m, err := f.movements.Append(context.Background(), usecase.AppendMovementInput{
		ClientID: clientID,
		Fecha:    time.Now().UTC(),
		Concepto: "Factura",
		Debe:     dec(debe),
		Haber:    dec(haber),
	})
	require.NoError(t, err)
	return m
}

func TestMovementUseCase_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps running balance from previous entry", func(t *testing.T) {
		f := newLedgerFixture()
		client := f.seedClient(t)

		m1 := f.append(t, client.ID, "1500.50", "0")
		assert.True(t, m1.Saldo.Equal(dec("1500.50")), "saldo = %s", m1.Saldo)

		m2 := f.append(t, client.ID, "0", "300.25")
		assert.True(t, m2.Saldo.Equal(dec("1200.25")), "saldo = %s", m2.Saldo)

		m3 := f.append(t, client.ID, "0", "0.25")
		assert.True(t, m3.Saldo.Equal(dec("1200.00")), "saldo = %s", m3.Saldo)
	})

	t.Run("refreshes cached client saldo", func(t *testing.T) {
		f := newLedgerFixture()
		client := f.seedClient(t)

		f.append(t, client.ID, "1000", "0")
		f.append(t, client.ID, "0", "400")

		got, err := f.clients.Get(ctx, client.ID)
		require.NoError(t, err)
		assert.True(t, got.Saldo.Equal(dec("600")), "saldo = %s", got.Saldo)
	})

	t.Run("cached saldo matches entry sums", func(t *testing.T) {
		f := newLedgerFixture()
		client := f.seedClient(t)

		amounts := []struct{ debe, haber string }{
			{"100.10", "0"},
			{"0", "50.05"},
			{"250", "0"},
			{"0", "300.05"},
			{"0.01", "0"},
		}
		for _, a := range amounts {
			f.append(t, client.ID, a.debe, a.haber)
		}

		summary, err := f.movements.GetBalance(ctx, client.ID)
		require.NoError(t, err)
		assert.True(t, summary.SaldoActual.Equal(summary.TotalDebe.Sub(summary.TotalHaber)),
			"saldo %s != debe %s - haber %s", summary.SaldoActual, summary.TotalDebe, summary.TotalHaber)
		assert.True(t, summary.SaldoActual.Equal(dec("0.01")), "saldo = %s", summary.SaldoActual)
		assert.Equal(t, int64(6), summary.CantidadMovimientos) // 5 plus the opening entry
	})

	t.Run("accepts a long detalle", func(t *testing.T) {
		f := newLedgerFixture()
		client := f.seedClient(t)

		m, err := f.movements.Append(ctx, usecase.AppendMovementInput{
			ClientID: client.ID,
			Fecha:    time.Now().UTC(),
			Concepto: "Factura",
			Detalle:  strings.Repeat("x", 300),
			Debe:     dec("10"),
		})
		require.NoError(t, err)

		stored, err := f.movements.GetMovement(ctx, client.ID, m.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Detalle, 300)
	})

	t.Run("rejects detalle over the limit", func(t *testing.T) {
		f := newLedgerFixture()
		client := f.seedClient(t)

		_, err := f.movements.Append(ctx, usecase.AppendMovementInput{
			ClientID: client.ID,
			Fecha:    time.Now().UTC(),
			Concepto: "Factura",
			Detalle:  strings.Repeat("x", domain.MaxDetalleLength+1),
			Debe:     dec("10"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDetalle)
	})

	t.Run("rejects zero movement", func(t *testing.T) {
		f := newLedgerFixture()
		client := f.seedClient(t)

		_, err := f.movements.Append(ctx, usecase.AppendMovementInput{
			ClientID: client.ID,
			Fecha:    time.Now().UTC(),
			Concepto: "Nada",
			Debe:     decimal.Zero,
			Haber:    decimal.Zero,
		})
		assert.ErrorIs(t, err, domain.ErrZeroMovement)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		f := newLedgerFixture()
		client := f.seedClient(t)

		_, err := f.movements.Append(ctx, usecase.AppendMovementInput{
			ClientID: client.ID,
			Fecha:    time.Now().UTC(),
			Concepto: "Factura",
			Debe:     dec("-10"),
		})
		assert.ErrorIs(t, err, domain.ErrNegativeAmount)
	})

	t.Run("fails for unknown client", func(t *testing.T) {
		f := newLedgerFixture()

		_, err := f.movements.Append(ctx, usecase.AppendMovementInput{
			ClientID: 99,
			Fecha:    time.Now().UTC(),
			Concepto: "Factura",
			Debe:     dec("10"),
		})
		assert.ErrorIs(t, err, domain.ErrClientNotFound)
	})
}

func TestMovementUseCase_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("restamps later movements and refreshes saldo", func(t *testing.T) {
		f := newLedgerFixture()
		client := f.seedClient(t)

		f.append(t, client.ID, "1000", "0")
		middle := f.append(t, client.ID, "0", "400")
		f.append(t, client.ID, "200", "0")

		require.NoError(t, f.movements.Remove(ctx, client.ID, middle.ID))

		summary, err := f.movements.GetBalance(ctx, client.ID)
		require.NoError(t, err)
		assert.True(t, summary.SaldoActual.Equal(dec("1200")), "saldo = %s", summary.SaldoActual)

		// The surviving chain must read as if the deleted entry never existed.
		all, err := f.movementRepo.ListByClientAsc(ctx, nil, client.ID)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.True(t, all[0].Saldo.IsZero())
		assert.True(t, all[1].Saldo.Equal(dec("1000")), "saldo = %s", all[1].Saldo)
		assert.True(t, all[2].Saldo.Equal(dec("1200")), "saldo = %s", all[2].Saldo)
	})

	t.Run("unknown movement", func(t *testing.T) {
		f := newLedgerFixture()
		client := f.seedClient(t)

		err := f.movements.Remove(ctx, client.ID, 42)
		assert.ErrorIs(t, err, domain.ErrMovementNotFound)
	})

	t.Run("movement of another client is not reachable", func(t *testing.T) {
		f := newLedgerFixture()
		a := f.seedClient(t)
		b := f.seedClient(t)
		m := f.append(t, a.ID, "100", "0")

		err := f.movements.Remove(ctx, b.ID, m.ID)
		assert.ErrorIs(t, err, domain.ErrMovementNotFound)
	})
}

func TestMovementUseCase_GetBalance(t *testing.T) {
	f := newLedgerFixture()
	client := f.seedClient(t)

	f.append(t, client.ID, "500", "0")
	f.append(t, client.ID, "0", "200")

	summary, err := f.movements.GetBalance(context.Background(), client.ID)
	require.NoError(t, err)

	assert.True(t, summary.SaldoActual.Equal(dec("300")))
	assert.True(t, summary.TotalDebe.Equal(dec("500")))
	assert.True(t, summary.TotalHaber.Equal(dec("200")))
	assert.Equal(t, int64(3), summary.CantidadMovimientos)
	require.Len(t, summary.UltimosMovimientos, 3)
	// Display order is newest first.
	assert.True(t, summary.UltimosMovimientos[0].Saldo.Equal(dec("300")))
}

func TestMovementUseCase_ListMovements(t *testing.T) {
	f := newLedgerFixture()
	client := f.seedClient(t)

	for i := 0; i < 5; i++ {
		f.append(t, client.ID, "10", "0")
	}

	page, err := f.movements.ListMovements(context.Background(), usecase.ListMovementsInput{
		ClientID: client.ID,
		Limit:    3,
	})
	require.NoError(t, err)
	assert.Len(t, page, 3)

	rest, err := f.movements.ListMovements(context.Background(), usecase.ListMovementsInput{
		ClientID: client.ID,
		Limit:    3,
		Offset:   3,
	})
	require.NoError(t, err)
	assert.Len(t, rest, 3) // 5 entries plus the opening one
}
