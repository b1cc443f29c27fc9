package usecase_test

import (
	"context"
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

type receiptFixture struct {
	*ledgerFixture
	receiptRepo *mocks.MockReceiptRepository
	receipts    *usecase.ReceiptUseCase
}

func newReceiptFixture() *receiptFixture {
	base := newLedgerFixture()
	receiptRepo := mocks.NewMockReceiptRepository()
	return &receiptFixture{
		ledgerFixture: base,
		receiptRepo:   receiptRepo,
		receipts: usecase.NewReceiptUseCase(
			base.txManager, base.clientRepo, base.movementRepo, receiptRepo, zerolog.Nop()),
	}
}

func TestReceiptUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("numbers the receipt and posts the ledger credit", func(t *testing.T) {
		f := newReceiptFixture()
		client := f.seedClient(t)
		f.append(t, client.ID, "1000", "0")

		receipt, err := f.receipts.Create(ctx, usecase.CreateReceiptInput{
			ClientID:    client.ID,
			FechaRecibo: time.Now().UTC(),
			Concepto:    "Pago parcial factura 0001",
			Impuesto:    dec("21"),
			Items: []usecase.ReceiptItemInput{
				{Descripcion: "Entrega a cuenta", Cantidad: dec("1"), PrecioUnitario: dec("100")},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "REC-000001", receipt.NumeroRecibo)
		assert.Equal(t, domain.ReceiptPendiente, receipt.Estado)
		assert.Equal(t, "efectivo", receipt.MetodoPago)
		assert.True(t, receipt.Subtotal.Equal(dec("100")))
		assert.True(t, receipt.Total.Equal(dec("121")))

		// The credit landed on the ledger with the receipt reference.
		last, err := f.movementRepo.GetLastForClient(ctx, nil, client.ID)
		require.NoError(t, err)
		assert.True(t, last.Haber.Equal(dec("121")))
		assert.True(t, last.Saldo.Equal(dec("879")), "saldo = %s", last.Saldo)
		require.NotNil(t, last.DocumentRef)
		assert.Equal(t, domain.DocumentKindReceipt, last.DocumentRef.Kind)
		assert.Equal(t, receipt.ID, last.DocumentRef.ID)

		got, err := f.clients.Get(ctx, client.ID)
		require.NoError(t, err)
		assert.True(t, got.Saldo.Equal(dec("879")), "saldo = %s", got.Saldo)
	})

	t.Run("computes line subtotals", func(t *testing.T) {
		f := newReceiptFixture()
		client := f.seedClient(t)

		receipt, err := f.receipts.Create(ctx, usecase.CreateReceiptInput{
			ClientID:    client.ID,
			FechaRecibo: time.Now().UTC(),
			Items: []usecase.ReceiptItemInput{
				{Descripcion: "Servicio", Cantidad: dec("3"), PrecioUnitario: dec("10.50")},
				{Descripcion: "Flete", Cantidad: dec("1"), PrecioUnitario: dec("5")},
			},
		})
		require.NoError(t, err)

		require.Len(t, receipt.Items, 2)
		assert.True(t, receipt.Items[0].Subtotal.Equal(dec("31.50")))
		assert.True(t, receipt.Items[1].Subtotal.Equal(dec("5")))
		assert.True(t, receipt.Total.Equal(dec("36.50")))
	})

	t.Run("zero-total receipt posts no movement", func(t *testing.T) {
		f := newReceiptFixture()
		client := f.seedClient(t)

		_, err := f.receipts.Create(ctx, usecase.CreateReceiptInput{
			ClientID:    client.ID,
			FechaRecibo: time.Now().UTC(),
		})
		require.NoError(t, err)

		_, _, count, err := f.movementRepo.SumByClient(ctx, nil, client.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count) // only the opening entry
	})

	t.Run("unknown client", func(t *testing.T) {
		f := newReceiptFixture()

		_, err := f.receipts.Create(ctx, usecase.CreateReceiptInput{
			ClientID:    99,
			FechaRecibo: time.Now().UTC(),
		})
		assert.ErrorIs(t, err, domain.ErrClientNotFound)
	})
}

func TestReceiptUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	f := newReceiptFixture()
	client := f.seedClient(t)

	receipt, err := f.receipts.Create(ctx, usecase.CreateReceiptInput{
		ClientID:    client.ID,
		FechaRecibo: time.Now().UTC(),
		Items: []usecase.ReceiptItemInput{
			{Descripcion: "Entrega", Cantidad: dec("1"), PrecioUnitario: dec("50")},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.receipts.Delete(ctx, receipt.ID))

	_, err = f.receipts.Get(ctx, receipt.ID)
	assert.ErrorIs(t, err, domain.ErrReceiptNotFound)

	// The originated movement stays on the ledger untouched.
	last, err := f.movementRepo.GetLastForClient(ctx, nil, client.ID)
	require.NoError(t, err)
	assert.True(t, last.Haber.Equal(decimal.NewFromInt(50)))
}

func TestReceiptUseCase_List(t *testing.T) {
	ctx := context.Background()

	f := newReceiptFixture()
	a := f.seedClient(t)
	b := f.seedClient(t)

	for _, id := range []int64{a.ID, a.ID, b.ID} {
		_, err := f.receipts.Create(ctx, usecase.CreateReceiptInput{
			ClientID:    id,
			FechaRecibo: time.Now().UTC(),
			Items: []usecase.ReceiptItemInput{
				{Descripcion: "Entrega", Cantidad: dec("1"), PrecioUnitario: dec("10")},
			},
		})
		require.NoError(t, err)
	}

	mine, err := f.receipts.List(ctx, usecase.ListReceiptsInput{ClientID: a.ID})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := f.receipts.List(ctx, usecase.ListReceiptsInput{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
