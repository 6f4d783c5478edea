package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Costos-api/internal/application/stock"
	"github.com/jhoicas/Costos-api/internal/domain"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
)

func TestReserve_ApartaDelDisponible(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed(entity.StockedEntity{
		ID: testEntityID, RefID: "harina-001", RefKind: entity.NodeKindRawItem,
		CurrentStock: decimal.NewFromInt(10),
	})
	uc := stock.NewReservationUseCase(&fakeTxRunner{ledger: ledger})

	err := uc.Reserve(context.Background(), testEntityID, decimal.NewFromInt(4))
	require.NoError(t, err)

	stocked := ledger.get(testEntityID)
	assert.True(t, decimal.NewFromInt(10).Equal(stocked.CurrentStock),
		"reservar no mueve el stock actual")
	assert.True(t, decimal.NewFromInt(4).Equal(stocked.ReservedStock))
	assert.True(t, decimal.NewFromInt(6).Equal(stocked.Available()),
		"el disponible se deriva: actual - reservado")
}

// TestReserve_ConsideraLoYaReservado verifica que la verificación de
// suficiencia se hace contra el disponible, no contra el stock actual.
func TestReserve_ConsideraLoYaReservado(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed(entity.StockedEntity{
		ID: testEntityID, RefID: "harina-001", RefKind: entity.NodeKindRawItem,
		CurrentStock:  decimal.NewFromInt(10),
		ReservedStock: decimal.NewFromInt(8),
	})
	uc := stock.NewReservationUseCase(&fakeTxRunner{ledger: ledger})

	err := uc.Reserve(context.Background(), testEntityID, decimal.NewFromInt(3))

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, decimal.NewFromInt(2).Equal(insufficient.Current),
		"el error reporta el disponible (10-8=2), no el stock actual")
	assert.True(t, decimal.NewFromInt(8).Equal(ledger.get(testEntityID).ReservedStock),
		"una reserva rechazada no cambia nada")
}

func TestReserve_EntidadInexistente(t *testing.T) {
	uc := stock.NewReservationUseCase(&fakeTxRunner{ledger: newFakeLedger()})
	err := uc.Reserve(context.Background(), "no-existe", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRelease_DevuelveAlDisponible(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed(entity.StockedEntity{
		ID: testEntityID, RefID: "harina-001", RefKind: entity.NodeKindRawItem,
		CurrentStock:  decimal.NewFromInt(10),
		ReservedStock: decimal.NewFromInt(6),
	})
	uc := stock.NewReservationUseCase(&fakeTxRunner{ledger: ledger})

	err := uc.Release(context.Background(), testEntityID, decimal.NewFromInt(6))
	require.NoError(t, err)

	stocked := ledger.get(testEntityID)
	assert.True(t, stocked.ReservedStock.IsZero())
	assert.True(t, decimal.NewFromInt(10).Equal(stocked.Available()))
}

func TestRelease_MasDeLoReservado(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed(entity.StockedEntity{
		ID: testEntityID, RefID: "harina-001", RefKind: entity.NodeKindRawItem,
		CurrentStock:  decimal.NewFromInt(10),
		ReservedStock: decimal.NewFromInt(2),
	})
	uc := stock.NewReservationUseCase(&fakeTxRunner{ledger: ledger})

	err := uc.Release(context.Background(), testEntityID, decimal.NewFromInt(5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"liberar más de lo reservado es entrada inválida, no un ajuste a cero")
}
