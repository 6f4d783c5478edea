package stock_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Costos-api/internal/application/stock"
	"github.com/jhoicas/Costos-api/internal/domain"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

// seedHistory registra count movimientos de entrada con fechas crecientes y
// motivos alternados purchase/production.
func seedHistory(ledger *fakeLedger, count int) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	ledger.seed(entity.StockedEntity{
		ID: testEntityID, RefID: "harina-001", RefKind: entity.NodeKindRawItem,
		CurrentStock: decimal.NewFromInt(int64(count)),
	})
	for i := 0; i < count; i++ {
		reason := entity.ReasonPurchase
		if i%2 == 1 {
			reason = entity.ReasonProduction
		}
		ledger.movements = append(ledger.movements, &entity.StockMovement{
			ID:              fmt.Sprintf("mov-%04d", i),
			StockedEntityID: testEntityID,
			Type:            entity.MovementTypeIn,
			Quantity:        decimal.NewFromInt(1),
			StockBefore:     decimal.NewFromInt(int64(i)),
			StockAfter:      decimal.NewFromInt(int64(i + 1)),
			Reason:          reason,
			OccurredAt:      base.Add(time.Duration(i) * time.Hour),
		})
	}
}

// TestHistory_RecorreTodasLasPaginas verifica que la secuencia pagina por
// debajo sin que el caller lo note: más movimientos que el tamaño de página
// interno y aun así se recorren todos, en orden cronológico inverso.
func TestHistory_RecorreTodasLasPaginas(t *testing.T) {
	const count = 450 // más de dos páginas internas
	ledger := newFakeLedger()
	seedHistory(ledger, count)
	uc := stock.NewMovementHistoryUseCase(
		&ledgerStockRepo{ledger: ledger}, &ledgerMovementRepo{ledger: ledger},
	)

	var got []*entity.StockMovement
	for mov, err := range uc.History(context.Background(), testEntityID, repository.MovementFilter{}) {
		require.NoError(t, err)
		got = append(got, mov)
	}

	require.Len(t, got, count)
	assert.Equal(t, "mov-0449", got[0].ID, "el más reciente va primero")
	assert.Equal(t, "mov-0000", got[count-1].ID)
}

// TestHistory_EsReiniciable verifica que la misma secuencia puede iterarse
// dos veces y produce lo mismo (no es un cursor de un solo uso).
func TestHistory_EsReiniciable(t *testing.T) {
	ledger := newFakeLedger()
	seedHistory(ledger, 10)
	uc := stock.NewMovementHistoryUseCase(
		&ledgerStockRepo{ledger: ledger}, &ledgerMovementRepo{ledger: ledger},
	)

	seq := uc.History(context.Background(), testEntityID, repository.MovementFilter{})

	count1, count2 := 0, 0
	for _, err := range seq {
		require.NoError(t, err)
		count1++
	}
	for _, err := range seq {
		require.NoError(t, err)
		count2++
	}
	assert.Equal(t, count1, count2)
	assert.Equal(t, 10, count1)
}

func TestHistory_CorteTemprano(t *testing.T) {
	ledger := newFakeLedger()
	seedHistory(ledger, 10)
	uc := stock.NewMovementHistoryUseCase(
		&ledgerStockRepo{ledger: ledger}, &ledgerMovementRepo{ledger: ledger},
	)

	seen := 0
	for _, err := range uc.History(context.Background(), testEntityID, repository.MovementFilter{}) {
		require.NoError(t, err)
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen, "break debe cortar la secuencia sin pánico")
}

func TestHistory_FiltraPorMotivo(t *testing.T) {
	ledger := newFakeLedger()
	seedHistory(ledger, 10) // 5 purchase, 5 production
	uc := stock.NewMovementHistoryUseCase(
		&ledgerStockRepo{ledger: ledger}, &ledgerMovementRepo{ledger: ledger},
	)

	count := 0
	filter := repository.MovementFilter{Reason: entity.ReasonProduction}
	for mov, err := range uc.History(context.Background(), testEntityID, filter) {
		require.NoError(t, err)
		assert.Equal(t, entity.ReasonProduction, mov.Reason)
		count++
	}
	assert.Equal(t, 5, count)
}

func TestHistory_EntidadInexistente(t *testing.T) {
	ledger := newFakeLedger()
	uc := stock.NewMovementHistoryUseCase(
		&ledgerStockRepo{ledger: ledger}, &ledgerMovementRepo{ledger: ledger},
	)

	var firstErr error
	for _, err := range uc.History(context.Background(), "no-existe", repository.MovementFilter{}) {
		firstErr = err
		break
	}
	assert.ErrorIs(t, firstErr, domain.ErrNotFound,
		"el error de existencia llega como primer elemento de la secuencia")
}

func TestHistoryPage_LimitYOffset(t *testing.T) {
	ledger := newFakeLedger()
	seedHistory(ledger, 10)
	uc := stock.NewMovementHistoryUseCase(
		&ledgerStockRepo{ledger: ledger}, &ledgerMovementRepo{ledger: ledger},
	)

	page, err := uc.Page(context.Background(), testEntityID, repository.MovementFilter{}, 3, 2)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "mov-0007", page[0].ID,
		"offset 2 en orden inverso salta los dos más recientes")
}
