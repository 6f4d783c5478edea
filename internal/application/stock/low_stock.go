package stock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Costos-api/internal/application/dto"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

// LowStockUseCase lista las entidades en o bajo su punto de reorden con una
// cantidad sugerida de pedido.
type LowStockUseCase struct {
	stockRepo repository.StockedEntityRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(stockRepo repository.StockedEntityRepository) *LowStockUseCase {
	return &LowStockUseCase{stockRepo: stockRepo}
}

// idealFactor stock ideal = punto de reorden * 1.5 cuando no hay máximo definido.
var idealFactor = decimal.NewFromFloat(1.5)

// List devuelve las entidades bajo reorden, la más deficitaria primero.
// La cantidad sugerida lleva el stock al máximo configurado, o a
// reorden*1.5 si no hay máximo.
func (uc *LowStockUseCase) List(ctx context.Context, limit int) ([]dto.LowStockItemDTO, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := uc.stockRepo.ListBelowReorder(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.LowStockItemDTO, 0, len(rows))
	for _, s := range rows {
		target := s.ReorderLevel.Mul(idealFactor)
		if s.MaxStockLevel != nil {
			target = *s.MaxStockLevel
		}
		suggested := target.Sub(s.CurrentStock)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		items = append(items, dto.LowStockItemDTO{
			StockedEntityID:   s.ID,
			RefID:             s.RefID,
			RefKind:           s.RefKind,
			CurrentStock:      s.CurrentStock,
			ReservedStock:     s.ReservedStock,
			AvailableStock:    s.Available(),
			ReorderLevel:      s.ReorderLevel,
			MaxStockLevel:     s.MaxStockLevel,
			SuggestedOrderQty: suggested,
		})
	}
	return items, nil
}
