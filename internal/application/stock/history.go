package stock

import (
	"context"
	"fmt"
	"iter"

	"github.com/jhoicas/Costos-api/internal/domain"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

// historyPageSize tamaño de página al paginar el historial.
const historyPageSize = 200

// MovementHistoryUseCase consulta el historial de movimientos de una
// entidad. Solo lectura; nunca muta.
type MovementHistoryUseCase struct {
	stockRepo repository.StockedEntityRepository
	movRepo   repository.StockMovementRepository
}

// NewMovementHistoryUseCase construye el caso de uso con repos atados al pool.
func NewMovementHistoryUseCase(
	stockRepo repository.StockedEntityRepository,
	movRepo repository.StockMovementRepository,
) *MovementHistoryUseCase {
	return &MovementHistoryUseCase{stockRepo: stockRepo, movRepo: movRepo}
}

// History devuelve una secuencia perezosa y reiniciable de movimientos en
// orden cronológico inverso, filtrable por tipo/motivo/rango de fechas.
// Cada iteración vuelve a paginar desde el inicio (reiniciable).
func (uc *MovementHistoryUseCase) History(
	ctx context.Context,
	stockedEntityID string,
	filter repository.MovementFilter,
) iter.Seq2[*entity.StockMovement, error] {
	return func(yield func(*entity.StockMovement, error) bool) {
		stocked, err := uc.stockRepo.GetByID(ctx, stockedEntityID)
		if err != nil {
			yield(nil, err)
			return
		}
		if stocked == nil {
			yield(nil, fmt.Errorf("%w: entidad de stock %s", domain.ErrNotFound, stockedEntityID))
			return
		}

		offset := 0
		for {
			page, err := uc.movRepo.ListByEntity(ctx, stockedEntityID, filter, historyPageSize, offset)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, mov := range page {
				if !yield(mov, nil) {
					return
				}
			}
			if len(page) < historyPageSize {
				return
			}
			offset += historyPageSize
		}
	}
}

// Page devuelve una página del historial para callers que prefieren
// limit/offset directos (p. ej. el handler HTTP).
func (uc *MovementHistoryUseCase) Page(
	ctx context.Context,
	stockedEntityID string,
	filter repository.MovementFilter,
	limit, offset int,
) ([]*entity.StockMovement, error) {
	stocked, err := uc.stockRepo.GetByID(ctx, stockedEntityID)
	if err != nil {
		return nil, err
	}
	if stocked == nil {
		return nil, fmt.Errorf("%w: entidad de stock %s", domain.ErrNotFound, stockedEntityID)
	}
	return uc.movRepo.ListByEntity(ctx, stockedEntityID, filter, limit, offset)
}
