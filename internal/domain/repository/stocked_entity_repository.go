package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
)

// StockedEntityRepository puerto para el estado de existencias por entidad.
// Las mutaciones de cantidad pasan siempre por el libro de movimientos.
type StockedEntityRepository interface {
	GetByID(ctx context.Context, id string) (*entity.StockedEntity, error)
	// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE) hasta el
	// fin de la transacción. Serializa los movimientos por entidad.
	GetForUpdate(ctx context.Context, id string) (*entity.StockedEntity, error)
	// Save sobrescribe current_stock/reserved_stock/updated_at.
	Save(ctx context.Context, s *entity.StockedEntity) error
	UpdateReorderLevel(ctx context.Context, id string, reorderLevel decimal.Decimal, maxStockLevel *decimal.Decimal) error
	// ListBelowReorder devuelve las entidades con stock actual en o bajo su
	// punto de reorden, ordenadas por mayor déficit primero.
	ListBelowReorder(ctx context.Context, limit int) ([]*entity.StockedEntity, error)
}
