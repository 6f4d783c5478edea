package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Costos-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para el historial de movimientos.
type MovementFilter struct {
	Type   string // in | out | vacío = todos
	Reason string // vacío = todos
	From   *time.Time
	To     *time.Time
}

// StockMovementRepository puerto de persistencia del libro de movimientos.
// Solo-append: no existen Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	// ListByEntity devuelve una página de movimientos de la entidad en orden
	// cronológico inverso, aplicando los filtros dados.
	ListByEntity(ctx context.Context, stockedEntityID string, filter MovementFilter, limit, offset int) ([]*entity.StockMovement, error)
}
