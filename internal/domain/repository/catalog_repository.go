package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
)

// RawItemRepository puerto de lectura del catálogo de materias primas.
// El catálogo es propiedad de un servicio externo; el núcleo solo lee, y
// siempre por lote (el motor carga la foto completa antes de recorrer).
type RawItemRepository interface {
	// GetByIDs devuelve las materias primas indicadas en un solo viaje,
	// indexadas por ID. IDs ausentes simplemente no aparecen en el mapa.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.RawItem, error)
}

// CompositeEntityRepository puerto de lectura/caché para entidades compuestas.
type CompositeEntityRepository interface {
	GetByID(ctx context.Context, id string) (*entity.CompositeEntity, error)
	List(ctx context.Context, limit, offset int) ([]*entity.CompositeEntity, error)
	// UpdateCostCache persiste la caché consultiva de costo
	// (last_computed_cost, last_costing_policy, last_computed_at) en una
	// sola escritura. Nunca forma parte del libro de movimientos.
	UpdateCostCache(ctx context.Context, id string, cost decimal.Decimal, policy string, at time.Time) error
}
