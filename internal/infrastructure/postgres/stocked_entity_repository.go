package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

var _ repository.StockedEntityRepository = (*StockedEntityRepo)(nil)

// StockedEntityRepo implementación de StockedEntityRepository sobre
// PostgreSQL (usable con pool o tx). available_stock no existe como columna:
// se deriva siempre en lectura.
type StockedEntityRepo struct {
	q Querier
}

// NewStockedEntityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockedEntityRepository(q Querier) *StockedEntityRepo {
	return &StockedEntityRepo{q: q}
}

const stockedEntityColumns = `id, ref_id, ref_kind, current_stock, reserved_stock, reorder_level, max_stock_level, updated_at`

func scanStockedEntity(row pgx.Row) (*entity.StockedEntity, error) {
	var s entity.StockedEntity
	err := row.Scan(
		&s.ID, &s.RefID, &s.RefKind, &s.CurrentStock, &s.ReservedStock,
		&s.ReorderLevel, &s.MaxStockLevel, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID obtiene el estado de stock de una entidad; nil si no existe.
func (r *StockedEntityRepo) GetByID(ctx context.Context, id string) (*entity.StockedEntity, error) {
	query := `SELECT ` + stockedEntityColumns + ` FROM stocked_entities WHERE id = $1`
	s, err := scanStockedEntity(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stocked entity: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el estado y bloquea la fila (SELECT FOR UPDATE) hasta
// el fin de la transacción; nil si no existe.
func (r *StockedEntityRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockedEntity, error) {
	query := `SELECT ` + stockedEntityColumns + ` FROM stocked_entities WHERE id = $1 FOR UPDATE`
	s, err := scanStockedEntity(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stocked entity for update: %w", err)
	}
	return s, nil
}

// Save inserta o sobrescribe current_stock/reserved_stock/updated_at.
func (r *StockedEntityRepo) Save(ctx context.Context, s *entity.StockedEntity) error {
	query := `
		INSERT INTO stocked_entities (id, ref_id, ref_kind, current_stock, reserved_stock, reorder_level, max_stock_level, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (id)
		DO UPDATE SET current_stock = EXCLUDED.current_stock,
		              reserved_stock = EXCLUDED.reserved_stock,
		              updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.RefID, s.RefKind, s.CurrentStock, s.ReservedStock, s.ReorderLevel, s.MaxStockLevel,
	)
	if err != nil {
		return fmt.Errorf("save stocked entity: %w", err)
	}
	return nil
}

// UpdateReorderLevel actualiza el punto de reorden y el stock máximo.
func (r *StockedEntityRepo) UpdateReorderLevel(ctx context.Context, id string, reorderLevel decimal.Decimal, maxStockLevel *decimal.Decimal) error {
	query := `
		UPDATE stocked_entities
		SET reorder_level = $2, max_stock_level = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, reorderLevel, maxStockLevel)
	if err != nil {
		return fmt.Errorf("update reorder level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListBelowReorder devuelve las entidades con stock en o bajo su punto de
// reorden, mayor déficit primero.
func (r *StockedEntityRepo) ListBelowReorder(ctx context.Context, limit int) ([]*entity.StockedEntity, error) {
	query := `
		SELECT ` + stockedEntityColumns + `
		FROM stocked_entities
		WHERE current_stock <= reorder_level
		ORDER BY (reorder_level - current_stock) DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list below reorder: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockedEntity
	for rows.Next() {
		s, err := scanStockedEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stocked entity: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
