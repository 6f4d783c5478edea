package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Costos-api/internal/domain/entity"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

var _ repository.RawItemRepository = (*RawItemRepo)(nil)

// RawItemRepo lectura del catálogo de materias primas sobre PostgreSQL.
// El catálogo lo mantiene un servicio externo; aquí no hay escrituras.
type RawItemRepo struct {
	q Querier
}

// NewRawItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawItemRepository(q Querier) *RawItemRepo {
	return &RawItemRepo{q: q}
}

// GetByIDs devuelve las materias primas indicadas en un viaje, por ID.
func (r *RawItemRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.RawItem, error) {
	result := make(map[string]*entity.RawItem, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := `
		SELECT id, name, unit_measure, current_cost, created_at, updated_at
		FROM raw_items WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get raw items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.RawItem
		if err := rows.Scan(&item.ID, &item.Name, &item.UnitMeasure, &item.CurrentCost,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan raw item: %w", err)
		}
		result[item.ID] = &item
	}
	return result, rows.Err()
}
