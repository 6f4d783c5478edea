package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

var _ repository.CompositeEntityRepository = (*CompositeEntityRepo)(nil)

// CompositeEntityRepo lectura y caché de costo de entidades compuestas sobre
// PostgreSQL. La única escritura del núcleo es la caché consultiva.
type CompositeEntityRepo struct {
	q Querier
}

// NewCompositeEntityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompositeEntityRepository(q Querier) *CompositeEntityRepo {
	return &CompositeEntityRepo{q: q}
}

const compositeColumns = `id, name, sell_price, last_computed_cost, last_costing_policy, last_computed_at, created_at, updated_at`

func scanComposite(row pgx.Row) (*entity.CompositeEntity, error) {
	var c entity.CompositeEntity
	err := row.Scan(
		&c.ID, &c.Name, &c.SellPrice, &c.LastComputedCost, &c.LastCostingPolicy,
		&c.LastComputedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID obtiene una entidad compuesta; nil si no existe.
func (r *CompositeEntityRepo) GetByID(ctx context.Context, id string) (*entity.CompositeEntity, error) {
	query := `SELECT ` + compositeColumns + ` FROM composite_entities WHERE id = $1`
	c, err := scanComposite(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get composite entity: %w", err)
	}
	return c, nil
}

// List devuelve una página de entidades compuestas ordenadas por nombre.
func (r *CompositeEntityRepo) List(ctx context.Context, limit, offset int) ([]*entity.CompositeEntity, error) {
	query := `SELECT ` + compositeColumns + ` FROM composite_entities ORDER BY name, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list composite entities: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompositeEntity
	for rows.Next() {
		c, err := scanComposite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan composite entity: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// UpdateCostCache persiste la caché consultiva de costo en una sola escritura.
func (r *CompositeEntityRepo) UpdateCostCache(ctx context.Context, id string, cost decimal.Decimal, policy string, at time.Time) error {
	query := `
		UPDATE composite_entities
		SET last_computed_cost = $2, last_costing_policy = $3, last_computed_at = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, cost, policy, at)
	if err != nil {
		return fmt.Errorf("update cost cache: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
