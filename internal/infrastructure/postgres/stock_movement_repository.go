package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo-append: la tabla no recibe UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento. Asigna ID si viene vacío.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, stocked_entity_id, type, quantity, stock_before, stock_after, unit_cost, total_cost, reason, reference_type, reference_id, created_by, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.StockedEntityID, m.Type, m.Quantity, m.StockBefore, m.StockAfter,
		m.UnitCost, m.TotalCost, m.Reason, nullable(m.ReferenceType), nullable(m.ReferenceID),
		nullable(m.CreatedBy), m.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByEntity devuelve una página de movimientos en orden cronológico
// inverso, aplicando los filtros dados.
func (r *StockMovementRepo) ListByEntity(ctx context.Context, stockedEntityID string, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, stocked_entity_id, type, quantity, stock_before, stock_after, unit_cost, total_cost, reason, reference_type, reference_id, created_by, occurred_at
		FROM stock_movements WHERE stocked_entity_id = $1`
	args := []any{stockedEntityID}
	pos := 2
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.Reason != "" {
		query += fmt.Sprintf(" AND reason = $%d", pos)
		args = append(args, filter.Reason)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND occurred_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND occurred_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY occurred_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var refType, refID, createdBy *string
		if err := rows.Scan(&m.ID, &m.StockedEntityID, &m.Type, &m.Quantity,
			&m.StockBefore, &m.StockAfter, &m.UnitCost, &m.TotalCost, &m.Reason,
			&refType, &refID, &createdBy, &m.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if refType != nil {
			m.ReferenceType = *refType
		}
		if refID != nil {
			m.ReferenceID = *refID
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// nullable convierte cadena vacía en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
