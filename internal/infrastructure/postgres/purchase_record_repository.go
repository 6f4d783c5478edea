package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Costos-api/internal/domain/entity"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

var _ repository.PurchaseRecordRepository = (*PurchaseRecordRepo)(nil)

// PurchaseRecordRepo lectura del historial de compras sobre PostgreSQL.
// La tabla es solo-append y la llena un colaborador externo.
type PurchaseRecordRepo struct {
	q Querier
}

// NewPurchaseRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRecordRepository(q Querier) *PurchaseRecordRepo {
	return &PurchaseRecordRepo{q: q}
}

// ListRecentByItems devuelve las últimas limit compras por ítem con
// occurred_at <= asOf en un solo viaje, usando una ventana por item_id.
func (r *PurchaseRecordRepo) ListRecentByItems(ctx context.Context, itemIDs []string, limit int, asOf time.Time) (map[string][]entity.PurchaseRecord, error) {
	result := make(map[string][]entity.PurchaseRecord, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT id, item_id, unit_cost, occurred_at
		FROM (
			SELECT id, item_id, unit_cost, occurred_at,
			       row_number() OVER (PARTITION BY item_id ORDER BY occurred_at DESC, id DESC) AS rn
			FROM purchase_records
			WHERE item_id = ANY($1) AND occurred_at <= $2
		) ranked
		WHERE rn <= $3
		ORDER BY item_id, occurred_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, itemIDs, asOf, limit)
	if err != nil {
		return nil, fmt.Errorf("list purchases by items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec entity.PurchaseRecord
		if err := rows.Scan(&rec.ID, &rec.ItemID, &rec.UnitCost, &rec.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		result[rec.ItemID] = append(result[rec.ItemID], rec)
	}
	return result, rows.Err()
}
