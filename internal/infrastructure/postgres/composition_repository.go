package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

var _ repository.CompositionRepository = (*CompositionRepo)(nil)

// CompositionRepo lectura del grafo de composición sobre PostgreSQL.
// Las aristas son filas planas (parent_id, child_id, quantity); el motor las
// reconstruye como mapa de adyacencia antes de recorrer.
type CompositionRepo struct {
	q Querier
}

// NewCompositionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompositionRepository(q Querier) *CompositionRepo {
	return &CompositionRepo{q: q}
}

const edgeColumns = `id, parent_id, child_id, child_kind, quantity_required, unit`

// ListByParents devuelve las aristas salientes de varios padres en un viaje,
// indexadas por parent_id.
func (r *CompositionRepo) ListByParents(ctx context.Context, parentIDs []string) (map[string][]entity.CompositionEdge, error) {
	result := make(map[string][]entity.CompositionEdge, len(parentIDs))
	if len(parentIDs) == 0 {
		return result, nil
	}
	query := `SELECT ` + edgeColumns + ` FROM composition_edges WHERE parent_id = ANY($1) ORDER BY parent_id, id`
	rows, err := r.q.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("list composition edges: %w", err)
	}
	defer rows.Close()

	edges, err := scanEdges(rows)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		result[e.ParentID] = append(result[e.ParentID], e)
	}
	return result, nil
}

func scanEdges(rows pgx.Rows) ([]entity.CompositionEdge, error) {
	var list []entity.CompositionEdge
	for rows.Next() {
		var e entity.CompositionEdge
		if err := rows.Scan(&e.ID, &e.ParentID, &e.ChildID, &e.ChildKind, &e.QuantityRequired, &e.Unit); err != nil {
			return nil, fmt.Errorf("scan composition edge: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
