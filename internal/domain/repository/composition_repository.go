package repository

import (
	"context"

	"github.com/jhoicas/Costos-api/internal/domain/entity"
)

// CompositionRepository puerto de lectura del grafo de composición.
// Las aristas se autoran externamente; cada cálculo las trata como una foto
// inmutable.
type CompositionRepository interface {
	// ListByParents devuelve las aristas salientes de varios padres en un
	// solo viaje, indexadas por parentID.
	ListByParents(ctx context.Context, parentIDs []string) (map[string][]entity.CompositionEdge, error)
}
