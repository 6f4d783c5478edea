package costing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Costos-api/internal/domain"
	"github.com/jhoicas/Costos-api/internal/domain/costing"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

// ComputeCostUseCase carga la foto del grafo de composición y ejecuta el
// rollup de costo. Es de solo lectura e idempotente: mismo grafo, mismo
// historial, misma política y mismo asOf producen siempre el mismo resultado.
type ComputeCostUseCase struct {
	compositeRepo   repository.CompositeEntityRepository
	rawItemRepo     repository.RawItemRepository
	compositionRepo repository.CompositionRepository
	purchaseRepo    repository.PurchaseRecordRepository
	engine          *costing.Engine
	avgWindow       int
}

// NewComputeCostUseCase construye el caso de uso. avgWindow es la ventana N
// de la política average y el tope de compras a precargar por ítem.
func NewComputeCostUseCase(
	compositeRepo repository.CompositeEntityRepository,
	rawItemRepo repository.RawItemRepository,
	compositionRepo repository.CompositionRepository,
	purchaseRepo repository.PurchaseRecordRepository,
	avgWindow, maxDepth int,
) *ComputeCostUseCase {
	if avgWindow <= 0 {
		avgWindow = costing.DefaultAverageWindow
	}
	return &ComputeCostUseCase{
		compositeRepo:   compositeRepo,
		rawItemRepo:     rawItemRepo,
		compositionRepo: compositionRepo,
		purchaseRepo:    purchaseRepo,
		engine:          costing.NewEngine(avgWindow, maxDepth),
		avgWindow:       avgWindow,
	}
}

// CostResult resultado de un cálculo: rollup más el instante asOf que acotó
// el historial de compras (soporta recálculo histórico reproducible).
type CostResult struct {
	*costing.Result
	AsOf       time.Time
	ComputedAt time.Time
}

// Compute calcula el costo unitario de producción de una entidad compuesta.
// asOf nil usa el momento actual.
func (uc *ComputeCostUseCase) Compute(ctx context.Context, entityID string, policy costing.Policy, asOf *time.Time) (*CostResult, error) {
	root, err := uc.compositeRepo.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("%w: entidad compuesta %s", domain.ErrNotFound, entityID)
	}

	cutoff := time.Now()
	if asOf != nil {
		cutoff = *asOf
	}

	graph, err := uc.loadGraph(ctx, entityID, cutoff)
	if err != nil {
		return nil, err
	}

	result, err := uc.engine.Compute(graph, entityID, policy)
	if err != nil {
		return nil, err
	}
	return &CostResult{Result: result, AsOf: cutoff, ComputedAt: time.Now()}, nil
}

// loadGraph reconstruye la adyacencia completa en memoria antes del
// recorrido: una consulta por nivel de padres pendientes, no una por llamada
// recursiva. El set visited evita recargar (y evita ciclos de carga); la
// detección de ciclos como error la hace el motor.
func (uc *ComputeCostUseCase) loadGraph(ctx context.Context, rootID string, asOf time.Time) (*costing.Graph, error) {
	edges := make(map[string][]entity.CompositionEdge)
	visited := map[string]struct{}{rootID: {}}
	rawIDs := make(map[string]struct{})

	frontier := []string{rootID}
	for len(frontier) > 0 {
		batch, err := uc.compositionRepo.ListByParents(ctx, frontier)
		if err != nil {
			return nil, fmt.Errorf("cargar composición: %w", err)
		}
		var next []string
		for _, parentID := range frontier {
			parentEdges := batch[parentID]
			edges[parentID] = parentEdges
			for _, edge := range parentEdges {
				switch edge.ChildKind {
				case entity.NodeKindRawItem:
					rawIDs[edge.ChildID] = struct{}{}
				case entity.NodeKindComposite:
					if _, seen := visited[edge.ChildID]; !seen {
						visited[edge.ChildID] = struct{}{}
						next = append(next, edge.ChildID)
					}
				default:
					return nil, fmt.Errorf("%w: child_kind %q", domain.ErrInvalidInput, edge.ChildKind)
				}
			}
		}
		frontier = next
	}

	ids := make([]string, 0, len(rawIDs))
	for id := range rawIDs {
		ids = append(ids, id)
	}

	rawItems, err := uc.rawItemRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("cargar materias primas: %w", err)
	}
	purchases, err := uc.purchaseRepo.ListRecentByItems(ctx, ids, uc.avgWindow, asOf)
	if err != nil {
		return nil, fmt.Errorf("cargar historial de compras: %w", err)
	}

	return &costing.Graph{Edges: edges, RawItems: rawItems, Purchases: purchases}, nil
}
