package costing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Costos-api/internal/domain"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
)

// DefaultMaxDepth límite de profundidad de recetas anidadas.
const DefaultMaxDepth = 32

// Graph es la foto inmutable del grafo de composición para un cálculo:
// adyacencia completa en memoria, de modo que el recorrido no dispara una
// consulta por llamada recursiva.
//   - Edges: parentID -> aristas salientes.
//   - RawItems: materias primas referenciadas por el grafo.
//   - Purchases: itemID -> compras con OccurredAt <= asOf, ordenadas
//     descendente por fecha.
type Graph struct {
	Edges     map[string][]entity.CompositionEdge
	RawItems  map[string]*entity.RawItem
	Purchases map[string][]entity.PurchaseRecord
}

// BreakdownLine es un renglón de la hoja de costos: un hijo directo de la
// raíz con su costo unitario resuelto y el total de la línea.
type BreakdownLine struct {
	NodeID     string
	NodeKind   string // raw_item | composite
	Unit       string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	LineTotal  decimal.Decimal
	NoCostData bool // sin composición ni fuente de costo: contribuye 0
}

// Result es el resultado de un rollup: costo total de una unidad de la raíz
// y el desglose de sus hijos directos.
type Result struct {
	EntityID  string
	Policy    Policy
	TotalCost decimal.Decimal
	Breakdown []BreakdownLine
}

// Engine ejecuta rollups de costo sobre una foto del grafo. Es puro y sin
// estado mutable compartido: varios cálculos pueden correr en paralelo.
type Engine struct {
	avgWindow int
	maxDepth  int
}

// NewEngine construye el motor. avgWindow es la N de PolicyAverage;
// maxDepth <= 0 usa DefaultMaxDepth.
func NewEngine(avgWindow, maxDepth int) *Engine {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Engine{avgWindow: avgWindow, maxDepth: maxDepth}
}

// Compute calcula el costo de producir una unidad de rootID bajo la política
// dada, recorriendo el grafo en profundidad. Falla con CompositionCycleError
// si una entidad se encuentra dos veces en la ruta activa de recursión, y con
// ErrNoCompositionData si la raíz no tiene aristas salientes.
func (e *Engine) Compute(g *Graph, rootID string, policy Policy) (*Result, error) {
	edges := g.Edges[rootID]
	if len(edges) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoCompositionData, rootID)
	}

	path := map[string]int{rootID: 0}
	order := []string{rootID}

	total := decimal.Zero
	breakdown := make([]BreakdownLine, 0, len(edges))
	for _, edge := range edges {
		unitCost, noData, err := e.nodeCost(g, edge.ChildID, edge.ChildKind, policy, path, order, 1)
		if err != nil {
			return nil, err
		}
		lineTotal := unitCost.Mul(edge.QuantityRequired)
		breakdown = append(breakdown, BreakdownLine{
			NodeID:     edge.ChildID,
			NodeKind:   edge.ChildKind,
			Unit:       edge.Unit,
			Quantity:   edge.QuantityRequired,
			UnitCost:   unitCost,
			LineTotal:  lineTotal,
			NoCostData: noData,
		})
		total = total.Add(lineTotal)
	}

	return &Result{
		EntityID:  rootID,
		Policy:    policy,
		TotalCost: total,
		Breakdown: breakdown,
	}, nil
}

// nodeCost resuelve el costo unitario de un nodo. path/order llevan la ruta
// activa de recursión para la guarda de ciclos; depth acota la profundidad.
func (e *Engine) nodeCost(
	g *Graph,
	nodeID, nodeKind string,
	policy Policy,
	path map[string]int,
	order []string,
	depth int,
) (cost decimal.Decimal, noData bool, err error) {
	if nodeKind == entity.NodeKindRawItem {
		item, ok := g.RawItems[nodeID]
		if !ok {
			return decimal.Zero, false, fmt.Errorf("%w: materia prima %s", domain.ErrNotFound, nodeID)
		}
		return ResolveUnitPrice(policy, item, g.Purchases[nodeID], e.avgWindow), false, nil
	}

	if start, seen := path[nodeID]; seen {
		cycle := append(append([]string{}, order[start:]...), nodeID)
		return decimal.Zero, false, &domain.CompositionCycleError{Path: cycle}
	}
	if depth > e.maxDepth {
		return decimal.Zero, false, fmt.Errorf("%w: profundidad de composición mayor a %d", domain.ErrInvalidInput, e.maxDepth)
	}

	edges := g.Edges[nodeID]
	if len(edges) == 0 {
		// Nodo compuesto sin composición ni fuente directa de costo:
		// contribuye 0 y queda marcado, nunca se omite en silencio.
		return decimal.Zero, true, nil
	}

	path[nodeID] = len(order)
	order = append(order, nodeID)
	defer delete(path, nodeID)

	sum := decimal.Zero
	for _, edge := range edges {
		childCost, _, err := e.nodeCost(g, edge.ChildID, edge.ChildKind, policy, path, order, depth+1)
		if err != nil {
			return decimal.Zero, false, err
		}
		sum = sum.Add(childCost.Mul(edge.QuantityRequired))
	}
	return sum, false, nil
}
