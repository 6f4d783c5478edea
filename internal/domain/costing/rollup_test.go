package costing_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Costos-api/internal/domain"
	"github.com/jhoicas/Costos-api/internal/domain/costing"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de referencia: producir un Pan requiere 0.25 kg de Harina.
//
//	Harina: CurrentCost = 12000/kg
//	Compras (más reciente primero): 13000, 11000, 10000
//
// Costos esperados de una unidad de Pan:
//
//	current → 0.25 * 12000 = 3000
//	latest  → 0.25 * 13000 = 3250
//	average → 0.25 * (13000+11000+10000)/3
// ──────────────────────────────────────────────────────────────────────────────

const (
	testPanID    = "pan-001"
	testHarinaID = "harina-001"
)

func TestCompute_PoliticaCurrent(t *testing.T) {
	eng := costing.NewEngine(costing.DefaultAverageWindow, costing.DefaultMaxDepth)

	res, err := eng.Compute(buildPanGraph(), testPanID, costing.PolicyCurrent)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(3000).Equal(res.TotalCost),
		"current debe usar CurrentCost del catálogo: 0.25 * 12000 = 3000, fue %s", res.TotalCost)
	require.Len(t, res.Breakdown, 1)
	assert.Equal(t, testHarinaID, res.Breakdown[0].NodeID)
	assert.False(t, res.Breakdown[0].NoCostData)
}

func TestCompute_PoliticaLatest(t *testing.T) {
	eng := costing.NewEngine(costing.DefaultAverageWindow, costing.DefaultMaxDepth)

	res, err := eng.Compute(buildPanGraph(), testPanID, costing.PolicyLatest)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(3250).Equal(res.TotalCost),
		"latest debe usar la compra más reciente: 0.25 * 13000 = 3250, fue %s", res.TotalCost)
}

func TestCompute_PoliticaAverage(t *testing.T) {
	eng := costing.NewEngine(costing.DefaultAverageWindow, costing.DefaultMaxDepth)

	res, err := eng.Compute(buildPanGraph(), testPanID, costing.PolicyAverage)
	require.NoError(t, err)

	// media = (13000+11000+10000)/3, escalada por los 0.25 kg de la arista
	want := decimal.NewFromInt(34000).
		Div(decimal.NewFromInt(3)).
		Mul(decimal.NewFromFloat(0.25))
	assert.True(t, want.Equal(res.TotalCost),
		"average debe promediar las compras de la ventana: esperado %s, fue %s", want, res.TotalCost)
}

// TestCompute_Determinista verifica que dos cálculos consecutivos sobre la
// misma foto del grafo producen exactamente el mismo total (sin estado oculto).
func TestCompute_Determinista(t *testing.T) {
	eng := costing.NewEngine(costing.DefaultAverageWindow, costing.DefaultMaxDepth)
	g := buildPanGraph()

	res1, err1 := eng.Compute(g, testPanID, costing.PolicyAverage)
	res2, err2 := eng.Compute(g, testPanID, costing.PolicyAverage)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.True(t, res1.TotalCost.Equal(res2.TotalCost),
		"el mismo grafo siempre debe producir el mismo costo")
}

// TestCompute_MultinivelAditivo verifica la aditividad en recetas anidadas:
// el costo de una Torta (2 panes + 0.5 kg de harina) debe ser exactamente
// 2*costo(pan) + 0.5*precio(harina).
func TestCompute_MultinivelAditivo(t *testing.T) {
	eng := costing.NewEngine(costing.DefaultAverageWindow, costing.DefaultMaxDepth)
	g := buildPanGraph()

	tortaID := "torta-001"
	g.Edges[tortaID] = []entity.CompositionEdge{
		{ID: "e-torta-pan", ParentID: tortaID, ChildID: testPanID, ChildKind: entity.NodeKindComposite,
			QuantityRequired: decimal.NewFromInt(2), Unit: "unidad"},
		{ID: "e-torta-harina", ParentID: tortaID, ChildID: testHarinaID, ChildKind: entity.NodeKindRawItem,
			QuantityRequired: decimal.NewFromFloat(0.5), Unit: "kg"},
	}

	pan, err := eng.Compute(g, testPanID, costing.PolicyCurrent)
	require.NoError(t, err)
	torta, err := eng.Compute(g, tortaID, costing.PolicyCurrent)
	require.NoError(t, err)

	want := pan.TotalCost.Mul(decimal.NewFromInt(2)).
		Add(decimal.NewFromInt(12000).Mul(decimal.NewFromFloat(0.5)))
	assert.True(t, want.Equal(torta.TotalCost),
		"costo(torta) = 2*costo(pan) + 0.5*precio(harina): esperado %s, fue %s", want, torta.TotalCost)
	require.Len(t, torta.Breakdown, 2, "el desglose cubre solo los hijos directos")
}

func TestCompute_SinComposicion(t *testing.T) {
	eng := costing.NewEngine(costing.DefaultAverageWindow, costing.DefaultMaxDepth)
	g := buildPanGraph()

	_, err := eng.Compute(g, "entidad-sin-receta", costing.PolicyCurrent)
	assert.ErrorIs(t, err, domain.ErrNoCompositionData,
		"una raíz sin aristas salientes debe distinguirse de costo cero")
}

// TestCompute_CicloDetectado arma A→B→C→A y verifica que el motor falla con
// CompositionCycleError reportando la ruta completa del ciclo, en vez de
// recursar hasta agotar la pila.
func TestCompute_CicloDetectado(t *testing.T) {
	eng := costing.NewEngine(costing.DefaultAverageWindow, costing.DefaultMaxDepth)
	g := &costing.Graph{
		Edges: map[string][]entity.CompositionEdge{
			"A": {{ChildID: "B", ChildKind: entity.NodeKindComposite, QuantityRequired: decimal.NewFromInt(1)}},
			"B": {{ChildID: "C", ChildKind: entity.NodeKindComposite, QuantityRequired: decimal.NewFromInt(1)}},
			"C": {{ChildID: "A", ChildKind: entity.NodeKindComposite, QuantityRequired: decimal.NewFromInt(1)}},
		},
		RawItems:  map[string]*entity.RawItem{},
		Purchases: map[string][]entity.PurchaseRecord{},
	}

	_, err := eng.Compute(g, "A", costing.PolicyCurrent)
	var cycleErr *domain.CompositionCycleError
	require.ErrorAs(t, err, &cycleErr, "un ciclo debe reportarse con su tipo propio")
	assert.Equal(t, []string{"A", "B", "C", "A"}, cycleErr.Path,
		"la ruta del ciclo debe nombrar las entidades involucradas")
}

// TestCompute_NodoSinDatosDeCosto verifica que un hijo compuesto sin receta
// contribuye 0 pero queda marcado en el desglose, nunca omitido en silencio.
func TestCompute_NodoSinDatosDeCosto(t *testing.T) {
	eng := costing.NewEngine(costing.DefaultAverageWindow, costing.DefaultMaxDepth)
	g := buildPanGraph()
	g.Edges[testPanID] = append(g.Edges[testPanID], entity.CompositionEdge{
		ID: "e-pan-relleno", ParentID: testPanID, ChildID: "relleno-sin-receta",
		ChildKind: entity.NodeKindComposite, QuantityRequired: decimal.NewFromInt(1), Unit: "unidad",
	})

	res, err := eng.Compute(g, testPanID, costing.PolicyCurrent)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(3000).Equal(res.TotalCost),
		"el nodo sin datos contribuye 0 al total")
	require.Len(t, res.Breakdown, 2)
	assert.True(t, res.Breakdown[1].NoCostData, "el renglón sin datos debe quedar marcado")
	assert.True(t, res.Breakdown[1].LineTotal.IsZero())
}

func TestCompute_MateriaPrimaFaltante(t *testing.T) {
	eng := costing.NewEngine(costing.DefaultAverageWindow, costing.DefaultMaxDepth)
	g := buildPanGraph()
	g.Edges[testPanID] = append(g.Edges[testPanID], entity.CompositionEdge{
		ChildID: "item-inexistente", ChildKind: entity.NodeKindRawItem,
		QuantityRequired: decimal.NewFromInt(1),
	})

	_, err := eng.Compute(g, testPanID, costing.PolicyCurrent)
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"una arista hacia una materia prima inexistente es un error, no un 0 silencioso")
}

// TestCompute_ProfundidadMaxima arma una cadena lineal más profunda que el
// límite del motor y verifica que el recorrido se corta con error en vez de
// seguir descendiendo.
func TestCompute_ProfundidadMaxima(t *testing.T) {
	const maxDepth = 5
	eng := costing.NewEngine(costing.DefaultAverageWindow, maxDepth)

	g := &costing.Graph{
		Edges:     map[string][]entity.CompositionEdge{},
		RawItems:  map[string]*entity.RawItem{},
		Purchases: map[string][]entity.PurchaseRecord{},
	}
	// n0 → n1 → ... → n9, todos compuestos
	for i := 0; i < 10; i++ {
		parent := fmt.Sprintf("n%d", i)
		child := fmt.Sprintf("n%d", i+1)
		g.Edges[parent] = []entity.CompositionEdge{
			{ChildID: child, ChildKind: entity.NodeKindComposite, QuantityRequired: decimal.NewFromInt(1)},
		}
	}

	_, err := eng.Compute(g, "n0", costing.PolicyCurrent)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"superar la profundidad máxima debe cortar el recorrido con error")
	assert.False(t, errors.Is(err, domain.ErrNoCompositionData))
}

// ── helper ────────────────────────────────────────────────────────────────────

// buildPanGraph arma la foto del escenario de referencia Pan/Harina.
func buildPanGraph() *costing.Graph {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	return &costing.Graph{
		Edges: map[string][]entity.CompositionEdge{
			testPanID: {
				{ID: "e-pan-harina", ParentID: testPanID, ChildID: testHarinaID,
					ChildKind: entity.NodeKindRawItem, QuantityRequired: decimal.NewFromFloat(0.25), Unit: "kg"},
			},
		},
		RawItems: map[string]*entity.RawItem{
			testHarinaID: {ID: testHarinaID, Name: "Harina de trigo", UnitMeasure: "kg",
				CurrentCost: decimal.NewFromInt(12000)},
		},
		Purchases: map[string][]entity.PurchaseRecord{
			testHarinaID: {
				{ID: "c3", ItemID: testHarinaID, UnitCost: decimal.NewFromInt(13000), OccurredAt: base.AddDate(0, 0, 9)},
				{ID: "c2", ItemID: testHarinaID, UnitCost: decimal.NewFromInt(11000), OccurredAt: base.AddDate(0, 0, 5)},
				{ID: "c1", ItemID: testHarinaID, UnitCost: decimal.NewFromInt(10000), OccurredAt: base},
			},
		},
	}
}
