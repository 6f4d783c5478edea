package entity

import "github.com/shopspring/decimal"

// Tipos de nodo en el grafo de composición.
const (
	NodeKindRawItem   = "raw_item"
	NodeKindComposite = "composite"
)

// CompositionEdge es una arista del grafo de composición: producir una unidad
// de ParentID requiere QuantityRequired unidades de ChildID.
// El hijo puede ser materia prima u otra entidad compuesta (recetas
// multinivel). El conjunto de aristas debe ser acíclico; el motor de costeo
// lo verifica en cada recorrido.
type CompositionEdge struct {
	ID               string
	ParentID         string
	ChildID          string
	ChildKind        string // raw_item | composite
	QuantityRequired decimal.Decimal
	Unit             string
}
