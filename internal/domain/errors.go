package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidPolicy     = errors.New("política de costeo inválida")
	ErrUnknownReason     = errors.New("motivo de movimiento desconocido")
	ErrNoCompositionData = errors.New("la entidad no tiene composición registrada")
)

// CompositionCycleError indica que el grafo de composición contiene un ciclo.
// Path es la cadena de IDs desde la raíz hasta la entidad que se repite.
type CompositionCycleError struct {
	Path []string
}

func (e *CompositionCycleError) Error() string {
	return fmt.Sprintf("ciclo en el grafo de composición: %s", strings.Join(e.Path, " -> "))
}

// InsufficientStockError indica que una salida o reserva excede el stock
// disponible (actual - reservado). No se aplica ningún cambio cuando ocurre.
type InsufficientStockError struct {
	StockedEntityID string
	Current         decimal.Decimal
	Requested       decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en %s: actual %s, solicitado %s",
		e.StockedEntityID, e.Current.String(), e.Requested.String())
}
