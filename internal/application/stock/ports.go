package stock

import (
	"context"

	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Junto con el bloqueo de fila en
// stocked_entities garantiza que la secuencia leer-verificar-anotar-escribir
// del libro sea indivisible para otros callers.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockedEntityRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
