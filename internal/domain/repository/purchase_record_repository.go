package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Costos-api/internal/domain/entity"
)

// PurchaseRecordRepository puerto de lectura del historial de compras.
// El historial es solo-append y pertenece a un colaborador externo.
type PurchaseRecordRepository interface {
	// ListRecentByItems devuelve hasta limit compras por ítem con
	// OccurredAt <= asOf, ordenadas por OccurredAt descendente e indexadas
	// por itemID.
	ListRecentByItems(ctx context.Context, itemIDs []string, limit int, asOf time.Time) (map[string][]entity.PurchaseRecord, error)
}
