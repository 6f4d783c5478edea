package stock_test

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
	"github.com/jhoicas/Costos-api/internal/domain/repository"
)

// fakeLedger es un libro de stock en memoria con la misma semántica que la
// implementación Postgres: GetByID devuelve (nil, nil) cuando la fila no
// existe y el TxRunner serializa las transacciones con un mutex, igual que
// lo hace el bloqueo de fila en la base.
type fakeLedger struct {
	mu        sync.Mutex
	entities  map[string]*entity.StockedEntity
	movements []*entity.StockMovement
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{entities: map[string]*entity.StockedEntity{}}
}

func (l *fakeLedger) seed(s entity.StockedEntity) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entities[s.ID] = &s
}

// get devuelve una copia del estado actual de la entidad, o nil.
func (l *fakeLedger) get(id string) *entity.StockedEntity {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.entities[id]
	if !ok {
		return nil
	}
	cp := *s
	return &cp
}

// movementsFor devuelve los movimientos de la entidad en orden de aplicación.
func (l *fakeLedger) movementsFor(id string) []*entity.StockMovement {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range l.movements {
		if m.StockedEntityID == id {
			out = append(out, m)
		}
	}
	return out
}

// filterMovements aplica filtro y paginación en orden cronológico inverso,
// como ListByEntity en Postgres.
func filterMovements(
	movs []*entity.StockMovement,
	stockedEntityID string,
	f repository.MovementFilter,
	limit, offset int,
) []*entity.StockMovement {
	var matched []*entity.StockMovement
	for i := len(movs) - 1; i >= 0; i-- {
		m := movs[i]
		if m.StockedEntityID != stockedEntityID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.Reason != "" && m.Reason != f.Reason {
			continue
		}
		if f.From != nil && m.OccurredAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.OccurredAt.After(*f.To) {
			continue
		}
		matched = append(matched, m)
	}
	if offset >= len(matched) {
		return nil
	}
	matched = matched[offset:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// ── TxRunner transaccional ────────────────────────────────────────────────────

// fakeTxRunner ejecuta fn contra un estado provisional; solo si fn retorna
// nil el estado se publica al libro. Reproduce el todo-o-nada de la
// transacción real.
type fakeTxRunner struct {
	ledger *fakeLedger
}

type stagedState struct {
	entities  map[string]*entity.StockedEntity
	movements []*entity.StockMovement
}

func (r *fakeTxRunner) Run(
	ctx context.Context,
	fn func(repository.StockedEntityRepository, repository.StockMovementRepository) error,
) error {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()

	staged := &stagedState{
		entities:  make(map[string]*entity.StockedEntity, len(r.ledger.entities)),
		movements: append([]*entity.StockMovement(nil), r.ledger.movements...),
	}
	for id, s := range r.ledger.entities {
		cp := *s
		staged.entities[id] = &cp
	}

	if err := fn(&stagedStockRepo{state: staged}, &stagedMovementRepo{state: staged}); err != nil {
		return err
	}
	r.ledger.entities = staged.entities
	r.ledger.movements = staged.movements
	return nil
}

type stagedStockRepo struct {
	state *stagedState
}

func (r *stagedStockRepo) GetByID(_ context.Context, id string) (*entity.StockedEntity, error) {
	return r.state.entities[id], nil
}

func (r *stagedStockRepo) GetForUpdate(_ context.Context, id string) (*entity.StockedEntity, error) {
	return r.state.entities[id], nil
}

func (r *stagedStockRepo) Save(_ context.Context, s *entity.StockedEntity) error {
	cp := *s
	r.state.entities[s.ID] = &cp
	return nil
}

func (r *stagedStockRepo) UpdateReorderLevel(_ context.Context, id string, reorderLevel decimal.Decimal, maxStockLevel *decimal.Decimal) error {
	s := r.state.entities[id]
	s.ReorderLevel = reorderLevel
	s.MaxStockLevel = maxStockLevel
	return nil
}

func (r *stagedStockRepo) ListBelowReorder(_ context.Context, limit int) ([]*entity.StockedEntity, error) {
	return listBelowReorder(r.state.entities, limit), nil
}

type stagedMovementRepo struct {
	state *stagedState
}

func (r *stagedMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	r.state.movements = append(r.state.movements, m)
	return nil
}

func (r *stagedMovementRepo) ListByEntity(_ context.Context, stockedEntityID string, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	return filterMovements(r.state.movements, stockedEntityID, f, limit, offset), nil
}

// ── repos de solo lectura sobre el libro publicado ────────────────────────────

// ledgerStockRepo expone el libro como StockedEntityRepository para los casos
// de uso que leen fuera de transacción (historial, reorden, bajo stock).
type ledgerStockRepo struct {
	ledger *fakeLedger
}

func (r *ledgerStockRepo) GetByID(_ context.Context, id string) (*entity.StockedEntity, error) {
	return r.ledger.get(id), nil
}

func (r *ledgerStockRepo) GetForUpdate(_ context.Context, id string) (*entity.StockedEntity, error) {
	return r.ledger.get(id), nil
}

func (r *ledgerStockRepo) Save(_ context.Context, s *entity.StockedEntity) error {
	r.ledger.seed(*s)
	return nil
}

func (r *ledgerStockRepo) UpdateReorderLevel(_ context.Context, id string, reorderLevel decimal.Decimal, maxStockLevel *decimal.Decimal) error {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	s := r.ledger.entities[id]
	s.ReorderLevel = reorderLevel
	s.MaxStockLevel = maxStockLevel
	return nil
}

func (r *ledgerStockRepo) ListBelowReorder(_ context.Context, limit int) ([]*entity.StockedEntity, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	return listBelowReorder(r.ledger.entities, limit), nil
}

type ledgerMovementRepo struct {
	ledger *fakeLedger
}

func (r *ledgerMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	r.ledger.movements = append(r.ledger.movements, m)
	return nil
}

func (r *ledgerMovementRepo) ListByEntity(_ context.Context, stockedEntityID string, f repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	return filterMovements(r.ledger.movements, stockedEntityID, f, limit, offset), nil
}

func listBelowReorder(entities map[string]*entity.StockedEntity, limit int) []*entity.StockedEntity {
	var out []*entity.StockedEntity
	for _, s := range entities {
		if s.BelowReorder() {
			cp := *s
			out = append(out, &cp)
		}
	}
	// mayor déficit primero, como en la consulta real
	sort.Slice(out, func(i, j int) bool {
		di := out[i].ReorderLevel.Sub(out[i].CurrentStock)
		dj := out[j].ReorderLevel.Sub(out[j].CurrentStock)
		return di.GreaterThan(dj)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
