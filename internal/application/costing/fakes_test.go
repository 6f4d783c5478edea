package costing_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Costos-api/internal/domain/entity"
)

// fakeCatalog es el catálogo y el historial de compras en memoria, con la
// misma semántica de lectura que los repos Postgres: (nil, nil) cuando la
// fila no existe, listados por lote indexados por ID y compras acotadas a
// asOf en orden descendente.
type fakeCatalog struct {
	composites map[string]*entity.CompositeEntity
	rawItems   map[string]*entity.RawItem
	edges      map[string][]entity.CompositionEdge
	purchases  map[string][]entity.PurchaseRecord

	cacheWriteErr map[string]error // fallos de UpdateCostCache por entidad
	cacheWrites   int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		composites:    map[string]*entity.CompositeEntity{},
		rawItems:      map[string]*entity.RawItem{},
		edges:         map[string][]entity.CompositionEdge{},
		purchases:     map[string][]entity.PurchaseRecord{},
		cacheWriteErr: map[string]error{},
	}
}

type fakeCompositeRepo struct{ cat *fakeCatalog }

func (r *fakeCompositeRepo) GetByID(_ context.Context, id string) (*entity.CompositeEntity, error) {
	return r.cat.composites[id], nil
}

func (r *fakeCompositeRepo) List(_ context.Context, limit, offset int) ([]*entity.CompositeEntity, error) {
	ids := make([]string, 0, len(r.cat.composites))
	for id := range r.cat.composites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if offset >= len(ids) {
		return nil, nil
	}
	ids = ids[offset:]
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]*entity.CompositeEntity, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.cat.composites[id])
	}
	return out, nil
}

func (r *fakeCompositeRepo) UpdateCostCache(_ context.Context, id string, cost decimal.Decimal, policy string, at time.Time) error {
	if err := r.cat.cacheWriteErr[id]; err != nil {
		return err
	}
	c := r.cat.composites[id]
	c.LastComputedCost = &cost
	c.LastCostingPolicy = &policy
	c.LastComputedAt = &at
	r.cat.cacheWrites++
	return nil
}

type fakeRawItemRepo struct{ cat *fakeCatalog }

func (r *fakeRawItemRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.RawItem, error) {
	out := make(map[string]*entity.RawItem, len(ids))
	for _, id := range ids {
		if item, ok := r.cat.rawItems[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

type fakeCompositionRepo struct{ cat *fakeCatalog }

func (r *fakeCompositionRepo) ListByParents(_ context.Context, parentIDs []string) (map[string][]entity.CompositionEdge, error) {
	out := make(map[string][]entity.CompositionEdge, len(parentIDs))
	for _, id := range parentIDs {
		if edges, ok := r.cat.edges[id]; ok {
			out[id] = edges
		}
	}
	return out, nil
}

type fakePurchaseRepo struct{ cat *fakeCatalog }

func (r *fakePurchaseRepo) ListRecentByItems(_ context.Context, itemIDs []string, limit int, asOf time.Time) (map[string][]entity.PurchaseRecord, error) {
	out := make(map[string][]entity.PurchaseRecord, len(itemIDs))
	for _, id := range itemIDs {
		var recent []entity.PurchaseRecord
		for _, rec := range r.cat.purchases[id] {
			if !rec.OccurredAt.After(asOf) {
				recent = append(recent, rec)
			}
		}
		sort.Slice(recent, func(i, j int) bool {
			return recent[i].OccurredAt.After(recent[j].OccurredAt)
		})
		if limit > 0 && len(recent) > limit {
			recent = recent[:limit]
		}
		if recent != nil {
			out[id] = recent
		}
	}
	return out, nil
}
