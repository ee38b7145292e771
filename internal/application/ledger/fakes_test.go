package ledger_test

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/kitakita/inventory-api/internal/domain/entity"
	"github.com/kitakita/inventory-api/internal/domain/repository"
)

// fakeStore es una base de datos en memoria compartida por los repos
// falsos. Los getters devuelven copias y los updates escriben copias, así
// que ninguna mutación llega al store sin pasar por el repo (igual que
// una fila de Postgres).
type fakeStore struct {
	mu          sync.Mutex
	products    map[string]*entity.Product
	sales       map[string]*entity.Sale
	purchases   map[string]*entity.Purchase
	adjustments []*entity.InventoryAdjustment
	suppliers   map[string]*entity.Supplier
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  make(map[string]*entity.Product),
		sales:     make(map[string]*entity.Sale),
		purchases: make(map[string]*entity.Purchase),
		suppliers: make(map[string]*entity.Supplier),
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	snap := newFakeStore()
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for id, v := range s.sales {
		cp := *v
		snap.sales[id] = &cp
	}
	for id, p := range s.purchases {
		cp := *p
		snap.purchases[id] = &cp
	}
	for _, a := range s.adjustments {
		cp := *a
		snap.adjustments = append(snap.adjustments, &cp)
	}
	for id, sp := range s.suppliers {
		cp := *sp
		snap.suppliers[id] = &cp
	}
	return snap
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.products = snap.products
	s.sales = snap.sales
	s.purchases = snap.purchases
	s.adjustments = snap.adjustments
	s.suppliers = snap.suppliers
}

// fakeTxRunner serializa las "transacciones" con el mutex del store y
// restaura un snapshot si fn falla, imitando el Rollback real.
type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	adjustmentRepo repository.AdjustmentRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	err := fn(
		&fakeProductRepo{store: r.store},
		&fakeSaleRepo{store: r.store},
		&fakePurchaseRepo{store: r.store},
		&fakeAdjustmentRepo{store: r.store},
		&fakeSupplierRepo{store: r.store},
	)
	if err != nil {
		r.store.restore(snap)
	}
	return err
}

// ── Repos falsos ──────────────────────────────────────────────────────────────

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) GetByUserAndCode(userID, code string) (*entity.Product, error) {
	for _, p := range r.store.products {
		if p.UserID == userID && p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Search(userID, search, categoryID string, limit, offset int) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.UserID != userID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			continue
		}
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) ListByUser(userID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.store.products, id)
	return nil
}

type fakeSaleRepo struct{ store *fakeStore }

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	cp := *s
	r.store.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.store.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) Update(s *entity.Sale) error {
	cp := *s
	r.store.sales[s.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) Delete(id string) error {
	delete(r.store.sales, id)
	return nil
}

func (r *fakeSaleRepo) ListByUser(userID, search string, limit, offset int) ([]*entity.Sale, int, error) {
	var out []*entity.Sale
	for _, s := range r.store.sales {
		if s.UserID != userID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(s.SaleCode), strings.ToLower(search)) {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeSaleRepo) Summary(userID string) (*repository.SalesSummary, error) {
	summary := &repository.SalesSummary{TotalSalesValue: decimal.Zero}
	for _, s := range r.store.sales {
		if s.UserID != userID {
			continue
		}
		summary.TotalSalesValue = summary.TotalSalesValue.Add(s.TotalValue)
		summary.TotalSalesCount++
		summary.TotalProductsSold += int64(s.Quantity)
	}
	return summary, nil
}

type fakePurchaseRepo struct{ store *fakeStore }

func (r *fakePurchaseRepo) Create(p *entity.Purchase) error {
	cp := *p
	r.store.purchases[p.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.store.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePurchaseRepo) GetByIDForUpdate(id string) (*entity.Purchase, error) {
	return r.GetByID(id)
}

func (r *fakePurchaseRepo) UpdateStatus(id, status string) error {
	if p, ok := r.store.purchases[id]; ok {
		p.Status = status
	}
	return nil
}

func (r *fakePurchaseRepo) ListByUser(userID string, limit, offset int) ([]*entity.Purchase, int, error) {
	var out []*entity.Purchase
	for _, p := range r.store.purchases {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (r *fakePurchaseRepo) ListByProduct(userID, productID string) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.store.purchases {
		if p.UserID == userID && p.ProductID == productID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeAdjustmentRepo struct{ store *fakeStore }

func (r *fakeAdjustmentRepo) Create(a *entity.InventoryAdjustment) error {
	cp := *a
	r.store.adjustments = append(r.store.adjustments, &cp)
	return nil
}

func (r *fakeAdjustmentRepo) ListByProduct(userID, productID string) ([]*entity.InventoryAdjustment, error) {
	var out []*entity.InventoryAdjustment
	for _, a := range r.store.adjustments {
		if a.UserID == userID && a.ProductID == productID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeSupplierRepo struct{ store *fakeStore }

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error {
	cp := *s
	r.store.suppliers[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.store.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSupplierRepo) Update(s *entity.Supplier) error {
	cp := *s
	r.store.suppliers[s.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) Delete(id string) error {
	delete(r.store.suppliers, id)
	return nil
}

func (r *fakeSupplierRepo) ListByUser(userID string) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.store.suppliers {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}
