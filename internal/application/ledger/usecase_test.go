package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitakita/inventory-api/internal/application/dto"
	"github.com/kitakita/inventory-api/internal/application/ledger"
	"github.com/kitakita/inventory-api/internal/domain"
	"github.com/kitakita/inventory-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del motor de inventario: ventas, compras y ajustes mutan
// Product.Quantity de forma transaccional. Los fakes de fakes_test.go
// imitan el comportamiento de Postgres (copias por fila, rollback por
// snapshot, transacciones serializadas), así que lo que se verifica aquí
// es la lógica del ledger, no la capa SQL.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID  = "11111111-1111-4111-8111-111111111111"
	otherUserID = "22222222-2222-4222-8222-222222222222"
)

type ledgerFixture struct {
	store *fakeStore
	uc    *ledger.LedgerUseCase
}

func newLedgerFixture() *ledgerFixture {
	store := newFakeStore()
	uc := ledger.NewLedgerUseCase(
		&fakeTxRunner{store: store},
		&fakeProductRepo{store: store},
		&fakeSaleRepo{store: store},
		&fakePurchaseRepo{store: store},
		&fakeAdjustmentRepo{store: store},
	)
	return &ledgerFixture{store: store, uc: uc}
}

func (f *ledgerFixture) seedProduct(userID string, quantity int) *entity.Product {
	p := &entity.Product{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         "Arroz Diana 500g",
		Code:         "PRD-TEST01",
		BuyingPrice:  decimal.NewFromInt(1500),
		SellingPrice: decimal.NewFromInt(2200),
		Quantity:     quantity,
		OpeningStock: quantity,
		IsActive:     true,
	}
	f.store.products[p.ID] = p
	return p
}

func (f *ledgerFixture) seedSupplier(userID string) *entity.Supplier {
	s := &entity.Supplier{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   "Distribuidora El Centro",
	}
	f.store.suppliers[s.ID] = s
	return s
}

func (f *ledgerFixture) productQuantity(t *testing.T, id string) int {
	t.Helper()
	p, ok := f.store.products[id]
	require.True(t, ok, "el producto debe seguir existiendo")
	return p.Quantity
}

// ── Ventas ────────────────────────────────────────────────────────────────────

func TestRecordSale_DescuentaStock(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 10)

	resp, err := f.uc.RecordSale(context.Background(), testUserID, dto.SaleRequest{
		ProductID: product.ID,
		Quantity:  3,
		UnitPrice: decimal.NewFromInt(2200),
	})

	require.NoError(t, err)
	assert.Equal(t, 7, f.productQuantity(t, product.ID), "la venta debe descontar la cantidad")
	assert.Equal(t, 3, resp.Quantity)
	assert.True(t, resp.TotalValue.Equal(decimal.NewFromInt(6600)),
		"TotalValue por defecto debe ser UnitPrice × Quantity")
	assert.True(t, resp.BuyingPrice.Equal(product.BuyingPrice),
		"BuyingPrice omitido debe tomar el snapshot del costo del producto")
	assert.Regexp(t, `^SL-[0-9A-F]{8}$`, resp.SaleCode)
}

func TestRecordSale_RechazaStockInsuficiente(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 2)

	_, err := f.uc.RecordSale(context.Background(), testUserID, dto.SaleRequest{
		ProductID: product.ID,
		Quantity:  5,
		UnitPrice: decimal.NewFromInt(2200),
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, f.productQuantity(t, product.ID), "un rechazo no debe tocar el stock")
	assert.Empty(t, f.store.sales, "no debe quedar venta registrada")
}

func TestRecordSale_RechazaCantidadNoPositiva(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 10)

	_, err := f.uc.RecordSale(context.Background(), testUserID, dto.SaleRequest{
		ProductID: product.ID,
		Quantity:  0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordSale_ProductoAjenoDevuelveNotFound(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(otherUserID, 10)

	_, err := f.uc.RecordSale(context.Background(), testUserID, dto.SaleRequest{
		ProductID: product.ID,
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(100),
	})

	// Producto de otro usuario: mismo error que si no existiera, para no
	// filtrar existencia entre cuentas.
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, f.store.products[product.ID].Quantity)
}

func TestUpdateSale_MismoProductoAplicaDelta(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 10)
	ctx := context.Background()

	sale, err := f.uc.RecordSale(ctx, testUserID, dto.SaleRequest{
		ProductID: product.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(2200),
	})
	require.NoError(t, err)
	require.Equal(t, 7, f.productQuantity(t, product.ID))

	// 3 → 5: el stock baja 2 más.
	resp, err := f.uc.UpdateSale(ctx, testUserID, sale.ID, dto.SaleRequest{
		ProductID: product.ID, Quantity: 5, UnitPrice: decimal.NewFromInt(2200),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, f.productQuantity(t, product.ID))
	assert.Equal(t, 5, resp.Quantity)

	// 5 → 2: el stock recupera 3.
	_, err = f.uc.UpdateSale(ctx, testUserID, sale.ID, dto.SaleRequest{
		ProductID: product.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(2200),
	})
	require.NoError(t, err)
	assert.Equal(t, 8, f.productQuantity(t, product.ID))
}

func TestUpdateSale_DeltaQueDejaNegativoSeRechaza(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 5)
	ctx := context.Background()

	sale, err := f.uc.RecordSale(ctx, testUserID, dto.SaleRequest{
		ProductID: product.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	// Quedan 2; subir la venta a 6 exigiría 3 más de los que hay.
	_, err = f.uc.UpdateSale(ctx, testUserID, sale.ID, dto.SaleRequest{
		ProductID: product.ID, Quantity: 6, UnitPrice: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, f.productQuantity(t, product.ID), "el rechazo no debe dejar efectos parciales")
	assert.Equal(t, 3, f.store.sales[sale.ID].Quantity, "la venta debe conservar su cantidad original")
}

func TestUpdateSale_CambioDeProductoRestauraYDescuenta(t *testing.T) {
	f := newLedgerFixture()
	oldProduct := f.seedProduct(testUserID, 10)
	newProduct := f.seedProduct(testUserID, 4)
	ctx := context.Background()

	sale, err := f.uc.RecordSale(ctx, testUserID, dto.SaleRequest{
		ProductID: oldProduct.ID, Quantity: 6, UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Equal(t, 4, f.productQuantity(t, oldProduct.ID))

	_, err = f.uc.UpdateSale(ctx, testUserID, sale.ID, dto.SaleRequest{
		ProductID: newProduct.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, f.productQuantity(t, oldProduct.ID), "el producto anterior recupera su cantidad")
	assert.Equal(t, 1, f.productQuantity(t, newProduct.ID), "el nuevo producto descuenta la nueva cantidad")
	assert.Equal(t, newProduct.ID, f.store.sales[sale.ID].ProductID)
}

func TestUpdateSale_CambioDeProductoSinStockEsAtomico(t *testing.T) {
	f := newLedgerFixture()
	oldProduct := f.seedProduct(testUserID, 10)
	newProduct := f.seedProduct(testUserID, 1)
	ctx := context.Background()

	sale, err := f.uc.RecordSale(ctx, testUserID, dto.SaleRequest{
		ProductID: oldProduct.ID, Quantity: 6, UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateSale(ctx, testUserID, sale.ID, dto.SaleRequest{
		ProductID: newProduct.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	// Rollback completo: ni la restauración del viejo ni nada del nuevo
	// debe quedar comprometido.
	assert.Equal(t, 4, f.productQuantity(t, oldProduct.ID))
	assert.Equal(t, 1, f.productQuantity(t, newProduct.ID))
	assert.Equal(t, oldProduct.ID, f.store.sales[sale.ID].ProductID)
}

func TestDeleteSale_RestauraStock(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 10)
	ctx := context.Background()

	sale, err := f.uc.RecordSale(ctx, testUserID, dto.SaleRequest{
		ProductID: product.ID, Quantity: 4, UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Equal(t, 6, f.productQuantity(t, product.ID))

	require.NoError(t, f.uc.DeleteSale(ctx, testUserID, sale.ID))
	assert.Equal(t, 10, f.productQuantity(t, product.ID), "borrar la venta devuelve la cantidad al producto")
	assert.Empty(t, f.store.sales)
}

func TestDeleteSale_VentaAjenaDevuelveNotFound(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(otherUserID, 10)
	ctx := context.Background()

	sale, err := f.uc.RecordSale(ctx, otherUserID, dto.SaleRequest{
		ProductID: product.ID, Quantity: 2, UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	err = f.uc.DeleteSale(ctx, testUserID, sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, f.store.sales, 1, "la venta ajena no debe borrarse")
}

func TestSalesSummary_Agrega(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 100)
	ctx := context.Background()

	for _, qty := range []int{2, 3} {
		_, err := f.uc.RecordSale(ctx, testUserID, dto.SaleRequest{
			ProductID: product.ID, Quantity: qty, UnitPrice: decimal.NewFromInt(1000),
		})
		require.NoError(t, err)
	}

	summary, err := f.uc.SalesSummary(testUserID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, summary.TotalSalesCount)
	assert.EqualValues(t, 5, summary.TotalProductsSold)
	assert.True(t, summary.TotalSalesValue.Equal(decimal.NewFromInt(5000)))
}

// ── Compras ───────────────────────────────────────────────────────────────────

func TestRecordPurchase_CompletedAplicaStock(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 10)
	supplier := f.seedSupplier(testUserID)

	resp, err := f.uc.RecordPurchase(context.Background(), testUserID, dto.PurchaseRequest{
		ProductID:  product.ID,
		SupplierID: &supplier.ID,
		Quantity:   5,
		UnitCost:   decimal.NewFromInt(1500),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCompleted, resp.Status, "sin estado explícito la compra nace COMPLETED")
	assert.True(t, resp.TotalCost.Equal(decimal.NewFromInt(7500)),
		"TotalCost se calcula en servidor: Quantity × UnitCost")
	assert.Regexp(t, `^PUR-[0-9A-F]{8}$`, resp.PurchaseCode)

	stored := f.store.products[product.ID]
	assert.Equal(t, 15, stored.Quantity)
	assert.Equal(t, 15, stored.OpeningStock, "COMPLETED también incrementa OpeningStock")
	assert.Equal(t, 0, stored.OnTheWay, "OnTheWay es un contador independiente: las compras no lo tocan")
}

func TestRecordPurchase_PendingNoTocaStock(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 10)

	resp, err := f.uc.RecordPurchase(context.Background(), testUserID, dto.PurchaseRequest{
		ProductID: product.ID,
		Quantity:  5,
		UnitCost:  decimal.NewFromInt(1500),
		Status:    entity.PurchaseStatusPending,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPending, resp.Status)
	assert.Equal(t, 10, f.productQuantity(t, product.ID), "PENDING no debe mover stock")
	assert.Equal(t, 10, f.store.products[product.ID].OpeningStock)
}

func TestRecordPurchase_ValidaEntrada(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 10)
	ctx := context.Background()

	_, err := f.uc.RecordPurchase(ctx, testUserID, dto.PurchaseRequest{
		ProductID: product.ID, Quantity: 0, UnitCost: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero se rechaza")

	_, err = f.uc.RecordPurchase(ctx, testUserID, dto.PurchaseRequest{
		ProductID: product.ID, Quantity: 1, UnitCost: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "costo unitario no positivo se rechaza")

	_, err = f.uc.RecordPurchase(ctx, testUserID, dto.PurchaseRequest{
		ProductID: product.ID, Quantity: 1, UnitCost: decimal.NewFromInt(100), Status: "CANCELLED",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "CANCELLED no es un estado creable")
}

func TestRecordPurchase_ProveedorAjenoDevuelveNotFound(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 10)
	supplier := f.seedSupplier(otherUserID)

	_, err := f.uc.RecordPurchase(context.Background(), testUserID, dto.PurchaseRequest{
		ProductID:  product.ID,
		SupplierID: &supplier.ID,
		Quantity:   1,
		UnitCost:   decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.store.purchases, "el rechazo no debe persistir la compra")
	assert.Equal(t, 10, f.productQuantity(t, product.ID), "el rechazo no debe tocar el stock")
}

func TestRecordPurchase_ProveedorBorradoSeRechazaEnLaTx(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 10)
	supplier := f.seedSupplier(testUserID)
	delete(f.store.suppliers, supplier.ID)

	_, err := f.uc.RecordPurchase(context.Background(), testUserID, dto.PurchaseRequest{
		ProductID:  product.ID,
		SupplierID: &supplier.ID,
		Quantity:   3,
		UnitCost:   decimal.NewFromInt(500),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"un proveedor ya inexistente debe rechazarse dentro de la misma transacción")
	assert.Empty(t, f.store.purchases)
	assert.Equal(t, 10, f.productQuantity(t, product.ID))
}

func TestCompletePurchase_AplicaStockUnaVez(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 10)
	ctx := context.Background()

	pending, err := f.uc.RecordPurchase(ctx, testUserID, dto.PurchaseRequest{
		ProductID: product.ID, Quantity: 5, UnitCost: decimal.NewFromInt(1000),
		Status: entity.PurchaseStatusPending,
	})
	require.NoError(t, err)

	resp, err := f.uc.CompletePurchase(ctx, testUserID, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCompleted, resp.Status)
	assert.Equal(t, 15, f.productQuantity(t, product.ID))
	assert.Equal(t, 15, f.store.products[product.ID].OpeningStock)

	// Completar dos veces no duplica el stock: COMPLETED es terminal.
	_, err = f.uc.CompletePurchase(ctx, testUserID, pending.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 15, f.productQuantity(t, product.ID))
}

func TestCancelPurchase_SoloDesdePending(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 10)
	ctx := context.Background()

	pending, err := f.uc.RecordPurchase(ctx, testUserID, dto.PurchaseRequest{
		ProductID: product.ID, Quantity: 5, UnitCost: decimal.NewFromInt(1000),
		Status: entity.PurchaseStatusPending,
	})
	require.NoError(t, err)

	resp, err := f.uc.CancelPurchase(ctx, testUserID, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusCancelled, resp.Status)
	assert.Equal(t, 10, f.productQuantity(t, product.ID), "cancelar una PENDING no mueve stock")

	_, err = f.uc.CompletePurchase(ctx, testUserID, pending.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "CANCELLED es terminal")

	completed, err := f.uc.RecordPurchase(ctx, testUserID, dto.PurchaseRequest{
		ProductID: product.ID, Quantity: 2, UnitCost: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)
	_, err = f.uc.CancelPurchase(ctx, testUserID, completed.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una compra COMPLETED ya movió stock y no se cancela")
	assert.Equal(t, 12, f.productQuantity(t, product.ID))
}

// ── Ajustes ───────────────────────────────────────────────────────────────────

func TestRecordAdjustment_Add(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 10)

	resp, err := f.uc.RecordAdjustment(context.Background(), testUserID, dto.AdjustmentRequest{
		ProductID: product.ID, AdjustmentType: "ADD", Quantity: 7, Reason: "conteo físico",
	})

	require.NoError(t, err)
	assert.Equal(t, "ADD", resp.AdjustmentType)
	assert.Equal(t, 17, f.productQuantity(t, product.ID))
}

func TestRecordAdjustment_RemoveRechazaUnderflow(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 5)
	ctx := context.Background()

	_, err := f.uc.RecordAdjustment(ctx, testUserID, dto.AdjustmentRequest{
		ProductID: product.ID, AdjustmentType: "REMOVE", Quantity: 8,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.productQuantity(t, product.ID))
	assert.Empty(t, f.store.adjustments, "un ajuste rechazado no se registra")

	_, err = f.uc.RecordAdjustment(ctx, testUserID, dto.AdjustmentRequest{
		ProductID: product.ID, AdjustmentType: "REMOVE", Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.productQuantity(t, product.ID), "remover exactamente el stock deja cero, no es underflow")
}

func TestRecordAdjustment_CorrectionFijaAbsoluto(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 42)

	_, err := f.uc.RecordAdjustment(context.Background(), testUserID, dto.AdjustmentRequest{
		ProductID: product.ID, AdjustmentType: "correction", Quantity: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, f.productQuantity(t, product.ID),
		"CORRECTION fija el valor absoluto (y el parseo ignora mayúsculas)")
}

func TestRecordAdjustment_TipoDesconocidoSeRechaza(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 10)

	_, err := f.uc.RecordAdjustment(context.Background(), testUserID, dto.AdjustmentRequest{
		ProductID: product.ID, AdjustmentType: "DESTROY", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAdjustmentType)
	assert.Equal(t, 10, f.productQuantity(t, product.ID))
}

func TestProductAdjustmentHistory_SoloDelDueno(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 10)
	ctx := context.Background()

	_, err := f.uc.RecordAdjustment(ctx, testUserID, dto.AdjustmentRequest{
		ProductID: product.ID, AdjustmentType: "ADD", Quantity: 1,
	})
	require.NoError(t, err)

	history, err := f.uc.ProductAdjustmentHistory(testUserID, product.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = f.uc.ProductAdjustmentHistory(otherUserID, product.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "el historial de un producto ajeno no existe para otro usuario")
}

// ── Concurrencia ──────────────────────────────────────────────────────────────

// TestRecordSale_ConcurrenciaNoSobrevende reproduce el clásico
// check-then-act: dos ventas simultáneas del 60% del stock. Con el
// bloqueo de fila exactamente una debe comprometerse; la otra ve el
// stock ya descontado y recibe ErrInsufficientStock.
func TestRecordSale_ConcurrenciaNoSobrevende(t *testing.T) {
	f := newLedgerFixture()
	product := f.seedProduct(testUserID, 100)
	ctx := context.Background()

	req := dto.SaleRequest{
		ProductID: product.ID,
		Quantity:  60,
		UnitPrice: decimal.NewFromInt(1000),
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.RecordSale(ctx, testUserID, req)
		}(i)
	}
	wg.Wait()

	var oks, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			oks++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, oks, "exactamente una venta debe comprometerse")
	assert.Equal(t, 1, insufficient, "la otra debe rechazarse por stock insuficiente")
	assert.Equal(t, 40, f.productQuantity(t, product.ID), "nunca debe quedar stock negativo ni sobrevendido")
	assert.Len(t, f.store.sales, 1)
}
