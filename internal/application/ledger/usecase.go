package ledger

import (
	"context"
	"errors"

	"github.com/kitakita/inventory-api/internal/domain"
	"github.com/kitakita/inventory-api/internal/domain/entity"
	"github.com/kitakita/inventory-api/internal/domain/repository"
)

// maxTxAttempts intentos totales por operación: el primero más dos
// reintentos ante conflicto de serialización (40001/40P01 traducidos a
// domain.ErrConflict por el TxRunner). Cada reintento re-lee el producto
// con FOR UPDATE, así que las precondiciones se revalidan siempre contra
// el estado ya comprometido.
const maxTxAttempts = 3

// LedgerUseCase es el motor de inventario: aplica ventas, compras y
// ajustes sobre Product.Quantity de forma transaccional, con bloqueo de
// fila (SELECT FOR UPDATE) para serializar mutaciones concurrentes del
// mismo producto.
//
// Invariante: Quantity nunca se persiste negativo; toda violación se
// rechaza antes del Commit, nunca se recorta después.
type LedgerUseCase struct {
	txRunner       TxRunner
	productRepo    repository.ProductRepository
	saleRepo       repository.SaleRepository
	purchaseRepo   repository.PurchaseRepository
	adjustmentRepo repository.AdjustmentRepository
}

// NewLedgerUseCase construye el motor. Los repos sueltos (atados al pool)
// se usan para lecturas fuera de transacción; las mutaciones pasan siempre
// por txRunner.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	adjustmentRepo repository.AdjustmentRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:       txRunner,
		productRepo:    productRepo,
		saleRepo:       saleRepo,
		purchaseRepo:   purchaseRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// runTx ejecuta fn vía TxRunner reintentando ante ErrConflict. Los errores
// de dominio (NotFound, InsufficientStock, InvalidInput...) no se
// reintentan: no son transitorios.
func (uc *LedgerUseCase) runTx(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	adjustmentRepo repository.AdjustmentRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err = uc.txRunner.Run(ctx, fn)
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
	}
	return err
}

// lockOwnedProduct re-lee el producto con FOR UPDATE dentro de la tx y
// aplica el chequeo de dueño. Producto inexistente o ajeno devuelven el
// mismo ErrNotFound.
func lockOwnedProduct(repo repository.ProductRepository, productID, userID string) (*entity.Product, error) {
	product, err := repo.GetByIDForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := domain.AuthorizeOwner(userID, product); err != nil {
		return nil, err
	}
	return product, nil
}
