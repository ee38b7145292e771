package ledger

import (
	"context"

	"github.com/kitakita/inventory-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad de cada operación
// del ledger: registro de movimiento y actualización de Product.Quantity
// hacen Commit juntos o Rollback juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		adjustmentRepo repository.AdjustmentRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}
