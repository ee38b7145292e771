package repository

import "github.com/kitakita/inventory-api/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para Purchase.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	// GetByIDForUpdate bloquea la fila de la compra durante las
	// transiciones de estado (Complete / Cancel).
	GetByIDForUpdate(id string) (*entity.Purchase, error)
	UpdateStatus(id, status string) error
	ListByUser(userID string, limit, offset int) ([]*entity.Purchase, int, error)
	ListByProduct(userID, productID string) ([]*entity.Purchase, error)
}
