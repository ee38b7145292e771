package repository

import "github.com/kitakita/inventory-api/internal/domain/entity"

// AdjustmentRepository define el puerto de persistencia para ajustes
// manuales de inventario (append-only: no hay update ni delete).
type AdjustmentRepository interface {
	Create(adjustment *entity.InventoryAdjustment) error
	ListByProduct(userID, productID string) ([]*entity.InventoryAdjustment, error)
}
