package repository

import (
	"github.com/shopspring/decimal"

	"github.com/kitakita/inventory-api/internal/domain/entity"
)

// SalesSummary agregados de ventas de un usuario.
type SalesSummary struct {
	TotalSalesValue   decimal.Decimal
	TotalSalesCount   int64
	TotalProductsSold int64
}

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	Delete(id string) error
	// ListByUser lista ventas del usuario con búsqueda opcional por código
	// de venta o nombre de producto. Devuelve el total sin paginar.
	ListByUser(userID, search string, limit, offset int) ([]*entity.Sale, int, error)
	Summary(userID string) (*SalesSummary, error)
}
