package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de un usuario.
//
// Tres contadores independientes, cada uno con sus propias reglas de
// mutación (no existe fórmula derivada entre ellos):
//   - Quantity: stock disponible para venta; lo mueven ventas, compras
//     COMPLETED y ajustes. Nunca se persiste negativo.
//   - OpeningStock: acumulado histórico de entradas por compra; solo crece.
//   - OnTheWay: inbound pendiente; las compras no lo tocan.
type Product struct {
	ID             string
	UserID         string // dueño del producto
	Name           string
	Code           string // código único, ej. PRD-3F2A91BC
	CategoryID     string
	SupplierID     *string
	BuyingPrice    decimal.Decimal
	SellingPrice   decimal.Decimal
	Unit           string
	Quantity       int
	ThresholdValue int // punto de reorden
	OpeningStock   int
	OnTheWay       int
	ExpiryDate     *time.Time
	ImageURL       string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OwnedBy implementa domain.Owned.
func (p *Product) OwnedBy() string { return p.UserID }

// IsLowStock indica si el producto está en o por debajo de su punto de reorden.
func (p *Product) IsLowStock() bool { return p.Quantity <= p.ThresholdValue }
