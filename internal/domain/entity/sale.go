package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta de un producto.
// Inmutable una vez creada salvo Update/Delete explícitos, que revierten
// su efecto sobre Product.Quantity dentro de la misma transacción.
type Sale struct {
	ID          string
	SaleCode    string // código único, ej. SL-8FA0C21D
	ProductID   string
	UserID      string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalValue  decimal.Decimal
	BuyingPrice decimal.Decimal // snapshot del costo al momento de la venta
	Notes       string
	SaleDate    time.Time
}

// OwnedBy implementa domain.Owned.
func (s *Sale) OwnedBy() string { return s.UserID }
