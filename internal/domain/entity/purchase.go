package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kitakita/inventory-api/internal/domain"
)

// Estados de una compra. Máquina de estados:
//
//	PENDING ──► COMPLETED   (aplica Quantity y OpeningStock)
//	PENDING ──► CANCELLED   (sin efecto sobre stock)
//
// COMPLETED y CANCELLED son terminales. El stock solo se aplica al pasar
// a COMPLETED (o al crear directamente en COMPLETED).
const (
	PurchaseStatusCompleted = "COMPLETED"
	PurchaseStatusCancelled = "CANCELLED"
	PurchaseStatusPending   = "PENDING"
)

// ParsePurchaseStatus valida un estado recibido en la frontera. Solo
// COMPLETED y PENDING son creables; CANCELLED se alcanza vía Cancel.
func ParsePurchaseStatus(s string) (string, error) {
	switch s {
	case "", PurchaseStatusCompleted:
		return PurchaseStatusCompleted, nil
	case PurchaseStatusPending:
		return PurchaseStatusPending, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// Purchase representa una compra de stock a un proveedor (opcional).
type Purchase struct {
	ID           string
	ProductID    string
	SupplierID   *string
	UserID       string
	Quantity     int
	UnitCost     decimal.Decimal
	TotalCost    decimal.Decimal // Quantity × UnitCost, calculado en servidor
	Status       string
	Notes        string
	PurchaseDate time.Time
}

// OwnedBy implementa domain.Owned.
func (p *Purchase) OwnedBy() string { return p.UserID }
