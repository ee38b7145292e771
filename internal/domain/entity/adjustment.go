package entity

import (
	"strings"
	"time"

	"github.com/kitakita/inventory-api/internal/domain"
)

// AdjustmentType es el conjunto cerrado de tipos de ajuste manual.
type AdjustmentType string

const (
	AdjustmentAdd        AdjustmentType = "ADD"        // suma Quantity
	AdjustmentRemove     AdjustmentType = "REMOVE"     // resta Quantity (rechaza underflow)
	AdjustmentCorrection AdjustmentType = "CORRECTION" // fija Quantity a un valor absoluto
)

// ParseAdjustmentType valida el string recibido en la frontera HTTP una
// sola vez; cualquier valor desconocido se rechaza antes de tocar stock.
func ParseAdjustmentType(s string) (AdjustmentType, error) {
	switch AdjustmentType(strings.ToUpper(strings.TrimSpace(s))) {
	case AdjustmentAdd:
		return AdjustmentAdd, nil
	case AdjustmentRemove:
		return AdjustmentRemove, nil
	case AdjustmentCorrection:
		return AdjustmentCorrection, nil
	default:
		return "", domain.ErrInvalidAdjustmentType
	}
}

// InventoryAdjustment representa una corrección manual de stock por fuera
// del flujo de ventas y compras.
type InventoryAdjustment struct {
	ID             string
	ProductID      string
	UserID         string // usuario que ajusta (y dueño del producto)
	Type           AdjustmentType
	Quantity       int // semántica según Type: delta en ADD/REMOVE, absoluto en CORRECTION
	Reason         string
	AdjustmentDate time.Time
}

// OwnedBy implementa domain.Owned.
func (a *InventoryAdjustment) OwnedBy() string { return a.UserID }
