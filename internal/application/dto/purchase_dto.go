package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRequest entrada para registrar una compra.
// Status admite COMPLETED (por defecto) o PENDING; CANCELLED solo se
// alcanza vía el endpoint de cancelación.
type PurchaseRequest struct {
	ProductID  string          `json:"product_id" validate:"required,uuid4"`
	SupplierID *string         `json:"supplier_id" validate:"omitempty,uuid4"`
	Quantity   int             `json:"quantity" validate:"required,gt=0"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Status     string          `json:"status" validate:"omitempty,oneof=COMPLETED PENDING"`
	Notes      string          `json:"notes" validate:"max=1000"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID           string          `json:"id"`
	PurchaseCode string          `json:"purchase_code"`
	ProductID    string          `json:"product_id"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes,omitempty"`
	PurchaseDate time.Time       `json:"purchase_date"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
