package dto

import "time"

// AdjustmentRequest entrada para registrar un ajuste manual de stock.
// Quantity es delta en ADD/REMOVE y valor absoluto en CORRECTION; en los
// tres casos debe ser >= 0.
type AdjustmentRequest struct {
	ProductID      string `json:"product_id" validate:"required,uuid4"`
	AdjustmentType string `json:"adjustment_type" validate:"required"`
	Quantity       int    `json:"quantity" validate:"min=0"`
	Reason         string `json:"reason" validate:"max=500"`
}

// AdjustmentResponse salida de un ajuste.
type AdjustmentResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	AdjustmentType string    `json:"adjustment_type"`
	Quantity       int       `json:"quantity"`
	Reason         string    `json:"reason,omitempty"`
	AdjustmentDate time.Time `json:"adjustment_date"`
}
