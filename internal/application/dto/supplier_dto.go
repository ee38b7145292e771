package dto

import "time"

// SupplierRequest entrada para crear o actualizar un proveedor.
type SupplierRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=160"`
	ContactNumber string `json:"contact_number" validate:"max=30"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address" validate:"max=500"`
	IsActive      *bool  `json:"is_active"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactNumber string    `json:"contact_number,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}
