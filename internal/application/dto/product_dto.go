package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o actualizar un producto. Los
// contadores OpeningStock/OnTheWay solo se fijan aquí; después los mueve
// exclusivamente el ledger.
type ProductRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Code           string          `json:"code" validate:"omitempty,max=50"`
	CategoryID     string          `json:"category_id" validate:"required,uuid4"`
	SupplierID     *string         `json:"supplier_id" validate:"omitempty,uuid4"`
	BuyingPrice    decimal.Decimal `json:"buying_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	Unit           string          `json:"unit" validate:"required,max=30"`
	Quantity       int             `json:"quantity" validate:"min=0"`
	ThresholdValue int             `json:"threshold_value" validate:"min=0"`
	OpeningStock   int             `json:"opening_stock" validate:"min=0"`
	OnTheWay       int             `json:"on_the_way" validate:"min=0"`
	ExpiryDate     *time.Time      `json:"expiry_date"`
	ImageURL       string          `json:"image_url"`
	IsActive       *bool           `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	CategoryID     string          `json:"category_id"`
	SupplierID     *string         `json:"supplier_id,omitempty"`
	BuyingPrice    decimal.Decimal `json:"buying_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	Unit           string          `json:"unit"`
	Quantity       int             `json:"quantity"`
	ThresholdValue int             `json:"threshold_value"`
	OpeningStock   int             `json:"opening_stock"`
	OnTheWay       int             `json:"on_the_way"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	ImageURL       string          `json:"image_url,omitempty"`
	IsActive       bool            `json:"is_active"`
	LowStock       bool            `json:"low_stock"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductReferenceDataResponse categorías y proveedores del usuario, para
// poblar formularios de producto.
type ProductReferenceDataResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Suppliers  []SupplierResponse `json:"suppliers"`
}
