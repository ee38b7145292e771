package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRequest entrada para crear o actualizar una venta.
// BuyingPrice es opcional: si viene en cero se toma el snapshot del costo
// actual del producto.
type SaleRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid4"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalValue  decimal.Decimal `json:"total_value"`
	BuyingPrice decimal.Decimal `json:"buying_price"`
	Notes       string          `json:"notes" validate:"max=1000"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          string          `json:"id"`
	SaleCode    string          `json:"sale_code"`
	ProductID   string          `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalValue  decimal.Decimal `json:"total_value"`
	BuyingPrice decimal.Decimal `json:"buying_price"`
	Notes       string          `json:"notes,omitempty"`
	SaleDate    time.Time       `json:"sale_date"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// SalesSummaryResponse agregados de ventas del usuario.
type SalesSummaryResponse struct {
	TotalSalesValue   decimal.Decimal `json:"total_sales_value"`
	TotalSalesCount   int64           `json:"total_sales_count"`
	TotalProductsSold int64           `json:"total_products_sold"`
}
