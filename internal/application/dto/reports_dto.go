package dto

import "github.com/shopspring/decimal"

// ReportsResponse respuesta de GET /api/reports.
type ReportsResponse struct {
	SalesOverview         SalesOverviewDTO         `json:"sales_overview"`
	BestSellingCategories []CategoryPerformanceDTO `json:"best_selling_categories"`
	BestSellingProducts   []ProductPerformanceDTO  `json:"best_selling_products"`
	ProfitRevenueData     []ProfitRevenuePointDTO  `json:"profit_revenue_data"`
}

// SalesOverviewDTO agregados generales de ventas e inventario.
type SalesOverviewDTO struct {
	Revenue           decimal.Decimal `json:"revenue"`
	TotalProfit       decimal.Decimal `json:"total_profit"` // revenue - COGS
	TotalSalesCount   int64           `json:"total_sales_count"`
	TotalProductsSold int64           `json:"total_products_sold"`
	NetPurchaseValue  decimal.Decimal `json:"net_purchase_value"`
	NetSalesValue     decimal.Decimal `json:"net_sales_value"`
	LowStockCount     int64           `json:"low_stock_count"`
}

// CategoryPerformanceDTO facturación por categoría.
type CategoryPerformanceDTO struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Turnover     decimal.Decimal `json:"turnover"`
	UnitsSold    int64           `json:"units_sold"`
}

// ProductPerformanceDTO facturación por producto.
type ProductPerformanceDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Turnover    decimal.Decimal `json:"turnover"`
	UnitsSold   int64           `json:"units_sold"`
}

// ProfitRevenuePointDTO ingresos y utilidad de un mes calendario.
type ProfitRevenuePointDTO struct {
	Month   string          `json:"month"` // ej. "2026-03"
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}
