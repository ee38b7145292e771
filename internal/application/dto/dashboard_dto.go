package dto

import "github.com/shopspring/decimal"

// DashboardSummaryResponse respuesta de GET /api/dashboard/summary.
type DashboardSummaryResponse struct {
	SummaryCards        SummaryCardsDTO      `json:"summary_cards"`
	InventoryByCategory []ChartPointDTO      `json:"inventory_by_category"`
	StockMovement       []ChartPointDTO      `json:"stock_movement"`
	TopSellingStock     []ProductSnapshotDTO `json:"top_selling_stock"`
	LowQuantityStock    []ProductSnapshotDTO `json:"low_quantity_stock"`
}

// SummaryCardsDTO tarjetas superiores del dashboard.
type SummaryCardsDTO struct {
	TotalProducts   int64           `json:"total_products"`
	TotalCategories int64           `json:"total_categories"`
	TotalSuppliers  int64           `json:"total_suppliers"`
	LowStockCount   int64           `json:"low_stock_count"`
	OnTheWay        int64           `json:"on_the_way"`
	TotalQuantity   int64           `json:"total_quantity"`
	InventoryValue  decimal.Decimal `json:"inventory_value"`
}

// ChartPointDTO punto etiquetado para los gráficos.
type ChartPointDTO struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// ProductSnapshotDTO fila resumida de producto para widgets.
type ProductSnapshotDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Threshold   int    `json:"threshold"`
	SoldQty     int64  `json:"sold_qty"`
}
