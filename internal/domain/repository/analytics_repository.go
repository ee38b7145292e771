package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SummaryCards tarjetas del dashboard: totales del inventario del usuario.
type SummaryCards struct {
	TotalProducts   int64
	TotalCategories int64
	TotalSuppliers  int64
	LowStockCount   int64
	OnTheWay        int64
	TotalQuantity   int64
	InventoryValue  decimal.Decimal // SUM(selling_price * quantity)
}

// ChartPoint punto etiquetado para los gráficos del dashboard.
type ChartPoint struct {
	Label string
	Value int64
}

// ProductSnapshot fila resumida de producto para widgets del dashboard.
type ProductSnapshot struct {
	ProductID   string
	ProductName string
	Quantity    int
	Threshold   int
	SoldQty     int64
}

// SalesOverview agregados del reporte de ventas.
type SalesOverview struct {
	Revenue           decimal.Decimal
	TotalSalesCount   int64
	TotalProductsSold int64
	TotalCOGS         decimal.Decimal // SUM(quantity * buying_price) de ventas
	PurchaseValue     decimal.Decimal // SUM(total_cost) de compras COMPLETED
	InventoryValue    decimal.Decimal
	LowStockCount     int64
}

// CategoryPerformance facturación agregada por categoría.
type CategoryPerformance struct {
	CategoryID   string
	CategoryName string
	Turnover     decimal.Decimal
	UnitsSold    int64
}

// ProductPerformance facturación agregada por producto.
type ProductPerformance struct {
	ProductID   string
	ProductName string
	Turnover    decimal.Decimal
	UnitsSold   int64
}

// MonthlyPoint ingresos y utilidad bruta de un mes calendario.
type MonthlyPoint struct {
	Month   time.Time // primer día del mes
	Revenue decimal.Decimal
	Profit  decimal.Decimal // revenue - COGS
}

// AnalyticsRepository consultas de solo lectura para dashboard y reportes.
// Consumidor read-only de productos y movimientos: nunca muta el ledger.
type AnalyticsRepository interface {
	GetSummaryCards(ctx context.Context, userID string) (*SummaryCards, error)
	GetInventoryByCategory(ctx context.Context, userID string, limit int) ([]ChartPoint, error)
	GetTopSellingProducts(ctx context.Context, userID string, limit int) ([]ProductSnapshot, error)
	GetLowStockProducts(ctx context.Context, userID string, limit int) ([]ProductSnapshot, error)
	// GetMonthlyUnitsSold serie de unidades vendidas por mes calendario
	// (últimos `months` meses), para el gráfico de movimiento de stock.
	GetMonthlyUnitsSold(ctx context.Context, userID string, months int) ([]ChartPoint, error)
	GetSalesOverview(ctx context.Context, userID string) (*SalesOverview, error)
	GetBestSellingCategories(ctx context.Context, userID string, limit int) ([]CategoryPerformance, error)
	GetBestSellingProducts(ctx context.Context, userID string, limit int) ([]ProductPerformance, error)
	GetMonthlyProfitRevenue(ctx context.Context, userID string, months int) ([]MonthlyPoint, error)
}
