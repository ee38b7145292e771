package postgres

import (
	"context"
	"fmt"

	"github.com/kitakita/inventory-api/internal/domain/entity"
	"github.com/kitakita/inventory-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only de dashboard y reportes. Agrega en
// SQL: nunca carga filas crudas para sumarlas en Go.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSummaryCards totales del inventario del usuario para las tarjetas
// del dashboard.
func (r *AnalyticsRepo) GetSummaryCards(ctx context.Context, userID string) (*repository.SummaryCards, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM products WHERE user_id = $1),
			(SELECT COUNT(*) FROM categories WHERE user_id = $1),
			(SELECT COUNT(*) FROM suppliers WHERE user_id = $1),
			(SELECT COUNT(*) FROM products WHERE user_id = $1 AND quantity <= threshold_value),
			COALESCE((SELECT SUM(on_the_way) FROM products WHERE user_id = $1), 0),
			COALESCE((SELECT SUM(quantity) FROM products WHERE user_id = $1), 0),
			COALESCE((SELECT SUM(selling_price * quantity) FROM products WHERE user_id = $1), 0)`
	var cards repository.SummaryCards
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&cards.TotalProducts, &cards.TotalCategories, &cards.TotalSuppliers,
		&cards.LowStockCount, &cards.OnTheWay, &cards.TotalQuantity, &cards.InventoryValue,
	)
	if err != nil {
		return nil, fmt.Errorf("summary cards: %w", err)
	}
	return &cards, nil
}

// GetInventoryByCategory unidades en stock agrupadas por categoría.
func (r *AnalyticsRepo) GetInventoryByCategory(ctx context.Context, userID string, limit int) ([]repository.ChartPoint, error) {
	query := `
		SELECT c.name, COALESCE(SUM(p.quantity), 0) AS units
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id, c.name
		ORDER BY units DESC
		LIMIT $2`
	return r.chartPoints(ctx, query, userID, limit)
}

// GetTopSellingProducts productos con más unidades vendidas.
func (r *AnalyticsRepo) GetTopSellingProducts(ctx context.Context, userID string, limit int) ([]repository.ProductSnapshot, error) {
	query := `
		SELECT p.id, p.name, p.quantity, p.threshold_value, COALESCE(SUM(s.quantity), 0) AS sold
		FROM products p
		JOIN sales s ON s.product_id = p.id
		WHERE p.user_id = $1
		GROUP BY p.id, p.name, p.quantity, p.threshold_value
		ORDER BY sold DESC
		LIMIT $2`
	return r.snapshots(ctx, query, userID, limit)
}

// GetLowStockProducts productos en o por debajo de su umbral.
func (r *AnalyticsRepo) GetLowStockProducts(ctx context.Context, userID string, limit int) ([]repository.ProductSnapshot, error) {
	query := `
		SELECT p.id, p.name, p.quantity, p.threshold_value, 0
		FROM products p
		WHERE p.user_id = $1 AND p.quantity <= p.threshold_value
		ORDER BY p.quantity ASC
		LIMIT $2`
	return r.snapshots(ctx, query, userID, limit)
}

// GetMonthlyUnitsSold unidades vendidas por mes calendario de los
// últimos `months` meses.
func (r *AnalyticsRepo) GetMonthlyUnitsSold(ctx context.Context, userID string, months int) ([]repository.ChartPoint, error) {
	query := `
		SELECT to_char(date_trunc('month', sale_date), 'YYYY-MM') AS month, COALESCE(SUM(quantity), 0)
		FROM sales
		WHERE user_id = $1 AND sale_date >= date_trunc('month', now()) - ($2 - 1) * INTERVAL '1 month'
		GROUP BY month
		ORDER BY month`
	return r.chartPoints(ctx, query, userID, months)
}

// GetSalesOverview agregados generales de ventas, compras e inventario.
func (r *AnalyticsRepo) GetSalesOverview(ctx context.Context, userID string) (*repository.SalesOverview, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(total_value) FROM sales WHERE user_id = $1), 0),
			(SELECT COUNT(*) FROM sales WHERE user_id = $1),
			COALESCE((SELECT SUM(quantity) FROM sales WHERE user_id = $1), 0),
			COALESCE((SELECT SUM(quantity * buying_price) FROM sales WHERE user_id = $1), 0),
			COALESCE((SELECT SUM(total_cost) FROM purchases WHERE user_id = $1 AND status = $2), 0),
			COALESCE((SELECT SUM(selling_price * quantity) FROM products WHERE user_id = $1), 0),
			(SELECT COUNT(*) FROM products WHERE user_id = $1 AND quantity <= threshold_value)`
	var ov repository.SalesOverview
	err := r.q.QueryRow(ctx, query, userID, entity.PurchaseStatusCompleted).Scan(
		&ov.Revenue, &ov.TotalSalesCount, &ov.TotalProductsSold,
		&ov.TotalCOGS, &ov.PurchaseValue, &ov.InventoryValue, &ov.LowStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("sales overview: %w", err)
	}
	return &ov, nil
}

// GetBestSellingCategories facturación agregada por categoría.
func (r *AnalyticsRepo) GetBestSellingCategories(ctx context.Context, userID string, limit int) ([]repository.CategoryPerformance, error) {
	query := `
		SELECT c.id, c.name, COALESCE(SUM(s.total_value), 0) AS turnover, COALESCE(SUM(s.quantity), 0)
		FROM categories c
		JOIN products p ON p.category_id = c.id
		JOIN sales s ON s.product_id = p.id
		WHERE c.user_id = $1
		GROUP BY c.id, c.name
		ORDER BY turnover DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("best selling categories: %w", err)
	}
	defer rows.Close()

	var out []repository.CategoryPerformance
	for rows.Next() {
		var c repository.CategoryPerformance
		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.Turnover, &c.UnitsSold); err != nil {
			return nil, fmt.Errorf("scan category performance: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetBestSellingProducts facturación agregada por producto.
func (r *AnalyticsRepo) GetBestSellingProducts(ctx context.Context, userID string, limit int) ([]repository.ProductPerformance, error) {
	query := `
		SELECT p.id, p.name, COALESCE(SUM(s.total_value), 0) AS turnover, COALESCE(SUM(s.quantity), 0)
		FROM products p
		JOIN sales s ON s.product_id = p.id
		WHERE p.user_id = $1
		GROUP BY p.id, p.name
		ORDER BY turnover DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("best selling products: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductPerformance
	for rows.Next() {
		var p repository.ProductPerformance
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.Turnover, &p.UnitsSold); err != nil {
			return nil, fmt.Errorf("scan product performance: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetMonthlyProfitRevenue ingresos y utilidad bruta (revenue - COGS) por
// mes calendario de los últimos `months` meses.
func (r *AnalyticsRepo) GetMonthlyProfitRevenue(ctx context.Context, userID string, months int) ([]repository.MonthlyPoint, error) {
	query := `
		SELECT date_trunc('month', sale_date) AS month,
		       COALESCE(SUM(total_value), 0) AS revenue,
		       COALESCE(SUM(total_value - quantity * buying_price), 0) AS profit
		FROM sales
		WHERE user_id = $1 AND sale_date >= date_trunc('month', now()) - ($2 - 1) * INTERVAL '1 month'
		GROUP BY month
		ORDER BY month`
	rows, err := r.q.Query(ctx, query, userID, months)
	if err != nil {
		return nil, fmt.Errorf("monthly profit/revenue: %w", err)
	}
	defer rows.Close()

	var out []repository.MonthlyPoint
	for rows.Next() {
		var m repository.MonthlyPoint
		if err := rows.Scan(&m.Month, &m.Revenue, &m.Profit); err != nil {
			return nil, fmt.Errorf("scan monthly point: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) chartPoints(ctx context.Context, query string, args ...any) ([]repository.ChartPoint, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("chart query: %w", err)
	}
	defer rows.Close()

	var out []repository.ChartPoint
	for rows.Next() {
		var p repository.ChartPoint
		if err := rows.Scan(&p.Label, &p.Value); err != nil {
			return nil, fmt.Errorf("scan chart point: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) snapshots(ctx context.Context, query string, args ...any) ([]repository.ProductSnapshot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("snapshot query: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductSnapshot
	for rows.Next() {
		var s repository.ProductSnapshot
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.Quantity, &s.Threshold, &s.SoldQty); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
