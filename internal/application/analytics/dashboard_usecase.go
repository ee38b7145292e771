// Package analytics contiene los casos de uso de solo lectura del
// dashboard y los reportes de negocio. Nunca muta el inventario: consume
// los agregados que AnalyticsRepository calcula en SQL.
package analytics

import (
	"context"
	"fmt"

	"github.com/kitakita/inventory-api/internal/application/dto"
	"github.com/kitakita/inventory-api/internal/domain/repository"
)

const (
	dashboardTopProducts = 5  // widgets de top ventas y bajo stock
	dashboardChartSlices = 6  // porciones del gráfico por categoría
	dashboardMonths      = 12 // serie de movimiento de stock
)

// DashboardUseCase arma el resumen del dashboard del usuario.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryResponse del usuario.
//
// Cinco consultas independientes en paralelo:
//  1. GetSummaryCards          → tarjetas superiores
//  2. GetInventoryByCategory   → gráfico por categoría
//  3. GetMonthlyUnitsSold      → serie de movimiento de stock
//  4. GetTopSellingProducts    → top ventas
//  5. GetLowStockProducts      → bajo stock
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string) (*dto.DashboardSummaryResponse, error) {
	type cardsResult struct {
		cards *repository.SummaryCards
		err   error
	}
	type chartResult struct {
		points []repository.ChartPoint
		err    error
	}
	type snapshotResult struct {
		rows []repository.ProductSnapshot
		err  error
	}

	cardsCh := make(chan cardsResult, 1)
	byCategoryCh := make(chan chartResult, 1)
	movementCh := make(chan chartResult, 1)
	topCh := make(chan snapshotResult, 1)
	lowCh := make(chan snapshotResult, 1)

	go func() {
		cards, err := uc.analyticsRepo.GetSummaryCards(ctx, userID)
		cardsCh <- cardsResult{cards, err}
	}()
	go func() {
		points, err := uc.analyticsRepo.GetInventoryByCategory(ctx, userID, dashboardChartSlices)
		byCategoryCh <- chartResult{points, err}
	}()
	go func() {
		points, err := uc.analyticsRepo.GetMonthlyUnitsSold(ctx, userID, dashboardMonths)
		movementCh <- chartResult{points, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopSellingProducts(ctx, userID, dashboardTopProducts)
		topCh <- snapshotResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetLowStockProducts(ctx, userID, dashboardTopProducts)
		lowCh <- snapshotResult{rows, err}
	}()

	cards := <-cardsCh
	byCategory := <-byCategoryCh
	movement := <-movementCh
	top := <-topCh
	low := <-lowCh

	if cards.err != nil {
		return nil, fmt.Errorf("dashboard: tarjetas: %w", cards.err)
	}
	if byCategory.err != nil {
		return nil, fmt.Errorf("dashboard: inventario por categoría: %w", byCategory.err)
	}
	if movement.err != nil {
		return nil, fmt.Errorf("dashboard: movimiento de stock: %w", movement.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top ventas: %w", top.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: bajo stock: %w", low.err)
	}

	return &dto.DashboardSummaryResponse{
		SummaryCards: dto.SummaryCardsDTO{
			TotalProducts:   cards.cards.TotalProducts,
			TotalCategories: cards.cards.TotalCategories,
			TotalSuppliers:  cards.cards.TotalSuppliers,
			LowStockCount:   cards.cards.LowStockCount,
			OnTheWay:        cards.cards.OnTheWay,
			TotalQuantity:   cards.cards.TotalQuantity,
			InventoryValue:  cards.cards.InventoryValue.Round(2),
		},
		InventoryByCategory: toChartPoints(byCategory.points),
		StockMovement:       toChartPoints(movement.points),
		TopSellingStock:     toSnapshots(top.rows),
		LowQuantityStock:    toSnapshots(low.rows),
	}, nil
}

func toChartPoints(points []repository.ChartPoint) []dto.ChartPointDTO {
	out := make([]dto.ChartPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.ChartPointDTO{Label: p.Label, Value: p.Value})
	}
	return out
}

func toSnapshots(rows []repository.ProductSnapshot) []dto.ProductSnapshotDTO {
	out := make([]dto.ProductSnapshotDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductSnapshotDTO{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			Threshold:   r.Threshold,
			SoldQty:     r.SoldQty,
		})
	}
	return out
}
