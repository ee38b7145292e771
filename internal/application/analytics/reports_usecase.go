package analytics

import (
	"context"
	"fmt"

	"github.com/kitakita/inventory-api/internal/application/dto"
	"github.com/kitakita/inventory-api/internal/domain/repository"
)

const (
	reportTopCategories = 5
	reportTopProducts   = 10
	reportMonths        = 12
)

// ReportsUseCase arma el reporte de desempeño de ventas del usuario.
type ReportsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(analyticsRepo repository.AnalyticsRepository) *ReportsUseCase {
	return &ReportsUseCase{analyticsRepo: analyticsRepo}
}

// GetReports construye el ReportsResponse del usuario. Mismo esquema de
// paralelización que el dashboard: cuatro consultas independientes.
func (uc *ReportsUseCase) GetReports(ctx context.Context, userID string) (*dto.ReportsResponse, error) {
	type overviewResult struct {
		overview *repository.SalesOverview
		err      error
	}
	type categoriesResult struct {
		rows []repository.CategoryPerformance
		err  error
	}
	type productsResult struct {
		rows []repository.ProductPerformance
		err  error
	}
	type monthlyResult struct {
		points []repository.MonthlyPoint
		err    error
	}

	overviewCh := make(chan overviewResult, 1)
	categoriesCh := make(chan categoriesResult, 1)
	productsCh := make(chan productsResult, 1)
	monthlyCh := make(chan monthlyResult, 1)

	go func() {
		overview, err := uc.analyticsRepo.GetSalesOverview(ctx, userID)
		overviewCh <- overviewResult{overview, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetBestSellingCategories(ctx, userID, reportTopCategories)
		categoriesCh <- categoriesResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetBestSellingProducts(ctx, userID, reportTopProducts)
		productsCh <- productsResult{rows, err}
	}()
	go func() {
		points, err := uc.analyticsRepo.GetMonthlyProfitRevenue(ctx, userID, reportMonths)
		monthlyCh <- monthlyResult{points, err}
	}()

	overview := <-overviewCh
	categories := <-categoriesCh
	products := <-productsCh
	monthly := <-monthlyCh

	if overview.err != nil {
		return nil, fmt.Errorf("reportes: resumen de ventas: %w", overview.err)
	}
	if categories.err != nil {
		return nil, fmt.Errorf("reportes: categorías: %w", categories.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("reportes: productos: %w", products.err)
	}
	if monthly.err != nil {
		return nil, fmt.Errorf("reportes: serie mensual: %w", monthly.err)
	}

	ov := overview.overview
	out := &dto.ReportsResponse{
		SalesOverview: dto.SalesOverviewDTO{
			Revenue:           ov.Revenue.Round(2),
			TotalProfit:       ov.Revenue.Sub(ov.TotalCOGS).Round(2),
			TotalSalesCount:   ov.TotalSalesCount,
			TotalProductsSold: ov.TotalProductsSold,
			NetPurchaseValue:  ov.PurchaseValue.Round(2),
			NetSalesValue:     ov.Revenue.Round(2),
			LowStockCount:     ov.LowStockCount,
		},
		BestSellingCategories: make([]dto.CategoryPerformanceDTO, 0, len(categories.rows)),
		BestSellingProducts:   make([]dto.ProductPerformanceDTO, 0, len(products.rows)),
		ProfitRevenueData:     make([]dto.ProfitRevenuePointDTO, 0, len(monthly.points)),
	}
	for _, c := range categories.rows {
		out.BestSellingCategories = append(out.BestSellingCategories, dto.CategoryPerformanceDTO{
			CategoryID:   c.CategoryID,
			CategoryName: c.CategoryName,
			Turnover:     c.Turnover.Round(2),
			UnitsSold:    c.UnitsSold,
		})
	}
	for _, p := range products.rows {
		out.BestSellingProducts = append(out.BestSellingProducts, dto.ProductPerformanceDTO{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			Turnover:    p.Turnover.Round(2),
			UnitsSold:   p.UnitsSold,
		})
	}
	for _, m := range monthly.points {
		out.ProfitRevenueData = append(out.ProfitRevenueData, dto.ProfitRevenuePointDTO{
			Month:   m.Month.Format("2006-01"),
			Revenue: m.Revenue.Round(2),
			Profit:  m.Profit.Round(2),
		})
	}
	return out, nil
}
