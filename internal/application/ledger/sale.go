package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kitakita/inventory-api/internal/application/dto"
	"github.com/kitakita/inventory-api/internal/domain"
	"github.com/kitakita/inventory-api/internal/domain/entity"
	"github.com/kitakita/inventory-api/internal/domain/repository"
)

// RecordSale descuenta stock y registra la venta, en una sola transacción.
//
// Precondiciones: producto del usuario (ErrNotFound si no), quantity > 0
// (ErrInvalidInput), Quantity disponible >= quantity (ErrInsufficientStock).
func (uc *LedgerUseCase) RecordSale(ctx context.Context, userID string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var sale *entity.Sale
	err := uc.runTx(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.PurchaseRepository,
		_ repository.AdjustmentRepository,
		_ repository.SupplierRepository,
	) error {
		product, err := lockOwnedProduct(productRepo, in.ProductID, userID)
		if err != nil {
			return err
		}
		if product.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		buyingPrice := in.BuyingPrice
		if buyingPrice.IsZero() {
			buyingPrice = product.BuyingPrice
		}
		totalValue := in.TotalValue
		if totalValue.IsZero() {
			totalValue = in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		}
		sale = &entity.Sale{
			ID:          uuid.New().String(),
			SaleCode:    generateSaleCode(),
			ProductID:   product.ID,
			UserID:      userID,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TotalValue:  totalValue,
			BuyingPrice: buyingPrice,
			Notes:       in.Notes,
			SaleDate:    now,
		}

		product.Quantity -= in.Quantity
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// UpdateSale modifica una venta existente revirtiendo y reaplicando su
// efecto sobre el stock.
//
// Mismo producto: aplica delta = newQty - oldQty y rechaza con
// ErrInsufficientStock si dejaría Quantity negativo. Producto distinto:
// restaura el producto anterior y descuenta del nuevo, todo en la misma
// transacción.
func (uc *LedgerUseCase) UpdateSale(ctx context.Context, userID, saleID string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Sale
	err := uc.runTx(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.PurchaseRepository,
		_ repository.AdjustmentRepository,
		_ repository.SupplierRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if err := domain.AuthorizeOwner(userID, sale); err != nil {
			return err
		}

		now := time.Now()
		if sale.ProductID == in.ProductID {
			product, err := lockOwnedProduct(productRepo, in.ProductID, userID)
			if err != nil {
				return err
			}
			delta := in.Quantity - sale.Quantity
			if product.Quantity-delta < 0 {
				return domain.ErrInsufficientStock
			}
			product.Quantity -= delta
			product.UpdatedAt = now
			if err := productRepo.Update(product); err != nil {
				return err
			}
		} else {
			// Cambio de producto: primero restaurar el anterior, luego
			// validar y descontar el nuevo. Bloquear en orden estable de ID
			// para no interbloquear con otra actualización cruzada.
			first, second := sale.ProductID, in.ProductID
			if strings.Compare(first, second) > 0 {
				first, second = second, first
			}
			locked := make(map[string]*entity.Product, 2)
			for _, id := range []string{first, second} {
				p, err := lockOwnedProduct(productRepo, id, userID)
				if err != nil {
					return err
				}
				locked[id] = p
			}
			oldProduct, newProduct := locked[sale.ProductID], locked[in.ProductID]

			oldProduct.Quantity += sale.Quantity
			if newProduct.Quantity < in.Quantity {
				return domain.ErrInsufficientStock
			}
			newProduct.Quantity -= in.Quantity
			oldProduct.UpdatedAt = now
			newProduct.UpdatedAt = now
			if err := productRepo.Update(oldProduct); err != nil {
				return err
			}
			if err := productRepo.Update(newProduct); err != nil {
				return err
			}
		}

		sale.ProductID = in.ProductID
		sale.Quantity = in.Quantity
		sale.UnitPrice = in.UnitPrice
		sale.TotalValue = in.TotalValue
		if sale.TotalValue.IsZero() {
			sale.TotalValue = in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		}
		if !in.BuyingPrice.IsZero() {
			sale.BuyingPrice = in.BuyingPrice
		}
		sale.Notes = in.Notes
		if err := saleRepo.Update(sale); err != nil {
			return err
		}
		updated = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(updated), nil
}

// DeleteSale elimina la venta restaurando su cantidad al producto, de
// forma atómica.
func (uc *LedgerUseCase) DeleteSale(ctx context.Context, userID, saleID string) error {
	return uc.runTx(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.PurchaseRepository,
		_ repository.AdjustmentRepository,
		_ repository.SupplierRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if err := domain.AuthorizeOwner(userID, sale); err != nil {
			return err
		}

		product, err := lockOwnedProduct(productRepo, sale.ProductID, userID)
		if err != nil {
			return err
		}
		product.Quantity += sale.Quantity
		product.UpdatedAt = time.Now()
		if err := productRepo.Update(product); err != nil {
			return err
		}
		return saleRepo.Delete(sale.ID)
	})
}

// GetSale obtiene una venta del usuario.
func (uc *LedgerUseCase) GetSale(userID, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if err := domain.AuthorizeOwner(userID, sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// ListSales lista ventas del usuario con búsqueda y paginación.
func (uc *LedgerUseCase) ListSales(userID, search string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	sales, total, err := uc.saleRepo.ListByUser(userID, strings.TrimSpace(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// SalesSummary agregados de ventas del usuario.
func (uc *LedgerUseCase) SalesSummary(userID string) (*dto.SalesSummaryResponse, error) {
	summary, err := uc.saleRepo.Summary(userID)
	if err != nil {
		return nil, err
	}
	return &dto.SalesSummaryResponse{
		TotalSalesValue:   summary.TotalSalesValue,
		TotalSalesCount:   summary.TotalSalesCount,
		TotalProductsSold: summary.TotalProductsSold,
	}, nil
}

// generateSaleCode código corto legible, ej. SL-8FA0C21D.
func generateSaleCode() string {
	return "SL-" + strings.ToUpper(uuid.New().String()[:8])
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:          s.ID,
		SaleCode:    s.SaleCode,
		ProductID:   s.ProductID,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		TotalValue:  s.TotalValue,
		BuyingPrice: s.BuyingPrice,
		Notes:       s.Notes,
		SaleDate:    s.SaleDate,
	}
}
