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

// RecordPurchase registra una compra. TotalCost se calcula en servidor
// (quantity × unitCost). COMPLETED aplica de inmediato Quantity y
// OpeningStock; PENDING no toca stock hasta CompletePurchase. OnTheWay no
// se modifica en ningún caso: es un contador independiente.
func (uc *LedgerUseCase) RecordPurchase(ctx context.Context, userID string, in dto.PurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.Quantity <= 0 || !in.UnitCost.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	status, err := entity.ParsePurchaseStatus(in.Status)
	if err != nil {
		return nil, err
	}
	var purchase *entity.Purchase
	err = uc.runTx(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.AdjustmentRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		// Propiedad del proveedor verificada en la misma tx que crea la compra.
		if in.SupplierID != nil {
			supplier, err := supplierRepo.GetByID(*in.SupplierID)
			if err != nil {
				return err
			}
			if supplier == nil {
				return domain.ErrNotFound
			}
			if err := domain.AuthorizeOwner(userID, supplier); err != nil {
				return err
			}
		}

		product, err := lockOwnedProduct(productRepo, in.ProductID, userID)
		if err != nil {
			return err
		}

		now := time.Now()
		purchase = &entity.Purchase{
			ID:           uuid.New().String(),
			ProductID:    product.ID,
			SupplierID:   in.SupplierID,
			UserID:       userID,
			Quantity:     in.Quantity,
			UnitCost:     in.UnitCost,
			TotalCost:    in.UnitCost.Mul(decimal.NewFromInt(int64(in.Quantity))),
			Status:       status,
			Notes:        in.Notes,
			PurchaseDate: now,
		}
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}

		if status == entity.PurchaseStatusCompleted {
			product.Quantity += in.Quantity
			product.OpeningStock += in.Quantity
			product.UpdatedAt = now
			return productRepo.Update(product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// CompletePurchase transiciona PENDING → COMPLETED aplicando el efecto
// sobre el stock. Cualquier otro estado de origen devuelve ErrConflict.
func (uc *LedgerUseCase) CompletePurchase(ctx context.Context, userID, purchaseID string) (*dto.PurchaseResponse, error) {
	var purchase *entity.Purchase
	err := uc.runTx(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.AdjustmentRepository,
		_ repository.SupplierRepository,
	) error {
		var err error
		purchase, err = lockOwnedPurchase(purchaseRepo, purchaseID, userID)
		if err != nil {
			return err
		}
		if purchase.Status != entity.PurchaseStatusPending {
			return domain.ErrConflict
		}

		product, err := lockOwnedProduct(productRepo, purchase.ProductID, userID)
		if err != nil {
			return err
		}
		now := time.Now()
		product.Quantity += purchase.Quantity
		product.OpeningStock += purchase.Quantity
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}
		purchase.Status = entity.PurchaseStatusCompleted
		return purchaseRepo.UpdateStatus(purchase.ID, entity.PurchaseStatusCompleted)
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// CancelPurchase transiciona PENDING → CANCELLED. Una compra COMPLETED ya
// movió stock y es terminal: cancelar devuelve ErrConflict, igual que una
// ya cancelada. Así OpeningStock se mantiene monótono no decreciente.
func (uc *LedgerUseCase) CancelPurchase(ctx context.Context, userID, purchaseID string) (*dto.PurchaseResponse, error) {
	var purchase *entity.Purchase
	err := uc.runTx(ctx, func(
		_ repository.ProductRepository,
		_ repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.AdjustmentRepository,
		_ repository.SupplierRepository,
	) error {
		var err error
		purchase, err = lockOwnedPurchase(purchaseRepo, purchaseID, userID)
		if err != nil {
			return err
		}
		if purchase.Status != entity.PurchaseStatusPending {
			return domain.ErrConflict
		}
		purchase.Status = entity.PurchaseStatusCancelled
		return purchaseRepo.UpdateStatus(purchase.ID, entity.PurchaseStatusCancelled)
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// ListPurchases lista compras del usuario con paginación.
func (uc *LedgerUseCase) ListPurchases(userID string, page dto.PageRequest) (*dto.PurchaseListResponse, error) {
	page.DefaultPage()
	purchases, total, err := uc.purchaseRepo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		items = append(items, *toPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ProductPurchaseHistory historial de compras de un producto del usuario.
func (uc *LedgerUseCase) ProductPurchaseHistory(userID, productID string) ([]dto.PurchaseResponse, error) {
	if err := uc.ensureOwnedProduct(userID, productID); err != nil {
		return nil, err
	}
	purchases, err := uc.purchaseRepo.ListByProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		items = append(items, *toPurchaseResponse(p))
	}
	return items, nil
}

// ensureOwnedProduct chequeo de dueño para lecturas fuera de transacción.
func (uc *LedgerUseCase) ensureOwnedProduct(userID, productID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return domain.AuthorizeOwner(userID, product)
}

func lockOwnedPurchase(repo repository.PurchaseRepository, purchaseID, userID string) (*entity.Purchase, error) {
	purchase, err := repo.GetByIDForUpdate(purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	if err := domain.AuthorizeOwner(userID, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	if p == nil {
		return nil
	}
	return &dto.PurchaseResponse{
		ID:           p.ID,
		PurchaseCode: "PUR-" + strings.ToUpper(p.ID[:8]),
		ProductID:    p.ProductID,
		SupplierID:   p.SupplierID,
		Quantity:     p.Quantity,
		UnitCost:     p.UnitCost,
		TotalCost:    p.TotalCost,
		Status:       p.Status,
		Notes:        p.Notes,
		PurchaseDate: p.PurchaseDate,
	}
}
