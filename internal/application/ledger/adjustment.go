package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kitakita/inventory-api/internal/application/dto"
	"github.com/kitakita/inventory-api/internal/domain"
	"github.com/kitakita/inventory-api/internal/domain/entity"
	"github.com/kitakita/inventory-api/internal/domain/repository"
)

// RecordAdjustment registra un ajuste manual de stock. El tipo se parsea
// una sola vez en la frontera; el producto se bloquea FOR UPDATE para que
// leer-y-escribir Quantity sea atómico frente a ventas y compras
// concurrentes.
func (uc *LedgerUseCase) RecordAdjustment(ctx context.Context, userID string, in dto.AdjustmentRequest) (*dto.AdjustmentResponse, error) {
	adjType, err := entity.ParseAdjustmentType(in.AdjustmentType)
	if err != nil {
		return nil, err
	}
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	var adjustment *entity.InventoryAdjustment
	err = uc.runTx(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		_ repository.PurchaseRepository,
		adjustmentRepo repository.AdjustmentRepository,
		_ repository.SupplierRepository,
	) error {
		product, err := lockOwnedProduct(productRepo, in.ProductID, userID)
		if err != nil {
			return err
		}

		switch adjType {
		case entity.AdjustmentAdd:
			product.Quantity += in.Quantity
		case entity.AdjustmentRemove:
			if product.Quantity < in.Quantity {
				return domain.ErrInsufficientStock
			}
			product.Quantity -= in.Quantity
		case entity.AdjustmentCorrection:
			product.Quantity = in.Quantity
		}

		now := time.Now()
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}

		adjustment = &entity.InventoryAdjustment{
			ID:             uuid.New().String(),
			ProductID:      product.ID,
			UserID:         userID,
			Type:           adjType,
			Quantity:       in.Quantity,
			Reason:         in.Reason,
			AdjustmentDate: now,
		}
		return adjustmentRepo.Create(adjustment)
	})
	if err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adjustment), nil
}

// ProductAdjustmentHistory historial de ajustes de un producto del usuario.
func (uc *LedgerUseCase) ProductAdjustmentHistory(userID, productID string) ([]dto.AdjustmentResponse, error) {
	if err := uc.ensureOwnedProduct(userID, productID); err != nil {
		return nil, err
	}
	adjustments, err := uc.adjustmentRepo.ListByProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		items = append(items, *toAdjustmentResponse(a))
	}
	return items, nil
}

func toAdjustmentResponse(a *entity.InventoryAdjustment) *dto.AdjustmentResponse {
	if a == nil {
		return nil
	}
	return &dto.AdjustmentResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		AdjustmentType: string(a.Type),
		Quantity:       a.Quantity,
		Reason:         a.Reason,
		AdjustmentDate: a.AdjustmentDate,
	}
}
