package postgres

import (
	"context"
	"fmt"

	"github.com/kitakita/inventory-api/internal/domain/entity"
	"github.com/kitakita/inventory-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación del puerto AdjustmentRepository sobre
// PostgreSQL. La tabla es append-only: no hay update ni delete.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador de persistencia para ajustes.
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create persiste un ajuste de inventario.
func (r *AdjustmentRepo) Create(adjustment *entity.InventoryAdjustment) error {
	query := `
		INSERT INTO inventory_adjustments (id, product_id, user_id, adjustment_type, quantity, reason, adjustment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.ProductID, adjustment.UserID, string(adjustment.Type),
		adjustment.Quantity, adjustment.Reason, adjustment.AdjustmentDate,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// ListByProduct historial de ajustes de un producto del usuario.
func (r *AdjustmentRepo) ListByProduct(userID, productID string) ([]*entity.InventoryAdjustment, error) {
	query := `
		SELECT id, product_id, user_id, adjustment_type, quantity, reason, adjustment_date
		FROM inventory_adjustments
		WHERE user_id = $1 AND product_id = $2
		ORDER BY adjustment_date DESC`
	rows, err := r.q.Query(context.Background(), query, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []*entity.InventoryAdjustment
	for rows.Next() {
		var a entity.InventoryAdjustment
		var adjType string
		if err := rows.Scan(&a.ID, &a.ProductID, &a.UserID, &adjType, &a.Quantity, &a.Reason, &a.AdjustmentDate); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		a.Type = entity.AdjustmentType(adjType)
		adjustments = append(adjustments, &a)
	}
	return adjustments, rows.Err()
}
