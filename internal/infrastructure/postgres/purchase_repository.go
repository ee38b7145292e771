package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kitakita/inventory-api/internal/domain"
	"github.com/kitakita/inventory-api/internal/domain/entity"
	"github.com/kitakita/inventory-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, product_id, supplier_id, user_id, quantity, unit_cost, total_cost, status, notes, purchase_date`

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de persistencia para compras.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste una compra.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.ProductID, purchase.SupplierID, purchase.UserID,
		purchase.Quantity, purchase.UnitCost, purchase.TotalCost, purchase.Status,
		purchase.Notes, purchase.PurchaseDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene una compra bloqueando su fila, para las
// transiciones de estado dentro del TxRunner.
func (r *PurchaseRepo) GetByIDForUpdate(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// UpdateStatus cambia el estado de una compra.
func (r *PurchaseRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE purchases SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser lista compras del usuario, más recientes primero.
func (r *PurchaseRepo) ListByUser(userID string, limit, offset int) ([]*entity.Purchase, int, error) {
	ctx := context.Background()

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchases WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchases: %w", err)
	}

	query := `SELECT ` + purchaseColumns + ` FROM purchases
		WHERE user_id = $1 ORDER BY purchase_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	purchases, err := scanPurchases(rows)
	if err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// ListByProduct historial de compras de un producto del usuario.
func (r *PurchaseRepo) ListByProduct(userID, productID string) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases
		WHERE user_id = $1 AND product_id = $2 ORDER BY purchase_date DESC`
	rows, err := r.q.Query(context.Background(), query, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("list purchases by product: %w", err)
	}
	defer rows.Close()
	return scanPurchases(rows)
}

func (r *PurchaseRepo) scanOne(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	err := row.Scan(
		&p.ID, &p.ProductID, &p.SupplierID, &p.UserID, &p.Quantity,
		&p.UnitCost, &p.TotalCost, &p.Status, &p.Notes, &p.PurchaseDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

func scanPurchases(rows pgx.Rows) ([]*entity.Purchase, error) {
	var purchases []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(
			&p.ID, &p.ProductID, &p.SupplierID, &p.UserID, &p.Quantity,
			&p.UnitCost, &p.TotalCost, &p.Status, &p.Notes, &p.PurchaseDate,
		); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		purchases = append(purchases, &p)
	}
	return purchases, rows.Err()
}
