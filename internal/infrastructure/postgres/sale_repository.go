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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, sale_code, product_id, user_id, quantity, unit_price, total_value, buying_price, notes, sale_date`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SaleCode, sale.ProductID, sale.UserID, sale.Quantity,
		sale.UnitPrice, sale.TotalValue, sale.BuyingPrice, sale.Notes, sale.SaleDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.SaleCode, &s.ProductID, &s.UserID, &s.Quantity,
		&s.UnitPrice, &s.TotalValue, &s.BuyingPrice, &s.Notes, &s.SaleDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// Update persiste los campos mutables de la venta.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales SET
			product_id = $2, quantity = $3, unit_price = $4, total_value = $5,
			buying_price = $6, notes = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ProductID, sale.Quantity, sale.UnitPrice, sale.TotalValue,
		sale.BuyingPrice, sale.Notes,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una venta por ID.
func (r *SaleRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser lista ventas del usuario, más recientes primero, con
// búsqueda opcional por código de venta o nombre de producto.
func (r *SaleRepo) ListByUser(userID, search string, limit, offset int) ([]*entity.Sale, int, error) {
	ctx := context.Background()
	where := ` WHERE s.user_id = $1`
	args := []any{userID}
	if search != "" {
		args = append(args, "%"+search+"%")
		where += fmt.Sprintf(` AND (s.sale_code ILIKE $%d OR unaccent(p.name) ILIKE unaccent($%d))`, len(args), len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM sales s JOIN products p ON p.id = s.product_id` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT s.id, s.sale_code, s.product_id, s.user_id, s.quantity,
		       s.unit_price, s.total_value, s.buying_price, s.notes, s.sale_date
		FROM sales s JOIN products p ON p.id = s.product_id`+where+`
		ORDER BY s.sale_date DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.SaleCode, &s.ProductID, &s.UserID, &s.Quantity,
			&s.UnitPrice, &s.TotalValue, &s.BuyingPrice, &s.Notes, &s.SaleDate,
		); err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, &s)
	}
	return sales, total, rows.Err()
}

// Summary agregados de ventas del usuario.
func (r *SaleRepo) Summary(userID string) (*repository.SalesSummary, error) {
	query := `
		SELECT COALESCE(SUM(total_value), 0), COUNT(*), COALESCE(SUM(quantity), 0)
		FROM sales WHERE user_id = $1`
	var s repository.SalesSummary
	err := r.q.QueryRow(context.Background(), query, userID).Scan(
		&s.TotalSalesValue, &s.TotalSalesCount, &s.TotalProductsSold,
	)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	return &s, nil
}
