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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, user_id, name, code, category_id, supplier_id, buying_price, selling_price,
	unit, quantity, threshold_value, opening_stock, on_the_way, expiry_date, image_url, is_active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.UserID, product.Name, product.Code, product.CategoryID, product.SupplierID,
		product.BuyingPrice, product.SellingPrice, product.Unit, product.Quantity, product.ThresholdValue,
		product.OpeningStock, product.OnTheWay, product.ExpiryDate, product.ImageURL, product.IsActive,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene un producto bloqueando su fila (FOR UPDATE).
// Solo tiene sentido dentro de una transacción del TxRunner.
func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByUserAndCode obtiene un producto por usuario y código.
func (r *ProductRepo) GetByUserAndCode(userID, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND code = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, userID, code))
}

// Update persiste todos los campos mutables del producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET
			name = $2, code = $3, category_id = $4, supplier_id = $5,
			buying_price = $6, selling_price = $7, unit = $8, quantity = $9,
			threshold_value = $10, opening_stock = $11, on_the_way = $12,
			expiry_date = $13, image_url = $14, is_active = $15, updated_at = $16
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Code, product.CategoryID, product.SupplierID,
		product.BuyingPrice, product.SellingPrice, product.Unit, product.Quantity,
		product.ThresholdValue, product.OpeningStock, product.OnTheWay,
		product.ExpiryDate, product.ImageURL, product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search lista productos del usuario con búsqueda por nombre/código
// (insensible a acentos vía unaccent) y filtro opcional por categoría.
func (r *ProductRepo) Search(userID, search, categoryID string, limit, offset int) ([]*entity.Product, int, error) {
	ctx := context.Background()
	where := ` WHERE user_id = $1`
	args := []any{userID}
	if search != "" {
		args = append(args, "%"+search+"%")
		where += fmt.Sprintf(` AND (unaccent(name) ILIKE unaccent($%d) OR code ILIKE $%d)`, len(args), len(args))
	}
	if categoryID != "" {
		args = append(args, categoryID)
		where += fmt.Sprintf(` AND category_id = $%d`, len(args))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+productColumns+` FROM products`+where+`
		ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListByUser lista todos los productos del usuario (para el export PDF).
func (r *ProductRepo) ListByUser(userID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Code, &p.CategoryID, &p.SupplierID,
		&p.BuyingPrice, &p.SellingPrice, &p.Unit, &p.Quantity, &p.ThresholdValue,
		&p.OpeningStock, &p.OnTheWay, &p.ExpiryDate, &p.ImageURL, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Code, &p.CategoryID, &p.SupplierID,
			&p.BuyingPrice, &p.SellingPrice, &p.Unit, &p.Quantity, &p.ThresholdValue,
			&p.OpeningStock, &p.OnTheWay, &p.ExpiryDate, &p.ImageURL, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
