package repository

import "github.com/kitakita/inventory-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE). Solo tiene
	// sentido dentro de una transacción: serializa las mutaciones de
	// Quantity de un mismo producto.
	GetByIDForUpdate(id string) (*entity.Product, error)
	GetByUserAndCode(userID, code string) (*entity.Product, error)
	Update(product *entity.Product) error
	// Search lista productos del usuario con búsqueda por nombre/código y
	// filtro opcional por categoría. Devuelve el total sin paginar.
	Search(userID, search, categoryID string, limit, offset int) ([]*entity.Product, int, error)
	ListByUser(userID string) ([]*entity.Product, error)
	Delete(id string) error
}
