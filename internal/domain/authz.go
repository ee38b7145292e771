package domain

// Owned es cualquier recurso con un dueño (productos, ventas, compras,
// proveedores, categorías). Permite un único punto de autorización en vez
// de repetir la comparación en cada operación.
type Owned interface {
	OwnedBy() string
}

// AuthorizeOwner verifica que el recurso pertenezca al usuario que actúa.
// Un recurso nil o ajeno devuelve el mismo ErrNotFound que un recurso
// inexistente: nunca se revela la existencia de registros de otros usuarios.
func AuthorizeOwner(userID string, res Owned) error {
	if res == nil || res.OwnedBy() != userID {
		return ErrNotFound
	}
	return nil
}
