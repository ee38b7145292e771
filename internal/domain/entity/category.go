package entity

import "time"

// Category agrupa productos de un usuario.
type Category struct {
	ID          string
	UserID      string
	Name        string
	Description string
	CreatedAt   time.Time
}

// OwnedBy implementa domain.Owned.
func (c *Category) OwnedBy() string { return c.UserID }
