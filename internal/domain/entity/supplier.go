package entity

import "time"

// Supplier representa un proveedor de un usuario.
type Supplier struct {
	ID            string
	UserID        string
	Name          string
	ContactNumber string
	Email         string
	Address       string
	IsActive      bool
	CreatedAt     time.Time
}

// OwnedBy implementa domain.Owned.
func (s *Supplier) OwnedBy() string { return s.UserID }
