package entity

import "time"

// Roles válidos para User.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User representa un usuario del sistema. Cada usuario es dueño exclusivo
// de sus productos, categorías, proveedores y movimientos.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Role         string // ROLE_USER, ROLE_ADMIN
	IsActive     bool
	CreatedAt    time.Time
	LastLogin    *time.Time
}
