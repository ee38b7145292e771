package repository

import (
	"time"

	"github.com/kitakita/inventory-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	UpdateLastLogin(id string, at time.Time) error
}
