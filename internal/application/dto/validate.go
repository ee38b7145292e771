package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/kitakita/inventory-api/internal/domain"
)

// validate instancia única: los validadores compilan sus tags una sola vez.
var validate = validator.New()

// Validate aplica las tags `validate` de un request y traduce cualquier
// violación a domain.ErrInvalidInput, para que los handlers no dependan
// del paquete validator.
func Validate(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}
