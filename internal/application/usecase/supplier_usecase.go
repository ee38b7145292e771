package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kitakita/inventory-api/internal/application/dto"
	"github.com/kitakita/inventory-api/internal/domain"
	"github.com/kitakita/inventory-api/internal/domain/entity"
	"github.com/kitakita/inventory-api/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores del usuario.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor del usuario.
func (uc *SupplierUseCase) Create(userID string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	supplier := &entity.Supplier{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          strings.TrimSpace(in.Name),
		ContactNumber: in.ContactNumber,
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		Address:       in.Address,
		IsActive:      isActive,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor del usuario.
func (uc *SupplierUseCase) GetByID(userID, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.ownedSupplier(userID, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Update actualiza un proveedor del usuario.
func (uc *SupplierUseCase) Update(userID, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	supplier, err := uc.ownedSupplier(userID, id)
	if err != nil {
		return nil, err
	}
	supplier.Name = strings.TrimSpace(in.Name)
	supplier.ContactNumber = in.ContactNumber
	supplier.Email = strings.ToLower(strings.TrimSpace(in.Email))
	supplier.Address = in.Address
	if in.IsActive != nil {
		supplier.IsActive = *in.IsActive
	}
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Delete elimina un proveedor del usuario.
func (uc *SupplierUseCase) Delete(userID, id string) error {
	supplier, err := uc.ownedSupplier(userID, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(supplier.ID)
}

// List lista los proveedores del usuario.
func (uc *SupplierUseCase) List(userID string) ([]dto.SupplierResponse, error) {
	suppliers, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		items = append(items, *toSupplierResponse(s))
	}
	return items, nil
}

func (uc *SupplierUseCase) ownedSupplier(userID, id string) (*entity.Supplier, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if err := domain.AuthorizeOwner(userID, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactNumber: s.ContactNumber,
		Email:         s.Email,
		Address:       s.Address,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}
