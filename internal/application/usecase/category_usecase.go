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

// CategoryUseCase casos de uso CRUD para categorías del usuario.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría del usuario.
func (uc *CategoryUseCase) Create(userID string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	category := &entity.Category{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría del usuario.
func (uc *CategoryUseCase) GetByID(userID, id string) (*dto.CategoryResponse, error) {
	category, err := uc.ownedCategory(userID, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update actualiza una categoría del usuario.
func (uc *CategoryUseCase) Update(userID, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	category, err := uc.ownedCategory(userID, id)
	if err != nil {
		return nil, err
	}
	category.Name = strings.TrimSpace(in.Name)
	category.Description = in.Description
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina una categoría del usuario.
func (uc *CategoryUseCase) Delete(userID, id string) error {
	category, err := uc.ownedCategory(userID, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(category.ID)
}

// List lista las categorías del usuario.
func (uc *CategoryUseCase) List(userID string) ([]dto.CategoryResponse, error) {
	categories, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

func (uc *CategoryUseCase) ownedCategory(userID, id string) (*entity.Category, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if err := domain.AuthorizeOwner(userID, category); err != nil {
		return nil, err
	}
	return category, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}
