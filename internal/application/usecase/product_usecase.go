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

// InventoryPDFGenerator puerto de generación del PDF de inventario.
type InventoryPDFGenerator interface {
	GenerateInventoryReport(ownerName string, products []*entity.Product) ([]byte, error)
}

// ProductUseCase casos de uso CRUD para productos. Quantity se fija solo
// al crear; después la mueve exclusivamente el ledger (ventas, compras,
// ajustes).
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	userRepo     repository.UserRepository
	pdfGen       InventoryPDFGenerator
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	userRepo repository.UserRepository,
	pdfGen InventoryPDFGenerator,
) *ProductUseCase {
	return &ProductUseCase{
		repo:         repo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		userRepo:     userRepo,
		pdfGen:       pdfGen,
	}
}

// Create crea un producto del usuario. Si no viene código se genera uno
// (PRD-XXXXXXXX); si viene, debe ser único dentro del usuario.
func (uc *ProductUseCase) Create(userID string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(userID, in.CategoryID, in.SupplierID); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(in.Code)
	if code == "" {
		code = generateProductCode()
	} else {
		existing, err := uc.repo.GetByUserAndCode(userID, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		UserID:         userID,
		Name:           strings.TrimSpace(in.Name),
		Code:           code,
		CategoryID:     in.CategoryID,
		SupplierID:     in.SupplierID,
		BuyingPrice:    in.BuyingPrice,
		SellingPrice:   in.SellingPrice,
		Unit:           in.Unit,
		Quantity:       in.Quantity,
		ThresholdValue: in.ThresholdValue,
		OpeningStock:   in.OpeningStock,
		OnTheWay:       in.OnTheWay,
		ExpiryDate:     in.ExpiryDate,
		ImageURL:       in.ImageURL,
		IsActive:       isActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del usuario.
func (uc *ProductUseCase) GetByID(userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.ownedProduct(userID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza los datos maestros del producto. Quantity NO se toca
// aquí: cualquier corrección de stock pasa por el endpoint de ajustes.
func (uc *ProductUseCase) Update(userID, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	product, err := uc.ownedProduct(userID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkReferences(userID, in.CategoryID, in.SupplierID); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(in.Code)
	if code != "" && code != product.Code {
		existing, err := uc.repo.GetByUserAndCode(userID, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		product.Code = code
	}
	product.Name = strings.TrimSpace(in.Name)
	product.CategoryID = in.CategoryID
	product.SupplierID = in.SupplierID
	product.BuyingPrice = in.BuyingPrice
	product.SellingPrice = in.SellingPrice
	product.Unit = in.Unit
	product.ThresholdValue = in.ThresholdValue
	product.ExpiryDate = in.ExpiryDate
	product.ImageURL = in.ImageURL
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto del usuario.
func (uc *ProductUseCase) Delete(userID, id string) error {
	product, err := uc.ownedProduct(userID, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(product.ID)
}

// List lista productos del usuario con búsqueda (acentos plegados) y
// filtro por categoría.
func (uc *ProductUseCase) List(userID, search, categoryID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, total, err := uc.repo.Search(userID, normalizeSearch(search), categoryID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ReferenceData categorías y proveedores del usuario para formularios.
func (uc *ProductUseCase) ReferenceData(userID string) (*dto.ProductReferenceDataResponse, error) {
	categories, err := uc.categoryRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	suppliers, err := uc.supplierRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductReferenceDataResponse{
		Categories: make([]dto.CategoryResponse, 0, len(categories)),
		Suppliers:  make([]dto.SupplierResponse, 0, len(suppliers)),
	}
	for _, c := range categories {
		out.Categories = append(out.Categories, *toCategoryResponse(c))
	}
	for _, s := range suppliers {
		out.Suppliers = append(out.Suppliers, *toSupplierResponse(s))
	}
	return out, nil
}

// ExportPDF genera el reporte PDF del inventario completo del usuario.
func (uc *ProductUseCase) ExportPDF(userID string) ([]byte, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	products, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateInventoryReport(user.FullName, products)
}

// ownedProduct carga y autoriza: inexistente y ajeno devuelven el mismo
// ErrNotFound.
func (uc *ProductUseCase) ownedProduct(userID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := domain.AuthorizeOwner(userID, product); err != nil {
		return nil, err
	}
	return product, nil
}

// checkReferences valida que categoría y proveedor (si viene) existan y
// pertenezcan al usuario.
func (uc *ProductUseCase) checkReferences(userID, categoryID string, supplierID *string) error {
	category, err := uc.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	if err := domain.AuthorizeOwner(userID, category); err != nil {
		return err
	}
	if supplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(*supplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
		if err := domain.AuthorizeOwner(userID, supplier); err != nil {
			return err
		}
	}
	return nil
}

// generateProductCode código corto legible, ej. PRD-8FA0C21D.
func generateProductCode() string {
	return "PRD-" + strings.ToUpper(uuid.New().String()[:8])
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Code:           p.Code,
		CategoryID:     p.CategoryID,
		SupplierID:     p.SupplierID,
		BuyingPrice:    p.BuyingPrice,
		SellingPrice:   p.SellingPrice,
		Unit:           p.Unit,
		Quantity:       p.Quantity,
		ThresholdValue: p.ThresholdValue,
		OpeningStock:   p.OpeningStock,
		OnTheWay:       p.OnTheWay,
		ExpiryDate:     p.ExpiryDate,
		ImageURL:       p.ImageURL,
		IsActive:       p.IsActive,
		LowStock:       p.IsLowStock(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
