package services

import (
	"bazaar/internal/models"
	"bazaar/internal/repositories"
)

// CatalogService handles read access to the catalog: categories, products and
// product files. It is a thin pass-through; the repositories carry the
// not-found semantics.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	fileRepo     repositories.FileRepository
	provinceRepo repositories.ProvinceRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository, fileRepo repositories.FileRepository, provinceRepo repositories.ProvinceRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		fileRepo:     fileRepo,
		provinceRepo: provinceRepo,
	}
}

// GetAllCategories retrieves all categories.
func (s *CatalogService) GetAllCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CatalogService) GetCategoryByID(id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// GetAllProducts retrieves all products.
func (s *CatalogService) GetAllProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// GetProductFiles retrieves the files attached to a product.
func (s *CatalogService) GetProductFiles(productID uint) ([]models.File, error) {
	return s.fileRepo.GetAllByProduct(productID)
}

// GetProductFileByID retrieves a single file scoped to its product.
func (s *CatalogService) GetProductFileByID(productID, id uint) (*models.File, error) {
	return s.fileRepo.GetByID(productID, id)
}

// GetProvinces retrieves the selectable provinces.
func (s *CatalogService) GetProvinces() ([]models.Province, error) {
	return s.provinceRepo.GetValid()
}
