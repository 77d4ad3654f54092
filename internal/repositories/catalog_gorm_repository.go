package repositories

import (
	"fmt"

	"bazaar/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// GetAll retrieves all categories.
func (r *GORMCategoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single category by its primary key.
func (r *GORMCategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if translated := translate(err); translated == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, err)
	}
	return &category, nil
}

// Create inserts a new category.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its primary key.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if translated := translate(err); translated == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GORMFileRepository is a GORM implementation of FileRepository.
type GORMFileRepository struct {
	db *gorm.DB
}

// NewGORMFileRepository creates a new instance of GORMFileRepository.
func NewGORMFileRepository(db *gorm.DB) *GORMFileRepository {
	return &GORMFileRepository{
		db: db,
	}
}

// GetAllByProduct retrieves all files attached to a product.
func (r *GORMFileRepository) GetAllByProduct(productID uint) ([]models.File, error) {
	var files []models.File
	if err := r.db.Find(&files, "product_id = ?", productID).Error; err != nil {
		return nil, fmt.Errorf("failed to get files for product %d: %w", productID, err)
	}
	return files, nil
}

// GetByID retrieves a single file, scoped to its owning product. A file that
// exists under a different product is a miss, not a partial match.
func (r *GORMFileRepository) GetByID(productID, id uint) (*models.File, error) {
	var file models.File
	if err := r.db.First(&file, "id = ? AND product_id = ?", id, productID).Error; err != nil {
		if translated := translate(err); translated == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get file %d for product %d: %w", id, productID, err)
	}
	return &file, nil
}

// Create inserts a new file.
func (r *GORMFileRepository) Create(file *models.File) error {
	if err := r.db.Create(file).Error; err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	return nil
}
