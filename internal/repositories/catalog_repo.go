package repositories

import (
	"bazaar/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
}

// FileRepository defines the interface for product-file data access. Reads
// are always scoped by the owning product id.
type FileRepository interface {
	GetAllByProduct(productID uint) ([]models.File, error)
	GetByID(productID, id uint) (*models.File, error)
	Create(file *models.File) error
}
