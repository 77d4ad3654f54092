package repositories

import (
	"fmt"

	"bazaar/internal/models"

	"gorm.io/gorm"
)

// ProvinceRepository defines the interface for province reference data.
type ProvinceRepository interface {
	GetValid() ([]models.Province, error)
	GetByID(id uint) (*models.Province, error)
	Create(province *models.Province) error
}

// GORMProvinceRepository is a GORM implementation of ProvinceRepository.
type GORMProvinceRepository struct {
	db *gorm.DB
}

// NewGORMProvinceRepository creates a new instance of GORMProvinceRepository.
func NewGORMProvinceRepository(db *gorm.DB) *GORMProvinceRepository {
	return &GORMProvinceRepository{
		db: db,
	}
}

// GetValid retrieves provinces that are still selectable.
func (r *GORMProvinceRepository) GetValid() ([]models.Province, error) {
	var provinces []models.Province
	if err := r.db.Find(&provinces, "is_valid = ?", true).Error; err != nil {
		return nil, fmt.Errorf("failed to get provinces: %w", err)
	}
	return provinces, nil
}

// GetByID retrieves a single province by its primary key.
func (r *GORMProvinceRepository) GetByID(id uint) (*models.Province, error) {
	var province models.Province
	if err := r.db.First(&province, "id = ?", id).Error; err != nil {
		if translated := translate(err); translated == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get province by ID %d: %w", id, err)
	}
	return &province, nil
}

// Create inserts a new province.
func (r *GORMProvinceRepository) Create(province *models.Province) error {
	if err := r.db.Create(province).Error; err != nil {
		return fmt.Errorf("failed to create province: %w", err)
	}
	return nil
}
