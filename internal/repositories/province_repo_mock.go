package repositories

import (
	"sync"

	"bazaar/internal/models"
)

// MockProvinceRepository is an in-memory implementation of ProvinceRepository.
type MockProvinceRepository struct {
	provinces map[uint]models.Province
	nextID    uint
	mu        sync.RWMutex
}

// NewMockProvinceRepository creates a new instance of MockProvinceRepository.
func NewMockProvinceRepository() *MockProvinceRepository {
	return &MockProvinceRepository{
		provinces: make(map[uint]models.Province),
		nextID:    1,
	}
}

// Create adds a province.
func (r *MockProvinceRepository) Create(province *models.Province) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if province.ID == 0 {
		province.ID = r.nextID
		r.nextID++
	}
	r.provinces[province.ID] = *province
	return nil
}

// GetValid returns the provinces that are still selectable.
func (r *MockProvinceRepository) GetValid() ([]models.Province, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var provinces []models.Province
	for _, p := range r.provinces {
		if p.IsValid {
			provinces = append(provinces, p)
		}
	}
	return provinces, nil
}

// GetByID returns a province by its primary key.
func (r *MockProvinceRepository) GetByID(id uint) (*models.Province, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	province, ok := r.provinces[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &province, nil
}
