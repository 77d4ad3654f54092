package services_test

import (
	"testing"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll() ([]models.Category, error) {
	args := m.Called()
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(id uint) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

// MockFileRepository is a mock implementation of repositories.FileRepository
type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) GetAllByProduct(productID uint) ([]models.File, error) {
	args := m.Called(productID)
	return args.Get(0).([]models.File), args.Error(1)
}

func (m *MockFileRepository) GetByID(productID, id uint) (*models.File, error) {
	args := m.Called(productID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.File), args.Error(1)
}

func (m *MockFileRepository) Create(file *models.File) error {
	args := m.Called(file)
	return args.Error(0)
}

// MockProvinceRepository is a mock implementation of repositories.ProvinceRepository
type MockProvinceRepository struct {
	mock.Mock
}

func (m *MockProvinceRepository) GetValid() ([]models.Province, error) {
	args := m.Called()
	return args.Get(0).([]models.Province), args.Error(1)
}

func (m *MockProvinceRepository) GetByID(id uint) (*models.Province, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Province), args.Error(1)
}

func (m *MockProvinceRepository) Create(province *models.Province) error {
	args := m.Called(province)
	return args.Error(0)
}

func newCatalogService() (*services.CatalogService, *MockCategoryRepository, *MockProductRepository, *MockFileRepository, *MockProvinceRepository) {
	categoryRepo := new(MockCategoryRepository)
	productRepo := new(MockProductRepository)
	fileRepo := new(MockFileRepository)
	provinceRepo := new(MockProvinceRepository)
	svc := services.NewCatalogService(categoryRepo, productRepo, fileRepo, provinceRepo)
	return svc, categoryRepo, productRepo, fileRepo, provinceRepo
}

func TestCatalogService_GetAllProducts(t *testing.T) {
	svc, _, productRepo, _, _ := newCatalogService()

	expectedProducts := []models.Product{
		{ID: 1, Title: "Product A", Price: 10.0, Stock: 100},
		{ID: 2, Title: "Product B", Price: 20.0, Stock: 50},
	}

	productRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := svc.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	productRepo.AssertExpectations(t)
}

func TestCatalogService_GetProductByID(t *testing.T) {
	svc, _, productRepo, _, _ := newCatalogService()

	expectedProduct := &models.Product{ID: 1, Title: "Product A", Price: 10.0, Stock: 100}

	// Successful retrieval.
	productRepo.On("GetByID", uint(1)).Return(expectedProduct, nil).Once()
	product, err := svc.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	productRepo.AssertExpectations(t)

	// Product not found.
	productRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrNotFound).Once()
	product, err = svc.GetProductByID(99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, product)
	productRepo.AssertExpectations(t)
}

func TestCatalogService_GetCategoryByID(t *testing.T) {
	svc, categoryRepo, _, _, _ := newCatalogService()

	expectedCategory := &models.Category{ID: 4, Title: "Beverages"}

	categoryRepo.On("GetByID", uint(4)).Return(expectedCategory, nil).Once()
	category, err := svc.GetCategoryByID(4)
	assert.NoError(t, err)
	assert.Equal(t, expectedCategory, category)

	categoryRepo.On("GetByID", uint(999)).Return(nil, repositories.ErrNotFound).Once()
	_, err = svc.GetCategoryByID(999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	categoryRepo.AssertExpectations(t)
}

func TestCatalogService_GetProductFileByID(t *testing.T) {
	svc, _, _, fileRepo, _ := newCatalogService()

	expectedFile := &models.File{ID: 2, ProductID: 1, Title: "Teaser", FileType: models.FileTypeVideo}

	// A file is only a hit under its owning product.
	fileRepo.On("GetByID", uint(1), uint(2)).Return(expectedFile, nil).Once()
	file, err := svc.GetProductFileByID(1, 2)
	assert.NoError(t, err)
	assert.Equal(t, expectedFile, file)

	fileRepo.On("GetByID", uint(3), uint(2)).Return(nil, repositories.ErrNotFound).Once()
	_, err = svc.GetProductFileByID(3, 2)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	fileRepo.AssertExpectations(t)
}

func TestCatalogService_GetProvinces(t *testing.T) {
	svc, _, _, _, provinceRepo := newCatalogService()

	expected := []models.Province{
		{ID: 1, Name: "Tehran", IsValid: true},
		{ID: 2, Name: "Fars", IsValid: true},
	}
	provinceRepo.On("GetValid").Return(expected, nil).Once()

	provinces, err := svc.GetProvinces()
	assert.NoError(t, err)
	assert.Equal(t, expected, provinces)
	provinceRepo.AssertExpectations(t)
}
