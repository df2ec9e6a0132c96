package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/openflea/fleamarket-backend/internal/common"
	"github.com/openflea/fleamarket-backend/internal/domain"
)

// --- Mock ProductRepository ---

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(product *domain.Product) error {
	return m.Called(product).Error(0)
}

func (m *mockProductRepo) Update(product *domain.Product) error {
	return m.Called(product).Error(0)
}

func (m *mockProductRepo) Delete(id uint64) error {
	return m.Called(id).Error(0)
}

func (m *mockProductRepo) FindByID(id uint64) (*domain.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) List(category string, page, limit int) ([]*domain.Product, int64, error) {
	args := m.Called(category, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) Categories() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(user *domain.User) error { return m.Called(user).Error(0) }
func (m *mockUserRepo) Update(user *domain.User) error { return m.Called(user).Error(0) }

func (m *mockUserRepo) FindByID(id uint64) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByUsername(username string) (*domain.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsername(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

// --- Tests ---

func TestProductCreate_RequiresSellerFlag(t *testing.T) {
	productRepo := new(mockProductRepo)
	userRepo := new(mockUserRepo)
	svc := NewProductService(productRepo, userRepo)

	userRepo.On("FindByID", uint64(1)).Return(&domain.User{ID: 1, IsSeller: false}, nil)

	_, err := svc.Create(1, &domain.CreateProductRequest{
		Title: "chair", Description: "oak chair", Price: "25.00", Category: "furniture",
	})
	assert.ErrorIs(t, err, common.ErrNotSeller)
	productRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductCreate_SetsSeller(t *testing.T) {
	productRepo := new(mockProductRepo)
	userRepo := new(mockUserRepo)
	svc := NewProductService(productRepo, userRepo)

	userRepo.On("FindByID", uint64(1)).Return(&domain.User{ID: 1, IsSeller: true}, nil)
	productRepo.On("Create", mock.MatchedBy(func(p *domain.Product) bool {
		return p.SellerID == 1 && p.Title == "chair"
	})).Return(nil)

	result, err := svc.Create(1, &domain.CreateProductRequest{
		Title: "chair", Description: "oak chair", Price: "25.00", Category: "furniture",
	})
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), result.SellerID)
	productRepo.AssertExpectations(t)
}

func TestProductUpdate_OnlyOwner(t *testing.T) {
	productRepo := new(mockProductRepo)
	userRepo := new(mockUserRepo)
	svc := NewProductService(productRepo, userRepo)

	productRepo.On("FindByID", uint64(10)).Return(&domain.Product{ID: 10, SellerID: 1, Title: "chair"}, nil)

	// Someone who is not the owner gets Forbidden and nothing is written
	_, err := svc.Update(2, 10, &domain.UpdateProductRequest{})
	assert.ErrorIs(t, err, common.ErrForbidden)
	productRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProductUpdate_AppliesPartialEdit(t *testing.T) {
	productRepo := new(mockProductRepo)
	userRepo := new(mockUserRepo)
	svc := NewProductService(productRepo, userRepo)

	productRepo.On("FindByID", uint64(10)).Return(&domain.Product{ID: 10, SellerID: 1, Title: "chair", Price: "25.00"}, nil)
	productRepo.On("Update", mock.MatchedBy(func(p *domain.Product) bool {
		return p.Title == "oak chair" && p.Price == "25.00" && p.IsSold
	})).Return(nil)

	title := "oak chair"
	sold := true
	result, err := svc.Update(1, 10, &domain.UpdateProductRequest{Title: &title, IsSold: &sold})
	assert.NoError(t, err)
	assert.Equal(t, "oak chair", result.Title)
	assert.True(t, result.IsSold)
	productRepo.AssertExpectations(t)
}

func TestProductDelete_OnlyOwner(t *testing.T) {
	productRepo := new(mockProductRepo)
	userRepo := new(mockUserRepo)
	svc := NewProductService(productRepo, userRepo)

	productRepo.On("FindByID", uint64(10)).Return(&domain.Product{ID: 10, SellerID: 1}, nil)

	assert.ErrorIs(t, svc.Delete(2, 10), common.ErrForbidden)
	productRepo.AssertNotCalled(t, "Delete", mock.Anything)

	productRepo.On("Delete", uint64(10)).Return(nil)
	assert.NoError(t, svc.Delete(1, 10))
	productRepo.AssertExpectations(t)
}

func TestProductGet_NotFound(t *testing.T) {
	productRepo := new(mockProductRepo)
	userRepo := new(mockUserRepo)
	svc := NewProductService(productRepo, userRepo)

	productRepo.On("FindByID", uint64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(404)
	assert.ErrorIs(t, err, common.ErrProductNotFound)
}

func TestProductList_ClampsPaging(t *testing.T) {
	productRepo := new(mockProductRepo)
	userRepo := new(mockUserRepo)
	svc := NewProductService(productRepo, userRepo)

	productRepo.On("List", "furniture", 1, 10).Return([]*domain.Product{
		{ID: 2, Title: "newer"},
		{ID: 1, Title: "older"},
	}, int64(2), nil)

	rows, meta, err := svc.List("furniture", 0, 500)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, int64(2), meta.Total)
	assert.Equal(t, 1, meta.Page)
	productRepo.AssertExpectations(t)
}
