package service

import (
	"time"

	"github.com/openflea/fleamarket-backend/internal/common"
	"github.com/openflea/fleamarket-backend/internal/domain"
	"github.com/openflea/fleamarket-backend/internal/repository"
)

// ProductService business logic for marketplace listings
type ProductService interface {
	List(category string, page, limit int) ([]*domain.ProductResponse, *common.Meta, error)
	Categories() ([]string, error)
	Get(id uint64) (*domain.ProductResponse, error)
	Create(sellerID uint64, req *domain.CreateProductRequest) (*domain.ProductResponse, error)
	Update(userID, id uint64, req *domain.UpdateProductRequest) (*domain.ProductResponse, error)
	Delete(userID, id uint64) error
}

type productService struct {
	repo     repository.ProductRepository
	userRepo repository.UserRepository
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository, userRepo repository.UserRepository) ProductService {
	return &productService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// List returns listings newest-first with optional category filter
func (s *productService) List(category string, page, limit int) ([]*domain.ProductResponse, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	products, total, err := s.repo.List(category, page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]*domain.ProductResponse, len(products))
	for i, p := range products {
		responses[i] = p.ToResponse()
	}

	meta := &common.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	}

	return responses, meta, nil
}

// Categories returns the distinct categories currently in use
func (s *productService) Categories() ([]string, error) {
	return s.repo.Categories()
}

// Get returns a single listing
func (s *productService) Get(id uint64) (*domain.ProductResponse, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		return nil, common.ErrProductNotFound
	}
	return product.ToResponse(), nil
}

// Create creates a listing owned by sellerID; the account must carry the
// seller flag.
func (s *productService) Create(sellerID uint64, req *domain.CreateProductRequest) (*domain.ProductResponse, error) {
	seller, err := s.userRepo.FindByID(sellerID)
	if err != nil {
		return nil, common.ErrUserNotFound
	}
	if !seller.IsSeller {
		return nil, common.ErrNotSeller
	}

	product := &domain.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		SellerID:    sellerID,
		PostedAt:    time.Now(),
	}

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	return product.ToResponse(), nil
}

// Update mutates a listing. Only the owning seller may do this.
func (s *productService) Update(userID, id uint64, req *domain.UpdateProductRequest) (*domain.ProductResponse, error) {
	product, err := s.repo.FindByID(id)
	if err != nil {
		return nil, common.ErrProductNotFound
	}
	if product.SellerID != userID {
		return nil, common.ErrForbidden
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.IsSold != nil {
		product.IsSold = *req.IsSold
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	return product.ToResponse(), nil
}

// Delete removes a listing. Only the owning seller may do this.
func (s *productService) Delete(userID, id uint64) error {
	product, err := s.repo.FindByID(id)
	if err != nil {
		return common.ErrProductNotFound
	}
	if product.SellerID != userID {
		return common.ErrForbidden
	}
	return s.repo.Delete(id)
}
