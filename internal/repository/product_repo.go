package repository

import (
	"github.com/openflea/fleamarket-backend/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository listing data access interface
type ProductRepository interface {
	Create(product *domain.Product) error
	Update(product *domain.Product) error
	Delete(id uint64) error
	FindByID(id uint64) (*domain.Product, error)
	List(category string, page, limit int) ([]*domain.Product, int64, error)
	Categories() ([]string, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Product{}, id).Error
}

func (r *productRepository) FindByID(id uint64) (*domain.Product, error) {
	var product domain.Product
	if err := r.db.Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns listings newest-first, optionally filtered by category
// (case-insensitive, like the storefront sidebar expects).
func (r *productRepository) List(category string, page, limit int) ([]*domain.Product, int64, error) {
	var products []*domain.Product
	var total int64

	query := r.db.Model(&domain.Product{})
	if category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("posted_at DESC").
		Offset(offset).Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&domain.Product{}).
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}
