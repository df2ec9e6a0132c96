package domain

import "time"

// Product a marketplace listing. Only the owning seller may mutate or
// delete it; listings are shown newest-first.
type Product struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"column:title;type:varchar(255)" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Price       string    `gorm:"column:price;type:decimal(10,2)" json:"price"`
	Category    string    `gorm:"column:category;type:varchar(100);index" json:"category"`
	ImageURL    *string   `gorm:"column:image_url;type:varchar(500)" json:"image_url,omitempty"`
	IsSold      bool      `gorm:"column:is_sold;default:false" json:"is_sold"`
	SellerID    uint64    `gorm:"column:seller_id;index" json:"seller_id"`
	PostedAt    time.Time `gorm:"column:posted_at;autoCreateTime;index" json:"posted_at"`
}

func (Product) TableName() string { return "products" }

// CreateProductRequest new listing payload
type CreateProductRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description string  `json:"description" binding:"required"`
	Price       string  `json:"price" binding:"required"`
	Category    string  `json:"category" binding:"required,max=100"`
	ImageURL    *string `json:"image_url"`
}

// UpdateProductRequest listing edit payload; nil fields are left unchanged
type UpdateProductRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	ImageURL    *string `json:"image_url"`
	IsSold      *bool   `json:"is_sold"`
}

// ProductResponse listing in API responses
type ProductResponse struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Category    string    `json:"category"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IsSold      bool      `json:"is_sold"`
	SellerID    uint64    `json:"seller_id"`
	PostedAt    time.Time `json:"posted_at"`
}

// ToResponse converts Product to ProductResponse
func (p *Product) ToResponse() *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		IsSold:      p.IsSold,
		SellerID:    p.SellerID,
		PostedAt:    p.PostedAt,
	}
}
