package domain

import "time"

// User marketplace account. Sellers additionally get the is_seller capability
// flag; everyone can buy and exchange messages.
type User struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username        string    `gorm:"column:username;type:varchar(50);uniqueIndex" json:"username"`
	Email           string    `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Password        string    `gorm:"column:password;type:varchar(255)" json:"-"`
	Nickname        string    `gorm:"column:nickname;type:varchar(100)" json:"nickname"`
	IsSeller        bool      `gorm:"column:is_seller;default:false" json:"is_seller"`
	ProfileImageURL *string   `gorm:"column:profile_image_url;type:varchar(500)" json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// RegisterRequest new-account payload
type RegisterRequest struct {
	Username        string  `json:"username" binding:"required,min=3,max=50"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=8"`
	Nickname        string  `json:"nickname" binding:"required,max=100"`
	IsSeller        bool    `json:"is_seller"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// LoginRequest login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest profile edit payload; nil fields are left unchanged
type UpdateProfileRequest struct {
	Nickname        *string `json:"nickname"`
	Email           *string `json:"email" binding:"omitempty,email"`
	IsSeller        *bool   `json:"is_seller"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// UserResponse public view of a user
type UserResponse struct {
	ID              uint64  `json:"id"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Nickname        string  `json:"nickname"`
	IsSeller        bool    `json:"is_seller"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		Nickname:        u.Nickname,
		IsSeller:        u.IsSeller,
		ProfileImageURL: u.ProfileImageURL,
	}
}
