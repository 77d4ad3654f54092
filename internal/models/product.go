package models

import "time"

// Category groups products. Categories may nest through ParentID.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ParentID    *uint     `json:"parent_id"`
	Parent      *Category `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Title       string    `json:"title" gorm:"type:varchar(100);not null" validate:"required,min=3,max=100"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Avatar      string    `json:"avatar" gorm:"type:varchar(255)"`
	IsEnable    bool      `json:"is_enable"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product represents a product in the store.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CategoryID  *uint     `json:"category_id"`
	Category    *Category `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Title       string    `json:"title" gorm:"type:varchar(100);not null" validate:"required,min=3,max=100"`
	Description string    `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Avatar      string    `json:"avatar" gorm:"type:varchar(255)"`
	Price       float64   `json:"price" validate:"gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	IsEnable    bool      `json:"is_enable"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FileType enumerates the supported media kinds of a product file.
type FileType int

const (
	FileTypeAudio FileType = 1
	FileTypeVideo FileType = 2
	FileTypePDF   FileType = 3
)

// Valid reports whether t is one of the known media kinds.
func (t FileType) Valid() bool {
	return t >= FileTypeAudio && t <= FileTypePDF
}

// File is a media asset attached to a product.
type File struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	Product   *Product  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Title     string    `json:"title" gorm:"type:varchar(100);not null" validate:"required,min=3,max=100"`
	FileURL   string    `json:"file_url" gorm:"type:varchar(255)"`
	FileType  FileType  `json:"file_type" gorm:"not null"`
	IsEnable  bool      `json:"is_enable"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
