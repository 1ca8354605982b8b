package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a product listed by a seller.
// A non-null DeletedAt marks the row as soft-deleted; GORM excludes such rows
// from regular queries automatically.
type Product struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Price     float64        `json:"price" gorm:"not null;type:decimal(10,2)"`
	ImageURL  *string        `json:"imageUrl" gorm:"column:image_url"`
	UserID    int            `json:"userId" gorm:"not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"deletedAt" gorm:"index"`
}

// TableName keeps the table name stable regardless of GORM's pluralization rules.
func (Product) TableName() string {
	return "products"
}
