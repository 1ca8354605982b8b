package repositories

import (
	"products/internal/models"
)

// ProductRepository defines the interface for product data access.
// Lookup methods return (nil, nil) when no matching active row exists;
// absence is an expected outcome, not a failure.
type ProductRepository interface {
	Insert(product *models.Product) error
	FindAll() ([]models.Product, error)
	FindByOwner(userID int) ([]models.Product, error)
	FindByOwnerAndName(userID int, name string) (*models.Product, error)
	FindByID(id uint) (*models.Product, error)
	Save(product *models.Product) error
	SoftDelete(id uint) (int64, error)
}
