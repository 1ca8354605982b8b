package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"products/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
// Soft-deleted rows are excluded from every query because the model carries
// a gorm.DeletedAt column.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Insert creates a new product row. The database assigns the id and both
// timestamps; the stored values are written back into product.
func (r *GORMProductRepository) Insert(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// FindAll retrieves all active products.
func (r *GORMProductRepository) FindAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// FindByOwner retrieves all active products owned by the given user.
func (r *GORMProductRepository) FindByOwner(userID int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("user_id = ?", userID).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products for user %d: %w", userID, err)
	}
	return products, nil
}

// FindByOwnerAndName retrieves the active product matching both owner and
// name. Returns (nil, nil) when no such row exists.
func (r *GORMProductRepository) FindByOwnerAndName(userID int, name string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("user_id = ? AND name = ?", userID, name).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product %q for user %d: %w", name, userID, err)
	}
	return &product, nil
}

// FindByID retrieves a single active product by its id.
// Returns (nil, nil) when no such row exists.
func (r *GORMProductRepository) FindByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Save persists an already-loaded product row, refreshing its UpdatedAt.
func (r *GORMProductRepository) Save(product *models.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to save product %d: %w", product.ID, err)
	}
	return nil
}

// SoftDelete marks the row with the given id as deleted and reports how many
// rows were affected. A missing or already-deleted id yields 0, not an error.
func (r *GORMProductRepository) SoftDelete(id uint) (int64, error) {
	res := r.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}
