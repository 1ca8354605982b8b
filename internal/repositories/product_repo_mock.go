package repositories

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"products/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the soft-delete semantics of the GORM repository and is used by
// tests that do not need a real database.
type MockProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// Insert adds a new product, assigning the id and timestamps.
func (r *MockProductRepository) Insert(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	product.ID = r.nextID
	r.nextID++
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

// FindAll returns all active products.
func (r *MockProductRepository) FindAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if !p.DeletedAt.Valid {
			productList = append(productList, p)
		}
	}
	return productList, nil
}

// FindByOwner returns all active products owned by the given user.
func (r *MockProductRepository) FindByOwner(userID int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var productList []models.Product
	for _, p := range r.products {
		if p.UserID == userID && !p.DeletedAt.Valid {
			productList = append(productList, p)
		}
	}
	return productList, nil
}

// FindByOwnerAndName returns the active product matching owner and name, or
// (nil, nil) when absent.
func (r *MockProductRepository) FindByOwnerAndName(userID int, name string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.UserID == userID && p.Name == name && !p.DeletedAt.Valid {
			product := p
			return &product, nil
		}
	}
	return nil, nil
}

// FindByID returns the active product with the given id, or (nil, nil).
func (r *MockProductRepository) FindByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok || p.DeletedAt.Valid {
		return nil, nil
	}
	product := p
	return &product, nil
}

// Save persists an existing product and refreshes its UpdatedAt.
func (r *MockProductRepository) Save(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// SoftDelete marks the product as deleted and reports the affected count.
func (r *MockProductRepository) SoftDelete(id uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok || p.DeletedAt.Valid {
		return 0, nil
	}
	p.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	r.products[id] = p
	return 1, nil
}
