package services

import (
	"fmt"
	"math"

	"products/internal/apperrors"
	"products/internal/models"
	"products/internal/repositories"
	"products/internal/storage"
	"products/internal/validation"
)

// ProductService handles business logic related to products. It orchestrates
// payload validation, the optional image upload, and repository calls.
type ProductService struct {
	repo     repositories.ProductRepository
	uploader storage.Uploader
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, uploader storage.Uploader) *ProductService {
	return &ProductService{
		repo:     repo,
		uploader: uploader,
	}
}

// Create validates the input, uploads the image when one is supplied, and
// inserts the new product for the given owner. An upload failure aborts the
// operation before any row is written.
func (s *ProductService) Create(userID int, input validation.CreateProductInput, image *storage.File) (*models.Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be a positive integer", apperrors.ErrInvalidArgument)
	}

	imageURL := input.ImageURL
	if image != nil {
		url, err := s.uploader.Upload(image.Buffer, image.OriginalName, image.MimeType)
		if err != nil {
			return nil, &apperrors.UploadError{Err: err}
		}
		imageURL = &url
	}

	product := &models.Product{
		Name:     input.Name,
		Price:    roundPrice(input.Price),
		ImageURL: imageURL,
		UserID:   userID,
	}
	if err := s.repo.Insert(product); err != nil {
		return nil, err
	}
	return product, nil
}

// FindAll retrieves all active products.
func (s *ProductService) FindAll() ([]models.Product, error) {
	return s.repo.FindAll()
}

// FindAllOfSeller retrieves all active products owned by the given user.
func (s *ProductService) FindAllOfSeller(userID int) ([]models.Product, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be a positive integer", apperrors.ErrInvalidArgument)
	}
	return s.repo.FindByOwner(userID)
}

// FindOneByName retrieves a product by owner and name. Absence is not a
// failure: the result is (nil, nil) and callers decide what it means.
func (s *ProductService) FindOneByName(userID int, name string) (*models.Product, error) {
	return s.repo.FindByOwnerAndName(userID, name)
}

// findOne looks up a product by id, rejecting invalid ids before querying.
func (s *ProductService) findOne(id int) (*models.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: product id must be a positive integer", apperrors.ErrInvalidArgument)
	}
	return s.repo.FindByID(uint(id))
}

// Update merges the present input fields onto the existing product. The
// target must exist; id, userId, and createdAt are never rewritten. An image,
// when supplied, is uploaded before any mutation and its URL replaces the
// stored one.
func (s *ProductService) Update(id int, input validation.UpdateProductInput, image *storage.File) (*models.Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	product, err := s.findOne(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.ErrNotFound
	}

	if image != nil {
		url, err := s.uploader.Upload(image.Buffer, image.OriginalName, image.MimeType)
		if err != nil {
			return nil, &apperrors.UploadError{Err: err}
		}
		input.ImageURL = &url
	}

	// Merge only the fields present in the input; the id field was validated
	// but is deliberately not applied.
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = roundPrice(*input.Price)
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}

	if err := s.repo.Save(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Remove soft-deletes the product with the given id and reports the affected
// row count. Removing a missing or already-deleted product yields 0 and is
// not an error.
func (s *ProductService) Remove(id int) (int64, error) {
	if id <= 0 {
		return 0, fmt.Errorf("%w: product id must be a positive integer", apperrors.ErrInvalidArgument)
	}
	return s.repo.SoftDelete(uint(id))
}

// roundPrice clamps a price to the 2-decimal storage precision.
func roundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}
