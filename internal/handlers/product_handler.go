package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"

	"products/internal/apperrors"
	"products/internal/services"
	"products/internal/storage"
	"products/internal/validation"
	"products/pkg/rabbitmq"
)

// Command names served by this microservice.
const (
	CmdCreateProduct     = "create_product"
	CmdGetAllProducts    = "get_all_products"
	CmdGetSellerProducts = "get_all_seller_products"
	CmdGetByName         = "get_by_name"
	CmdUpdateProduct     = "update_product"
	CmdDeleteProduct     = "delete_product"
)

// imagePayload is the wire shape of an attached image: base64 bytes plus the
// metadata captured at upload time.
type imagePayload struct {
	Buffer           string `json:"buffer"`
	OriginalFileName string `json:"originalFileName"`
	Encoding         string `json:"encoding"`
	MimeType         string `json:"mimeType"`
	Size             int64  `json:"size"`
}

type createPayload struct {
	CreateProductDto validation.CreateProductInput `json:"createProductDto"`
	Image            *imagePayload                 `json:"image"`
}

type updatePayload struct {
	UpdateProductDto validation.UpdateProductInput `json:"updateProductDto"`
	Image            *imagePayload                 `json:"image"`
}

type getOnePayload struct {
	ID   validation.ID `json:"id"`
	Name string        `json:"name"`
}

type idPayload struct {
	ID validation.ID `json:"id"`
}

// deleteResult reports how many rows a soft delete touched.
type deleteResult struct {
	Affected int64 `json:"affected"`
}

// ProductHandler answers the product command messages.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// Register wires every product command into the router.
func (h *ProductHandler) Register(router *rabbitmq.Router) {
	router.Handle(CmdCreateProduct, h.HandleCreate)
	router.Handle(CmdGetAllProducts, h.HandleGetAll)
	router.Handle(CmdGetSellerProducts, h.HandleGetAllOfSeller)
	router.Handle(CmdGetByName, h.HandleGetByName)
	router.Handle(CmdUpdateProduct, h.HandleUpdate)
	router.Handle(CmdDeleteProduct, h.HandleDelete)
}

// HandleCreate creates a new product, uploading the attached image first when
// one is present.
func (h *ProductHandler) HandleCreate(data json.RawMessage) (interface{}, error) {
	var payload createPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, decodeError(err)
	}

	image, err := decodeImage(payload.Image)
	if err != nil {
		return nil, err
	}

	product, err := h.service.Create(int(payload.CreateProductDto.UserID), payload.CreateProductDto, image)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return nil, err
	}
	return product, nil
}

// HandleGetAll returns every active product.
func (h *ProductHandler) HandleGetAll(data json.RawMessage) (interface{}, error) {
	products, err := h.service.FindAll()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return nil, err
	}
	return products, nil
}

// HandleGetAllOfSeller returns the active products owned by one user.
func (h *ProductHandler) HandleGetAllOfSeller(data json.RawMessage) (interface{}, error) {
	var payload idPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, decodeError(err)
	}

	products, err := h.service.FindAllOfSeller(int(payload.ID))
	if err != nil {
		log.Printf("Error getting products for user %d: %v", payload.ID, err)
		return nil, err
	}
	return products, nil
}

// HandleGetByName returns the product matching owner and name, or a null
// response when no such product exists. Absence is not an error here.
func (h *ProductHandler) HandleGetByName(data json.RawMessage) (interface{}, error) {
	var payload getOnePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, decodeError(err)
	}

	product, err := h.service.FindOneByName(int(payload.ID), payload.Name)
	if err != nil {
		log.Printf("Error getting product %q for user %d: %v", payload.Name, payload.ID, err)
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return product, nil
}

// HandleUpdate merges the supplied fields onto an existing product.
func (h *ProductHandler) HandleUpdate(data json.RawMessage) (interface{}, error) {
	var payload updatePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, decodeError(err)
	}

	image, err := decodeImage(payload.Image)
	if err != nil {
		return nil, err
	}

	product, err := h.service.Update(int(payload.UpdateProductDto.ID), payload.UpdateProductDto, image)
	if err != nil {
		log.Printf("Error updating product %d: %v", payload.UpdateProductDto.ID, err)
		return nil, err
	}
	return product, nil
}

// HandleDelete soft-deletes a product and reports the affected count.
// Deleting a missing or already-deleted product succeeds with affected 0.
func (h *ProductHandler) HandleDelete(data json.RawMessage) (interface{}, error) {
	var payload idPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, decodeError(err)
	}

	affected, err := h.service.Remove(int(payload.ID))
	if err != nil {
		log.Printf("Error deleting product %d: %v", payload.ID, err)
		return nil, err
	}
	return deleteResult{Affected: affected}, nil
}

// decodeImage converts the wire image payload into a storage.File, decoding
// its base64 buffer. A nil payload yields a nil file.
func decodeImage(payload *imagePayload) (*storage.File, error) {
	if payload == nil {
		return nil, nil
	}
	buf, err := base64.StdEncoding.DecodeString(payload.Buffer)
	if err != nil {
		return nil, &apperrors.ValidationError{Field: "image.buffer", Reason: "must be valid base64"}
	}
	return &storage.File{
		Buffer:       buf,
		OriginalName: payload.OriginalFileName,
		Encoding:     payload.Encoding,
		MimeType:     payload.MimeType,
		Size:         payload.Size,
	}, nil
}

// decodeError keeps invalid-argument failures distinguishable from other
// payload decode problems.
func decodeError(err error) error {
	return fmt.Errorf("invalid payload: %w", err)
}
