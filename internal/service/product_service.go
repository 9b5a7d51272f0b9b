package service

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/apperror"
	"catalog-service/internal/enrichment"
	"catalog-service/internal/model"
	"catalog-service/prometheus"

	"go.uber.org/zap"
)

// DefaultPageSize is the limit applied when the caller does not send one
const DefaultPageSize = 100

// ProductStore is the product repository used by ProductService
type ProductStore interface {
	List(ctx context.Context, offset, limit int) ([]model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, id uint, ownerEmail string, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id uint, ownerEmail string) (*model.Product, error)
}

// Enricher generates product content at creation time
type Enricher interface {
	Enrich(ctx context.Context, name, suppliedImageURL string) (enrichment.Result, error)
}

// NewProduct is the caller-controlled part of a product. The owner always comes
// from the authenticated vendor, never from the request.
type NewProduct struct {
	Name     string
	Price    float64
	ImageURL string
}

// ProductService runs product operations on behalf of an authenticated vendor
type ProductService struct {
	products    ProductStore
	enricher    Enricher
	maxPageSize int
	metrics     *prometheus.Metrics
	log         *zap.Logger
}

// NewProductService creates a ProductService. maxPageSize caps the list limit.
func NewProductService(products ProductStore, enricher Enricher, maxPageSize int, metrics *prometheus.Metrics, log *zap.Logger) *ProductService {
	if maxPageSize <= 0 {
		maxPageSize = DefaultPageSize
	}
	return &ProductService{
		products:    products,
		enricher:    enricher,
		maxPageSize: maxPageSize,
		metrics:     metrics,
		log:         log,
	}
}

// List returns products of all vendors. limit is capped at the configured maximum.
func (s *ProductService) List(ctx context.Context, offset, limit int) ([]model.Product, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: offset and limit must be non-negative", apperror.ErrValidation)
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	products, err := s.products.List(ctx, offset, limit)
	s.record("list", err)
	return products, err
}

// Create enriches the product in memory and inserts it owned by owner.
// Nothing is persisted when enrichment fails.
func (s *ProductService) Create(ctx context.Context, owner *model.Vendor, input NewProduct) (*model.Product, error) {
	content, err := s.enricher.Enrich(ctx, input.Name, input.ImageURL)
	if err != nil {
		s.record("create", err)
		return nil, err
	}

	product := &model.Product{
		Name:        input.Name,
		Price:       input.Price,
		Description: content.Description,
		ImageURL:    content.ImageURL,
		OwnerEmail:  owner.Email,
	}
	if err := s.products.Create(ctx, product); err != nil {
		s.record("create", err)
		return nil, err
	}

	s.record("create", nil)
	s.log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("owner_email", product.OwnerEmail))
	return product, nil
}

// Update applies patch to a product owned by owner. Products of other vendors read as not found.
func (s *ProductService) Update(ctx context.Context, owner *model.Vendor, id uint, patch model.ProductPatch) (*model.Product, error) {
	product, err := s.products.Update(ctx, id, owner.Email, patch)
	s.record("update", err)
	if err != nil {
		return nil, err
	}

	s.log.Info("Product updated", zap.Uint("product_id", id), zap.String("owner_email", owner.Email))
	return product, nil
}

// Delete removes a product owned by owner and returns its last state
func (s *ProductService) Delete(ctx context.Context, owner *model.Vendor, id uint) (*model.Product, error) {
	product, err := s.products.Delete(ctx, id, owner.Email)
	s.record("delete", err)
	if err != nil {
		return nil, err
	}

	s.log.Info("Product deleted", zap.Uint("product_id", id), zap.String("owner_email", owner.Email))
	return product, nil
}

func (s *ProductService) record(operation string, err error) {
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrNotFound):
		result = "not_found"
	case errors.Is(err, apperror.ErrValidation):
		result = "invalid"
	default:
		result = "error"
	}
	s.metrics.RecordProductOperation(operation, result)
}
