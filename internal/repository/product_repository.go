package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/apperror"
	"catalog-service/internal/model"
	"catalog-service/prometheus"

	"gorm.io/gorm"
)

// ProductRepository stores product listings. Every mutating call is filtered on the
// owner email, so a row that exists but belongs to someone else reads as not found.
type ProductRepository struct {
	db      *gorm.DB
	metrics *prometheus.Metrics
}

// NewProductRepository creates a ProductRepository over db
func NewProductRepository(db *gorm.DB, metrics *prometheus.Metrics) *ProductRepository {
	return &ProductRepository{db: db, metrics: metrics}
}

// List returns products of every vendor ordered by id, skipping offset rows and returning at most limit
func (r *ProductRepository) List(ctx context.Context, offset, limit int) ([]model.Product, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: offset and limit must be non-negative", apperror.ErrValidation)
	}

	defer r.metrics.TrackDBOperation("query")()

	products := []model.Product{}
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get returns the product with id or apperror.ErrNotFound
func (r *ProductRepository) Get(ctx context.Context, id uint) (*model.Product, error) {
	defer r.metrics.TrackDBOperation("query")()

	var product model.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts product and fills in its id
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	defer r.metrics.TrackDBOperation("insert")()

	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update applies patch to the product with id owned by ownerEmail and returns the updated row
func (r *ProductRepository) Update(ctx context.Context, id uint, ownerEmail string, patch model.ProductPatch) (*model.Product, error) {
	defer r.metrics.TrackDBOperation("update")()

	var product model.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownedBy(tx, id, ownerEmail).First(&product).Error; err != nil {
			return err
		}
		if patch.IsEmpty() {
			return nil
		}

		result := ownedBy(tx.Model(&model.Product{}), id, ownerEmail).Updates(patch.Columns())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&product, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	return &product, nil
}

// Delete removes the product with id owned by ownerEmail and returns its last state.
// When two deletes race, only the one whose DELETE affects the row succeeds.
func (r *ProductRepository) Delete(ctx context.Context, id uint, ownerEmail string) (*model.Product, error) {
	defer r.metrics.TrackDBOperation("delete")()

	var product model.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ownedBy(tx, id, ownerEmail).First(&product).Error; err != nil {
			return err
		}

		result := ownedBy(tx, id, ownerEmail).Delete(&model.Product{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete product %d: %w", id, err)
	}
	return &product, nil
}

func ownedBy(tx *gorm.DB, id uint, ownerEmail string) *gorm.DB {
	return tx.Where("id = ? AND vendedor_email = ?", id, ownerEmail)
}
