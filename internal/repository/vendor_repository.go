package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog-service/internal/apperror"
	"catalog-service/internal/model"
	"catalog-service/pkg/password"
	"catalog-service/prometheus"

	"gorm.io/gorm"
)

// VendorRepository persists vendor credentials
type VendorRepository struct {
	db      *gorm.DB
	hasher  *password.Hasher
	metrics *prometheus.Metrics
}

// NewVendorRepository creates a VendorRepository over db
func NewVendorRepository(db *gorm.DB, hasher *password.Hasher, metrics *prometheus.Metrics) *VendorRepository {
	return &VendorRepository{db: db, hasher: hasher, metrics: metrics}
}

// FindByEmail returns the vendor registered with email or apperror.ErrNotFound
func (r *VendorRepository) FindByEmail(ctx context.Context, email string) (*model.Vendor, error) {
	defer r.metrics.TrackDBOperation("query")()

	var vendor model.Vendor
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&vendor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find vendor by email: %w", err)
	}
	return &vendor, nil
}

// Create hashes plaintext and inserts a vendor. The unique index on email is the
// source of truth for uniqueness, so concurrent registrations of one email yield
// exactly one row and apperror.ErrDuplicateEmail for the others.
func (r *VendorRepository) Create(ctx context.Context, email, plaintext string) (*model.Vendor, error) {
	hashed, err := r.hasher.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	vendor := model.Vendor{Email: email, HashedPassword: hashed}

	done := r.metrics.TrackDBOperation("insert")
	err = r.db.WithContext(ctx).Create(&vendor).Error
	done()

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrDuplicateEmail
		}
		// Some drivers report unique violations untranslated; confirm by lookup
		if _, lookupErr := r.FindByEmail(ctx, email); lookupErr == nil {
			return nil, apperror.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create vendor: %w", err)
	}

	return &vendor, nil
}
