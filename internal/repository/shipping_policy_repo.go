package repository

import (
	"context"

	"crossborder/internal/model"

	"gorm.io/gorm"
)

// ShippingPolicyRepository is the read-only view of the shipping rate catalog.
type ShippingPolicyRepository interface {
	ListActive(ctx context.Context) ([]model.ShippingPolicy, error)
}

type shippingPolicyRepository struct {
	db *gorm.DB
}

func NewShippingPolicyRepository(db *gorm.DB) ShippingPolicyRepository {
	return &shippingPolicyRepository{db: db}
}

// ListActive returns active policies with their zone rates, ordered by
// sort_order then id. That ordering is the selector's first-match contract, so
// it must be applied here and nowhere re-sorted.
func (r *shippingPolicyRepository) ListActive(ctx context.Context) ([]model.ShippingPolicy, error) {
	var policies []model.ShippingPolicy
	if err := r.db.WithContext(ctx).
		Preload("Zones").
		Where("active = ?", true).
		Order("sort_order ASC, id ASC").
		Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}
