package repository

import (
	"context"

	"crossborder/internal/model"

	"gorm.io/gorm"
)

// TariffRepository is the read-only view of the harmonized tariff schedule.
type TariffRepository interface {
	ListAll(ctx context.Context) ([]model.TariffCode, error)
	FindByCode(ctx context.Context, code string) (*model.TariffCode, error)
	List(ctx context.Context, page, limit int, search string) ([]model.TariffCode, int64, error)
}

type tariffRepository struct {
	db *gorm.DB
}

func NewTariffRepository(db *gorm.DB) TariffRepository {
	return &tariffRepository{db: db}
}

// ListAll returns the full schedule in stable code order. The classifier's
// tie-break depends on this ordering staying fixed across snapshots.
func (r *tariffRepository) ListAll(ctx context.Context) ([]model.TariffCode, error) {
	var codes []model.TariffCode
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *tariffRepository) FindByCode(ctx context.Context, code string) (*model.TariffCode, error) {
	var tariff model.TariffCode
	if err := r.db.WithContext(ctx).First(&tariff, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &tariff, nil
}

func (r *tariffRepository) List(ctx context.Context, page, limit int, search string) ([]model.TariffCode, int64, error) {
	var codes []model.TariffCode
	var total int64

	query := r.db.WithContext(ctx).Model(&model.TariffCode{})
	if search != "" {
		query = query.Where("code ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("code ASC").Offset(offset).Limit(limit).Find(&codes).Error; err != nil {
		return nil, 0, err
	}
	return codes, total, nil
}
