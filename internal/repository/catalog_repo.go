package repository

import (
	"context"

	"crossborder/internal/model"

	"gorm.io/gorm"
)

// ExchangeRateRepository surfaces the most recent recorded exchange rate.
type ExchangeRateRepository interface {
	Latest(ctx context.Context) (*model.ExchangeRate, error)
}

// MarginSettingRepository lists the active profit-margin configurations.
type MarginSettingRepository interface {
	ListActive(ctx context.Context) ([]model.MarginSetting, error)
}

// MarketplaceFeeRepository lists the marketplace fee structures per category.
type MarketplaceFeeRepository interface {
	ListAll(ctx context.Context) ([]model.MarketplaceFee, error)
}

// CategoryHintRepository maps marketplace categories to likely tariff chapters.
type CategoryHintRepository interface {
	ListAll(ctx context.Context) ([]model.CategoryChapterHint, error)
}

type exchangeRateRepository struct {
	db *gorm.DB
}

func NewExchangeRateRepository(db *gorm.DB) ExchangeRateRepository {
	return &exchangeRateRepository{db: db}
}

func (r *exchangeRateRepository) Latest(ctx context.Context) (*model.ExchangeRate, error) {
	var rate model.ExchangeRate
	if err := r.db.WithContext(ctx).Order("created_at DESC").First(&rate).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

type marginSettingRepository struct {
	db *gorm.DB
}

func NewMarginSettingRepository(db *gorm.DB) MarginSettingRepository {
	return &marginSettingRepository{db: db}
}

func (r *marginSettingRepository) ListActive(ctx context.Context) ([]model.MarginSetting, error) {
	var settings []model.MarginSetting
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("tier ASC").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

type marketplaceFeeRepository struct {
	db *gorm.DB
}

func NewMarketplaceFeeRepository(db *gorm.DB) MarketplaceFeeRepository {
	return &marketplaceFeeRepository{db: db}
}

func (r *marketplaceFeeRepository) ListAll(ctx context.Context) ([]model.MarketplaceFee, error) {
	var fees []model.MarketplaceFee
	if err := r.db.WithContext(ctx).Order("category ASC").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}

type categoryHintRepository struct {
	db *gorm.DB
}

func NewCategoryHintRepository(db *gorm.DB) CategoryHintRepository {
	return &categoryHintRepository{db: db}
}

// ListAll returns hints best-first per category so the snapshot can keep the
// top three chapters for each.
func (r *categoryHintRepository) ListAll(ctx context.Context) ([]model.CategoryChapterHint, error) {
	var hints []model.CategoryChapterHint
	if err := r.db.WithContext(ctx).Order("category ASC, confidence DESC").Find(&hints).Error; err != nil {
		return nil, err
	}
	return hints, nil
}
