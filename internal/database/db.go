package database

import (
	"log"

	"crossborder/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate the catalog reference tables
	err = db.AutoMigrate(
		&model.TariffCode{},
		&model.ShippingPolicy{},
		&model.ZoneRate{},
		&model.MarginSetting{},
		&model.MarketplaceFee{},
		&model.ExchangeRate{},
		&model.CategoryChapterHint{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
