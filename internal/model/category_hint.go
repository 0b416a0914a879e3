package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryChapterHint maps a marketplace category to a likely tariff chapter
// with a confidence weight. The classifier uses the top entries per category to
// narrow its first search pass.
type CategoryChapterHint struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Category    string          `gorm:"type:varchar(100);not null;index" json:"category"`
	ChapterCode string          `gorm:"type:varchar(2);not null" json:"chapter_code"`
	Confidence  decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"confidence"`
	CreatedAt   time.Time       `json:"created_at"`
}
