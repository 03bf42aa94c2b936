package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItem is a single orderable dish belonging to a restaurant. Items
// imported from the legacy catalog keep their numeric identifier in
// LegacyCode so old clients can still reference them.
type MenuItem struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"column:restaurant_id;type:uuid;not null;index"`
	Name         string    `gorm:"column:name;not null"`
	Description  string    `gorm:"column:description"`
	Image        string    `gorm:"column:image"`
	Category     string    `gorm:"column:category;index"`
	PriceCents   int       `gorm:"column:price_cents;not null"`
	Available    bool      `gorm:"column:available;not null;default:true"`
	LegacyCode   *string   `gorm:"column:legacy_code;uniqueIndex"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (m *MenuItem) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
