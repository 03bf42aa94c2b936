package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Restaurant is a storefront vendor whose menu items can be ordered.
type Restaurant struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name             string         `gorm:"column:name;not null"`
	Cuisine          string         `gorm:"column:cuisine"`
	Rating           float64        `gorm:"column:rating"`
	DeliveryTime     string         `gorm:"column:delivery_time"`
	Image            string         `gorm:"column:image"`
	Description      string         `gorm:"column:description"`
	DeliveryFeeCents int            `gorm:"column:delivery_fee_cents"`
	MinOrderCents    int            `gorm:"column:min_order_cents"`
	Areas            pq.StringArray `gorm:"column:areas;type:text[]"`
	LegacyCode       *string        `gorm:"column:legacy_code;uniqueIndex"`
	MenuItems        []MenuItem     `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (r *Restaurant) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
