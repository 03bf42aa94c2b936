package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartLine is one merged product entry in a cart. ProductID preserves the
// identifier exactly as the client first submitted it, while ProductKey
// holds the canonical form used for merge comparisons.
type CartLine struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CartID         uuid.UUID `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:uq_cart_lines_cart_product,priority:1"`
	ProductID      string    `gorm:"column:product_id;not null"`
	ProductKey     string    `gorm:"column:product_key;not null;uniqueIndex:uq_cart_lines_cart_product,priority:2"`
	Name           string    `gorm:"column:name;not null"`
	Image          string    `gorm:"column:image"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	Position       int       `gorm:"column:position;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (l *CartLine) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
