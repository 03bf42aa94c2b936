package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastly/feastly-backend/pkg/enums"
	"github.com/feastly/feastly-backend/pkg/types"
)

// Order is an immutable snapshot of a cart taken at placement time. Line
// contents and totals never change after creation; only Status advances.
type Order struct {
	ID               uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID          string                `gorm:"column:owner_id;not null;index"`
	Status           enums.OrderStatus     `gorm:"column:status;not null;default:'received'"`
	PaymentMethod    enums.PaymentMethod   `gorm:"column:payment_method;not null"`
	SubtotalCents    int                   `gorm:"column:subtotal_cents;not null"`
	DeliveryFeeCents int                   `gorm:"column:delivery_fee_cents;not null"`
	TotalCents       int                   `gorm:"column:total_cents;not null"`
	DeliveryAddress  types.DeliveryAddress `gorm:"column:delivery_address;type:jsonb;serializer:json"`
	Lines            []OrderLine           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
