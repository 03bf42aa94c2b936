package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastly/feastly-backend/pkg/db/models"
)

// Repository defines the persistence surface required by the cart service.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByOwner(ctx context.Context, ownerKey string) (*models.Cart, error)
	Create(ctx context.Context, record *models.Cart) (*models.Cart, error)
	CreateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	UpdateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	DeleteLine(ctx context.Context, lineID uuid.UUID) error
	DeleteLinesByCart(ctx context.Context, cartID uuid.UUID) error
}
