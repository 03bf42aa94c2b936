package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastly/feastly-backend/pkg/db/models"
	"github.com/feastly/feastly-backend/pkg/enums"
	"github.com/feastly/feastly-backend/pkg/pagination"
)

// Repository defines the persistence surface required by the orders service.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, record *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerKey string) (*models.Order, error)
	ListByOwner(ctx context.Context, ownerKey string, limit int, cursor *pagination.Cursor) ([]models.Order, *pagination.Cursor, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}
