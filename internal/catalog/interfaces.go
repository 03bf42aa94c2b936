package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastly/feastly-backend/pkg/db/models"
)

// RestaurantRepository defines the persistence surface for restaurants.
type RestaurantRepository interface {
	WithTx(tx *gorm.DB) RestaurantRepository
	Create(ctx context.Context, record *models.Restaurant) (*models.Restaurant, error)
	List(ctx context.Context) ([]models.Restaurant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	FindByLegacyCode(ctx context.Context, code string) (*models.Restaurant, error)
}

// MenuItemRepository defines the persistence surface for menu items.
type MenuItemRepository interface {
	WithTx(tx *gorm.DB) MenuItemRepository
	Create(ctx context.Context, record *models.MenuItem) (*models.MenuItem, error)
	Update(ctx context.Context, record *models.MenuItem) (*models.MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	FindByLegacyCode(ctx context.Context, code string) (*models.MenuItem, error)
}
