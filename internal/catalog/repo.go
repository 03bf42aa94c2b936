package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastly/feastly-backend/internal/repo"
	"github.com/feastly/feastly-backend/pkg/db/models"
)

// restaurantRepo persists restaurants through GORM.
type restaurantRepo struct {
	repo.Base
}

// NewRestaurantRepository constructs a restaurant repository bound to the provided DB.
func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepo{Base: repo.NewBase(db)}
}

func (r *restaurantRepo) WithTx(tx *gorm.DB) RestaurantRepository {
	return &restaurantRepo{Base: r.Rebind(tx)}
}

func (r *restaurantRepo) Create(ctx context.Context, record *models.Restaurant) (*models.Restaurant, error) {
	if err := r.DB(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *restaurantRepo) List(ctx context.Context) ([]models.Restaurant, error) {
	var records []models.Restaurant
	err := r.DB(ctx).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *restaurantRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var record models.Restaurant
	err := r.DB(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *restaurantRepo) FindByLegacyCode(ctx context.Context, code string) (*models.Restaurant, error) {
	var record models.Restaurant
	err := r.DB(ctx).
		Where("legacy_code = ?", code).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// menuItemRepo persists menu items through GORM.
type menuItemRepo struct {
	repo.Base
}

// NewMenuItemRepository constructs a menu item repository bound to the provided DB.
func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &menuItemRepo{Base: repo.NewBase(db)}
}

func (r *menuItemRepo) WithTx(tx *gorm.DB) MenuItemRepository {
	return &menuItemRepo{Base: r.Rebind(tx)}
}

func (r *menuItemRepo) Create(ctx context.Context, record *models.MenuItem) (*models.MenuItem, error) {
	if err := r.DB(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *menuItemRepo) Update(ctx context.Context, record *models.MenuItem) (*models.MenuItem, error) {
	if err := r.DB(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *menuItemRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.MenuItem, error) {
	var records []models.MenuItem
	err := r.DB(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("category ASC, name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *menuItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var record models.MenuItem
	err := r.DB(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *menuItemRepo) FindByLegacyCode(ctx context.Context, code string) (*models.MenuItem, error) {
	var record models.MenuItem
	err := r.DB(ctx).
		Where("legacy_code = ?", code).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
