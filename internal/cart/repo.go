package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastly/feastly-backend/internal/repo"
	"github.com/feastly/feastly-backend/pkg/db/models"
)

// repository persists carts and their lines through GORM.
type repository struct {
	repo.Base
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Rebind(tx)}
}

// FindByOwner loads the owner's cart with its lines in display order.
func (r *repository) FindByOwner(ctx context.Context, ownerKey string) (*models.Cart, error) {
	var record models.Cart
	err := r.DB(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("owner_id = ?", ownerKey).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a new cart.
func (r *repository) Create(ctx context.Context, record *models.Cart) (*models.Cart, error) {
	if err := r.DB(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// CreateLine inserts a new cart line.
func (r *repository) CreateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	if err := r.DB(ctx).Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateLine saves the provided cart line.
func (r *repository) UpdateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	if err := r.DB(ctx).Save(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// DeleteLine removes a single cart line.
func (r *repository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	return r.DB(ctx).
		Where("id = ?", lineID).
		Delete(&models.CartLine{}).Error
}

// DeleteLinesByCart removes every line belonging to the cart.
func (r *repository) DeleteLinesByCart(ctx context.Context, cartID uuid.UUID) error {
	return r.DB(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartLine{}).Error
}
