package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastly/feastly-backend/internal/repo"
	"github.com/feastly/feastly-backend/pkg/db/models"
	"github.com/feastly/feastly-backend/pkg/enums"
	"github.com/feastly/feastly-backend/pkg/pagination"
)

// repository persists orders through GORM.
type repository struct {
	repo.Base
}

// NewRepository constructs an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Rebind(tx)}
}

// Create inserts the order together with its lines.
func (r *repository) Create(ctx context.Context, record *models.Order) (*models.Order, error) {
	if err := r.DB(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindByID loads an order regardless of owner. Used by admin flows.
func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var record models.Order
	err := r.DB(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByIDAndOwner loads an order restricted to the provided owner.
func (r *repository) FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerKey string) (*models.Order, error) {
	var record models.Order
	err := r.DB(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ? AND owner_id = ?", id, ownerKey).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByOwner returns one page of the owner's orders, newest first.
func (r *repository) ListByOwner(ctx context.Context, ownerKey string, limit int, cursor *pagination.Cursor) ([]models.Order, *pagination.Cursor, error) {
	query := r.DB(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("owner_id = ?", ownerKey)
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var records []models.Order
	if err := query.Order("created_at DESC, id DESC").Limit(pagination.LimitWithBuffer(limit)).Find(&records).Error; err != nil {
		return nil, nil, err
	}

	page, next := pagination.TrimPage(records, limit, func(record models.Order) pagination.Cursor {
		return pagination.Cursor{CreatedAt: record.CreatedAt, ID: record.ID}
	})
	return page, next, nil
}

// UpdateStatus persists the order's new status.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	return r.DB(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}
