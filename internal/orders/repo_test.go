package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/feastly/feastly-backend/pkg/db/models"
	"github.com/feastly/feastly-backend/pkg/enums"
	"github.com/feastly/feastly-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'received',
  payment_method TEXT NOT NULL,
  subtotal_cents INTEGER NOT NULL,
  delivery_fee_cents INTEGER NOT NULL,
  total_cents INTEGER NOT NULL,
  delivery_address TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderLines := `
CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_key TEXT NOT NULL,
  name TEXT NOT NULL,
  image TEXT NOT NULL DEFAULT '',
  unit_price_cents INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  line_total_cents INTEGER NOT NULL,
  position INTEGER NOT NULL,
  created_at DATETIME
);`

	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderLines).Error)
	return db
}

func TestOrdersRepoCreatePersistsLines(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	record := &models.Order{
		OwnerID:          "owner-1",
		Status:           enums.OrderStatusReceived,
		PaymentMethod:    enums.PaymentMethodCOD,
		SubtotalCents:    1700,
		DeliveryFeeCents: 299,
		TotalCents:       1999,
		Lines: []models.OrderLine{
			{ProductID: "42", ProductKey: "42", Name: "Dal Makhani", UnitPriceCents: 850, Quantity: 2, LineTotalCents: 1700, Position: 0},
		},
	}

	created, err := repo.Create(ctx, record)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	loaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, 1700, loaded.Lines[0].LineTotalCents)
	assert.Equal(t, enums.OrderStatusReceived, loaded.Status)
}

func TestOrdersRepoOwnerScoping(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Order{
		OwnerID:       "owner-1",
		Status:        enums.OrderStatusReceived,
		PaymentMethod: enums.PaymentMethodUPI,
	})
	require.NoError(t, err)

	_, err = repo.FindByIDAndOwner(ctx, created.ID, "owner-1")
	require.NoError(t, err)

	_, err = repo.FindByIDAndOwner(ctx, created.ID, "someone-else")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrdersRepoListByOwnerPaginates(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &models.Order{
			OwnerID:       "owner-1",
			Status:        enums.OrderStatusReceived,
			PaymentMethod: enums.PaymentMethodCard,
			TotalCents:    100 * (i + 1),
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &models.Order{
		OwnerID:       "owner-2",
		Status:        enums.OrderStatusReceived,
		PaymentMethod: enums.PaymentMethodCard,
		CreatedAt:     base,
	})
	require.NoError(t, err)

	page, next, err := repo.ListByOwner(ctx, "owner-1", 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotNil(t, next)
	assert.Equal(t, 300, page[0].TotalCents)
	assert.Equal(t, 200, page[1].TotalCents)

	rest, last, err := repo.ListByOwner(ctx, "owner-1", 2, next)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Nil(t, last)
	assert.Equal(t, 100, rest[0].TotalCents)
}

func TestOrdersRepoListByOwnerKeepsBoundaryRecords(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, &models.Order{
			OwnerID:       "owner-1",
			Status:        enums.OrderStatusReceived,
			PaymentMethod: enums.PaymentMethodUPI,
			TotalCents:    100 * (i + 1),
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	var seen []int
	var cursor *pagination.Cursor
	for {
		page, next, err := repo.ListByOwner(ctx, "owner-1", 2, cursor)
		require.NoError(t, err)
		for _, record := range page {
			seen = append(seen, record.TotalCents)
		}
		if next == nil {
			break
		}
		cursor = next
	}

	// Walking every page yields each order exactly once, newest first.
	assert.Equal(t, []int{500, 400, 300, 200, 100}, seen)
}

func TestOrdersRepoUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Order{
		OwnerID:       "owner-1",
		Status:        enums.OrderStatusReceived,
		PaymentMethod: enums.PaymentMethodCOD,
	})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, enums.OrderStatusPreparing))

	loaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPreparing, loaded.Status)
}
