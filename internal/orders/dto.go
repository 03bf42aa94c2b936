package orders

import (
	"github.com/feastly/feastly-backend/internal/identity"
	"github.com/feastly/feastly-backend/pkg/db/models"
	"github.com/feastly/feastly-backend/pkg/pagination"
	"github.com/feastly/feastly-backend/pkg/types"
)

// CreateOrderInput captures the payload required to place an order.
type CreateOrderInput struct {
	Owner           identity.FlexID
	PaymentMethod   string
	DeliveryAddress types.DeliveryAddress
}

// ListResult carries one page of orders plus the cursor for the next page.
type ListResult struct {
	Orders     []models.Order
	NextCursor *pagination.Cursor
}
