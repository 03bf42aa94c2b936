package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/feastly/feastly-backend/api/responses"
	"github.com/feastly/feastly-backend/api/validators"
	"github.com/feastly/feastly-backend/internal/identity"
	ordersvc "github.com/feastly/feastly-backend/internal/orders"
	"github.com/feastly/feastly-backend/pkg/db/models"
	pkgerrors "github.com/feastly/feastly-backend/pkg/errors"
	"github.com/feastly/feastly-backend/pkg/logger"
	"github.com/feastly/feastly-backend/pkg/money"
	"github.com/feastly/feastly-backend/pkg/pagination"
	"github.com/feastly/feastly-backend/pkg/types"
)

// OrderCreate snapshots the owner's cart into an immutable order and clears
// the cart in the same transaction.
func OrderCreate(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ordersvc.CreateOrderInput{
			Owner:         payload.OwnerID,
			PaymentMethod: payload.PaymentMethod,
		}
		if payload.DeliveryAddress != nil {
			input.DeliveryAddress = *payload.DeliveryAddress
		}

		record, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newOrderResponse(record))
	}
}

// OrderGet returns one order scoped to its owner.
func OrderGet(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		owner := identity.FlexID(strings.TrimSpace(r.URL.Query().Get("owner_id")))
		if owner.IsZero() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "owner_id query parameter required"))
			return
		}

		record, err := svc.GetForOwner(r.Context(), chi.URLParam(r, "orderID"), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(record))
	}
}

// OrdersListForOwner returns the owner's order history, newest first, as a
// cursor-paginated page.
func OrdersListForOwner(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		owner := ownerFromPath(r, "ownerID")
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		result, err := svc.ListForOwner(r.Context(), owner, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderListResponse(result))
	}
}

type createOrderRequest struct {
	OwnerID         identity.FlexID        `json:"ownerId" validate:"required"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
	DeliveryAddress *types.DeliveryAddress `json:"deliveryAddress,omitempty"`
}

type orderResponse struct {
	ID               uuid.UUID             `json:"id"`
	OwnerID          string                `json:"owner_id"`
	Status           string                `json:"status"`
	PaymentMethod    string                `json:"payment_method"`
	Items            []orderItemResponse   `json:"items"`
	SubtotalCents    int                   `json:"subtotal_cents"`
	Subtotal         string                `json:"subtotal"`
	DeliveryFeeCents int                   `json:"delivery_fee_cents"`
	DeliveryFee      string                `json:"delivery_fee"`
	TotalCents       int                   `json:"total_cents"`
	Total            string                `json:"total"`
	DeliveryAddress  types.DeliveryAddress `json:"delivery_address,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

type orderItemResponse struct {
	ID             uuid.UUID `json:"id"`
	ProductID      string    `json:"product_id"`
	Name           string    `json:"name"`
	Image          string    `json:"image,omitempty"`
	UnitPriceCents int       `json:"unit_price_cents"`
	UnitPrice      string    `json:"unit_price"`
	Quantity       int       `json:"quantity"`
	LineTotalCents int       `json:"line_total_cents"`
	LineTotal      string    `json:"line_total"`
}

type orderListResponse struct {
	Orders     []orderResponse `json:"orders"`
	NextCursor *string         `json:"next_cursor,omitempty"`
}

func newOrderResponse(record *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(record.Lines))
	for _, line := range record.Lines {
		items = append(items, orderItemResponse{
			ID:             line.ID,
			ProductID:      line.ProductID,
			Name:           line.Name,
			Image:          line.Image,
			UnitPriceCents: line.UnitPriceCents,
			UnitPrice:      money.FormatCents(line.UnitPriceCents),
			Quantity:       line.Quantity,
			LineTotalCents: line.LineTotalCents,
			LineTotal:      money.FormatCents(line.LineTotalCents),
		})
	}

	return orderResponse{
		ID:               record.ID,
		OwnerID:          record.OwnerID,
		Status:           record.Status.String(),
		PaymentMethod:    string(record.PaymentMethod),
		Items:            items,
		SubtotalCents:    record.SubtotalCents,
		Subtotal:         money.FormatCents(record.SubtotalCents),
		DeliveryFeeCents: record.DeliveryFeeCents,
		DeliveryFee:      money.FormatCents(record.DeliveryFeeCents),
		TotalCents:       record.TotalCents,
		Total:            money.FormatCents(record.TotalCents),
		DeliveryAddress:  record.DeliveryAddress,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}

func newOrderListResponse(result *ordersvc.ListResult) orderListResponse {
	orders := make([]orderResponse, 0, len(result.Orders))
	for i := range result.Orders {
		orders = append(orders, newOrderResponse(&result.Orders[i]))
	}

	resp := orderListResponse{Orders: orders}
	if result.NextCursor != nil {
		encoded := pagination.EncodeCursor(*result.NextCursor)
		resp.NextCursor = &encoded
	}
	return resp
}
