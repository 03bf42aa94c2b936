package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feastly/feastly-backend/api/responses"
	"github.com/feastly/feastly-backend/api/validators"
	cartsvc "github.com/feastly/feastly-backend/internal/cart"
	"github.com/feastly/feastly-backend/internal/identity"
	"github.com/feastly/feastly-backend/pkg/db/models"
	pkgerrors "github.com/feastly/feastly-backend/pkg/errors"
	"github.com/feastly/feastly-backend/pkg/logger"
	"github.com/feastly/feastly-backend/pkg/money"
)

// CartGet returns the owner's cart, materializing an empty one when none exists.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		owner := ownerFromPath(r, "ownerID")
		record, err := svc.Get(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

// CartAddItem adds one unit of an item to the owner's cart. Lines that
// reference the same item merge rather than duplicate.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.Item.toCandidate()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.AddItem(r.Context(), payload.OwnerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

// CartSetQuantity replaces a line's quantity. Zero and below removes the line.
func CartSetQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity required"))
			return
		}

		record, err := svc.SetQuantity(r.Context(), payload.OwnerID, payload.ItemID, *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

// CartRemoveItem drops a line from the owner's cart regardless of quantity.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		owner := ownerFromPath(r, "ownerID")
		product := identity.FlexID(strings.TrimSpace(chi.URLParam(r, "productID")))

		record, err := svc.RemoveItem(r.Context(), owner, product)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

// CartClear empties the owner's cart in one call.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		owner := ownerFromPath(r, "ownerID")
		record, err := svc.Clear(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartResponse(record))
	}
}

func ownerFromPath(r *http.Request, param string) identity.FlexID {
	return identity.FlexID(strings.TrimSpace(chi.URLParam(r, param)))
}

type addItemRequest struct {
	OwnerID identity.FlexID `json:"ownerId" validate:"required"`
	Item    itemPayload     `json:"item" validate:"required"`
}

type itemPayload struct {
	ProductID identity.FlexID `json:"productId" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

func (p itemPayload) toCandidate() (cartsvc.CandidateLine, error) {
	cents, err := money.CentsFromDecimal(p.UnitPrice)
	if err != nil {
		return cartsvc.CandidateLine{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit price")
	}
	return cartsvc.CandidateLine{
		ProductID:      p.ProductID,
		Name:           p.Name,
		Image:          p.Image,
		UnitPriceCents: cents,
		Quantity:       p.Quantity,
	}, nil
}

type cartQuantityRequest struct {
	OwnerID  identity.FlexID `json:"ownerId" validate:"required"`
	ItemID   identity.FlexID `json:"productId" validate:"required"`
	Quantity *int            `json:"quantity"`
}

type cartResponse struct {
	ID            uuid.UUID          `json:"id"`
	OwnerID       string             `json:"owner_id"`
	Items         []cartItemResponse `json:"items"`
	SubtotalCents int                `json:"subtotal_cents"`
	Subtotal      string             `json:"subtotal"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type cartItemResponse struct {
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

func newCartResponse(record *models.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(record.Lines))
	subtotal := 0
	for _, line := range record.Lines {
		lineTotal := line.UnitPriceCents * line.Quantity
		subtotal += lineTotal
		items = append(items, cartItemResponse{
			ID:             line.ID,
			ProductID:      line.ProductID,
			Name:           line.Name,
			Image:          line.Image,
			UnitPriceCents: line.UnitPriceCents,
			UnitPrice:      money.FormatCents(line.UnitPriceCents),
			Quantity:       line.Quantity,
			LineTotalCents: lineTotal,
			LineTotal:      money.FormatCents(lineTotal),
		})
	}

	return cartResponse{
		ID:            record.ID,
		OwnerID:       record.OwnerID,
		Items:         items,
		SubtotalCents: subtotal,
		Subtotal:      money.FormatCents(subtotal),
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}
