package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/feastly/feastly-backend/api/responses"
	"github.com/feastly/feastly-backend/api/validators"
	catalogsvc "github.com/feastly/feastly-backend/internal/catalog"
	"github.com/feastly/feastly-backend/pkg/db/models"
	pkgerrors "github.com/feastly/feastly-backend/pkg/errors"
	"github.com/feastly/feastly-backend/pkg/logger"
	"github.com/feastly/feastly-backend/pkg/money"
)

// MenuListByRestaurant returns a restaurant's menu. Unavailable items are
// hidden unless the include_unavailable query parameter is set.
func MenuListByRestaurant(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		includeUnavailable := r.URL.Query().Has("include_unavailable")
		records, err := svc.ListMenu(r.Context(), strings.TrimSpace(chi.URLParam(r, "restaurantID")), includeUnavailable)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]menuItemResponse, 0, len(records))
		for i := range records {
			out = append(out, newMenuItemResponse(&records[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// MenuItemGet returns a single menu item by record id or legacy code.
func MenuItemGet(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		itemRef := strings.TrimSpace(chi.URLParam(r, "itemID"))
		if itemRef == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "menu item id is required"))
			return
		}

		record, err := svc.GetMenuItem(r.Context(), itemRef)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newMenuItemResponse(record))
	}
}

// AdminMenuItemCreate adds an item to a restaurant's menu. The restaurant may
// be referenced by record id or legacy code.
func AdminMenuItemCreate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createMenuItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.CreateMenuItem(r.Context(), catalogsvc.CreateMenuItemInput{
			RestaurantRef: payload.RestaurantID,
			Name:          payload.Name,
			Description:   payload.Description,
			Image:         payload.Image,
			Category:      payload.Category,
			PriceCents:    payload.PriceCents,
			Available:     payload.Available,
			LegacyCode:    payload.LegacyCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newMenuItemResponse(record))
	}
}

// AdminMenuItemUpdate applies a partial update to an existing menu item.
func AdminMenuItemUpdate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		itemRef := strings.TrimSpace(chi.URLParam(r, "itemID"))
		if itemRef == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "menu item id is required"))
			return
		}

		var payload updateMenuItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.UpdateMenuItem(r.Context(), itemRef, catalogsvc.UpdateMenuItemInput{
			Name:        payload.Name,
			Description: payload.Description,
			Image:       payload.Image,
			Category:    payload.Category,
			PriceCents:  payload.PriceCents,
			Available:   payload.Available,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newMenuItemResponse(record))
	}
}

type createMenuItemRequest struct {
	RestaurantID string  `json:"restaurantId" validate:"required"`
	Name         string  `json:"name" validate:"required,min=1,max=200"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	Category     string  `json:"category"`
	PriceCents   int     `json:"price_cents" validate:"required,min=1"`
	Available    *bool   `json:"available"`
	LegacyCode   *string `json:"legacyCode"`
}

type updateMenuItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Category    *string `json:"category"`
	PriceCents  *int    `json:"price_cents" validate:"omitempty,min=1"`
	Available   *bool   `json:"available"`
}

type menuItemResponse struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Image        string    `json:"image,omitempty"`
	Category     string    `json:"category,omitempty"`
	PriceCents   int       `json:"price_cents"`
	Price        string    `json:"price"`
	Available    bool      `json:"available"`
	LegacyCode   *string   `json:"legacy_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newMenuItemResponse(record *models.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:           record.ID,
		RestaurantID: record.RestaurantID,
		Name:         record.Name,
		Description:  record.Description,
		Image:        record.Image,
		Category:     record.Category,
		PriceCents:   record.PriceCents,
		Price:        money.FormatCents(record.PriceCents),
		Available:    record.Available,
		LegacyCode:   record.LegacyCode,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}
