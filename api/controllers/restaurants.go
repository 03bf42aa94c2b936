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

// RestaurantsList returns every restaurant on the platform.
func RestaurantsList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		records, err := svc.ListRestaurants(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]restaurantResponse, 0, len(records))
		for i := range records {
			out = append(out, newRestaurantResponse(&records[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// RestaurantGet resolves one restaurant by record id or legacy code.
func RestaurantGet(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		record, err := svc.GetRestaurant(r.Context(), strings.TrimSpace(chi.URLParam(r, "restaurantID")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newRestaurantResponse(record))
	}
}

// AdminRestaurantCreate registers a new restaurant.
func AdminRestaurantCreate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createRestaurantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.CreateRestaurant(r.Context(), catalogsvc.CreateRestaurantInput{
			Name:             payload.Name,
			Cuisine:          payload.Cuisine,
			Rating:           payload.Rating,
			DeliveryTime:     payload.DeliveryTime,
			Image:            payload.Image,
			Description:      payload.Description,
			DeliveryFeeCents: payload.DeliveryFeeCents,
			MinOrderCents:    payload.MinOrderCents,
			Areas:            payload.Areas,
			LegacyCode:       payload.LegacyCode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newRestaurantResponse(record))
	}
}

type createRestaurantRequest struct {
	Name             string   `json:"name" validate:"required,min=1,max=200"`
	Cuisine          string   `json:"cuisine"`
	Rating           float64  `json:"rating" validate:"min=0,max=5"`
	DeliveryTime     string   `json:"delivery_time"`
	Image            string   `json:"image"`
	Description      string   `json:"description"`
	DeliveryFeeCents int      `json:"delivery_fee_cents" validate:"min=0"`
	MinOrderCents    int      `json:"min_order_cents" validate:"min=0"`
	Areas            []string `json:"areas"`
	LegacyCode       *string  `json:"legacyCode"`
}

type restaurantResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Cuisine          string    `json:"cuisine,omitempty"`
	Rating           float64   `json:"rating"`
	DeliveryTime     string    `json:"delivery_time,omitempty"`
	Image            string    `json:"image,omitempty"`
	Description      string    `json:"description,omitempty"`
	DeliveryFeeCents int       `json:"delivery_fee_cents"`
	DeliveryFee      string    `json:"delivery_fee"`
	MinOrderCents    int       `json:"min_order_cents"`
	MinOrder         string    `json:"min_order"`
	Areas            []string  `json:"areas"`
	LegacyCode       *string   `json:"legacy_code,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func newRestaurantResponse(record *models.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:               record.ID,
		Name:             record.Name,
		Cuisine:          record.Cuisine,
		Rating:           record.Rating,
		DeliveryTime:     record.DeliveryTime,
		Image:            record.Image,
		Description:      record.Description,
		DeliveryFeeCents: record.DeliveryFeeCents,
		DeliveryFee:      money.FormatCents(record.DeliveryFeeCents),
		MinOrderCents:    record.MinOrderCents,
		MinOrder:         money.FormatCents(record.MinOrderCents),
		Areas:            append([]string(nil), record.Areas...),
		LegacyCode:       record.LegacyCode,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}
