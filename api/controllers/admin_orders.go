package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/feastly/feastly-backend/api/responses"
	"github.com/feastly/feastly-backend/api/validators"
	ordersvc "github.com/feastly/feastly-backend/internal/orders"
	"github.com/feastly/feastly-backend/pkg/enums"
	pkgerrors "github.com/feastly/feastly-backend/pkg/errors"
	"github.com/feastly/feastly-backend/pkg/logger"
)

// AdminOrderStatusUpdate moves an order through its lifecycle. The override
// flag forces a change the status machine would reject and is always audited.
func AdminOrderStatusUpdate(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderRef := strings.TrimSpace(chi.URLParam(r, "orderID"))
		if orderRef == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id is required"))
			return
		}

		var payload statusUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		next, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
			return
		}

		record, err := svc.UpdateStatus(r.Context(), orderRef, next, payload.Override)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(record))
	}
}

type statusUpdateRequest struct {
	Status   string `json:"status" validate:"required"`
	Override bool   `json:"override"`
}
