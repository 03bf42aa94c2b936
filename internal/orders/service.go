package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feastly/feastly-backend/internal/cart"
	"github.com/feastly/feastly-backend/internal/identity"
	"github.com/feastly/feastly-backend/pkg/db/models"
	"github.com/feastly/feastly-backend/pkg/enums"
	pkgerrors "github.com/feastly/feastly-backend/pkg/errors"
	"github.com/feastly/feastly-backend/pkg/logger"
	"github.com/feastly/feastly-backend/pkg/metrics"
	"github.com/feastly/feastly-backend/pkg/pagination"
	"github.com/feastly/feastly-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes order placement and lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	GetForOwner(ctx context.Context, orderRef string, owner identity.FlexID) (*models.Order, error)
	ListForOwner(ctx context.Context, owner identity.FlexID, params pagination.Params) (*ListResult, error)
	UpdateStatus(ctx context.Context, orderRef string, next enums.OrderStatus, override bool) (*models.Order, error)
}

type service struct {
	repo             Repository
	carts            cart.Repository
	tx               txRunner
	logg             *logger.Logger
	stats            *metrics.StorefrontMetrics
	deliveryFeeCents int
}

// NewService builds an orders service backed by the provided stack.
func NewService(repo Repository, carts cart.Repository, tx txRunner, logg *logger.Logger, stats *metrics.StorefrontMetrics, deliveryFeeCents int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if deliveryFeeCents < 0 {
		return nil, fmt.Errorf("delivery fee must be non-negative")
	}
	return &service{
		repo:             repo,
		carts:            carts,
		tx:               tx,
		logg:             logg,
		stats:            stats,
		deliveryFeeCents: deliveryFeeCents,
	}, nil
}

// Create snapshots the owner's cart into an immutable order and clears the
// cart. Both writes happen in one transaction so a failure leaves the cart
// untouched and no order behind.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	ownerKey := input.Owner.Canonical()
	if ownerKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner identifier is required")
	}

	method, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported payment method")
	}

	var created *models.Order
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.carts.WithTx(tx)
		orderRepo := s.repo.WithTx(tx)

		record, err := cartRepo.FindByOwner(ctx, ownerKey)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
		}
		if len(record.Lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
		}

		order := buildSnapshot(ownerKey, method, input.DeliveryAddress, record, s.deliveryFeeCents)
		if _, err := orderRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting order")
		}
		if err := cartRepo.DeleteLinesByCart(ctx, record.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
		}

		created = order
		return nil
	})
	if txErr != nil {
		if appErr := pkgerrors.As(txErr); appErr != nil {
			return nil, appErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "placing order")
	}

	s.stats.IncOrderCreated()
	ctx = s.logg.WithOrderID(s.logg.WithOwnerID(ctx, ownerKey), created.ID.String())
	s.logg.Info(ctx, "order placed")
	return created, nil
}

// GetForOwner loads one order scoped to its owner. Orders belonging to a
// different owner surface as not found.
func (s *service) GetForOwner(ctx context.Context, orderRef string, owner identity.FlexID) (*models.Order, error) {
	ownerKey := owner.Canonical()
	if ownerKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner identifier is required")
	}

	orderID, err := parseOrderRef(orderRef)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByIDAndOwner(ctx, orderID, ownerKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return record, nil
}

// ListForOwner returns the owner's orders newest first with cursor pagination.
func (s *service) ListForOwner(ctx context.Context, owner identity.FlexID, params pagination.Params) (*ListResult, error) {
	ownerKey := owner.Canonical()
	if ownerKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner identifier is required")
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	records, next, err := s.repo.ListByOwner(ctx, ownerKey, params.Limit, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return &ListResult{Orders: records, NextCursor: next}, nil
}

// UpdateStatus advances an order through its lifecycle. Transitions that the
// status machine rejects fail unless the caller sets the override flag, in
// which case the forced change is logged for audit.
func (s *service) UpdateStatus(ctx context.Context, orderRef string, next enums.OrderStatus, override bool) (*models.Order, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	orderID, err := parseOrderRef(orderRef)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	if record.Status == next {
		return record, nil
	}

	if !record.Status.CanTransitionTo(next) {
		if !override {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move order from %s to %s", record.Status, next))
		}
		auditCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id":    record.ID.String(),
			"from_status": record.Status.String(),
			"to_status":   next.String(),
		})
		s.logg.Warn(auditCtx, "order status forced outside normal progression")
	}

	if err := s.repo.UpdateStatus(ctx, record.ID, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	record.Status = next
	s.stats.IncStatusChange(next.String(), override)
	return record, nil
}

func buildSnapshot(ownerKey string, method enums.PaymentMethod, address types.DeliveryAddress, record *models.Cart, feeCents int) *models.Order {
	order := &models.Order{
		OwnerID:          ownerKey,
		Status:           enums.OrderStatusReceived,
		PaymentMethod:    method,
		DeliveryFeeCents: feeCents,
		DeliveryAddress:  address,
	}

	subtotal := 0
	for i, line := range record.Lines {
		lineTotal := line.UnitPriceCents * line.Quantity
		subtotal += lineTotal
		order.Lines = append(order.Lines, models.OrderLine{
			ProductID:      line.ProductID,
			ProductKey:     line.ProductKey,
			Name:           line.Name,
			Image:          line.Image,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
			LineTotalCents: lineTotal,
			Position:       i,
		})
	}

	order.SubtotalCents = subtotal
	order.TotalCents = subtotal + feeCents
	return order
}

func parseOrderRef(ref string) (uuid.UUID, error) {
	key := identity.Canonicalize(ref)
	if key == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "order identifier is required")
	}
	if !identity.IsRecordKey(key) {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return uuid.MustParse(key), nil
}
