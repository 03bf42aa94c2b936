package cart

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/feastly/feastly-backend/internal/identity"
	"github.com/feastly/feastly-backend/pkg/db/models"
	pkgerrors "github.com/feastly/feastly-backend/pkg/errors"
	"github.com/feastly/feastly-backend/pkg/metrics"
)

// CandidateLine carries the caller-supplied attributes for an add. The cart
// accepts price, name and image as given and never re-reads the live catalog;
// any quantity on the input is ignored since each add contributes one unit.
type CandidateLine struct {
	ProductID      identity.FlexID
	Name           string
	Image          string
	UnitPriceCents int
	Quantity       int
}

// Service exposes cart read and mutation operations. Every mutation returns
// the cart in its post-mutation state.
type Service interface {
	Get(ctx context.Context, owner identity.FlexID) (*models.Cart, error)
	AddItem(ctx context.Context, owner identity.FlexID, input CandidateLine) (*models.Cart, error)
	SetQuantity(ctx context.Context, owner, product identity.FlexID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, owner, product identity.FlexID) (*models.Cart, error)
	Clear(ctx context.Context, owner identity.FlexID) (*models.Cart, error)
}

type service struct {
	repo  Repository
	stats *metrics.StorefrontMetrics
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo Repository, stats *metrics.StorefrontMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &service{repo: repo, stats: stats}, nil
}

// Get returns the owner's cart. Owners without a persisted cart get an
// empty representation rather than an error.
func (s *service) Get(ctx context.Context, owner identity.FlexID) (*models.Cart, error) {
	ownerKey, err := ownerKeyFor(owner)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByOwner(ctx, ownerKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Cart{OwnerID: ownerKey}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	return record, nil
}

// AddItem merges the candidate line into the cart. A line already holding the
// same canonical product key has its quantity incremented by one and keeps the
// attributes captured when it was first added; otherwise the candidate is
// appended as a new line with quantity one.
func (s *service) AddItem(ctx context.Context, owner identity.FlexID, input CandidateLine) (*models.Cart, error) {
	ownerKey, err := ownerKeyFor(owner)
	if err != nil {
		return nil, err
	}
	productKey := input.ProductID.Canonical()
	if productKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product identifier is required")
	}
	if input.UnitPriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price must not be negative")
	}

	record, err := s.getOrCreate(ctx, ownerKey)
	if err != nil {
		return nil, err
	}

	if line := findLine(record, productKey); line != nil {
		line.Quantity++
		if _, err := s.repo.UpdateLine(ctx, line); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "incrementing cart line")
		}
		s.stats.IncCartMutation("add_item")
		return record, nil
	}

	line := &models.CartLine{
		CartID:         record.ID,
		ProductID:      input.ProductID.String(),
		ProductKey:     productKey,
		Name:           input.Name,
		Image:          input.Image,
		UnitPriceCents: input.UnitPriceCents,
		Quantity:       1,
		Position:       nextPosition(record),
	}
	if _, err := s.repo.CreateLine(ctx, line); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "appending cart line")
	}
	record.Lines = append(record.Lines, *line)
	s.stats.IncCartMutation("add_item")
	return record, nil
}

// SetQuantity replaces a line's quantity. Zero or negative quantities remove
// the line. A missing cart or line makes the call a no-op.
func (s *service) SetQuantity(ctx context.Context, owner, product identity.FlexID, quantity int) (*models.Cart, error) {
	ownerKey, err := ownerKeyFor(owner)
	if err != nil {
		return nil, err
	}
	productKey := product.Canonical()
	if productKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product identifier is required")
	}

	record, err := s.repo.FindByOwner(ctx, ownerKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Cart{OwnerID: ownerKey}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	line := findLine(record, productKey)
	if line == nil {
		return record, nil
	}

	if quantity <= 0 {
		return s.dropLine(ctx, record, line, "set_quantity")
	}

	line.Quantity = quantity
	if _, err := s.repo.UpdateLine(ctx, line); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart line")
	}
	s.stats.IncCartMutation("set_quantity")
	return record, nil
}

// RemoveItem drops the product's line from the cart if present.
func (s *service) RemoveItem(ctx context.Context, owner, product identity.FlexID) (*models.Cart, error) {
	ownerKey, err := ownerKeyFor(owner)
	if err != nil {
		return nil, err
	}
	productKey := product.Canonical()
	if productKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product identifier is required")
	}

	record, err := s.repo.FindByOwner(ctx, ownerKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Cart{OwnerID: ownerKey}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	line := findLine(record, productKey)
	if line == nil {
		return record, nil
	}
	return s.dropLine(ctx, record, line, "remove_item")
}

// Clear removes every line from the owner's cart.
func (s *service) Clear(ctx context.Context, owner identity.FlexID) (*models.Cart, error) {
	ownerKey, err := ownerKeyFor(owner)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.FindByOwner(ctx, ownerKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Cart{OwnerID: ownerKey}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	if err := s.repo.DeleteLinesByCart(ctx, record.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
	}
	record.Lines = nil
	s.stats.IncCartMutation("clear")
	return record, nil
}

func (s *service) getOrCreate(ctx context.Context, ownerKey string) (*models.Cart, error) {
	record, err := s.repo.FindByOwner(ctx, ownerKey)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}

	created, err := s.repo.Create(ctx, &models.Cart{OwnerID: ownerKey})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart")
	}
	return created, nil
}

func (s *service) dropLine(ctx context.Context, record *models.Cart, line *models.CartLine, op string) (*models.Cart, error) {
	// line points into record.Lines; the repo may rearrange that slice, so
	// hold on to the id rather than the pointer.
	lineID := line.ID
	if err := s.repo.DeleteLine(ctx, lineID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart line")
	}
	kept := record.Lines[:0]
	for _, existing := range record.Lines {
		if existing.ID != lineID {
			kept = append(kept, existing)
		}
	}
	record.Lines = kept
	s.stats.IncCartMutation(op)
	return record, nil
}

func ownerKeyFor(owner identity.FlexID) (string, error) {
	key := owner.Canonical()
	if key == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "owner identifier is required")
	}
	return key, nil
}

func findLine(record *models.Cart, productKey string) *models.CartLine {
	for i := range record.Lines {
		if record.Lines[i].ProductKey == productKey {
			return &record.Lines[i]
		}
	}
	return nil
}

func nextPosition(record *models.Cart) int {
	max := -1
	for _, line := range record.Lines {
		if line.Position > max {
			max = line.Position
		}
	}
	return max + 1
}
