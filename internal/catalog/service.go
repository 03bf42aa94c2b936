package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/feastly/feastly-backend/internal/identity"
	"github.com/feastly/feastly-backend/pkg/db"
	"github.com/feastly/feastly-backend/pkg/db/models"
	pkgerrors "github.com/feastly/feastly-backend/pkg/errors"
)

// Service exposes restaurant and menu catalog operations.
type Service interface {
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	GetRestaurant(ctx context.Context, ref string) (*models.Restaurant, error)
	CreateRestaurant(ctx context.Context, input CreateRestaurantInput) (*models.Restaurant, error)
	ListMenu(ctx context.Context, restaurantRef string, includeUnavailable bool) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, ref string) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, input CreateMenuItemInput) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, ref string, input UpdateMenuItemInput) (*models.MenuItem, error)
}

type service struct {
	restaurants RestaurantRepository
	items       MenuItemRepository
}

// NewService builds a catalog service backed by the provided repositories.
func NewService(restaurants RestaurantRepository, items MenuItemRepository) (Service, error) {
	if restaurants == nil {
		return nil, fmt.Errorf("restaurant repository required")
	}
	if items == nil {
		return nil, fmt.Errorf("menu item repository required")
	}
	return &service{restaurants: restaurants, items: items}, nil
}

// CreateRestaurantInput captures the payload for a new restaurant.
type CreateRestaurantInput struct {
	Name             string
	Cuisine          string
	Rating           float64
	DeliveryTime     string
	Image            string
	Description      string
	DeliveryFeeCents int
	MinOrderCents    int
	Areas            []string
	LegacyCode       *string
}

// CreateMenuItemInput captures the payload for a new menu item.
type CreateMenuItemInput struct {
	RestaurantRef string
	Name          string
	Description   string
	Image         string
	Category      string
	PriceCents    int
	Available     *bool
	LegacyCode    *string
}

// UpdateMenuItemInput carries optional field updates for an existing item.
type UpdateMenuItemInput struct {
	Name        *string
	Description *string
	Image       *string
	Category    *string
	PriceCents  *int
	Available   *bool
}

func (s *service) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	records, err := s.restaurants.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing restaurants")
	}
	return records, nil
}

func (s *service) GetRestaurant(ctx context.Context, ref string) (*models.Restaurant, error) {
	return s.resolveRestaurant(ctx, ref)
}

func (s *service) CreateRestaurant(ctx context.Context, input CreateRestaurantInput) (*models.Restaurant, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant name is required")
	}

	if input.Rating < 0 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 0 and 5")
	}
	if input.DeliveryFeeCents < 0 || input.MinOrderCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fee and minimum order must not be negative")
	}

	record := &models.Restaurant{
		Name:             strings.TrimSpace(input.Name),
		Cuisine:          strings.TrimSpace(input.Cuisine),
		Rating:           input.Rating,
		DeliveryTime:     strings.TrimSpace(input.DeliveryTime),
		Image:            input.Image,
		Description:      input.Description,
		DeliveryFeeCents: input.DeliveryFeeCents,
		MinOrderCents:    input.MinOrderCents,
		Areas:            pq.StringArray(input.Areas),
		LegacyCode:       normalizeLegacyCode(input.LegacyCode),
	}

	created, err := s.restaurants.Create(ctx, record)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "restaurant legacy code already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating restaurant")
	}
	return created, nil
}

func (s *service) ListMenu(ctx context.Context, restaurantRef string, includeUnavailable bool) ([]models.MenuItem, error) {
	restaurant, err := s.resolveRestaurant(ctx, restaurantRef)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing menu items")
	}
	if includeUnavailable {
		return items, nil
	}

	visible := items[:0]
	for _, item := range items {
		if item.Available {
			visible = append(visible, item)
		}
	}
	return visible, nil
}

func (s *service) GetMenuItem(ctx context.Context, ref string) (*models.MenuItem, error) {
	return s.resolveMenuItem(ctx, ref)
}

func (s *service) CreateMenuItem(ctx context.Context, input CreateMenuItemInput) (*models.MenuItem, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item name is required")
	}
	if input.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item price must be non-negative")
	}

	restaurant, err := s.resolveRestaurant(ctx, input.RestaurantRef)
	if err != nil {
		return nil, err
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}

	record := &models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		Image:        input.Image,
		Category:     input.Category,
		PriceCents:   input.PriceCents,
		Available:    available,
		LegacyCode:   normalizeLegacyCode(input.LegacyCode),
	}

	created, err := s.items.Create(ctx, record)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "menu item legacy code already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating menu item")
	}
	return created, nil
}

func (s *service) UpdateMenuItem(ctx context.Context, ref string, input UpdateMenuItemInput) (*models.MenuItem, error) {
	record, err := s.resolveMenuItem(ctx, ref)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item name cannot be blank")
		}
		record.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		record.Description = *input.Description
	}
	if input.Image != nil {
		record.Image = *input.Image
	}
	if input.Category != nil {
		record.Category = *input.Category
	}
	if input.PriceCents != nil {
		if *input.PriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item price must be non-negative")
		}
		record.PriceCents = *input.PriceCents
	}
	if input.Available != nil {
		record.Available = *input.Available
	}

	updated, err := s.items.Update(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating menu item")
	}
	return updated, nil
}

// resolveRestaurant looks a restaurant up by canonical UUID or legacy code.
func (s *service) resolveRestaurant(ctx context.Context, ref string) (*models.Restaurant, error) {
	key := identity.Canonicalize(ref)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant identifier is required")
	}

	var (
		record *models.Restaurant
		err    error
	)
	if identity.IsRecordKey(key) {
		record, err = s.restaurants.FindByID(ctx, uuid.MustParse(key))
	} else {
		record, err = s.restaurants.FindByLegacyCode(ctx, key)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving restaurant")
	}
	return record, nil
}

// resolveMenuItem looks a menu item up by canonical UUID or legacy code.
func (s *service) resolveMenuItem(ctx context.Context, ref string) (*models.MenuItem, error) {
	key := identity.Canonicalize(ref)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item identifier is required")
	}

	var (
		record *models.MenuItem
		err    error
	)
	if identity.IsRecordKey(key) {
		record, err = s.items.FindByID(ctx, uuid.MustParse(key))
	} else {
		record, err = s.items.FindByLegacyCode(ctx, key)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolving menu item")
	}
	return record, nil
}

func normalizeLegacyCode(code *string) *string {
	if code == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*code)
	if trimmed == "" {
		return nil
	}
	canonical := identity.Canonicalize(trimmed)
	return &canonical
}
