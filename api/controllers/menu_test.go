package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/feastly/feastly-backend/pkg/db/models"
	pkgerrors "github.com/feastly/feastly-backend/pkg/errors"
)

func TestMenuListByRestaurantFormatsPrices(t *testing.T) {
	restaurantID := uuid.New()
	svc := &stubCatalogService{items: []models.MenuItem{
		{ID: uuid.New(), RestaurantID: restaurantID, Name: "Paneer Tikka", PriceCents: 850, Available: true},
	}}
	handler := MenuListByRestaurant(svc, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/menu/restaurant/"+restaurantID.String(), nil), map[string]string{"restaurantID": restaurantID.String()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []menuItemResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected 1 item, got %d", len(envelope.Data))
	}
	if envelope.Data[0].Price != "8.50" {
		t.Fatalf("expected price 8.50, got %s", envelope.Data[0].Price)
	}
}

func TestMenuListByRestaurantIncludeUnavailableFlag(t *testing.T) {
	restaurantID := uuid.New()
	svc := &stubCatalogService{}
	handler := MenuListByRestaurant(svc, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/menu/restaurant/"+restaurantID.String(), nil), map[string]string{"restaurantID": restaurantID.String()})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if svc.gotIncludeUnavailable {
		t.Fatal("expected unavailable items hidden by default")
	}

	req = withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/menu/restaurant/"+restaurantID.String()+"?include_unavailable=1", nil), map[string]string{"restaurantID": restaurantID.String()})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !svc.gotIncludeUnavailable {
		t.Fatal("expected include_unavailable to be forwarded")
	}
}

func TestMenuItemGetByLegacyCode(t *testing.T) {
	record := &models.MenuItem{ID: uuid.New(), RestaurantID: uuid.New(), Name: "Masala Dosa", PriceCents: 650, Available: true}
	svc := &stubCatalogService{item: record}
	handler := MenuItemGet(svc, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/menu/41", nil), map[string]string{"itemID": "41"})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotRef != "41" {
		t.Fatalf("expected ref 41, got %q", svc.gotRef)
	}

	var envelope struct {
		Data menuItemResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Price != "6.50" {
		t.Fatalf("expected price 6.50, got %s", envelope.Data.Price)
	}
}

func TestMenuItemGetNotFound(t *testing.T) {
	svc := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")}
	handler := MenuItemGet(svc, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/menu/"+uuid.NewString(), nil), map[string]string{"itemID": uuid.NewString()})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestMenuListByRestaurantNotFound(t *testing.T) {
	svc := &stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")}
	handler := MenuListByRestaurant(svc, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/menu/restaurant/missing", nil), map[string]string{"restaurantID": "missing"})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAdminMenuItemCreateForwardsInput(t *testing.T) {
	record := &models.MenuItem{ID: uuid.New(), RestaurantID: uuid.New(), Name: "Paneer Tikka", PriceCents: 850, Available: true}
	svc := &stubCatalogService{item: record}
	handler := AdminMenuItemCreate(svc, nil)

	body := strings.NewReader(`{"restaurantId":"rest-9","name":"Paneer Tikka","category":"starters","price_cents":850}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/menu", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.gotCreateInput.RestaurantRef != "rest-9" {
		t.Fatalf("expected restaurant ref rest-9, got %q", svc.gotCreateInput.RestaurantRef)
	}
	if svc.gotCreateInput.PriceCents != 850 {
		t.Fatalf("expected price 850, got %d", svc.gotCreateInput.PriceCents)
	}
}

func TestAdminMenuItemCreateRejectsZeroPrice(t *testing.T) {
	handler := AdminMenuItemCreate(&stubCatalogService{}, nil)

	body := strings.NewReader(`{"restaurantId":"rest-9","name":"Paneer Tikka","price_cents":0}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/menu", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminMenuItemUpdatePartialFields(t *testing.T) {
	record := &models.MenuItem{ID: uuid.New(), RestaurantID: uuid.New(), Name: "Paneer Tikka", PriceCents: 900, Available: false}
	svc := &stubCatalogService{item: record}
	handler := AdminMenuItemUpdate(svc, nil)

	itemID := record.ID.String()
	body := strings.NewReader(`{"price_cents":900,"available":false}`)
	req := withURLParams(httptest.NewRequest(http.MethodPut, "/api/admin/v1/menu/"+itemID, body), map[string]string{"itemID": itemID})
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotUpdateInput.PriceCents == nil || *svc.gotUpdateInput.PriceCents != 900 {
		t.Fatalf("expected price update forwarded")
	}
	if svc.gotUpdateInput.Available == nil || *svc.gotUpdateInput.Available {
		t.Fatalf("expected availability update forwarded")
	}
	if svc.gotUpdateInput.Name != nil {
		t.Fatalf("expected untouched fields to stay nil")
	}
}
