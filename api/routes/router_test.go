package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	cartsvc "github.com/feastly/feastly-backend/internal/cart"
	catalogsvc "github.com/feastly/feastly-backend/internal/catalog"
	"github.com/feastly/feastly-backend/internal/identity"
	ordersvc "github.com/feastly/feastly-backend/internal/orders"
	"github.com/feastly/feastly-backend/pkg/config"
	"github.com/feastly/feastly-backend/pkg/db/models"
	"github.com/feastly/feastly-backend/pkg/enums"
	pkgerrors "github.com/feastly/feastly-backend/pkg/errors"
	"github.com/feastly/feastly-backend/pkg/pagination"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubCatalog struct{}

func (stubCatalog) ListRestaurants(context.Context) ([]models.Restaurant, error) {
	return []models.Restaurant{{ID: uuid.New(), Name: "Spice Route"}}, nil
}
func (stubCatalog) GetRestaurant(context.Context, string) (*models.Restaurant, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
}
func (stubCatalog) CreateRestaurant(context.Context, catalogsvc.CreateRestaurantInput) (*models.Restaurant, error) {
	return &models.Restaurant{ID: uuid.New(), Name: "Spice Route"}, nil
}
func (stubCatalog) ListMenu(context.Context, string, bool) ([]models.MenuItem, error) {
	return nil, nil
}
func (stubCatalog) GetMenuItem(context.Context, string) (*models.MenuItem, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
}
func (stubCatalog) CreateMenuItem(context.Context, catalogsvc.CreateMenuItemInput) (*models.MenuItem, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
}
func (stubCatalog) UpdateMenuItem(context.Context, string, catalogsvc.UpdateMenuItemInput) (*models.MenuItem, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
}

type stubCart struct{}

func (stubCart) Get(_ context.Context, owner identity.FlexID) (*models.Cart, error) {
	return &models.Cart{ID: uuid.New(), OwnerID: owner.Canonical()}, nil
}
func (stubCart) AddItem(_ context.Context, owner identity.FlexID, _ cartsvc.CandidateLine) (*models.Cart, error) {
	return &models.Cart{ID: uuid.New(), OwnerID: owner.Canonical()}, nil
}
func (stubCart) SetQuantity(_ context.Context, owner, _ identity.FlexID, _ int) (*models.Cart, error) {
	return &models.Cart{ID: uuid.New(), OwnerID: owner.Canonical()}, nil
}
func (stubCart) RemoveItem(_ context.Context, owner, _ identity.FlexID) (*models.Cart, error) {
	return &models.Cart{ID: uuid.New(), OwnerID: owner.Canonical()}, nil
}
func (stubCart) Clear(_ context.Context, owner identity.FlexID) (*models.Cart, error) {
	return &models.Cart{ID: uuid.New(), OwnerID: owner.Canonical()}, nil
}

type stubOrders struct{}

func (stubOrders) Create(context.Context, ordersvc.CreateOrderInput) (*models.Order, error) {
	return &models.Order{ID: uuid.New(), OwnerID: "42", Status: enums.OrderStatusReceived, PaymentMethod: enums.PaymentMethodUPI}, nil
}
func (stubOrders) GetForOwner(context.Context, string, identity.FlexID) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}
func (stubOrders) ListForOwner(context.Context, identity.FlexID, pagination.Params) (*ordersvc.ListResult, error) {
	return &ordersvc.ListResult{}, nil
}
func (stubOrders) UpdateStatus(context.Context, string, enums.OrderStatus, bool) (*models.Order, error) {
	return &models.Order{ID: uuid.New(), OwnerID: "42", Status: enums.OrderStatusPreparing, PaymentMethod: enums.PaymentMethodUPI}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
	}
}

func newTestRouter() http.Handler {
	return NewRouter(testConfig(), nil, stubPinger{}, stubPinger{}, nil, stubCatalog{}, stubCart{}, stubOrders{}, nil)
}

func TestRouterHealthEndpoints(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
		if resp.Header().Get("X-Feastly-Env") != "test" {
			t.Fatalf("%s: expected env header", path)
		}
	}
}

func TestRouterReadyFailsWhenDependencyDown(t *testing.T) {
	router := NewRouter(testConfig(), nil, stubPinger{err: context.DeadlineExceeded}, stubPinger{}, nil, stubCatalog{}, stubCart{}, stubOrders{}, nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestRouterStorefrontRoutesWired(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/v1/restaurants", "", http.StatusOK},
		{http.MethodGet, "/api/v1/restaurants/missing", "", http.StatusNotFound},
		{http.MethodGet, "/api/v1/menu/restaurant/missing", "", http.StatusOK},
		{http.MethodGet, "/api/v1/menu/" + uuid.NewString(), "", http.StatusNotFound},
		{http.MethodGet, "/api/v1/cart/42", "", http.StatusOK},
		{http.MethodPost, "/api/v1/cart/items", `{"ownerId":"42","item":{"productId":7,"name":"Samosa","unitPrice":"3.00"}}`, http.StatusOK},
		{http.MethodPut, "/api/v1/cart/items", `{"ownerId":"42","productId":7,"quantity":2}`, http.StatusOK},
		{http.MethodDelete, "/api/v1/cart/42/items/7", "", http.StatusOK},
		{http.MethodDelete, "/api/v1/cart/42", "", http.StatusOK},
		{http.MethodPost, "/api/v1/orders", `{"ownerId":"42","paymentMethod":"upi"}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/orders/user/42", "", http.StatusOK},
		{http.MethodGet, "/api/v1/orders/" + uuid.NewString(), "", http.StatusBadRequest},
		{http.MethodPost, "/api/admin/v1/restaurants", `{"name":"Spice Route"}`, http.StatusCreated},
		{http.MethodPut, "/api/admin/v1/orders/" + uuid.NewString() + "/status", `{"status":"preparing"}`, http.StatusOK},
	}

	for _, tt := range tests {
		var req *http.Request
		if tt.body != "" {
			req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(tt.method, tt.path, nil)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tt.want {
			t.Fatalf("%s %s: expected %d got %d (%s)", tt.method, tt.path, tt.want, resp.Code, resp.Body.String())
		}
	}
}

func TestRouterAttachesRequestID(t *testing.T) {
	router := newTestRouter()

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/restaurants", nil))

	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}

	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected one restaurant, got %d", len(envelope.Data))
	}
}
