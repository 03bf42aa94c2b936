package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feastly/feastly-backend/api/controllers"
	"github.com/feastly/feastly-backend/api/middleware"
	"github.com/feastly/feastly-backend/internal/cart"
	"github.com/feastly/feastly-backend/internal/catalog"
	"github.com/feastly/feastly-backend/internal/orders"
	"github.com/feastly/feastly-backend/pkg/config"
	"github.com/feastly/feastly-backend/pkg/logger"
	pkgredis "github.com/feastly/feastly-backend/pkg/redis"
)

// NewRouter assembles the HTTP surface: storefront reads, cart and order
// operations, the admin catalog and lifecycle routes, and the operational
// endpoints.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisPinger controllers.Pinger,
	idempotencyStore pkgredis.IdempotencyStore,
	catalogService catalog.Service,
	cartService cart.Service,
	ordersService orders.Service,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"postgres": dbPinger,
			"redis":    redisPinger,
		}))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if idempotencyStore != nil {
			r.Use(middleware.Idempotency(idempotencyStore, logg))
		}

		r.Get("/restaurants", controllers.RestaurantsList(catalogService, logg))
		r.Get("/restaurants/{restaurantID}", controllers.RestaurantGet(catalogService, logg))
		r.Get("/menu/restaurant/{restaurantID}", controllers.MenuListByRestaurant(catalogService, logg))
		r.Get("/menu/{itemID}", controllers.MenuItemGet(catalogService, logg))

		r.Get("/cart/{ownerID}", controllers.CartGet(cartService, logg))
		r.Post("/cart/items", controllers.CartAddItem(cartService, logg))
		r.Put("/cart/items", controllers.CartSetQuantity(cartService, logg))
		r.Delete("/cart/{ownerID}/items/{productID}", controllers.CartRemoveItem(cartService, logg))
		r.Delete("/cart/{ownerID}", controllers.CartClear(cartService, logg))

		r.Post("/orders", controllers.OrderCreate(ordersService, logg))
		r.Get("/orders/user/{ownerID}", controllers.OrdersListForOwner(ordersService, logg))
		r.Get("/orders/{orderID}", controllers.OrderGet(ordersService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		if idempotencyStore != nil {
			r.Use(middleware.Idempotency(idempotencyStore, logg))
		}

		r.Post("/restaurants", controllers.AdminRestaurantCreate(catalogService, logg))
		r.Post("/menu", controllers.AdminMenuItemCreate(catalogService, logg))
		r.Put("/menu/{itemID}", controllers.AdminMenuItemUpdate(catalogService, logg))
		r.Put("/orders/{orderID}/status", controllers.AdminOrderStatusUpdate(ordersService, logg))
	})

	return r
}
