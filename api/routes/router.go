package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/brewcart/api/controllers"
	cartcontrollers "github.com/angelmondragon/brewcart/api/controllers/cart"
	productcontrollers "github.com/angelmondragon/brewcart/api/controllers/products"
	"github.com/angelmondragon/brewcart/api/middleware"
	"github.com/angelmondragon/brewcart/internal/catalog"
	"github.com/angelmondragon/brewcart/internal/session"
	"github.com/angelmondragon/brewcart/pkg/config"
	"github.com/angelmondragon/brewcart/pkg/logger"
	"github.com/angelmondragon/brewcart/pkg/redis"
)

// Dependencies are the services the router hands to controllers.
type Dependencies struct {
	Sessions session.Service
	// Idempotency is nil when no redis is configured; keys are then ignored.
	Idempotency redis.IdempotencyStore
	Ready       map[string]controllers.Pinger
	Metrics     http.Handler
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Ready))
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	currency := cfg.Catalog.Currency
	svc := deps.Sessions
	var cat *catalog.Catalog
	if svc != nil {
		cat = svc.Catalog()
	}
	idempotent := middleware.Idempotency(deps.Idempotency, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/menu", func(r chi.Router) {
			r.Get("/categories", controllers.MenuCategories(cat, logg))
			r.Get("/products", controllers.MenuProducts(cat, currency, logg))
			r.Get("/options", controllers.MenuOptions(cat, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Route("/products/{index}", func(r chi.Router) {
				r.Get("/", productcontrollers.ProductFetch(svc, currency, logg))
				r.Put("/size", productcontrollers.ProductSelectSize(svc, currency, logg))
				r.Put("/milk", productcontrollers.ProductSelectMilk(svc, currency, logg))
				r.Post("/extras/{extraId}/toggle", productcontrollers.ProductToggleExtra(svc, currency, logg))
				r.Post("/qty", productcontrollers.ProductStepQty(svc, currency, logg))
				r.With(idempotent).Post("/add-to-cart", cartcontrollers.CartAddSaved(svc, currency, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.CartFetch(svc, currency, logg))
				r.With(idempotent).Post("/items", cartcontrollers.CartAddItem(svc, currency, logg))
				r.Post("/items/{key}/qty", cartcontrollers.CartAdjustQty(svc, currency, logg))
				r.Delete("/items/{key}", cartcontrollers.CartRemoveItem(svc, currency, logg))
			})

			r.With(idempotent).Post("/checkout", cartcontrollers.Checkout(svc, currency, logg))
			r.Get("/order", cartcontrollers.OrderFetch(svc, currency, logg))
			r.Delete("/order", cartcontrollers.OrderClear(svc, currency, logg))
		})
	})

	return r
}
