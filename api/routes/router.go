package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swarnimjewels/storefront-backend/api/controllers"
	"github.com/swarnimjewels/storefront-backend/api/middleware"
	"github.com/swarnimjewels/storefront-backend/internal/catalog"
	"github.com/swarnimjewels/storefront-backend/internal/dispatch"
	"github.com/swarnimjewels/storefront-backend/pkg/config"
	"github.com/swarnimjewels/storefront-backend/pkg/logger"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	DB         controllers.Pinger
	Cache      controllers.Pinger
	Catalog    catalog.Service
	Dispatcher *dispatch.Dispatcher
	Registry   *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DB, deps.Cache))
	})

	r.Route("/api/storefront", func(r chi.Router) {
		r.Get("/", controllers.StorefrontRead(deps.Catalog, deps.Logger))
		r.Post("/", controllers.StorefrontAction(deps.Dispatcher, deps.Logger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	return r
}
