package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adithyanarayan/stockline-backend/api/controllers"
	"github.com/adithyanarayan/stockline-backend/api/middleware"
	"github.com/adithyanarayan/stockline-backend/internal/auth"
	"github.com/adithyanarayan/stockline-backend/internal/cart"
	"github.com/adithyanarayan/stockline-backend/internal/catalog"
	"github.com/adithyanarayan/stockline-backend/internal/directory"
	"github.com/adithyanarayan/stockline-backend/internal/orders"
	"github.com/adithyanarayan/stockline-backend/pkg/auth/session"
	"github.com/adithyanarayan/stockline-backend/pkg/config"
	"github.com/adithyanarayan/stockline-backend/pkg/db"
	"github.com/adithyanarayan/stockline-backend/pkg/enums"
	"github.com/adithyanarayan/stockline-backend/pkg/logger"
	"github.com/adithyanarayan/stockline-backend/pkg/metrics"
	"github.com/adithyanarayan/stockline-backend/pkg/redis"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	DB               db.Pinger
	Redis            *redis.Client
	SessionManager   *session.Manager
	AuthService      auth.Service
	CatalogService   catalog.Service
	CartService      cart.Service
	OrdersService    orders.Service
	DirectoryService directory.Service
	Metrics          *metrics.HTTPMetrics
	MetricsGatherer  prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.Idempotency(deps.Redis, logg))

		r.Post("/auth/logout", controllers.AuthLogout(deps.AuthService, logg))
		r.With(middleware.RequireRole(logg, string(enums.UserRoleAdmin), string(enums.UserRoleSalesman))).
			Post("/auth/users", controllers.AuthCreateUser(deps.AuthService, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.CatalogService, logg))
			r.Get("/{productID}", controllers.ProductDetail(deps.CatalogService, logg))
		})

		r.Route("/admin/products", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, string(enums.UserRoleAdmin)))
			r.Post("/", controllers.AdminProductCreate(deps.CatalogService, logg))
			r.Put("/{productID}", controllers.AdminProductUpdate(deps.CatalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.CartService, logg))
			r.Post("/items", controllers.CartAddItem(deps.CartService, logg))
			r.Put("/items", controllers.CartUpdateQuantity(deps.CartService, logg))
			r.Delete("/items", controllers.CartRemoveItem(deps.CartService, logg))
			r.Delete("/", controllers.CartClear(deps.CartService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(middleware.RequireRole(logg, string(enums.UserRoleSalesman), string(enums.UserRoleCustomer))).
				Post("/", controllers.OrderSubmit(deps.OrdersService, logg))
			r.Post("/remove-shortfall-items", controllers.OrderRemoveShortfallItems(deps.OrdersService, logg))
			r.Get("/", controllers.OrderList(deps.OrdersService, logg))
			r.Get("/{orderID}", controllers.OrderDetail(deps.OrdersService, logg))
			r.With(middleware.RequireRole(logg, string(enums.UserRoleAdmin), string(enums.UserRoleSalesman), string(enums.UserRoleWorker))).
				Patch("/{orderID}/status", controllers.OrderUpdateStatus(deps.OrdersService, logg))
		})

		r.Route("/directory", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, string(enums.UserRoleSalesman)))
			r.Get("/customers", controllers.DirectoryCustomers(deps.DirectoryService, logg))
			r.Get("/workers", controllers.DirectoryWorkers(deps.DirectoryService, logg))
		})
	})

	return r
}
