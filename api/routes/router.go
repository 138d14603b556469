package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecomarket/storefront/api/controllers"
	"github.com/ecomarket/storefront/api/middleware"
	cartsvc "github.com/ecomarket/storefront/internal/cart"
	checkoutsvc "github.com/ecomarket/storefront/internal/checkout"
	"github.com/ecomarket/storefront/internal/policy"
	"github.com/ecomarket/storefront/internal/session"
	"github.com/ecomarket/storefront/pkg/config"
	"github.com/ecomarket/storefront/pkg/kv"
	"github.com/ecomarket/storefront/pkg/logger"
	"github.com/ecomarket/storefront/pkg/metrics"
	"github.com/ecomarket/storefront/pkg/redis"
	"github.com/ecomarket/storefront/pkg/upstream"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	storePinger kv.Pinger,
	redisClient *redis.Client,
	backend *upstream.Client,
	sessions *session.Manager,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
		cfg.RateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.RateLimit.RegisterWindow,
		cfg.RateLimit.RegisterIPLimit,
		cfg.RateLimit.RegisterEmailLimit,
	)

	loginLimit := middleware.AuthRateLimit(loginPolicy, nil, logg)
	registerLimit := middleware.AuthRateLimit(registerPolicy, nil, logg)
	if redisClient != nil {
		loginLimit = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
		registerLimit = middleware.AuthRateLimit(registerPolicy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, storePinger, backend, logg))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(sessions, cfg.Session, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.Gate(policy.CapLogin, logg), loginLimit).
				Post("/login", controllers.Login(backend, sessions, logg))
			r.With(middleware.Gate(policy.CapRegister, logg), registerLimit).
				Post("/register", controllers.Register(backend, logg))
			r.Post("/logout", controllers.Logout(sessions, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.Gate(policy.CapBrowse, logg))
			r.Get("/", controllers.ProductsBrowse(backend, logg))
			r.Get("/categories", controllers.ProductsCategories(backend, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Gate(policy.CapCart, logg))
			r.Get("/", controllers.CartView(cartService, logg))
			r.Get("/count", controllers.CartCount(cartService, logg))
			r.Post("/items", controllers.CartAdd(cartService, logg))
			r.Put("/items/{productID}", controllers.CartSetQuantity(cartService, logg))
			r.Delete("/items/{productID}", controllers.CartRemove(cartService, logg))
		})

		r.With(middleware.Gate(policy.CapCheckout, logg)).
			Post("/checkout", controllers.CheckoutSubmit(checkoutService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.Gate(policy.CapOrders, logg))
			r.Get("/", controllers.OrdersList(backend, logg))
			r.Post("/cancel/{itemID}", controllers.OrdersCancelItem(backend, logg))
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Use(middleware.Gate(policy.CapProfile, logg))
			r.Get("/", controllers.AddressesList(backend, logg))
			r.Post("/", controllers.AddressesCreate(backend, logg))
			r.Put("/{addressID}/default", controllers.AddressesSetDefault(backend, logg))
			r.Delete("/{addressID}", controllers.AddressesDelete(backend, logg))
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(middleware.Gate(policy.CapProfile, logg))
			r.Get("/", controllers.ProfileGet(backend, logg))
			r.Put("/", controllers.ProfileUpdate(backend, logg))
		})

		r.Route("/seller", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.Gate(policy.CapSellerProfile, logg))
				r.Get("/profile", controllers.SellerProfileGet(backend, logg))
				r.Put("/profile", controllers.SellerProfilePut(backend, logg))
				r.Get("/status", controllers.SellerStatusGet(backend, logg))
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.Gate(policy.CapSellerProducts, logg))
				r.Get("/products", controllers.SellerProductsList(backend, logg))
				r.Delete("/products/{productID}", controllers.SellerProductsDelete(backend, logg))
				r.Get("/orders", controllers.SellerOrdersList(backend, logg))
				r.Put("/orders/{itemID}/status", controllers.SellerOrderStatusPut(backend, logg))
			})
			r.With(middleware.Gate(policy.CapAddProduct, logg)).
				Post("/products", controllers.SellerProductsCreate(backend, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Gate(policy.CapVerifySellers, logg))
			r.Get("/sellers", controllers.AdminSellersList(backend, logg))
			r.Post("/sellers/{sellerID}/verify", controllers.AdminVerifySeller(backend, logg))
		})
	})

	return r
}
