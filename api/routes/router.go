package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luckbank/luckbank-backend/api/controllers"
	"github.com/luckbank/luckbank-backend/api/middleware"
	"github.com/luckbank/luckbank-backend/internal/accounts"
	"github.com/luckbank/luckbank-backend/internal/addresses"
	"github.com/luckbank/luckbank-backend/internal/auth"
	"github.com/luckbank/luckbank-backend/internal/documents"
	"github.com/luckbank/luckbank-backend/internal/users"
	"github.com/luckbank/luckbank-backend/pkg/auth/revocation"
	"github.com/luckbank/luckbank-backend/pkg/config"
	"github.com/luckbank/luckbank-backend/pkg/logger"
	"github.com/luckbank/luckbank-backend/pkg/metrics"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	Denylist    revocation.Store
	HTTPMetrics *metrics.HTTPMetrics
	Registry    prometheus.Gatherer

	AuthService     auth.Service
	UserService     users.Service
	AddressService  addresses.Service
	DocumentService documents.Service
	AccountService  accounts.Service
}

// NewRouter mounts the API routes.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger, p.HTTPMetrics),
		middleware.CORS(p.Config.CORS),
	)

	r.Get("/health_check", controllers.HealthCheck())
	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Post("/login/", controllers.AuthLogin(p.AuthService, p.Logger))
	r.Post("/refresh/", controllers.AuthRefresh(p.AuthService, p.Logger))
	r.Post("/logout/", controllers.AuthLogout(p.AuthService, p.Logger))

	// Onboarding is the only unauthenticated user route.
	r.Post("/users/", controllers.UserCreate(p.UserService, p.Logger))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(p.Config.JWT, p.Denylist, p.UserService, p.Logger))

		r.Get("/user_details/", controllers.UserDetail(p.UserService, p.Logger))

		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/", controllers.UserGet(p.UserService, p.Logger))
			r.Patch("/", controllers.UserUpdate(p.UserService, p.Logger))
			r.Delete("/", controllers.UserDelete(p.UserService, p.Logger))

			r.Route("/address", func(r chi.Router) {
				r.Get("/", controllers.AddressList(p.AddressService, p.Logger))
				r.Post("/", controllers.AddressCreate(p.AddressService, p.Logger))
				r.Get("/{addressId}/", controllers.AddressGet(p.AddressService, p.Logger))
				r.Patch("/{addressId}/", controllers.AddressUpdate(p.AddressService, p.Logger))
				r.Delete("/{addressId}/", controllers.AddressDelete(p.AddressService, p.Logger))
			})

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", controllers.DocumentList(p.DocumentService, p.Logger))
				r.Post("/", controllers.DocumentCreate(p.DocumentService, p.Logger))
				r.Get("/{documentId}/", controllers.DocumentGet(p.DocumentService, p.Logger))
				r.Patch("/{documentId}/", controllers.DocumentUpdate(p.DocumentService, p.Logger))
				r.Delete("/{documentId}/", controllers.DocumentDelete(p.DocumentService, p.Logger))
			})

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", controllers.AccountList(p.AccountService, p.Logger))
				r.Post("/", controllers.AccountCreate(p.AccountService, p.Logger))
				r.Get("/{accountId}/", controllers.AccountGet(p.AccountService, p.Logger))
				r.Patch("/{accountId}/", controllers.AccountUpdate(p.AccountService, p.Logger))
				r.Delete("/{accountId}/", controllers.AccountDelete(p.AccountService, p.Logger))
			})
		})
	})

	return r
}
