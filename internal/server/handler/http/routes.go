package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/middleware"
	"github.com/postboard/postboard/internal/web"
)

// NewRouter constructs the HTTP handler serving the Postboard site.
//
// Routes:
//
//	GET  /                → blogHandler.Index
//	POST /                → blogHandler.Home
//	GET  /signin          → authHandler.SignIn
//	GET  /signup          → authHandler.SignUp
//	GET  /manage-account  → authHandler.ManageAccount
//	POST /create-account  → authHandler.CreateAccount
//	POST /access-account  → authHandler.AccessAccount
//	POST /signout         → authHandler.SignOut
//	POST /new             → blogHandler.Create
//	POST /delete          → blogHandler.Delete
//	POST /edit            → blogHandler.Edit
//	POST /update          → blogHandler.Update
//	POST /filter          → blogHandler.Filter
//	POST /weather         → weatherHandler.Show
//	GET  /feed            → feedHandler.RSS
//	GET  /healthz         → healthHandler.Health
//	GET  /metrics         → prometheus exposition
//	GET  /static/*        → embedded assets
//
// Middleware chain (applied in order):
//  1. RequestID          : tags each request
//  2. WithRequestLogging : logs method, path, status and latency
//  3. WithMetrics        : records prometheus request metrics
//  4. Recoverer          : turns panics into 500s
//  5. WithSession        : loads the browser session (page routes only)
func NewRouter(
	authHandler *AuthHandler,
	blogHandler *BlogHandler,
	weatherHandler *WeatherHandler,
	feedHandler *FeedHandler,
	healthHandler *HealthHandler,
	sessions middleware.SessionLoader,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithMetrics)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/healthz", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Method(http.MethodGet, "/static/*", http.StripPrefix("/static/", web.Static()))
	r.Get("/feed", feedHandler.RSS)

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithSession(sessions))

		r.Get("/", blogHandler.Index)
		r.Post("/", blogHandler.Home)

		r.Get("/signin", authHandler.SignIn)
		r.Get("/signup", authHandler.SignUp)
		r.Get("/manage-account", authHandler.ManageAccount)
		r.Post("/create-account", authHandler.CreateAccount)
		r.Post("/access-account", authHandler.AccessAccount)
		r.Post("/signout", authHandler.SignOut)

		r.Post("/new", blogHandler.Create)
		r.Post("/delete", blogHandler.Delete)
		r.Post("/edit", blogHandler.Edit)
		r.Post("/update", blogHandler.Update)
		r.Post("/filter", blogHandler.Filter)

		r.Post("/weather", weatherHandler.Show)
	})

	return r
}
