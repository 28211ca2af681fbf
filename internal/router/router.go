package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"movie-catalog-api/internal/config"
	"movie-catalog-api/internal/handler"
	"movie-catalog-api/internal/middleware"
	"movie-catalog-api/internal/model"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Movie     *handler.MovieHandler
	Profile   *handler.ProfileHandler
	Watchlist *handler.WatchlistHandler
	Health    *handler.HealthHandler
}

type Observability interface {
	ObserveRequest(method string, route string, status int, elapsed time.Duration)
	Handler() http.Handler
}

func New(cfg *config.Config, auth *middleware.AuthMiddleware, h Handlers, obs Observability) http.Handler {
	r := chi.NewRouter()
	rateLimit := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.RealIP(cfg.TrustedProxies))
	// Compress wraps Logging so the logger sees the uncompressed error body.
	r.Use(chimiddleware.Compress(5, "application/json"))
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics(obs))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)

	r.Get("/health", h.Health.Check)
	r.Method(http.MethodGet, "/metrics", obs.Handler())

	writers := []model.Role{model.RoleEditor, model.RoleAdmin}

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(rateLimit.Handler)
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(a chi.Router) {
			a.Post("/register", h.Auth.Register)
			a.Post("/login", h.Auth.Login)
			a.Post("/refresh", h.Auth.Refresh)
			a.Post("/logout", h.Auth.Logout)
			a.With(auth.Authenticate).Get("/me", h.Auth.Me)
		})

		api.Route("/movies", func(m chi.Router) {
			m.Get("/", h.Movie.List)
			m.Get("/{id}", h.Movie.Get)
			m.With(auth.Authenticate, auth.RequireRoles(writers...)).Post("/", h.Movie.Create)
			m.With(auth.Authenticate, auth.RequireRoles(writers...)).Put("/{id}", h.Movie.Update)
			m.With(auth.Authenticate, auth.RequireRoles(model.RoleAdmin)).Delete("/{id}", h.Movie.Delete)
		})

		api.Route("/profiles", func(p chi.Router) {
			p.Use(auth.Authenticate)
			p.Get("/", h.Profile.List)
			p.Post("/", h.Profile.Create)
			p.Put("/{id}", h.Profile.Update)
			p.Delete("/{id}", h.Profile.Delete)
		})

		api.Route("/watchlist", func(wl chi.Router) {
			wl.Use(auth.Authenticate)
			wl.Get("/", h.Watchlist.Get)
			wl.Post("/", h.Watchlist.Apply)
			wl.Delete("/{movieId}", h.Watchlist.Remove)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(auth.Authenticate, auth.RequireRoles(model.RoleAdmin))
			admin.Get("/users", h.User.List)
			admin.Post("/users/{id}/roles", h.User.SetRoles)
		})
	})

	return r
}
