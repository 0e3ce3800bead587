package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goodnessaig1/gidolee-video-share/internal/handler"
	"github.com/goodnessaig1/gidolee-video-share/internal/httputil"
	"github.com/goodnessaig1/gidolee-video-share/internal/metrics"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	authmw "github.com/goodnessaig1/gidolee-video-share/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ContentHandler *handler.ContentHandler
	CommentHandler *handler.CommentHandler
	LikeHandler    *handler.LikeHandler
	ShareHandler   *handler.ShareHandler
	GenreHandler   *handler.GenreHandler
	MediaHandler   *handler.MediaHandler
	Tokens         authmw.TokenParser
	// RateLimiter is optional; nil disables write throttling.
	RateLimiter *authmw.RateLimiter
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(authmw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	requireAuth := authmw.AuthMiddleware(cfg.Tokens)
	optionalAuth := authmw.OptionalAuthMiddleware(cfg.Tokens)
	adminOnly := authmw.RequireRole(model.RoleAdmin)

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/logout", cfg.AuthHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/", cfg.AuthHandler.List)
				r.Get("/{id}", cfg.AuthHandler.GetByID)
				r.Patch("/{id}", cfg.AuthHandler.Update)
				r.Delete("/{id}", cfg.AuthHandler.Delete)
			})
		})

		r.With(requireAuth).Get("/user/userProfile", cfg.UserHandler.Profile)

		r.Route("/content", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(optionalAuth)
				r.Get("/", cfg.ContentHandler.List)
				r.Get("/search", cfg.ContentHandler.Search)
				r.Get("/genre/{genreId}", cfg.ContentHandler.ListByGenre)
				r.Get("/user/{userId}", cfg.ContentHandler.ListByUser)
				r.Get("/{id}", cfg.ContentHandler.GetByID)
			})

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", cfg.ContentHandler.Create)
				r.Put("/{id}", cfg.ContentHandler.Update)
				r.Delete("/{id}", cfg.ContentHandler.Delete)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/content/{contentId}", cfg.CommentHandler.ListByContent)
			r.Get("/user/{userId}", cfg.CommentHandler.ListByUser)
			r.Get("/{id}/replies", cfg.CommentHandler.ListReplies)
			r.Get("/{id}", cfg.CommentHandler.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", cfg.CommentHandler.Create)
				r.Put("/{id}", cfg.CommentHandler.Update)
				r.Delete("/{id}", cfg.CommentHandler.Delete)
			})
		})

		r.Route("/likes", func(r chi.Router) {
			r.Get("/count", cfg.LikeHandler.Count)
			r.Get("/users", cfg.LikeHandler.LikedUsers)
			r.Get("/user/{userId}", cfg.LikeHandler.ByUser)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/toggle", cfg.LikeHandler.Toggle)
				r.Get("/check", cfg.LikeHandler.Check)
				r.Delete("/", cfg.LikeHandler.Remove)
			})
		})

		r.Route("/shares", func(r chi.Router) {
			r.Get("/content/{contentId}", cfg.ShareHandler.ListByContent)
			r.Get("/content/{contentId}/count", cfg.ShareHandler.Count)
			r.Get("/content/{contentId}/stats", cfg.ShareHandler.Stats)
			r.Get("/user/{userId}", cfg.ShareHandler.ListByUser)
			r.Get("/platform/{platform}", cfg.ShareHandler.ListByPlatform)
			r.With(requireAuth).Post("/", cfg.ShareHandler.Create)
		})

		r.Route("/genres", func(r chi.Router) {
			r.Get("/", cfg.GenreHandler.List)
			r.Get("/active", cfg.GenreHandler.Active)
			r.Get("/popular", cfg.GenreHandler.Popular)
			r.Get("/search", cfg.GenreHandler.Search)
			r.Get("/slug/{slug}", cfg.GenreHandler.GetBySlug)
			r.Get("/{id}", cfg.GenreHandler.GetByID)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth, adminOnly)
				r.Post("/", cfg.GenreHandler.Create)
				r.Put("/{id}", cfg.GenreHandler.Update)
				r.Delete("/{id}", cfg.GenreHandler.Delete)
				r.Delete("/{id}/hard", cfg.GenreHandler.HardDelete)
			})
		})

		r.With(requireAuth).Post("/upload", cfg.MediaHandler.Upload)
	})

	return r
}
