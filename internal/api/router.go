package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/contactos-api/internal/api/handlers"
	"github.com/isdelr/contactos-api/internal/services"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// Options controls the parts of the router that vary between deployments.
type Options struct {
	AllowedOrigins []string
	// AuthEnabled puts the contact routes behind the bearer token check.
	AuthEnabled bool
}

// NewRouter creates and configures a new Chi router.
func NewRouter(contactService services.ContactServiceProvider, authService services.AuthServiceProvider, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	contactHandler := handlers.NewContactHandler(contactService)
	authHandler := handlers.NewAuthHandler(authService)

	r.Get("/", handlers.Root)

	r.Post("/register/", authHandler.Register)
	r.Get("/token/", authHandler.Token)
	r.Get("/login", authHandler.Login)

	r.Route("/contactos", func(r chi.Router) {
		if opts.AuthEnabled {
			r.Use(authHandler.RequireToken)
		}
		r.Get("/", contactHandler.GetAll)
		r.Post("/", contactHandler.Create)
		r.Route("/{email}", func(r chi.Router) {
			r.Get("/", contactHandler.Get)
			r.Put("/", contactHandler.Update)
			r.Delete("/", contactHandler.Delete)
		})
	})

	return r
}
