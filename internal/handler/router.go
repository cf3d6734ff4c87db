package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"clinic-booking-api/internal/httpx"
	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/store"
)

// Router assembles the full HTTP surface. The rate limiter covers only the
// credential endpoints.
func Router(h *Handler, st *store.Store, secret, frontendURL string, rl *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "clinic appointment api is running"})
	})

	r.Route("/api", func(r chi.Router) {
		// public
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(rl))
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})
		r.Post("/refresh", h.Refresh)
		r.Get("/slots", h.ListSlots)

		// authenticated
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(secret, st))
			r.Post("/book", h.Book)
			r.Post("/logout", h.Logout)

			r.With(middleware.RequireRole(model.RolePatient)).Get("/my-bookings", h.MyBookings)
			r.With(middleware.RequireRole(model.RoleAdmin)).Get("/all-bookings", h.AllBookings)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, "route not found")
	})

	return r
}
