package server

import (
	"net/http"

	"rentstock/internal/auth"
	"rentstock/internal/customer"
	"rentstock/internal/product"
	"rentstock/internal/rental"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(
	authCtrl *auth.Controller,
	tokens *auth.TokenManager,
	productCtrl *product.Controller,
	customerCtrl *customer.Controller,
	rentalCtrl *rental.Controller,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/token", authCtrl.HandleToken)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens, logger))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", productCtrl.HandleList)
				r.Post("/", productCtrl.HandleCreate)
				r.Put("/{productId}", productCtrl.HandleUpdate)
				r.Delete("/{productId}", productCtrl.HandleDelete)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", customerCtrl.HandleList)
				r.Post("/", customerCtrl.HandleCreate)
				r.Put("/{customerId}", customerCtrl.HandleUpdate)
				r.Delete("/{customerId}", customerCtrl.HandleDelete)
			})

			r.Route("/rentals", func(r chi.Router) {
				r.Get("/", rentalCtrl.HandleList)
				r.Post("/", rentalCtrl.HandleCreate)
				r.Put("/{rentalId}", rentalCtrl.HandleUpdate)
				r.Delete("/{rentalId}", rentalCtrl.HandleDelete)
			})
		})
	})

	return r
}
