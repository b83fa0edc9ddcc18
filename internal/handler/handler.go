// Package handler exposes the ordering core over HTTP. It contains no
// business logic: requests are decoded, delegated to the domain services,
// and the results (or errors) mapped back to JSON responses.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bellavista/ordering/internal/domain/auth"
	"github.com/bellavista/ordering/internal/domain/cart"
	"github.com/bellavista/ordering/internal/domain/checkout"
	"github.com/bellavista/ordering/internal/domain/membership"
	"github.com/bellavista/ordering/internal/domain/menu"
	"github.com/bellavista/ordering/internal/domain/order"
	"github.com/bellavista/ordering/internal/domain/profile"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// ImageBaseURL is prepended to relative image paths in menu responses.
	// When empty, image paths are returned as stored in the database.
	ImageBaseURL string
}

// Handler carries the domain dependencies for all HTTP routes.
type Handler struct {
	menu         menu.Repository
	carts        *cart.Manager
	checkout     *checkout.Service
	orders       order.Repository
	profiles     profile.Repository
	memberships  *membership.Service
	verifier     *auth.TokenVerifier
	imageBaseURL string
}

// New constructs a Handler with the required domain dependencies.
func New(
	cfg Config,
	menuRepo menu.Repository,
	carts *cart.Manager,
	checkoutSvc *checkout.Service,
	orders order.Repository,
	profiles profile.Repository,
	memberships *membership.Service,
	verifier *auth.TokenVerifier,
) *Handler {
	return &Handler{
		menu:         menuRepo,
		carts:        carts,
		checkout:     checkoutSvc,
		orders:       orders,
		profiles:     profiles,
		memberships:  memberships,
		verifier:     verifier,
		imageBaseURL: cfg.ImageBaseURL,
	}
}

// Routes builds the API router. The menu and tier catalog are public; every
// other route requires a bearer token.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", h.listMenu)
		r.Get("/menu/{itemID}", h.getMenuItem)
		r.Get("/vip/tiers", h.listTiers)

		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)

			r.Get("/cart", h.getCart)
			r.Post("/cart/items", h.addCartItem)
			r.Put("/cart/items/{itemID}", h.setCartQuantity)
			r.Delete("/cart/items/{itemID}", h.removeCartItem)

			r.Post("/checkout", h.confirmCheckout)
			r.Get("/orders", h.listOrders)
			r.Get("/orders/{orderID}", h.getOrder)

			r.Get("/profile", h.getProfile)
			r.Put("/profile", h.putProfile)

			r.Get("/vip/membership", h.getMembership)
			r.Post("/vip/membership", h.joinMembership)
			r.Delete("/vip/membership", h.cancelMembership)
		})
	})
	return r
}
