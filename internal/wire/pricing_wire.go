package wire

import (
	"pakket-admin/internal/adaptor"
	"pakket-admin/internal/data/repository"
	"pakket-admin/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wirePricing configures tariff and sailing schedule routes
func wirePricing(
	r chi.Router,
	pricingHandler *adaptor.PricingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/shipping-prices", pricingHandler.ListPrices)
	r.Get("/api/shipping-schedules", pricingHandler.ListSchedules)

	// ==================== PROTECTED ROUTES ====================
	r.With(authenticated(repo, log)).Post("/api/price-quote", pricingHandler.Quote)

	r.Group(func(r chi.Router) {
		r.Use(authenticated(repo, log))
		r.Use(middleware.Admin(log))

		r.Put("/api/shipping-prices/{id}", pricingHandler.UpdatePrice)
		r.Put("/api/shipping-schedules/{id}", pricingHandler.UpdateSchedule)
	})
}
