package wire

import (
	"pakket-admin/internal/adaptor"
	"pakket-admin/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePackage(
	r chi.Router,
	packageHandler *adaptor.PackageHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticated(repo, log))

		r.Post("/api/generate-package-number", packageHandler.GenerateNumber)
		r.Get("/api/package-statistics", packageHandler.Statistics)

		r.Route("/api/packages", func(r chi.Router) {
			r.Get("/", packageHandler.List) // GET /api/packages?page=1&per_page=20&all=true
			r.Post("/", packageHandler.Register)
			r.Get("/{packageNumber}", packageHandler.GetByNumber)
			r.Patch("/{packageNumber}/status", packageHandler.SetStatus)
			r.Patch("/{packageNumber}/price", packageHandler.UpdatePrice)
		})
	})
}
