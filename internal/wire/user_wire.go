package wire

import (
	"pakket-admin/internal/adaptor"
	"pakket-admin/internal/data/repository"
	"pakket-admin/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user administration and activity log routes, admin only
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticated(repo, log))
		r.Use(middleware.Admin(log))

		r.Get("/api/users", userHandler.GetAllUsers)
		r.Post("/api/users", userHandler.CreateUser)
		r.Delete("/api/users/{id}", userHandler.DeleteUser)
		r.Put("/api/users/{id}/password", userHandler.ChangePassword)

		r.Get("/api/logs", userHandler.GetLogs) // GET /api/logs?limit=100
		r.Delete("/api/logs", userHandler.ClearLogs)
	})
}
