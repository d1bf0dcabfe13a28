package wire

import (
	"pakket-admin/internal/adaptor"
	"pakket-admin/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(authenticated(repo, log)).Post("/api/logout", authHandler.Logout)
	r.With(authenticated(repo, log)).Get("/api/auth/user", authHandler.CurrentUser)
}
