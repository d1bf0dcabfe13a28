package wire

import (
	"net/http"

	"pakket-admin/internal/adaptor"
	"pakket-admin/internal/data/repository"
	"pakket-admin/internal/notify"
	"pakket-admin/internal/usecase"
	"pakket-admin/pkg/middleware"
	"pakket-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled router and the services it needs at runtime
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
	Hub     *notify.Hub
}

// Wiring builds services, handlers and routes
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	hub := notify.NewHub(logger)

	service := usecase.NewService(repo, hub, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, hub, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
		Hub:     hub,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	hub *notify.Hub,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))
	r.Use(middleware.ClientInfo)

	// Apply routes
	wireAuth(r, handler.Auth, repo, logger)
	wireUser(r, handler.User, repo, logger)
	wirePackage(r, handler.Package, repo, logger)
	wirePricing(r, handler.Pricing, repo, logger)

	r.Get("/ws", hub.ServeWS)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

// authenticated returns the session middleware chain
func authenticated(repo *repository.Repository, log *zap.Logger) func(http.Handler) http.Handler {
	return middleware.AuthSession(repo.Session, repo.User, log)
}
