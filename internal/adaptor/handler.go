package adaptor

import (
	"pakket-admin/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Package *PackageHandler
	Pricing *PricingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, service.Activity, log),
		Package: NewPackageHandler(service.Package, log),
		Pricing: NewPricingHandler(service.Pricing, service.Schedule, log),
	}
}
