package usecase

import (
	"pakket-admin/internal/data/repository"
	"pakket-admin/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	User       UserService
	Activity   ActivityService
	Allocation AllocationService
	Package    PackageService
	Pricing    PricingService
	Schedule   ScheduleService
}

func NewService(repo *repository.Repository, notifier Notifier, config *utils.Config, log *zap.Logger) *Service {
	activity := NewActivityService(repo.UserLog, log)
	allocation := NewAllocationService(repo.Package, repo.Reservation, config.Reservation, log)

	return &Service{
		Auth:       NewAuthService(repo, activity, config, log),
		User:       NewUserService(repo.User, repo.Session, activity, log),
		Activity:   activity,
		Allocation: allocation,
		Package:    NewPackageService(repo, allocation, activity, notifier, config, log),
		Pricing:    NewPricingService(repo.Price, activity, log),
		Schedule:   NewScheduleService(repo.Schedule, activity, log),
	}
}
