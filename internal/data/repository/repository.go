package repository

import (
	"pakket-admin/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Session     SessionRepository
	UserLog     UserLogRepository
	Package     PackageRepository
	Reservation ReservationRepository
	Price       PriceRepository
	Schedule    ScheduleRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		UserLog:     NewUserLogRepository(db, log),
		Package:     NewPackageRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Price:       NewPriceRepository(db, log),
		Schedule:    NewScheduleRepository(db, log),
	}
}
