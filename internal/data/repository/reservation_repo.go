package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pakket-admin/internal/data/entity"
	"pakket-admin/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	// ReleaseExpired deletes reservations that expired before now and reports how many.
	ReleaseExpired(ctx context.Context, now time.Time) (int64, error)
	// Reserve inserts the reservation, or returns ErrDuplicate when the code is
	// already reserved or already a package.
	Reserve(ctx context.Context, reservation *entity.PackageNumberReservation) error
	// Exists reports whether a live reservation holds packageNumber at now.
	Exists(ctx context.Context, packageNumber string, now time.Time) (bool, error)
	FindByNumber(ctx context.Context, packageNumber string) (*entity.PackageNumberReservation, error)
	DeleteByNumber(ctx context.Context, packageNumber string) (int64, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) ReleaseExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM package_number_reservations WHERE expires_at < $1`

	result, err := r.db.Exec(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to release expired reservations", zap.Error(err))
		return 0, fmt.Errorf("release expired reservations: %w", err)
	}

	released := result.RowsAffected()
	if released > 0 {
		r.log.Debug("Released expired reservations", zap.Int64("count", released))
	}

	return released, nil
}

func (r *reservationRepository) Reserve(ctx context.Context, reservation *entity.PackageNumberReservation) error {
	query := `
		INSERT INTO package_number_reservations (id, package_number, user_id, expires_at, created_at)
		SELECT $1::uuid, $2::varchar, $3::uuid, $4::timestamptz, $5::timestamptz
		WHERE NOT EXISTS (SELECT 1 FROM packages WHERE package_number = $2)
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.PackageNumber,
		reservation.UserID,
		reservation.ExpiresAt,
		reservation.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("reserve %s: %w", reservation.PackageNumber, ErrDuplicate)
		}
		r.log.Error("Failed to reserve package number",
			zap.Error(err),
			zap.String("package_number", reservation.PackageNumber),
		)
		return fmt.Errorf("reserve %s: %w", reservation.PackageNumber, err)
	}

	// Nothing inserted: the code was registered as a package in the meantime
	if result.RowsAffected() == 0 {
		return fmt.Errorf("reserve %s: %w", reservation.PackageNumber, ErrDuplicate)
	}

	return nil
}

func (r *reservationRepository) Exists(ctx context.Context, packageNumber string, now time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM package_number_reservations
			WHERE package_number = $1 AND expires_at >= $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, packageNumber, now).Scan(&exists); err != nil {
		r.log.Error("Failed to check reservation",
			zap.Error(err),
			zap.String("package_number", packageNumber),
		)
		return false, fmt.Errorf("check reservation %s: %w", packageNumber, err)
	}

	return exists, nil
}

func (r *reservationRepository) FindByNumber(ctx context.Context, packageNumber string) (*entity.PackageNumberReservation, error) {
	query := `
		SELECT id, package_number, user_id, expires_at, created_at
		FROM package_number_reservations
		WHERE package_number = $1
	`

	var res entity.PackageNumberReservation
	err := r.db.QueryRow(ctx, query, packageNumber).Scan(
		&res.ID,
		&res.PackageNumber,
		&res.UserID,
		&res.ExpiresAt,
		&res.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation",
			zap.Error(err),
			zap.String("package_number", packageNumber),
		)
		return nil, fmt.Errorf("find reservation %s: %w", packageNumber, err)
	}

	return &res, nil
}

func (r *reservationRepository) DeleteByNumber(ctx context.Context, packageNumber string) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM package_number_reservations WHERE package_number = $1`, packageNumber)
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("package_number", packageNumber),
		)
		return 0, fmt.Errorf("delete reservation %s: %w", packageNumber, err)
	}

	return result.RowsAffected(), nil
}
