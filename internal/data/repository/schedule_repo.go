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

type ScheduleRepository interface {
	FindAll(ctx context.Context) ([]*entity.ShippingSchedule, error)
	Update(ctx context.Context, schedule *entity.ShippingSchedule) (*entity.ShippingSchedule, error)
}

type scheduleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduleRepository(db database.PgxIface, log *zap.Logger) ScheduleRepository {
	return &scheduleRepository{
		db:  db,
		log: log.With(zap.String("repository", "schedule")),
	}
}

const scheduleColumns = `id, type, destination, closing_date, departure_date, arrival_date, updated_at`

func scanSchedule(row pgx.Row) (*entity.ShippingSchedule, error) {
	var s entity.ShippingSchedule
	err := row.Scan(
		&s.ID,
		&s.Type,
		&s.Destination,
		&s.ClosingDate,
		&s.DepartureDate,
		&s.ArrivalDate,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *scheduleRepository) FindAll(ctx context.Context) ([]*entity.ShippingSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM shipping_schedules ORDER BY type DESC, destination`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list shipping schedules", zap.Error(err))
		return nil, fmt.Errorf("list shipping schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*entity.ShippingSchedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			r.log.Error("Failed to scan schedule row", zap.Error(err))
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedule rows: %w", err)
	}

	return schedules, nil
}

// Update returns nil when no schedule has the given ID.
func (r *scheduleRepository) Update(ctx context.Context, schedule *entity.ShippingSchedule) (*entity.ShippingSchedule, error) {
	query := `
		UPDATE shipping_schedules
		SET closing_date = $2, departure_date = $3, arrival_date = $4, updated_at = $5
		WHERE id = $1
		RETURNING ` + scheduleColumns

	if schedule.UpdatedAt.IsZero() {
		schedule.UpdatedAt = time.Now()
	}

	s, err := scanSchedule(r.db.QueryRow(ctx, query,
		schedule.ID,
		schedule.ClosingDate,
		schedule.DepartureDate,
		schedule.ArrivalDate,
		schedule.UpdatedAt,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update schedule",
			zap.Error(err),
			zap.String("id", schedule.ID.String()),
		)
		return nil, fmt.Errorf("update schedule %s: %w", schedule.ID.String(), err)
	}

	return s, nil
}
