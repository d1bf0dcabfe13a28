package repository

import (
	"context"
	"fmt"

	"pakket-admin/internal/data/entity"
	"pakket-admin/pkg/database"

	"go.uber.org/zap"
)

type UserLogRepository interface {
	Create(ctx context.Context, entry *entity.UserLog) error
	FindRecent(ctx context.Context, limit int) ([]*entity.UserLog, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type userLogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserLogRepository(db database.PgxIface, log *zap.Logger) UserLogRepository {
	return &userLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "user_log")),
	}
}

func (r *userLogRepository) Create(ctx context.Context, entry *entity.UserLog) error {
	query := `
		INSERT INTO user_logs (id, user_id, action, description, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Action,
		entry.Description,
		entry.IPAddress,
		entry.UserAgent,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create user log %s: %w", entry.Action, err)
	}

	return nil
}

func (r *userLogRepository) FindRecent(ctx context.Context, limit int) ([]*entity.UserLog, error) {
	query := `
		SELECT l.id, l.user_id, l.action, l.description, l.ip_address, l.user_agent,
		       l.created_at, u.email
		FROM user_logs l
		LEFT JOIN users u ON u.id = l.user_id
		ORDER BY l.created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to list user logs", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("list user logs limit %d: %w", limit, err)
	}
	defer rows.Close()

	var entries []*entity.UserLog
	for rows.Next() {
		var e entity.UserLog
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Action,
			&e.Description,
			&e.IPAddress,
			&e.UserAgent,
			&e.CreatedAt,
			&e.UserEmail,
		)
		if err != nil {
			r.log.Error("Failed to scan user log row", zap.Error(err))
			return nil, fmt.Errorf("scan user log row: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user log rows: %w", err)
	}

	return entries, nil
}

func (r *userLogRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM user_logs`)
	if err != nil {
		r.log.Error("Failed to clear user logs", zap.Error(err))
		return 0, fmt.Errorf("clear user logs: %w", err)
	}

	return result.RowsAffected(), nil
}
