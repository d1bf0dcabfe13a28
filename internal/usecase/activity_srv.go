package usecase

import (
	"context"
	"fmt"
	"time"

	"pakket-admin/internal/data/entity"
	"pakket-admin/internal/data/repository"
	"pakket-admin/internal/dto/response"
	"pakket-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Activity log actions
const (
	ActionLogin                 = "login"
	ActionLogout                = "logout"
	ActionGeneratePackageNumber = "generate_package_number"
	ActionRegisterPackage       = "register_package"
	ActionUpdatePackageStatus   = "update_package_status"
	ActionUpdatePackagePrice    = "update_package_price"
	ActionUpdateShippingPrice   = "update_shipping_price"
	ActionUpdateSchedule        = "update_shipping_schedule"
	ActionCreateUser            = "create_user"
	ActionDeleteUser            = "delete_user"
	ActionChangePassword        = "change_password"
	ActionClearLogs             = "clear_logs"
)

const defaultLogLimit = 100

type ActivityService interface {
	// Record writes an activity row. Failures are logged and never returned.
	Record(ctx context.Context, userID *uuid.UUID, action, description string)
	List(ctx context.Context, limit int) ([]response.UserLogResponse, error)
	Clear(ctx context.Context, userID uuid.UUID) (int64, error)
}

type activityService struct {
	logRepo repository.UserLogRepository
	log     *zap.Logger
}

func NewActivityService(logRepo repository.UserLogRepository, log *zap.Logger) ActivityService {
	return &activityService{
		logRepo: logRepo,
		log:     log.With(zap.String("service", "activity")),
	}
}

func (s *activityService) Record(ctx context.Context, userID *uuid.UUID, action, description string) {
	ip, userAgent := utils.GetClientFromContext(ctx)

	entry := &entity.UserLog{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:      userID,
		Action:      action,
		Description: description,
		IPAddress:   optional(ip),
		UserAgent:   optional(userAgent),
	}

	if err := s.logRepo.Create(ctx, entry); err != nil {
		s.log.Warn("Failed to record activity",
			zap.Error(err),
			zap.String("action", action),
		)
	}
}

func (s *activityService) List(ctx context.Context, limit int) ([]response.UserLogResponse, error) {
	if limit < 1 || limit > 1000 {
		limit = defaultLogLimit
	}

	entries, err := s.logRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity logs")
	}

	logs := make([]response.UserLogResponse, 0, len(entries))
	for _, e := range entries {
		logs = append(logs, response.UserLogToResponse(e))
	}
	return logs, nil
}

func (s *activityService) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	deleted, err := s.logRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear activity logs")
	}

	s.log.Info("Activity logs cleared",
		zap.String("user_id", userID.String()),
		zap.Int64("deleted", deleted),
	)
	s.Record(ctx, &userID, ActionClearLogs, fmt.Sprintf("Cleared %d log entries", deleted))
	return deleted, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
