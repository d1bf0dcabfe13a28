package usecase

import (
	"context"
	"fmt"
	"time"

	"pakket-admin/internal/data/entity"
	"pakket-admin/internal/data/repository"
	"pakket-admin/internal/dto/request"
	"pakket-admin/internal/dto/response"
	"pakket-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScheduleService interface {
	ListSchedules(ctx context.Context) ([]response.ShippingScheduleResponse, error)
	UpdateSchedule(ctx context.Context, userID uuid.UUID, scheduleID string, req *request.UpdateShippingScheduleRequest) (*response.ShippingScheduleResponse, error)
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	activity     ActivityService
	log          *zap.Logger
}

func NewScheduleService(scheduleRepo repository.ScheduleRepository, activity ActivityService, log *zap.Logger) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		activity:     activity,
		log:          log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) ListSchedules(ctx context.Context) ([]response.ShippingScheduleResponse, error) {
	schedules, err := s.scheduleRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get shipping schedules")
	}

	data := make([]response.ShippingScheduleResponse, 0, len(schedules))
	for _, sch := range schedules {
		data = append(data, response.ShippingScheduleToResponse(sch))
	}
	return data, nil
}

func (s *scheduleService) UpdateSchedule(ctx context.Context, userID uuid.UUID, scheduleID string, req *request.UpdateShippingScheduleRequest) (*response.ShippingScheduleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update schedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule ID")
	}

	updated, err := s.scheduleRepo.Update(ctx, &entity.ShippingSchedule{
		ID:            id,
		ClosingDate:   req.ClosingDate,
		DepartureDate: emptyToNil(req.DepartureDate),
		ArrivalDate:   emptyToNil(req.ArrivalDate),
		UpdatedAt:     time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update shipping schedule")
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: %s", ErrScheduleNotFound, scheduleID)
	}

	s.activity.Record(ctx, &userID, ActionUpdateSchedule,
		fmt.Sprintf("Schedule %s %s closing date %s", updated.Type, updated.Destination, updated.ClosingDate))

	resp := response.ShippingScheduleToResponse(updated)
	return &resp, nil
}

func emptyToNil(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}
