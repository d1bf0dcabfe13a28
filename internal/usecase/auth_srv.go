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

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, userID, token uuid.UUID) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type authService struct {
	repo     *repository.Repository // users and sessions
	activity ActivityService
	config   *utils.Config
	log      *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	activity ActivityService,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		activity: activity,
		config:   config,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	// 4. Drop sessions that expired long ago
	if err := s.repo.Session.CleanExpiredSessions(ctx); err != nil {
		s.log.Warn("Failed to clean expired sessions", zap.Error(err))
	}

	// 5. Create session
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))
	s.activity.Record(ctx, &user.ID, ActionLogin, fmt.Sprintf("User %s logged in", user.Email))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, userID, token uuid.UUID) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to logout")
	}

	s.log.Info("User logged out", zap.String("user_id", userID.String()))
	s.activity.Record(ctx, &userID, ActionLogout, "User logged out")
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user")
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	now := time.Now()
	ip, userAgent := utils.GetClientFromContext(ctx)

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     uuid.New(),
		UserAgent: optional(userAgent),
		IPAddress: optional(ip),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
