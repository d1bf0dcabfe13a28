package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pakket-admin/internal/data/entity"
	"pakket-admin/internal/data/repository"
	"pakket-admin/internal/dto/request"
	"pakket-admin/internal/dto/response"
	"pakket-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const generatedPasswordLength = 12

type UserService interface {
	GetAllUsers(ctx context.Context) ([]response.UserResponse, error)
	CreateUser(ctx context.Context, adminID uuid.UUID, req *request.CreateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, adminID uuid.UUID, userID string) error
	// ChangePassword sets the given password, or generates one when it is empty.
	ChangePassword(ctx context.Context, adminID uuid.UUID, userID string, req *request.ChangePasswordRequest) (*response.PasswordChangeResponse, error)
}

type userService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	activity    ActivityService
	log         *zap.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	activity ActivityService,
	log *zap.Logger,
) UserService {
	return &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		activity:    activity,
		log:         log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetAllUsers(ctx context.Context) ([]response.UserResponse, error) {
	users, err := us.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users")
	}

	data := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		data = append(data, response.UserToResponse(u))
	}
	return data, nil
}

func (us *userService) CreateUser(ctx context.Context, adminID uuid.UUID, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := us.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password")
	}

	role := entity.RoleSeller
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}

	now := time.Now()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Role:         role,
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user")
	}

	us.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	us.activity.Record(ctx, &adminID, ActionCreateUser, fmt.Sprintf("Created user %s (%s)", user.Email, user.Role))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) DeleteUser(ctx context.Context, adminID uuid.UUID, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID")
	}
	if id == adminID {
		return ErrCannotDeleteSelf
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get user")
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := us.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user")
	}

	us.activity.Record(ctx, &adminID, ActionDeleteUser, fmt.Sprintf("Deleted user %s", user.Email))
	return nil
}

func (us *userService) ChangePassword(ctx context.Context, adminID uuid.UUID, userID string, req *request.ChangePasswordRequest) (*response.PasswordChangeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID")
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user")
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := &response.PasswordChangeResponse{UserID: id.String()}
	password := req.Password
	if password == "" {
		password, err = utils.GeneratePassword(generatedPasswordLength)
		if err != nil {
			us.log.Error("Failed to generate password", zap.Error(err))
			return nil, fmt.Errorf("failed to generate password")
		}
		resp.Password = password
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to process password")
	}

	if err := us.userRepo.UpdatePassword(ctx, id, hashed, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to change password")
	}

	// Existing sessions must log in again with the new password
	if err := us.sessionRepo.RevokeAllUserSessions(ctx, id); err != nil {
		us.log.Warn("Failed to revoke sessions after password change", zap.Error(err))
	}

	us.activity.Record(ctx, &adminID, ActionChangePassword, fmt.Sprintf("Changed password of %s", user.Email))
	return resp, nil
}
