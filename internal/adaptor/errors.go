package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"pakket-admin/internal/usecase"
	"pakket-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrInvalidDestination),
		errors.Is(err, usecase.ErrInvalidTransportType),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrInvalidPrice),
		errors.Is(err, usecase.ErrPackageNumberPrefix),
		errors.Is(err, usecase.ErrCannotDeleteSelf):
		log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrReservationExpired),
		errors.Is(err, usecase.ErrReservationNotOwned):
		log.Warn(operation+" failed - reservation", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, usecase.ErrPackageAlreadyExists),
		errors.Is(err, usecase.ErrCodeAlreadyReserved),
		errors.Is(err, usecase.ErrEmailTaken):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, usecase.ErrCodeSpaceExhausted):
		log.Error(operation+" failed - package number space exhausted", zap.Error(err))
		utils.ResponseUnavailable(w, errMsg)

	case errors.Is(err, usecase.ErrPackageNotFound),
		errors.Is(err, usecase.ErrPriceNotFound),
		errors.Is(err, usecase.ErrScheduleNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.HasPrefix(errMsg, "invalid "):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// currentUser reads the authenticated user, writing 401 when it is missing
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}
