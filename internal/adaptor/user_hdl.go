package adaptor

import (
	"encoding/json"
	"net/http"

	"pakket-admin/internal/dto/request"
	"pakket-admin/internal/usecase"
	"pakket-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service  usecase.UserService
	activity usecase.ActivityService
	log      *zap.Logger
}

func NewUserHandler(service usecase.UserService, activity usecase.ActivityService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		activity: activity,
		log:      log.With(zap.String("handler", "user")),
	}
}

// GetAllUsers handles GET /api/users
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved", users)
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	user, err := h.service.CreateUser(r.Context(), adminID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create user")
		return
	}

	utils.ResponseCreated(w, "User created", user)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), adminID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted", nil)
}

// ChangePassword handles PUT /api/users/{id}/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.ChangePasswordRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	resp, err := h.service.ChangePassword(r.Context(), adminID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "change password")
		return
	}

	utils.ResponseSuccess(w, "Password changed", resp)
}

// GetLogs handles GET /api/logs?limit=100
func (h *UserHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 100)

	logs, err := h.activity.List(r.Context(), limit)
	if err != nil {
		handleServiceError(w, h.log, err, "list activity logs")
		return
	}

	utils.ResponseSuccess(w, "Activity logs retrieved", logs)
}

// ClearLogs handles DELETE /api/logs
func (h *UserHandler) ClearLogs(w http.ResponseWriter, r *http.Request) {
	adminID, ok := currentUser(w, r)
	if !ok {
		return
	}

	deleted, err := h.activity.Clear(r.Context(), adminID)
	if err != nil {
		handleServiceError(w, h.log, err, "clear activity logs")
		return
	}

	utils.ResponseSuccess(w, "Activity logs cleared", map[string]int64{"deleted": deleted})
}
