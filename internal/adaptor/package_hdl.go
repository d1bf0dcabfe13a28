package adaptor

import (
	"encoding/json"
	"net/http"

	"pakket-admin/internal/data/entity"
	"pakket-admin/internal/dto/request"
	"pakket-admin/internal/usecase"
	"pakket-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PackageHandler struct {
	service usecase.PackageService
	log     *zap.Logger
}

func NewPackageHandler(service usecase.PackageService, log *zap.Logger) *PackageHandler {
	return &PackageHandler{
		service: service,
		log:     log.With(zap.String("handler", "package")),
	}
}

// GenerateNumber handles POST /api/generate-package-number
func (h *PackageHandler) GenerateNumber(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.GeneratePackageNumberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.GenerateNumber(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "generate package number")
		return
	}

	utils.ResponseCreated(w, "Package number reserved", resp)
}

// Register handles POST /api/packages
func (h *PackageHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Register(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register package")
		return
	}

	utils.ResponseCreated(w, "Package registered", resp)
}

// SetStatus handles PATCH /api/packages/{packageNumber}/status
func (h *PackageHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdatePackageStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.SetStatus(r.Context(), userID, chi.URLParam(r, "packageNumber"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update package status")
		return
	}

	utils.ResponseSuccess(w, "Package status updated", resp)
}

// UpdatePrice handles PATCH /api/packages/{packageNumber}/price
func (h *PackageHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdatePackagePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdatePrice(r.Context(), userID, chi.URLParam(r, "packageNumber"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update package price")
		return
	}

	utils.ResponseSuccess(w, "Package price updated", resp)
}

// GetByNumber handles GET /api/packages/{packageNumber}
func (h *PackageHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetByNumber(r.Context(), chi.URLParam(r, "packageNumber"))
	if err != nil {
		handleServiceError(w, h.log, err, "get package")
		return
	}

	utils.ResponseSuccess(w, "Package retrieved", resp)
}

// List handles GET /api/packages?page=1&per_page=20&all=true
func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := request.ListPackagesRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 20),
		},
		All: utils.ParseBool(query.Get("all")),
	}

	if validationErrors := utils.ValidateStruct(req.PaginatedRequest); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Invalid pagination parameters", validationErrors)
		return
	}

	role, _ := utils.GetRoleFromContext(r.Context())
	resp, err := h.service.List(r.Context(), userID, role == string(entity.RoleAdmin), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list packages")
		return
	}

	utils.ResponseSuccess(w, "Packages retrieved", resp)
}

// Statistics handles GET /api/package-statistics
func (h *PackageHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Statistics(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "package statistics")
		return
	}

	utils.ResponseSuccess(w, "Package statistics retrieved", resp)
}
