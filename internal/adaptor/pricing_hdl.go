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

type PricingHandler struct {
	pricing  usecase.PricingService
	schedule usecase.ScheduleService
	log      *zap.Logger
}

func NewPricingHandler(pricing usecase.PricingService, schedule usecase.ScheduleService, log *zap.Logger) *PricingHandler {
	return &PricingHandler{
		pricing:  pricing,
		schedule: schedule,
		log:      log.With(zap.String("handler", "pricing")),
	}
}

// ListPrices handles GET /api/shipping-prices
func (h *PricingHandler) ListPrices(w http.ResponseWriter, r *http.Request) {
	resp, err := h.pricing.ListPrices(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list shipping prices")
		return
	}

	utils.ResponseSuccess(w, "Shipping prices retrieved", resp)
}

// UpdatePrice handles PUT /api/shipping-prices/{id}
func (h *PricingHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateShippingPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.pricing.UpdatePrice(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update shipping price")
		return
	}

	utils.ResponseSuccess(w, "Shipping price updated", resp)
}

// Quote handles POST /api/price-quote
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.PriceQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.pricing.Quote(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "price quote")
		return
	}

	utils.ResponseSuccess(w, "Price calculated", resp)
}

// ListSchedules handles GET /api/shipping-schedules
func (h *PricingHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	resp, err := h.schedule.ListSchedules(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list shipping schedules")
		return
	}

	utils.ResponseSuccess(w, "Shipping schedules retrieved", resp)
}

// UpdateSchedule handles PUT /api/shipping-schedules/{id}
func (h *PricingHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateShippingScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.schedule.UpdateSchedule(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update shipping schedule")
		return
	}

	utils.ResponseSuccess(w, "Shipping schedule updated", resp)
}
