package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pakket-admin/internal/data/entity"
	"pakket-admin/internal/data/repository"
	"pakket-admin/internal/dto/request"
	"pakket-admin/internal/dto/response"
	"pakket-admin/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PricingService interface {
	ListPrices(ctx context.Context) ([]response.ShippingPriceResponse, error)
	UpdatePrice(ctx context.Context, userID uuid.UUID, priceID string, req *request.UpdateShippingPriceRequest) (*response.ShippingPriceResponse, error)
	Quote(ctx context.Context, req *request.PriceQuoteRequest) (*response.PriceQuoteResponse, error)
}

type pricingService struct {
	priceRepo repository.PriceRepository
	activity  ActivityService
	log       *zap.Logger
}

func NewPricingService(priceRepo repository.PriceRepository, activity ActivityService, log *zap.Logger) PricingService {
	return &pricingService{
		priceRepo: priceRepo,
		activity:  activity,
		log:       log.With(zap.String("service", "pricing")),
	}
}

// PriceRegion maps a destination to the region its tariffs are kept under.
func PriceRegion(destination entity.Destination) string {
	switch destination {
	case entity.DestinationAruba, entity.DestinationCuracao:
		return "aruba_curacao"
	case entity.DestinationBonaire, entity.DestinationStMaarten:
		return "bonaire_stmaarten"
	}
	return string(destination)
}

func FreightFor(transportType entity.TransportType) entity.FreightType {
	if transportType == entity.TransportAir {
		return entity.FreightAir
	}
	return entity.FreightSea
}

func (s *pricingService) ListPrices(ctx context.Context) ([]response.ShippingPriceResponse, error) {
	prices, err := s.priceRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get shipping prices")
	}

	data := make([]response.ShippingPriceResponse, 0, len(prices))
	for _, p := range prices {
		data = append(data, response.ShippingPriceToResponse(p))
	}
	return data, nil
}

func (s *pricingService) UpdatePrice(ctx context.Context, userID uuid.UUID, priceID string, req *request.UpdateShippingPriceRequest) (*response.ShippingPriceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(priceID)
	if err != nil {
		return nil, fmt.Errorf("invalid price ID")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPrice, req.Price)
	}

	updated, err := s.priceRepo.UpdatePrice(ctx, id, amount.StringFixed(2), time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to update shipping price")
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: %s", ErrPriceNotFound, priceID)
	}

	s.activity.Record(ctx, &userID, ActionUpdateShippingPrice,
		fmt.Sprintf("Shipping price %s %s set to %s", updated.Type, updated.Destination, updated.Price))

	resp := response.ShippingPriceToResponse(updated)
	return &resp, nil
}

// Quote prices a shipment from the tariff table, rounded to cents.
func (s *pricingService) Quote(ctx context.Context, req *request.PriceQuoteRequest) (*response.PriceQuoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	destination, err := ParseDestination(req.Destination)
	if err != nil {
		return nil, err
	}
	transportType, err := ParseTransportType(req.TransportType)
	if err != nil {
		return nil, err
	}

	freight := FreightFor(transportType)
	region := PriceRegion(destination)

	var size *string
	if transportType == entity.TransportSea && req.Size != nil && *req.Size != "" {
		size = req.Size
	}

	rate, err := s.priceRepo.FindRate(ctx, freight, region, size)
	if err != nil {
		return nil, fmt.Errorf("failed to get shipping rate")
	}
	if rate == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrPriceNotFound, freight, region)
	}

	unitPrice, err := decimal.NewFromString(rate.Price)
	if err != nil {
		s.log.Error("Stored shipping price is not a decimal",
			zap.Error(err),
			zap.String("id", rate.ID.String()),
			zap.String("price", rate.Price),
		)
		return nil, fmt.Errorf("%w: stored rate %q", ErrInvalidPrice, rate.Price)
	}

	total := unitPrice
	if rate.Unit == entity.UnitPerKilo {
		if req.Weight == nil {
			return nil, fmt.Errorf("validation failed: weight: This field is required")
		}
		weight, err := parseAmount("weight", *req.Weight)
		if err != nil {
			return nil, err
		}
		total = unitPrice.Mul(weight)
	}

	return &response.PriceQuoteResponse{
		Price:  total.Round(2).StringFixed(2),
		Rate:   unitPrice.StringFixed(2),
		Unit:   rate.Unit,
		Region: region,
	}, nil
}
