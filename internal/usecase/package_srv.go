package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"pakket-admin/internal/data/entity"
	"pakket-admin/internal/data/repository"
	"pakket-admin/internal/dto/request"
	"pakket-admin/internal/dto/response"
	"pakket-admin/internal/notify"
	"pakket-admin/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PackageService interface {
	GenerateNumber(ctx context.Context, userID uuid.UUID, req *request.GeneratePackageNumberRequest) (*response.PackageNumberResponse, error)
	// Register finalizes a reserved package number into a package.
	Register(ctx context.Context, userID uuid.UUID, req *request.CreatePackageRequest) (*response.PackageResponse, error)
	SetStatus(ctx context.Context, userID uuid.UUID, packageNumber string, req *request.UpdatePackageStatusRequest) (*response.PackageResponse, error)
	UpdatePrice(ctx context.Context, userID uuid.UUID, packageNumber string, req *request.UpdatePackagePriceRequest) (*response.PackageResponse, error)
	GetByNumber(ctx context.Context, packageNumber string) (*response.PackageResponse, error)
	List(ctx context.Context, userID uuid.UUID, isAdmin bool, req *request.ListPackagesRequest) (*response.PaginatedResponse[response.PackageResponse], error)
	Statistics(ctx context.Context) (*response.PackageStatisticsResponse, error)
}

type packageService struct {
	packages       repository.PackageRepository
	reservations   repository.ReservationRepository
	allocation     AllocationService
	activity       ActivityService
	notifier       Notifier
	policy         StatusPolicy
	strictFinalize bool
	now            func() time.Time
	log            *zap.Logger
}

func NewPackageService(
	repo *repository.Repository,
	allocation AllocationService,
	activity ActivityService,
	notifier Notifier,
	config *utils.Config,
	log *zap.Logger,
) PackageService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &packageService{
		packages:       repo.Package,
		reservations:   repo.Reservation,
		allocation:     allocation,
		activity:       activity,
		notifier:       notifier,
		policy:         NewStatusPolicy(config.Status.ForwardOnly),
		strictFinalize: config.Reservation.StrictFinalize,
		now:            time.Now,
		log:            log.With(zap.String("service", "package")),
	}
}

var suffixPattern = regexp.MustCompile(`^[0-9]{5}$`)

func (s *packageService) GenerateNumber(ctx context.Context, userID uuid.UUID, req *request.GeneratePackageNumberRequest) (*response.PackageNumberResponse, error) {
	destination, err := ParseDestination(req.Destination)
	if err != nil {
		return nil, err
	}
	transportType, err := ParseTransportType(req.TransportType)
	if err != nil {
		return nil, err
	}

	res, err := s.allocation.GenerateAndReserve(ctx, destination, transportType, &userID)
	if err != nil {
		return nil, err
	}

	s.activity.Record(ctx, &userID, ActionGeneratePackageNumber,
		fmt.Sprintf("Generated package number %s (%s, %s)", res.PackageNumber, destination, transportType))

	return &response.PackageNumberResponse{
		PackageNumber: res.PackageNumber,
		ExpiresAt:     res.ExpiresAt,
	}, nil
}

func (s *packageService) Register(ctx context.Context, userID uuid.UUID, req *request.CreatePackageRequest) (*response.PackageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register package validation failed", zap.Any("errors", errs))
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

	packageNumber := normalizePackageNumber(req.PackageNumber)
	prefix, _ := DeriveCode(destination, transportType)
	if !strings.HasPrefix(packageNumber, prefix) || !suffixPattern.MatchString(packageNumber[len(prefix):]) {
		return nil, fmt.Errorf("%w: %s is not a %s number", ErrPackageNumberPrefix, packageNumber, prefix)
	}

	weight, err := parseAmount("weight", req.Weight)
	if err != nil {
		return nil, err
	}
	calculated, err := parseAmount("calculated_price", req.CalculatedPrice)
	if err != nil {
		return nil, err
	}
	manual, err := parseOptionalAmount("manual_price", req.ManualPrice)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if s.strictFinalize {
		if err := s.checkReservation(ctx, packageNumber, userID, now); err != nil {
			return nil, err
		}
	}

	pkg := &entity.Package{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PackageNumber:   packageNumber,
		TransportType:   transportType,
		Destination:     destination,
		Weight:          weight.String(),
		CalculatedPrice: calculated.StringFixed(2),
		ManualPrice:     formatOptional(manual),
		PackageContent:  req.PackageContent,
		PackageValue:    req.PackageValue,
		PaymentCash:     req.PaymentCash,
		PaymentPin:      req.PaymentPin,
		PaymentAccount:  req.PaymentAccount,
		Sender:          partyFromRequest(req.Sender),
		Receiver:        partyFromRequest(req.Receiver),
		UserID:          &userID,
		Status:          entity.StatusRegistered,
	}
	pkg.FinalPrice = finalPrice(pkg.ManualPrice, pkg.CalculatedPrice)

	if err := s.packages.Finalize(ctx, pkg); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Warn("Package number already registered", zap.String("package_number", packageNumber))
			return nil, fmt.Errorf("%w: %s", ErrPackageAlreadyExists, packageNumber)
		}
		return nil, fmt.Errorf("failed to register package")
	}

	s.log.Info("Package registered",
		zap.String("package_number", pkg.PackageNumber),
		zap.String("user_id", userID.String()),
	)

	resp := response.PackageToResponse(pkg)
	s.activity.Record(ctx, &userID, ActionRegisterPackage,
		fmt.Sprintf("Registered package %s for %s", pkg.PackageNumber, pkg.Destination))
	s.notifier.Publish(notify.EventPackageRegistered, resp)

	return &resp, nil
}

// checkReservation requires a live reservation held by userID.
func (s *packageService) checkReservation(ctx context.Context, packageNumber string, userID uuid.UUID, now time.Time) error {
	res, err := s.reservations.FindByNumber(ctx, packageNumber)
	if err != nil {
		return fmt.Errorf("failed to check reservation")
	}
	if res == nil || !res.IsLive(now) {
		return fmt.Errorf("%w: %s", ErrReservationExpired, packageNumber)
	}
	if res.UserID != nil && *res.UserID != userID {
		return fmt.Errorf("%w: %s", ErrReservationNotOwned, packageNumber)
	}
	return nil
}

func (s *packageService) SetStatus(ctx context.Context, userID uuid.UUID, packageNumber string, req *request.UpdatePackageStatusRequest) (*response.PackageResponse, error) {
	packageNumber = normalizePackageNumber(packageNumber)

	status, err := ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	current, err := s.packages.FindByNumber(ctx, packageNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get package")
	}
	if current == nil {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, packageNumber)
	}

	if err := s.policy.Allow(current.Status, status); err != nil {
		return nil, err
	}

	pkg, err := s.packages.UpdateStatus(ctx, packageNumber, status, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to update package status")
	}
	if pkg == nil {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, packageNumber)
	}

	s.log.Info("Package status updated",
		zap.String("package_number", packageNumber),
		zap.String("from", string(current.Status)),
		zap.String("to", string(status)),
	)

	resp := response.PackageToResponse(pkg)
	s.activity.Record(ctx, &userID, ActionUpdatePackageStatus,
		fmt.Sprintf("Package %s status %s -> %s", packageNumber, current.Status, status))
	s.notifier.Publish(notify.EventPackageStatusChanged, resp)

	return &resp, nil
}

func (s *packageService) UpdatePrice(ctx context.Context, userID uuid.UUID, packageNumber string, req *request.UpdatePackagePriceRequest) (*response.PackageResponse, error) {
	packageNumber = normalizePackageNumber(packageNumber)

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	manual, err := parseOptionalAmount("manual_price", req.ManualPrice)
	if err != nil {
		return nil, err
	}

	current, err := s.packages.FindByNumber(ctx, packageNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get package")
	}
	if current == nil {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, packageNumber)
	}

	manualPrice := formatOptional(manual)
	pkg, err := s.packages.UpdatePrice(ctx, packageNumber, manualPrice, finalPrice(manualPrice, current.CalculatedPrice), s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to update package price")
	}
	if pkg == nil {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, packageNumber)
	}

	resp := response.PackageToResponse(pkg)
	s.activity.Record(ctx, &userID, ActionUpdatePackagePrice,
		fmt.Sprintf("Package %s final price %s -> %s", packageNumber, current.FinalPrice, pkg.FinalPrice))
	s.notifier.Publish(notify.EventPackagePriceChanged, resp)

	return &resp, nil
}

func (s *packageService) GetByNumber(ctx context.Context, packageNumber string) (*response.PackageResponse, error) {
	packageNumber = normalizePackageNumber(packageNumber)

	pkg, err := s.packages.FindByNumber(ctx, packageNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get package")
	}
	if pkg == nil {
		return nil, fmt.Errorf("%w: %s", ErrPackageNotFound, packageNumber)
	}

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *packageService) List(ctx context.Context, userID uuid.UUID, isAdmin bool, req *request.ListPackagesRequest) (*response.PaginatedResponse[response.PackageResponse], error) {
	// Agents see their own packages; admins may ask for all of them
	owner := &userID
	if req.All && isAdmin {
		owner = nil
	}

	packages, err := s.packages.FindAll(ctx, owner, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get packages")
	}

	total, err := s.packages.CountAll(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to count packages")
	}

	data := make([]response.PackageResponse, 0, len(packages))
	for _, p := range packages {
		data = append(data, response.PackageToResponse(p))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *packageService) Statistics(ctx context.Context) (*response.PackageStatisticsResponse, error) {
	counts, err := s.packages.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get package statistics")
	}

	stats := &response.PackageStatisticsResponse{
		ByStatus:    make(map[entity.PackageStatus]int64, len(entity.PackageStatuses)),
		ByTransport: make(map[entity.TransportType]response.TransportStatistics, 2),
	}
	for _, status := range entity.PackageStatuses {
		stats.ByStatus[status] = 0
	}
	for _, t := range []entity.TransportType{entity.TransportSea, entity.TransportAir} {
		byStatus := make(map[entity.PackageStatus]int64, len(entity.PackageStatuses))
		for _, status := range entity.PackageStatuses {
			byStatus[status] = 0
		}
		stats.ByTransport[t] = response.TransportStatistics{ByStatus: byStatus}
	}

	for _, c := range counts {
		stats.Total += c.Count
		stats.ByStatus[c.Status] += c.Count

		ts := stats.ByTransport[c.TransportType]
		if ts.ByStatus == nil {
			ts.ByStatus = make(map[entity.PackageStatus]int64)
		}
		ts.Total += c.Count
		ts.ByStatus[c.Status] += c.Count
		stats.ByTransport[c.TransportType] = ts
	}

	return stats, nil
}

// normalizePackageNumber accepts codes typed in any case or with padding.
func normalizePackageNumber(packageNumber string) string {
	return strings.ToUpper(strings.TrimSpace(packageNumber))
}

func partyFromRequest(p request.PartyRequest) entity.Party {
	return entity.Party{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Address:   strings.TrimSpace(p.Address),
		City:      strings.TrimSpace(p.City),
		Country:   p.Country,
		Phone:     p.Phone,
		Mobile:    strings.TrimSpace(p.Mobile),
		Email:     p.Email,
	}
}

// finalPrice is the manual price when one is set, else the calculated price.
func finalPrice(manual *string, calculated string) string {
	if manual != nil && *manual != "" {
		return *manual
	}
	return calculated
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("validation failed: %s: Must be a decimal number", field)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("validation failed: %s: Must not be negative", field)
	}
	return d, nil
}

func parseOptionalAmount(field string, value *string) (*decimal.Decimal, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	d, err := parseAmount(field, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func formatOptional(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}
