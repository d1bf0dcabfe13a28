package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"pakket-admin/internal/data/entity"
	"pakket-admin/internal/data/repository"
	"pakket-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// suffixSpace is the exclusive upper bound of the numeric suffix.
	suffixSpace = 99999
	suffixWidth = 5
)

// AllocationService hands out package numbers and holds them with a soft reservation.
type AllocationService interface {
	// GeneratePackageNumber returns a code that is neither a package nor reserved.
	// It does not reserve the code.
	GeneratePackageNumber(ctx context.Context, destination entity.Destination, transportType entity.TransportType) (string, error)
	Reserve(ctx context.Context, code string, userID *uuid.UUID) (*entity.PackageNumberReservation, error)
	// GenerateAndReserve draws and reserves a code, redrawing when another
	// request wins the same code.
	GenerateAndReserve(ctx context.Context, destination entity.Destination, transportType entity.TransportType, userID *uuid.UUID) (*entity.PackageNumberReservation, error)
	ReleaseExpiredReservations(ctx context.Context) (int64, error)
}

type reserveOutcome int

const (
	outcomeReserved reserveOutcome = iota
	outcomeConflict
	outcomeExhausted
)

func (o reserveOutcome) String() string {
	switch o {
	case outcomeReserved:
		return "reserved"
	case outcomeConflict:
		return "conflict"
	case outcomeExhausted:
		return "exhausted"
	}
	return "unknown"
}

type allocationService struct {
	packages     repository.PackageRepository
	reservations repository.ReservationRepository
	ttl          time.Duration
	maxDraws     int
	maxRestarts  int
	now          func() time.Time
	intN         func(n int) int
	log          *zap.Logger
}

type AllocationOption func(*allocationService)

// WithClock replaces time.Now, used for expiry tests.
func WithClock(now func() time.Time) AllocationOption {
	return func(s *allocationService) { s.now = now }
}

// WithRandom replaces the suffix source; intN must return a value in [0, n).
func WithRandom(intN func(n int) int) AllocationOption {
	return func(s *allocationService) { s.intN = intN }
}

func NewAllocationService(
	packages repository.PackageRepository,
	reservations repository.ReservationRepository,
	config utils.ReservationConfig,
	log *zap.Logger,
	opts ...AllocationOption,
) AllocationService {
	s := &allocationService{
		packages:     packages,
		reservations: reservations,
		ttl:          time.Duration(config.TTLMinutes) * time.Minute,
		maxDraws:     config.MaxDraws,
		maxRestarts:  config.MaxConflictRestarts,
		now:          time.Now,
		intN:         rand.Intn,
		log:          log.With(zap.String("service", "allocation")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *allocationService) GeneratePackageNumber(ctx context.Context, destination entity.Destination, transportType entity.TransportType) (string, error) {
	prefix, err := DeriveCode(destination, transportType)
	if err != nil {
		return "", err
	}
	return s.draw(ctx, prefix)
}

func (s *allocationService) draw(ctx context.Context, prefix string) (string, error) {
	for i := 0; i < s.maxDraws; i++ {
		code := fmt.Sprintf("%s%0*d", prefix, suffixWidth, s.intN(suffixSpace))

		taken, err := s.packages.Exists(ctx, code)
		if err != nil {
			return "", err
		}
		if taken {
			continue
		}

		reserved, err := s.reservations.Exists(ctx, code, s.now())
		if err != nil {
			return "", err
		}
		if !reserved {
			return code, nil
		}
	}

	s.log.Error("Package number space exhausted",
		zap.String("prefix", prefix),
		zap.Int("draws", s.maxDraws),
	)
	return "", fmt.Errorf("%w: prefix %s after %d draws", ErrCodeSpaceExhausted, prefix, s.maxDraws)
}

func (s *allocationService) Reserve(ctx context.Context, code string, userID *uuid.UUID) (*entity.PackageNumberReservation, error) {
	outcome, res, err := s.tryReserve(ctx, code, userID)
	if err != nil {
		return nil, err
	}
	if outcome == outcomeConflict {
		return nil, fmt.Errorf("%w: %s", ErrCodeAlreadyReserved, code)
	}
	return res, nil
}

// tryReserve sweeps expired reservations and then claims code.
func (s *allocationService) tryReserve(ctx context.Context, code string, userID *uuid.UUID) (reserveOutcome, *entity.PackageNumberReservation, error) {
	now := s.now()

	if _, err := s.reservations.ReleaseExpired(ctx, now); err != nil {
		return 0, nil, err
	}

	res := &entity.PackageNumberReservation{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		PackageNumber: code,
		UserID:        userID,
		ExpiresAt:     now.Add(s.ttl),
	}

	if err := s.reservations.Reserve(ctx, res); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return outcomeConflict, nil, nil
		}
		return 0, nil, err
	}

	return outcomeReserved, res, nil
}

// allocate runs one sweep, draw and reserve round. The sweep runs before the
// draw so expired reservations never block a free code.
func (s *allocationService) allocate(ctx context.Context, prefix string, userID *uuid.UUID) (reserveOutcome, *entity.PackageNumberReservation, error) {
	if _, err := s.reservations.ReleaseExpired(ctx, s.now()); err != nil {
		return 0, nil, err
	}

	code, err := s.draw(ctx, prefix)
	if errors.Is(err, ErrCodeSpaceExhausted) {
		return outcomeExhausted, nil, err
	}
	if err != nil {
		return 0, nil, err
	}
	return s.tryReserve(ctx, code, userID)
}

func (s *allocationService) GenerateAndReserve(ctx context.Context, destination entity.Destination, transportType entity.TransportType, userID *uuid.UUID) (*entity.PackageNumberReservation, error) {
	prefix, err := DeriveCode(destination, transportType)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt <= s.maxRestarts; attempt++ {
		outcome, res, err := s.allocate(ctx, prefix, userID)
		switch outcome {
		case outcomeExhausted:
			return nil, err
		case outcomeConflict:
			s.log.Warn("Package number taken concurrently, drawing again",
				zap.String("prefix", prefix),
				zap.Int("attempt", attempt+1),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		s.log.Info("Package number reserved",
			zap.String("package_number", res.PackageNumber),
			zap.Time("expires_at", res.ExpiresAt),
		)
		return res, nil
	}

	s.log.Error("Gave up reserving package number",
		zap.String("prefix", prefix),
		zap.Int("restarts", s.maxRestarts),
	)
	return nil, fmt.Errorf("%w: prefix %s after %d restarts", ErrCodeAlreadyReserved, prefix, s.maxRestarts)
}

func (s *allocationService) ReleaseExpiredReservations(ctx context.Context) (int64, error) {
	return s.reservations.ReleaseExpired(ctx, s.now())
}
