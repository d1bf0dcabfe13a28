package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"pakket-admin/internal/data/entity"
	"pakket-admin/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPriceRepository struct {
	mock.Mock
}

func (m *mockPriceRepository) FindAll(ctx context.Context) ([]*entity.ShippingPrice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ShippingPrice), args.Error(1)
}

func (m *mockPriceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ShippingPrice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ShippingPrice), args.Error(1)
}

func (m *mockPriceRepository) FindRate(ctx context.Context, freight entity.FreightType, region string, size *string) (*entity.ShippingPrice, error) {
	args := m.Called(ctx, freight, region, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ShippingPrice), args.Error(1)
}

func (m *mockPriceRepository) UpdatePrice(ctx context.Context, id uuid.UUID, price string, updatedAt time.Time) (*entity.ShippingPrice, error) {
	args := m.Called(ctx, id, price, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ShippingPrice), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestPriceRegion(t *testing.T) {
	assert.Equal(t, "aruba_curacao", PriceRegion(entity.DestinationAruba))
	assert.Equal(t, "aruba_curacao", PriceRegion(entity.DestinationCuracao))
	assert.Equal(t, "bonaire_stmaarten", PriceRegion(entity.DestinationBonaire))
	assert.Equal(t, "bonaire_stmaarten", PriceRegion(entity.DestinationStMaarten))
	assert.Equal(t, "suriname", PriceRegion(entity.DestinationSuriname))
}

func TestQuote_PerKiloRoundsToCents(t *testing.T) {
	repo := new(mockPriceRepository)
	svc := NewPricingService(repo, &fakeActivity{}, zap.NewNop())

	repo.On("FindRate", mock.Anything, entity.FreightAir, "aruba_curacao", (*string)(nil)).
		Return(&entity.ShippingPrice{ID: uuid.New(), Type: entity.FreightAir, Price: "7.35", Unit: entity.UnitPerKilo}, nil)

	quote, err := svc.Quote(context.Background(), &request.PriceQuoteRequest{
		Destination:   "curacao",
		TransportType: "air",
		Weight:        strPtr("3.333"),
		Size:          strPtr("M"),
	})
	require.NoError(t, err)
	assert.Equal(t, "24.50", quote.Price)
	assert.Equal(t, "7.35", quote.Rate)
	assert.Equal(t, entity.UnitPerKilo, quote.Unit)
	assert.Equal(t, "aruba_curacao", quote.Region)
	repo.AssertExpectations(t)
}

func TestQuote_PerBoxUsesSize(t *testing.T) {
	repo := new(mockPriceRepository)
	svc := NewPricingService(repo, &fakeActivity{}, zap.NewNop())

	size := strPtr("L")
	repo.On("FindRate", mock.Anything, entity.FreightSea, "bonaire_stmaarten", size).
		Return(&entity.ShippingPrice{ID: uuid.New(), Type: entity.FreightSea, Size: size, Price: "95", Unit: entity.UnitPerBox}, nil)

	quote, err := svc.Quote(context.Background(), &request.PriceQuoteRequest{
		Destination:   "st_maarten",
		TransportType: "sea",
		Weight:        strPtr("40"),
		Size:          size,
	})
	require.NoError(t, err)
	assert.Equal(t, "95.00", quote.Price)
	assert.Equal(t, entity.UnitPerBox, quote.Unit)
	repo.AssertExpectations(t)
}

func TestQuote_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown destination", func(t *testing.T) {
		repo := new(mockPriceRepository)
		svc := NewPricingService(repo, &fakeActivity{}, zap.NewNop())
		_, err := svc.Quote(ctx, &request.PriceQuoteRequest{Destination: "jamaica", TransportType: "sea"})
		assert.ErrorIs(t, err, ErrInvalidDestination)
		repo.AssertNotCalled(t, "FindRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no tariff", func(t *testing.T) {
		repo := new(mockPriceRepository)
		svc := NewPricingService(repo, &fakeActivity{}, zap.NewNop())
		repo.On("FindRate", mock.Anything, entity.FreightAir, "suriname", (*string)(nil)).Return(nil, nil)
		_, err := svc.Quote(ctx, &request.PriceQuoteRequest{Destination: "suriname", TransportType: "air", Weight: strPtr("1")})
		assert.ErrorIs(t, err, ErrPriceNotFound)
	})

	t.Run("per kilo without weight", func(t *testing.T) {
		repo := new(mockPriceRepository)
		svc := NewPricingService(repo, &fakeActivity{}, zap.NewNop())
		repo.On("FindRate", mock.Anything, entity.FreightAir, "suriname", (*string)(nil)).
			Return(&entity.ShippingPrice{ID: uuid.New(), Price: "6", Unit: entity.UnitPerKilo}, nil)
		_, err := svc.Quote(ctx, &request.PriceQuoteRequest{Destination: "suriname", TransportType: "air"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(mockPriceRepository)
		svc := NewPricingService(repo, &fakeActivity{}, zap.NewNop())
		repo.On("FindRate", mock.Anything, entity.FreightSea, "suriname", (*string)(nil)).Return(nil, errors.New("conn reset"))
		_, err := svc.Quote(ctx, &request.PriceQuoteRequest{Destination: "suriname", TransportType: "sea"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrPriceNotFound)
	})
}

func TestUpdateShippingPrice(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("normalises and records", func(t *testing.T) {
		repo := new(mockPriceRepository)
		activity := &fakeActivity{}
		svc := NewPricingService(repo, activity, zap.NewNop())

		repo.On("UpdatePrice", mock.Anything, id, "12.50", mock.AnythingOfType("time.Time")).
			Return(&entity.ShippingPrice{ID: id, Type: entity.FreightSea, Destination: "suriname", Price: "12.50", Unit: entity.UnitPerBox}, nil)

		resp, err := svc.UpdatePrice(ctx, uuid.New(), id.String(), &request.UpdateShippingPriceRequest{Price: "12.5"})
		require.NoError(t, err)
		assert.Equal(t, "12.50", resp.Price)
		assert.Equal(t, []string{ActionUpdateShippingPrice}, activity.actions)
		repo.AssertExpectations(t)
	})

	t.Run("rejects non positive", func(t *testing.T) {
		repo := new(mockPriceRepository)
		svc := NewPricingService(repo, &fakeActivity{}, zap.NewNop())
		_, err := svc.UpdatePrice(ctx, uuid.New(), id.String(), &request.UpdateShippingPriceRequest{Price: "0"})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("unknown row", func(t *testing.T) {
		repo := new(mockPriceRepository)
		svc := NewPricingService(repo, &fakeActivity{}, zap.NewNop())
		repo.On("UpdatePrice", mock.Anything, id, "3.00", mock.Anything).Return(nil, nil)
		_, err := svc.UpdatePrice(ctx, uuid.New(), id.String(), &request.UpdateShippingPriceRequest{Price: "3"})
		assert.ErrorIs(t, err, ErrPriceNotFound)
	})
}
