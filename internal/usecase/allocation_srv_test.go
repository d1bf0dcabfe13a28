package usecase

import (
	"context"
	"math/rand"
	"regexp"
	"sync"
	"testing"
	"time"

	"pakket-admin/internal/data/entity"
	"pakket-admin/internal/data/repository"
	"pakket-admin/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testReservationConfig = utils.ReservationConfig{
	TTLMinutes:          30,
	MaxDraws:            50,
	MaxConflictRestarts: 5,
}

func newTestAllocation(store *memStore, opts ...AllocationOption) AllocationService {
	return NewAllocationService(
		fakePackageRepo{store},
		fakeReservationRepo{store},
		testReservationConfig,
		zap.NewNop(),
		opts...,
	)
}

// sequence returns the given draws in order, repeating the last one.
func sequence(values ...int) func(int) int {
	var mu sync.Mutex
	i := 0
	return func(n int) int {
		mu.Lock()
		defer mu.Unlock()
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}

func TestGeneratePackageNumber_PrefixAndPadding(t *testing.T) {
	store := newMemStore()
	svc := newTestAllocation(store, WithRandom(sequence(42)))

	code, err := svc.GeneratePackageNumber(context.Background(), entity.DestinationSuriname, entity.TransportSea)
	require.NoError(t, err)
	assert.Equal(t, "KZ00042", code)

	svc = newTestAllocation(store, WithRandom(sequence(0)))
	code, err = svc.GeneratePackageNumber(context.Background(), entity.DestinationStMaarten, entity.TransportAir)
	require.NoError(t, err)
	assert.Equal(t, "STML00000", code)

	svc = newTestAllocation(store, WithRandom(sequence(99998)))
	code, err = svc.GeneratePackageNumber(context.Background(), entity.DestinationBonaire, entity.TransportAir)
	require.NoError(t, err)
	assert.Equal(t, "BL99998", code)
}

func TestGeneratePackageNumber_RealRandomFormat(t *testing.T) {
	svc := newTestAllocation(newMemStore())
	pattern := regexp.MustCompile(`^CZ[0-9]{5}$`)

	for i := 0; i < 200; i++ {
		code, err := svc.GeneratePackageNumber(context.Background(), entity.DestinationCuracao, entity.TransportSea)
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func TestGeneratePackageNumber_SkipsTakenCodes(t *testing.T) {
	store := newMemStore()
	store.packages["AZ00001"] = &entity.Package{PackageNumber: "AZ00001"}
	store.reservations["AZ00002"] = &entity.PackageNumberReservation{PackageNumber: "AZ00002", ExpiresAt: time.Now().Add(time.Hour)}

	svc := newTestAllocation(store, WithRandom(sequence(1, 2, 3)))

	code, err := svc.GeneratePackageNumber(context.Background(), entity.DestinationAruba, entity.TransportSea)
	require.NoError(t, err)
	assert.Equal(t, "AZ00003", code)
	assert.Empty(t, store.reservations["AZ00003"], "generation must not reserve")
}

func TestGeneratePackageNumber_Exhausted(t *testing.T) {
	store := newMemStore()
	store.packages["KL00007"] = &entity.Package{PackageNumber: "KL00007"}

	draws := 0
	svc := newTestAllocation(store, WithRandom(func(n int) int {
		draws++
		return 7
	}))

	_, err := svc.GeneratePackageNumber(context.Background(), entity.DestinationSuriname, entity.TransportAir)
	assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
	assert.Equal(t, testReservationConfig.MaxDraws, draws)

	_, err = svc.GenerateAndReserve(context.Background(), entity.DestinationSuriname, entity.TransportAir, nil)
	assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
}

func TestGeneratePackageNumber_InvalidDestination(t *testing.T) {
	svc := newTestAllocation(newMemStore())

	_, err := svc.GeneratePackageNumber(context.Background(), "narnia", entity.TransportSea)
	assert.ErrorIs(t, err, ErrInvalidDestination)

	_, err = svc.GenerateAndReserve(context.Background(), entity.DestinationAruba, "teleport", nil)
	assert.ErrorIs(t, err, ErrInvalidTransportType)
}

func TestGenerateAndReserve_UniqueUnderConcurrency(t *testing.T) {
	store := newMemStore()
	// A narrow draw range makes concurrent requests collide on candidates
	svc := newTestAllocation(store, WithRandom(func(n int) int { return rand.Intn(400) }))

	const workers = 100
	codes := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := uuid.New()
			res, err := svc.GenerateAndReserve(context.Background(), entity.DestinationCuracao, entity.TransportAir, &userID)
			errs[i] = err
			if res != nil {
				codes[i] = res.PackageNumber
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, workers)
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[codes[i]], "duplicate code %s", codes[i])
		seen[codes[i]] = true
	}
	assert.Len(t, store.reservations, workers)
}

func TestGenerateAndReserve_RetriesOnConflict(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()

	// The free check sees KZ00010 as unused, but another request grabs it first
	svc := newTestAllocation(store, WithRandom(sequence(10, 11)))
	racing := &racingReservations{fakeReservationRepo: fakeReservationRepo{store}, steal: "KZ00010"}
	svc.(*allocationService).reservations = racing

	res, err := svc.GenerateAndReserve(context.Background(), entity.DestinationSuriname, entity.TransportSea, &userID)
	require.NoError(t, err)
	assert.Equal(t, "KZ00011", res.PackageNumber)
	assert.Equal(t, &userID, res.UserID)
}

func TestGenerateAndReserve_ConflictRestartsExhausted(t *testing.T) {
	store := newMemStore()
	svc := newTestAllocation(store)
	svc.(*allocationService).reservations = alwaysTaken{fakeReservationRepo{store}}

	_, err := svc.GenerateAndReserve(context.Background(), entity.DestinationAruba, entity.TransportAir, nil)
	assert.ErrorIs(t, err, ErrCodeAlreadyReserved)
	assert.Equal(t, testReservationConfig.MaxConflictRestarts+1, store.reserveCalls)
}

func TestReserve_ExpiresAfterTTL(t *testing.T) {
	store := newMemStore()
	clock := &manualClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := newTestAllocation(store, WithClock(clock.Now))

	first, second := uuid.New(), uuid.New()

	res, err := svc.Reserve(context.Background(), "BZ12345", &first)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(30*time.Minute), res.ExpiresAt)

	clock.Advance(29 * time.Minute)
	_, err = svc.Reserve(context.Background(), "BZ12345", &second)
	assert.ErrorIs(t, err, ErrCodeAlreadyReserved)

	clock.Advance(2 * time.Minute)
	res, err = svc.Reserve(context.Background(), "BZ12345", &second)
	require.NoError(t, err)
	assert.Equal(t, &second, res.UserID)
}

func TestGenerateAndReserve_RedrawsExpiredCode(t *testing.T) {
	store := newMemStore()
	clock := &manualClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := newTestAllocation(store, WithClock(clock.Now), WithRandom(sequence(7, 7, 8)))

	first, second := uuid.New(), uuid.New()

	res, err := svc.GenerateAndReserve(context.Background(), entity.DestinationSuriname, entity.TransportSea, &first)
	require.NoError(t, err)
	assert.Equal(t, "KZ00007", res.PackageNumber)

	clock.Advance(31 * time.Minute)

	res, err = svc.GenerateAndReserve(context.Background(), entity.DestinationSuriname, entity.TransportSea, &second)
	require.NoError(t, err)
	assert.Equal(t, "KZ00007", res.PackageNumber, "an expired reservation must not block its code")
	assert.Equal(t, &second, res.UserID)
	assert.Equal(t, clock.Now().Add(30*time.Minute), res.ExpiresAt)
	assert.Len(t, store.reservations, 1)
}

func TestGeneratePackageNumber_IgnoresExpiredReservation(t *testing.T) {
	store := newMemStore()
	clock := &manualClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	store.reservations["BZ00005"] = &entity.PackageNumberReservation{
		PackageNumber: "BZ00005",
		ExpiresAt:     clock.Now().Add(-time.Minute),
	}

	svc := newTestAllocation(store, WithClock(clock.Now), WithRandom(sequence(5, 6)))

	code, err := svc.GeneratePackageNumber(context.Background(), entity.DestinationBonaire, entity.TransportSea)
	require.NoError(t, err)
	assert.Equal(t, "BZ00005", code)
}

func TestReleaseExpiredReservations_Idempotent(t *testing.T) {
	store := newMemStore()
	clock := &manualClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := newTestAllocation(store, WithClock(clock.Now))

	for _, code := range []string{"CL00001", "CL00002", "CL00003"} {
		_, err := svc.Reserve(context.Background(), code, nil)
		require.NoError(t, err)
	}

	clock.Advance(31 * time.Minute)
	_, err := svc.Reserve(context.Background(), "CL00004", nil)
	require.NoError(t, err)

	// the reserve above already swept the three expired rows
	released, err := svc.ReleaseExpiredReservations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), released)

	clock.Advance(31 * time.Minute)
	released, err = svc.ReleaseExpiredReservations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)

	released, err = svc.ReleaseExpiredReservations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), released)
	assert.Empty(t, store.reservations)
}

func TestReserve_CodeAlreadyPackage(t *testing.T) {
	store := newMemStore()
	store.packages["AL55555"] = &entity.Package{PackageNumber: "AL55555"}
	svc := newTestAllocation(store)

	_, err := svc.Reserve(context.Background(), "AL55555", nil)
	assert.ErrorIs(t, err, ErrCodeAlreadyReserved)
	assert.Empty(t, store.reservations)
}

// racingReservations lets another request win steal right before the insert.
type racingReservations struct {
	fakeReservationRepo
	steal string
	once  sync.Once
}

func (r *racingReservations) Reserve(ctx context.Context, res *entity.PackageNumberReservation) error {
	if res.PackageNumber == r.steal {
		r.once.Do(func() {
			_ = r.fakeReservationRepo.Reserve(ctx, &entity.PackageNumberReservation{
				PackageNumber: r.steal,
				ExpiresAt:     res.ExpiresAt,
			})
		})
	}
	return r.fakeReservationRepo.Reserve(ctx, res)
}

type alwaysTaken struct {
	fakeReservationRepo
}

func (a alwaysTaken) Reserve(ctx context.Context, res *entity.PackageNumberReservation) error {
	a.s.mu.Lock()
	a.s.reserveCalls++
	a.s.mu.Unlock()
	return repository.ErrDuplicate
}
