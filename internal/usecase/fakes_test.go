package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"pakket-admin/internal/data/entity"
	"pakket-admin/internal/data/repository"
	"pakket-admin/internal/dto/response"

	"github.com/google/uuid"
)

// memStore backs the package and reservation fakes with the same unique
// constraints the database enforces.
type memStore struct {
	mu           sync.Mutex
	packages     map[string]*entity.Package
	reservations map[string]*entity.PackageNumberReservation
	reserveCalls int
}

func newMemStore() *memStore {
	return &memStore{
		packages:     make(map[string]*entity.Package),
		reservations: make(map[string]*entity.PackageNumberReservation),
	}
}

type fakePackageRepo struct{ s *memStore }

func (f fakePackageRepo) Finalize(ctx context.Context, pkg *entity.Package) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.packages[pkg.PackageNumber]; ok {
		return repository.ErrDuplicate
	}
	delete(f.s.reservations, pkg.PackageNumber)
	cp := *pkg
	f.s.packages[pkg.PackageNumber] = &cp
	return nil
}

func (f fakePackageRepo) FindByNumber(ctx context.Context, packageNumber string) (*entity.Package, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.packages[packageNumber]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f fakePackageRepo) Exists(ctx context.Context, packageNumber string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	_, ok := f.s.packages[packageNumber]
	return ok, nil
}

func (f fakePackageRepo) FindAll(ctx context.Context, userID *uuid.UUID, limit, offset int) ([]*entity.Package, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*entity.Package
	for _, p := range f.s.packages {
		if userID == nil || (p.UserID != nil && *p.UserID == *userID) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PackageNumber < out[j].PackageNumber })
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (f fakePackageRepo) CountAll(ctx context.Context, userID *uuid.UUID) (int64, error) {
	all, _ := f.FindAll(ctx, userID, 1<<30, 0)
	return int64(len(all)), nil
}

func (f fakePackageRepo) UpdateStatus(ctx context.Context, packageNumber string, status entity.PackageStatus, updatedAt time.Time) (*entity.Package, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.packages[packageNumber]
	if !ok {
		return nil, nil
	}
	p.Status = status
	p.UpdatedAt = updatedAt
	cp := *p
	return &cp, nil
}

func (f fakePackageRepo) UpdatePrice(ctx context.Context, packageNumber string, manualPrice *string, finalPrice string, updatedAt time.Time) (*entity.Package, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.packages[packageNumber]
	if !ok {
		return nil, nil
	}
	p.ManualPrice = manualPrice
	p.FinalPrice = finalPrice
	p.UpdatedAt = updatedAt
	cp := *p
	return &cp, nil
}

func (f fakePackageRepo) CountByStatus(ctx context.Context) ([]entity.PackageStatusCount, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	counts := make(map[[2]string]int64)
	for _, p := range f.s.packages {
		counts[[2]string{string(p.TransportType), string(p.Status)}]++
	}
	var out []entity.PackageStatusCount
	for k, n := range counts {
		out = append(out, entity.PackageStatusCount{
			TransportType: entity.TransportType(k[0]),
			Status:        entity.PackageStatus(k[1]),
			Count:         n,
		})
	}
	return out, nil
}

type fakeReservationRepo struct{ s *memStore }

func (f fakeReservationRepo) ReleaseExpired(ctx context.Context, now time.Time) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var released int64
	for code, r := range f.s.reservations {
		if r.ExpiresAt.Before(now) {
			delete(f.s.reservations, code)
			released++
		}
	}
	return released, nil
}

func (f fakeReservationRepo) Reserve(ctx context.Context, r *entity.PackageNumberReservation) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.reserveCalls++
	if _, ok := f.s.reservations[r.PackageNumber]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := f.s.packages[r.PackageNumber]; ok {
		return repository.ErrDuplicate
	}
	cp := *r
	f.s.reservations[r.PackageNumber] = &cp
	return nil
}

func (f fakeReservationRepo) Exists(ctx context.Context, packageNumber string, now time.Time) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	r, ok := f.s.reservations[packageNumber]
	return ok && !r.ExpiresAt.Before(now), nil
}

func (f fakeReservationRepo) FindByNumber(ctx context.Context, packageNumber string) (*entity.PackageNumberReservation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	r, ok := f.s.reservations[packageNumber]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f fakeReservationRepo) DeleteByNumber(ctx context.Context, packageNumber string) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.reservations[packageNumber]; !ok {
		return 0, nil
	}
	delete(f.s.reservations, packageNumber)
	return 1, nil
}

// fakeActivity records actions instead of writing user_logs rows.
type fakeActivity struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeActivity) Record(ctx context.Context, userID *uuid.UUID, action, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
}

func (f *fakeActivity) List(ctx context.Context, limit int) ([]response.UserLogResponse, error) {
	return nil, nil
}

func (f *fakeActivity) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

// manualClock is a settable time source.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
