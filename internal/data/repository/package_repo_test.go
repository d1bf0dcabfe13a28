package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"pakket-admin/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPackage(code string) *entity.Package {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	userID := uuid.New()
	return &entity.Package{
		BaseNoDelete:    entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		PackageNumber:   code,
		TransportType:   entity.TransportSea,
		Destination:     entity.DestinationSuriname,
		Weight:          "12.5",
		CalculatedPrice: "85.00",
		FinalPrice:      "85.00",
		Sender:          entity.Party{FirstName: "Jan", LastName: "Jansen", Address: "Kerkstraat 1", City: "Rotterdam", Mobile: "0612345678"},
		Receiver:        entity.Party{FirstName: "Rita", LastName: "Doe", Address: "Gravenstraat 10", City: "Paramaribo", Mobile: "+5978123456"},
		UserID:          &userID,
		Status:          entity.StatusRegistered,
	}
}

// packageArgs matches the 33 insert parameters.
func packageArgs() []any {
	args := make([]any, 33)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

var (
	releaseReservation = regexp.QuoteMeta("DELETE FROM package_number_reservations WHERE package_number = $1")
	insertPackage      = regexp.QuoteMeta("INSERT INTO packages")
)

func TestPackageRepository_FinalizeCommits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(releaseReservation).WithArgs("KZ00123").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(insertPackage).WithArgs(packageArgs()...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repo := NewPackageRepository(mock, zap.NewNop())
	require.NoError(t, repo.Finalize(context.Background(), newTestPackage("KZ00123")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPackageRepository_FinalizeWithoutReservation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(releaseReservation).WithArgs("KZ00124").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(insertPackage).WithArgs(packageArgs()...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repo := NewPackageRepository(mock, zap.NewNop())
	assert.NoError(t, repo.Finalize(context.Background(), newTestPackage("KZ00124")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPackageRepository_FinalizeDuplicateRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(releaseReservation).WithArgs("KZ00123").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(insertPackage).WithArgs(packageArgs()...).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "packages_package_number_key"})
	mock.ExpectRollback()

	repo := NewPackageRepository(mock, zap.NewNop())
	err = repo.Finalize(context.Background(), newTestPackage("KZ00123"))
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPackageRepository_FinalizeReleaseFails(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(releaseReservation).WithArgs("KZ00125").WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	repo := NewPackageRepository(mock, zap.NewNop())
	err = repo.Finalize(context.Background(), newTestPackage("KZ00125"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPackageRepository_MissingPackageIsNil(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM packages WHERE package_number = $1")).
		WithArgs("KZ99999").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE packages")).
		WithArgs("KZ99999", entity.StatusDelivered, now).
		WillReturnError(pgx.ErrNoRows)

	repo := NewPackageRepository(mock, zap.NewNop())

	pkg, err := repo.FindByNumber(context.Background(), "KZ99999")
	assert.NoError(t, err)
	assert.Nil(t, pkg)

	pkg, err = repo.UpdateStatus(context.Background(), "KZ99999", entity.StatusDelivered, now)
	assert.NoError(t, err)
	assert.Nil(t, pkg)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPackageRepository_CountAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM packages")).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	repo := NewPackageRepository(mock, zap.NewNop())
	count, err := repo.CountAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
