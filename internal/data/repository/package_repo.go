package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pakket-admin/internal/data/entity"
	"pakket-admin/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PackageRepository interface {
	// Finalize deletes the code's reservation and inserts the package in one transaction.
	Finalize(ctx context.Context, pkg *entity.Package) error
	FindByNumber(ctx context.Context, packageNumber string) (*entity.Package, error)
	Exists(ctx context.Context, packageNumber string) (bool, error)
	FindAll(ctx context.Context, userID *uuid.UUID, limit, offset int) ([]*entity.Package, error)
	CountAll(ctx context.Context, userID *uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, packageNumber string, status entity.PackageStatus, updatedAt time.Time) (*entity.Package, error)
	UpdatePrice(ctx context.Context, packageNumber string, manualPrice *string, finalPrice string, updatedAt time.Time) (*entity.Package, error)
	CountByStatus(ctx context.Context) ([]entity.PackageStatusCount, error)
}

type packageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPackageRepository(db database.PgxIface, log *zap.Logger) PackageRepository {
	return &packageRepository{
		db:  db,
		log: log.With(zap.String("repository", "package")),
	}
}

const packageColumns = `id, package_number, transport_type, destination, weight,
		       calculated_price, manual_price, final_price, package_content, package_value,
		       payment_cash, payment_pin, payment_account,
		       sender_first_name, sender_last_name, sender_address, sender_city,
		       sender_country, sender_phone, sender_mobile, sender_email,
		       receiver_first_name, receiver_last_name, receiver_address, receiver_city,
		       receiver_country, receiver_phone, receiver_mobile, receiver_email,
		       user_id, status, created_at, updated_at`

func scanPackage(row pgx.Row) (*entity.Package, error) {
	var p entity.Package
	err := row.Scan(
		&p.ID,
		&p.PackageNumber,
		&p.TransportType,
		&p.Destination,
		&p.Weight,
		&p.CalculatedPrice,
		&p.ManualPrice,
		&p.FinalPrice,
		&p.PackageContent,
		&p.PackageValue,
		&p.PaymentCash,
		&p.PaymentPin,
		&p.PaymentAccount,
		&p.Sender.FirstName,
		&p.Sender.LastName,
		&p.Sender.Address,
		&p.Sender.City,
		&p.Sender.Country,
		&p.Sender.Phone,
		&p.Sender.Mobile,
		&p.Sender.Email,
		&p.Receiver.FirstName,
		&p.Receiver.LastName,
		&p.Receiver.Address,
		&p.Receiver.City,
		&p.Receiver.Country,
		&p.Receiver.Phone,
		&p.Receiver.Mobile,
		&p.Receiver.Email,
		&p.UserID,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *packageRepository) Finalize(ctx context.Context, pkg *entity.Package) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin finalize transaction",
			zap.Error(err),
			zap.String("package_number", pkg.PackageNumber),
		)
		return fmt.Errorf("begin finalize %s: %w", pkg.PackageNumber, err)
	}

	// A missing reservation is fine, the code may have been swept already
	if _, err := tx.Exec(ctx, `DELETE FROM package_number_reservations WHERE package_number = $1`, pkg.PackageNumber); err != nil {
		_ = tx.Rollback(ctx)
		r.log.Error("Failed to release reservation",
			zap.Error(err),
			zap.String("package_number", pkg.PackageNumber),
		)
		return fmt.Errorf("release reservation %s: %w", pkg.PackageNumber, err)
	}

	query := `
		INSERT INTO packages (` + packageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21,
		        $22, $23, $24, $25, $26, $27, $28, $29,
		        $30, $31, $32, $33)
	`

	_, err = tx.Exec(ctx, query,
		pkg.ID,
		pkg.PackageNumber,
		pkg.TransportType,
		pkg.Destination,
		pkg.Weight,
		pkg.CalculatedPrice,
		pkg.ManualPrice,
		pkg.FinalPrice,
		pkg.PackageContent,
		pkg.PackageValue,
		pkg.PaymentCash,
		pkg.PaymentPin,
		pkg.PaymentAccount,
		pkg.Sender.FirstName,
		pkg.Sender.LastName,
		pkg.Sender.Address,
		pkg.Sender.City,
		pkg.Sender.Country,
		pkg.Sender.Phone,
		pkg.Sender.Mobile,
		pkg.Sender.Email,
		pkg.Receiver.FirstName,
		pkg.Receiver.LastName,
		pkg.Receiver.Address,
		pkg.Receiver.City,
		pkg.Receiver.Country,
		pkg.Receiver.Phone,
		pkg.Receiver.Mobile,
		pkg.Receiver.Email,
		pkg.UserID,
		pkg.Status,
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)
	if err != nil {
		_ = tx.Rollback(ctx)
		if database.IsUniqueViolation(err) {
			r.log.Warn("Package number already registered",
				zap.String("package_number", pkg.PackageNumber),
				zap.String("constraint", database.ConstraintName(err)),
			)
			return fmt.Errorf("insert package %s: %w", pkg.PackageNumber, ErrDuplicate)
		}
		r.log.Error("Failed to insert package",
			zap.Error(err),
			zap.String("package_number", pkg.PackageNumber),
		)
		return fmt.Errorf("insert package %s: %w", pkg.PackageNumber, err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit finalize transaction",
			zap.Error(err),
			zap.String("package_number", pkg.PackageNumber),
		)
		return fmt.Errorf("commit finalize %s: %w", pkg.PackageNumber, err)
	}

	return nil
}

func (r *packageRepository) FindByNumber(ctx context.Context, packageNumber string) (*entity.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE package_number = $1`

	pkg, err := scanPackage(r.db.QueryRow(ctx, query, packageNumber))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find package by number",
			zap.Error(err),
			zap.String("package_number", packageNumber),
		)
		return nil, fmt.Errorf("find package %s: %w", packageNumber, err)
	}

	return pkg, nil
}

func (r *packageRepository) Exists(ctx context.Context, packageNumber string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM packages WHERE package_number = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, packageNumber).Scan(&exists); err != nil {
		r.log.Error("Failed to check package number",
			zap.Error(err),
			zap.String("package_number", packageNumber),
		)
		return false, fmt.Errorf("check package %s: %w", packageNumber, err)
	}

	return exists, nil
}

// FindAll lists packages newest first; a nil userID lists every agent's packages.
func (r *packageRepository) FindAll(ctx context.Context, userID *uuid.UUID, limit, offset int) ([]*entity.Package, error) {
	query := `
		SELECT ` + packageColumns + `
		FROM packages
		WHERE ($1::uuid IS NULL OR user_id = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list packages",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("list packages limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var packages []*entity.Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			r.log.Error("Failed to scan package row", zap.Error(err))
			return nil, fmt.Errorf("scan package row: %w", err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate package rows: %w", err)
	}

	return packages, nil
}

func (r *packageRepository) CountAll(ctx context.Context, userID *uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM packages WHERE ($1::uuid IS NULL OR user_id = $1)`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count packages", zap.Error(err))
		return 0, fmt.Errorf("count packages: %w", err)
	}

	return count, nil
}

// UpdateStatus returns nil when no package carries the number.
func (r *packageRepository) UpdateStatus(ctx context.Context, packageNumber string, status entity.PackageStatus, updatedAt time.Time) (*entity.Package, error) {
	query := `
		UPDATE packages
		SET status = $2, updated_at = $3
		WHERE package_number = $1
		RETURNING ` + packageColumns

	pkg, err := scanPackage(r.db.QueryRow(ctx, query, packageNumber, status, updatedAt))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update package status",
			zap.Error(err),
			zap.String("package_number", packageNumber),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("update status of package %s: %w", packageNumber, err)
	}

	return pkg, nil
}

func (r *packageRepository) UpdatePrice(ctx context.Context, packageNumber string, manualPrice *string, finalPrice string, updatedAt time.Time) (*entity.Package, error) {
	query := `
		UPDATE packages
		SET manual_price = $2, final_price = $3, updated_at = $4
		WHERE package_number = $1
		RETURNING ` + packageColumns

	pkg, err := scanPackage(r.db.QueryRow(ctx, query, packageNumber, manualPrice, finalPrice, updatedAt))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update package price",
			zap.Error(err),
			zap.String("package_number", packageNumber),
		)
		return nil, fmt.Errorf("update price of package %s: %w", packageNumber, err)
	}

	return pkg, nil
}

func (r *packageRepository) CountByStatus(ctx context.Context) ([]entity.PackageStatusCount, error) {
	query := `
		SELECT transport_type, status, COUNT(*)
		FROM packages
		GROUP BY transport_type, status
		ORDER BY transport_type, status
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to aggregate package statistics", zap.Error(err))
		return nil, fmt.Errorf("package statistics: %w", err)
	}
	defer rows.Close()

	var counts []entity.PackageStatusCount
	for rows.Next() {
		var c entity.PackageStatusCount
		if err := rows.Scan(&c.TransportType, &c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan statistics row: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statistics rows: %w", err)
	}

	return counts, nil
}
