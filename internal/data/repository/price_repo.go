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

type PriceRepository interface {
	FindAll(ctx context.Context) ([]*entity.ShippingPrice, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ShippingPrice, error)
	// FindRate looks up a price row; size is ignored for per-kilo freight when nil.
	FindRate(ctx context.Context, freight entity.FreightType, region string, size *string) (*entity.ShippingPrice, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, price string, updatedAt time.Time) (*entity.ShippingPrice, error)
}

type priceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPriceRepository(db database.PgxIface, log *zap.Logger) PriceRepository {
	return &priceRepository{
		db:  db,
		log: log.With(zap.String("repository", "price")),
	}
}

const priceColumns = `id, type, size, destination, price, unit, updated_at`

func scanPrice(row pgx.Row) (*entity.ShippingPrice, error) {
	var p entity.ShippingPrice
	if err := row.Scan(&p.ID, &p.Type, &p.Size, &p.Destination, &p.Price, &p.Unit, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *priceRepository) FindAll(ctx context.Context) ([]*entity.ShippingPrice, error) {
	query := `SELECT ` + priceColumns + ` FROM shipping_prices ORDER BY type DESC, destination, size`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list shipping prices", zap.Error(err))
		return nil, fmt.Errorf("list shipping prices: %w", err)
	}
	defer rows.Close()

	var prices []*entity.ShippingPrice
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			r.log.Error("Failed to scan shipping price row", zap.Error(err))
			return nil, fmt.Errorf("scan shipping price row: %w", err)
		}
		prices = append(prices, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipping price rows: %w", err)
	}

	return prices, nil
}

func (r *priceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ShippingPrice, error) {
	query := `SELECT ` + priceColumns + ` FROM shipping_prices WHERE id = $1`

	p, err := scanPrice(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find shipping price",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return nil, fmt.Errorf("find shipping price %s: %w", id.String(), err)
	}

	return p, nil
}

func (r *priceRepository) FindRate(ctx context.Context, freight entity.FreightType, region string, size *string) (*entity.ShippingPrice, error) {
	query := `
		SELECT ` + priceColumns + `
		FROM shipping_prices
		WHERE type = $1 AND destination = $2 AND ($3::varchar IS NULL OR size = $3)
		LIMIT 1
	`

	p, err := scanPrice(r.db.QueryRow(ctx, query, freight, region, size))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find shipping rate",
			zap.Error(err),
			zap.String("type", string(freight)),
			zap.String("destination", region),
		)
		return nil, fmt.Errorf("find rate %s/%s: %w", freight, region, err)
	}

	return p, nil
}

func (r *priceRepository) UpdatePrice(ctx context.Context, id uuid.UUID, price string, updatedAt time.Time) (*entity.ShippingPrice, error) {
	query := `
		UPDATE shipping_prices
		SET price = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + priceColumns

	p, err := scanPrice(r.db.QueryRow(ctx, query, id, price, updatedAt))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to update shipping price",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return nil, fmt.Errorf("update shipping price %s: %w", id.String(), err)
	}

	return p, nil
}
