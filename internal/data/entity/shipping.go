package entity

import (
	"time"

	"github.com/google/uuid"
)

// FreightType is the price/schedule naming of a transport type.
type FreightType string

const (
	FreightSea FreightType = "zeevracht"
	FreightAir FreightType = "luchtvracht"
)

type PriceUnit string

const (
	UnitPerBox  PriceUnit = "per_box"
	UnitPerKilo PriceUnit = "per_kilo"
)

type ShippingPrice struct {
	ID          uuid.UUID   `db:"id"`
	Type        FreightType `db:"type"`
	Size        *string     `db:"size"`
	Destination string      `db:"destination"`
	Price       string      `db:"price"`
	Unit        PriceUnit   `db:"unit"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

type ShippingSchedule struct {
	ID            uuid.UUID   `db:"id"`
	Type          FreightType `db:"type"`
	Destination   string      `db:"destination"`
	ClosingDate   string      `db:"closing_date"`
	DepartureDate *string     `db:"departure_date"`
	ArrivalDate   *string     `db:"arrival_date"`
	UpdatedAt     time.Time   `db:"updated_at"`
}
