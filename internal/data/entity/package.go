package entity

import (
	"time"

	"github.com/google/uuid"
)

type TransportType string

const (
	TransportSea TransportType = "sea"
	TransportAir TransportType = "air"
)

type Destination string

const (
	DestinationSuriname  Destination = "suriname"
	DestinationCuracao   Destination = "curacao"
	DestinationAruba     Destination = "aruba"
	DestinationBonaire   Destination = "bonaire"
	DestinationStMaarten Destination = "st_maarten"
)

// Destinations lists every supported destination in display order.
var Destinations = []Destination{
	DestinationSuriname,
	DestinationCuracao,
	DestinationAruba,
	DestinationBonaire,
	DestinationStMaarten,
}

type PackageStatus string

const (
	StatusRegistered PackageStatus = "aangemeld"
	StatusDeparted   PackageStatus = "vertrokken"
	StatusArrived    PackageStatus = "aangekomen"
	StatusDelivered  PackageStatus = "afgeleverd"
)

// PackageStatuses is the lifecycle in order.
var PackageStatuses = []PackageStatus{
	StatusRegistered,
	StatusDeparted,
	StatusArrived,
	StatusDelivered,
}

// Party holds the NAW details of a sender or receiver.
type Party struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	Country   *string
	Phone     *string
	Mobile    string
	Email     *string
}

type Package struct {
	BaseNoDelete
	PackageNumber   string        `db:"package_number"`
	TransportType   TransportType `db:"transport_type"`
	Destination     Destination   `db:"destination"`
	Weight          string        `db:"weight"`
	CalculatedPrice string        `db:"calculated_price"`
	ManualPrice     *string       `db:"manual_price"`
	FinalPrice      string        `db:"final_price"`
	PackageContent  *string       `db:"package_content"`
	PackageValue    *string       `db:"package_value"`
	PaymentCash     bool          `db:"payment_cash"`
	PaymentPin      bool          `db:"payment_pin"`
	PaymentAccount  bool          `db:"payment_account"`
	Sender          Party
	Receiver        Party
	UserID          *uuid.UUID    `db:"user_id"`
	Status          PackageStatus `db:"status"`
}

// PackageNumberReservation is the 30 minute soft lock on a package number.
type PackageNumberReservation struct {
	BaseSimple
	PackageNumber string     `db:"package_number"`
	UserID        *uuid.UUID `db:"user_id"`
	ExpiresAt     time.Time  `db:"expires_at"`
}

// IsLive reports whether the reservation still holds its code at now.
func (r *PackageNumberReservation) IsLive(now time.Time) bool {
	return now.Before(r.ExpiresAt)
}

// PackageStatusCount is one row of the statistics aggregate.
type PackageStatusCount struct {
	TransportType TransportType
	Status        PackageStatus
	Count         int64
}
