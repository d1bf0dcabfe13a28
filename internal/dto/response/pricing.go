package response

import (
	"time"

	"pakket-admin/internal/data/entity"
)

type ShippingPriceResponse struct {
	ID          string             `json:"id"`
	Type        entity.FreightType `json:"type"`
	Size        *string            `json:"size,omitempty"`
	Destination string             `json:"destination"`
	Price       string             `json:"price"`
	Unit        entity.PriceUnit   `json:"unit"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type PriceQuoteResponse struct {
	Price  string           `json:"price"`
	Rate   string           `json:"rate"`
	Unit   entity.PriceUnit `json:"unit"`
	Region string           `json:"region"`
}

type ShippingScheduleResponse struct {
	ID            string             `json:"id"`
	Type          entity.FreightType `json:"type"`
	Destination   string             `json:"destination"`
	ClosingDate   string             `json:"closing_date"`
	DepartureDate *string            `json:"departure_date,omitempty"`
	ArrivalDate   *string            `json:"arrival_date,omitempty"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func ShippingPriceToResponse(p *entity.ShippingPrice) ShippingPriceResponse {
	return ShippingPriceResponse{
		ID:          p.ID.String(),
		Type:        p.Type,
		Size:        p.Size,
		Destination: p.Destination,
		Price:       p.Price,
		Unit:        p.Unit,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ShippingScheduleToResponse(s *entity.ShippingSchedule) ShippingScheduleResponse {
	return ShippingScheduleResponse{
		ID:            s.ID.String(),
		Type:          s.Type,
		Destination:   s.Destination,
		ClosingDate:   s.ClosingDate,
		DepartureDate: s.DepartureDate,
		ArrivalDate:   s.ArrivalDate,
		UpdatedAt:     s.UpdatedAt,
	}
}
