package request

type PriceQuoteRequest struct {
	Destination   string  `json:"destination" validate:"required"`
	TransportType string  `json:"transport_type" validate:"required"`
	Weight        *string `json:"weight,omitempty" validate:"omitempty,numeric"`
	Size          *string `json:"size,omitempty" validate:"omitempty,max=10"`
}

type UpdateShippingPriceRequest struct {
	Price string `json:"price" validate:"required,numeric"`
}

type UpdateShippingScheduleRequest struct {
	ClosingDate   string  `json:"closing_date" validate:"required,datetime=2006-01-02"`
	DepartureDate *string `json:"departure_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ArrivalDate   *string `json:"arrival_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
