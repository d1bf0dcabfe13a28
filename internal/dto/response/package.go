package response

import (
	"time"

	"pakket-admin/internal/data/entity"
)

type PackageNumberResponse struct {
	PackageNumber string    `json:"package_number"`
	ExpiresAt     time.Time `json:"expires_at"`
}

type PartyResponse struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Country   *string `json:"country,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Mobile    string  `json:"mobile"`
	Email     *string `json:"email,omitempty"`
}

type PackageResponse struct {
	ID              string               `json:"id"`
	PackageNumber   string               `json:"package_number"`
	TransportType   entity.TransportType `json:"transport_type"`
	Destination     entity.Destination   `json:"destination"`
	Weight          string               `json:"weight"`
	CalculatedPrice string               `json:"calculated_price"`
	ManualPrice     *string              `json:"manual_price,omitempty"`
	FinalPrice      string               `json:"final_price"`
	PackageContent  *string              `json:"package_content,omitempty"`
	PackageValue    *string              `json:"package_value,omitempty"`
	PaymentCash     bool                 `json:"payment_cash"`
	PaymentPin      bool                 `json:"payment_pin"`
	PaymentAccount  bool                 `json:"payment_account"`
	Sender          PartyResponse        `json:"sender"`
	Receiver        PartyResponse        `json:"receiver"`
	UserID          *string              `json:"user_id,omitempty"`
	Status          entity.PackageStatus `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// TransportStatistics counts packages of one transport type.
type TransportStatistics struct {
	Total    int64                          `json:"total"`
	ByStatus map[entity.PackageStatus]int64 `json:"by_status"`
}

type PackageStatisticsResponse struct {
	Total       int64                                        `json:"total"`
	ByStatus    map[entity.PackageStatus]int64               `json:"by_status"`
	ByTransport map[entity.TransportType]TransportStatistics `json:"by_transport"`
}

func partyToResponse(p entity.Party) PartyResponse {
	return PartyResponse{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Address:   p.Address,
		City:      p.City,
		Country:   p.Country,
		Phone:     p.Phone,
		Mobile:    p.Mobile,
		Email:     p.Email,
	}
}

func PackageToResponse(p *entity.Package) PackageResponse {
	resp := PackageResponse{
		ID:              p.ID.String(),
		PackageNumber:   p.PackageNumber,
		TransportType:   p.TransportType,
		Destination:     p.Destination,
		Weight:          p.Weight,
		CalculatedPrice: p.CalculatedPrice,
		ManualPrice:     p.ManualPrice,
		FinalPrice:      p.FinalPrice,
		PackageContent:  p.PackageContent,
		PackageValue:    p.PackageValue,
		PaymentCash:     p.PaymentCash,
		PaymentPin:      p.PaymentPin,
		PaymentAccount:  p.PaymentAccount,
		Sender:          partyToResponse(p.Sender),
		Receiver:        partyToResponse(p.Receiver),
		Status:          p.Status,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}

	if p.UserID != nil {
		id := p.UserID.String()
		resp.UserID = &id
	}

	return resp
}
