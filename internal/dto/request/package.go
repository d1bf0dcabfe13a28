package request

// Enum membership of destination, transport type and status is checked by the
// service so it can report the matching domain error.

type GeneratePackageNumberRequest struct {
	Destination   string `json:"destination"`
	TransportType string `json:"transport_type"`
}

type PartyRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name" validate:"required,max=100"`
	Address   string  `json:"address" validate:"required,max=255"`
	City      string  `json:"city" validate:"required,max=100"`
	Country   *string `json:"country,omitempty" validate:"omitempty,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Mobile    string  `json:"mobile" validate:"required,max=50"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}

type CreatePackageRequest struct {
	PackageNumber   string       `json:"package_number" validate:"required,max=16"`
	TransportType   string       `json:"transport_type"`
	Destination     string       `json:"destination"`
	Weight          string       `json:"weight" validate:"required,numeric"`
	CalculatedPrice string       `json:"calculated_price" validate:"required,numeric"`
	ManualPrice     *string      `json:"manual_price,omitempty" validate:"omitempty,numeric"`
	PackageContent  *string      `json:"package_content,omitempty"`
	PackageValue    *string      `json:"package_value,omitempty" validate:"omitempty,numeric"`
	PaymentCash     bool         `json:"payment_cash"`
	PaymentPin      bool         `json:"payment_pin"`
	PaymentAccount  bool         `json:"payment_account"`
	Sender          PartyRequest `json:"sender"`
	Receiver        PartyRequest `json:"receiver"`
}

type UpdatePackageStatusRequest struct {
	Status string `json:"status"`
}

// UpdatePackagePriceRequest clears the manual price when ManualPrice is nil or empty.
type UpdatePackagePriceRequest struct {
	ManualPrice *string `json:"manual_price" validate:"omitempty,numeric"`
}

type ListPackagesRequest struct {
	PaginatedRequest
	All bool
}
