package request

type CreateUserRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=50"`
	Role        string  `json:"role" validate:"omitempty,oneof=Admin Verkoper"`
}

// ChangePasswordRequest with an empty password asks the server to generate one.
type ChangePasswordRequest struct {
	Password string `json:"password" validate:"omitempty,min=8"`
}
