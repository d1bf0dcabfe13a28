package usecase

import "errors"

// Input errors
var (
	ErrInvalidDestination   = errors.New("invalid destination")
	ErrInvalidTransportType = errors.New("invalid transport type")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrInvalidPrice         = errors.New("invalid price")
)

// Allocation and conflict errors
var (
	ErrCodeSpaceExhausted   = errors.New("no free package number found")
	ErrCodeAlreadyReserved  = errors.New("package number already reserved")
	ErrPackageAlreadyExists = errors.New("package number already registered")
	ErrReservationExpired   = errors.New("package number reservation expired")
	ErrReservationNotOwned  = errors.New("package number reserved by another user")
	ErrPackageNumberPrefix  = errors.New("package number does not match destination and transport type")
)

// Lookup and auth errors
var (
	ErrPackageNotFound    = errors.New("package not found")
	ErrPriceNotFound      = errors.New("shipping price not found")
	ErrScheduleNotFound   = errors.New("shipping schedule not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")
)
