package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
	ErrStatusBadGateway     = http.StatusBadGateway
	ErrStatusSessionExpired = http.StatusGone
)

var (
	ErrInternalServer      = errors.New("Internal server error")
	ErrClient              = errors.New("Bad request")
	ErrNotFound            = errors.New("Resource not found")
	ErrInvalidGuestDetails = errors.New("Guest details are incomplete or invalid")
	ErrInvalidStayTiming   = errors.New("Check-in or check-out timing is invalid")
	ErrOrderCreation       = errors.New("Unable to create the payment order")
	ErrGatewayUnavailable  = errors.New("Payment gateway is unavailable")
	ErrVerificationFailed  = errors.New("Payment verification failed")
	ErrSessionNotFound     = errors.New("Checkout session not found")
	ErrSessionExpired      = errors.New("Checkout session has expired")
	ErrBookingPersistence  = errors.New("Unable to save the booking")
	ErrAuthService         = errors.New("Authentication service is unavailable")
)

var errorMap = map[error]int{
	ErrInternalServer:      ErrStatusInternalServer,
	ErrClient:              ErrStatusClient,
	ErrNotFound:            ErrStatusNotFound,
	ErrInvalidGuestDetails: ErrStatusClient,
	ErrInvalidStayTiming:   ErrStatusClient,
	ErrOrderCreation:       ErrStatusBadGateway,
	ErrGatewayUnavailable:  ErrStatusBadGateway,
	ErrVerificationFailed:  ErrStatusClient,
	ErrSessionNotFound:     ErrStatusNotFound,
	ErrSessionExpired:      ErrStatusSessionExpired,
	ErrBookingPersistence:  ErrStatusInternalServer,
	ErrAuthService:         ErrStatusBadGateway,
}

func GetErrorStatusCode(err error) int {
	errStatusCode, ok := errorMap[err]
	if !ok {
		errStatusCode = errorMap[ErrInternalServer]
	}
	return errStatusCode
}
