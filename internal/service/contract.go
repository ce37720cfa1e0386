package service

import (
	"context"
	"encoding/json"

	"github.com/brevistay/checkout-service/internal/dto"
	pkgdto "github.com/brevistay/checkout-service/pkg/dto"
)

type CheckoutService interface {
	InitiateCheckout(ctx context.Context, req dto.CheckoutRequest) (resp dto.CheckoutResponse, err error)
	CompletePayment(ctx context.Context, sessionID string, proof dto.PaymentProof) (resp dto.PaymentConfirmation, err error)
	GetBookings(ctx context.Context, filter pkgdto.Filter) (response pkgdto.Pagination, err error)
	GetBooking(ctx context.Context, reference string) (resp dto.BookingResponse, err error)

	SendOTP(ctx context.Context, req dto.OTPRequest) (err error)
	ResendOTP(ctx context.Context, req dto.OTPRequest) (err error)
	VerifyOTP(ctx context.Context, req dto.OTPVerifyRequest) (result json.RawMessage, err error)

	ExpireStaleCheckouts()
}
