package repository

import (
	"context"

	"github.com/brevistay/checkout-service/internal/domain"
	pkgdto "github.com/brevistay/checkout-service/pkg/dto"
)

type BookingRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo BookingRepository) error) error

	AddCheckoutOrder(ctx context.Context, data domain.CheckoutOrder) (id int64, err error)
	UpdateCheckoutOrderStatus(ctx context.Context, gatewayOrderID string, status string) (err error)
	ExpireStaleCheckoutOrders(ctx context.Context, now int64) (expired int64, err error)

	AddBooking(ctx context.Context, data domain.Booking) (id int64, err error)
	AddSettlementEntries(ctx context.Context, data []domain.SettlementEntry) (err error)
	GetBookingByReference(ctx context.Context, reference string) (data domain.Booking, err error)
	GetBookings(ctx context.Context, filter pkgdto.Filter) (data []domain.Booking, err error)

	AddSideEffectFailure(ctx context.Context, data domain.SideEffectFailure) (err error)
}
