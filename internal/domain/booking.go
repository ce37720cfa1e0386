package domain

import (
	"github.com/shopspring/decimal"
)

const (
	BookingTypeHourly = "hourly"

	SettlementPayeeHotel    = "hotel"
	SettlementPayeePlatform = "platform"

	SettlementStatusPending = "pending"
)

type Booking struct {
	ID               int64           `db:"id"`
	Reference        string          `db:"reference"`
	HotelID          string          `db:"hotel_id"`
	RoomID           string          `db:"room_id"`
	GuestName        string          `db:"guest_name"`
	GuestEmail       string          `db:"guest_email"`
	GuestPhone       string          `db:"guest_phone"`
	CheckIn          int64           `db:"check_in"`
	CheckOut         int64           `db:"check_out"`
	DurationHours    int64           `db:"duration_hours"`
	Adults           int             `db:"adults"`
	Children         int             `db:"children"`
	BookingType      string          `db:"booking_type"`
	GSTNumber        *string         `db:"gst_number"`
	GSTCompanyName   *string         `db:"gst_company_name"`
	GSTCompanyAddr   *string         `db:"gst_company_address"`
	GatewayOrderID   string          `db:"gateway_order_id"`
	GatewayPaymentID string          `db:"gateway_payment_id"`
	BaseAmount       decimal.Decimal `db:"base_amount"`
	CouponDiscount   decimal.Decimal `db:"coupon_discount"`
	FinalAmount      decimal.Decimal `db:"final_amount"`
	Currency         string          `db:"currency"`
	Status           string          `db:"status"`
	CreatedAt        int64           `db:"created_at"`
	UpdatedAt        int64           `db:"updated_at"`
	DeletedAt        *int64          `db:"deleted_at"`
}

// SettlementEntry is a scheduled payout derived from a confirmed booking.
// Two are cut per booking, one per payee. Status moves past "pending" only
// in the settlement backend, never here.
type SettlementEntry struct {
	ID             int64           `db:"id"`
	BookingID      int64           `db:"booking_id"`
	Payee          string          `db:"payee"`
	GrossAmount    decimal.Decimal `db:"gross_amount"`
	FeeAmount      decimal.Decimal `db:"fee_amount"`
	NetAmount      decimal.Decimal `db:"net_amount"`
	Currency       string          `db:"currency"`
	SettlementDate int64           `db:"settlement_date"`
	Status         string          `db:"status"`
	CreatedAt      int64           `db:"created_at"`
}

// SideEffectFailure records a best-effort task that could not be delivered,
// so the failure is inspectable offline instead of vanishing into a log line.
type SideEffectFailure struct {
	ID         int64  `db:"id"`
	TaskType   string `db:"task_type"`
	BookingRef string `db:"booking_ref"`
	Payload    string `db:"payload"`
	Reason     string `db:"reason"`
	FailedAt   int64  `db:"failed_at"`
}
