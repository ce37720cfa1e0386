package domain

import "github.com/brevistay/checkout-service/internal/pricing"

const (
	SessionStatusInitiated = "initiated"
	SessionStatusConfirmed = "confirmed"
	SessionStatusFailed    = "failed"
	SessionStatusExpired   = "expired"
)

// CheckoutSession is the single in-flight checkout owned by one guest. It is
// created when the payment order is issued and lives in the session store
// until the guest pays or the gateway wait window closes.
type CheckoutSession struct {
	ID             string            `json:"id"`
	Reference      string            `json:"reference"`
	Status         string            `json:"status"`
	GatewayOrderID string            `json:"gateway_order_id"`
	AmountDue      int64             `json:"amount_due"`
	Currency       string            `json:"currency"`
	Guest          Guest             `json:"guest"`
	Stay           Stay              `json:"stay"`
	GSTDetails     *GSTDetails       `json:"gst_details,omitempty"`
	Breakdown      pricing.Breakdown `json:"breakdown"`
	BookingID      int64             `json:"booking_id"`
	CreatedAt      int64             `json:"created_at"`
	ExpiresAt      int64             `json:"expires_at"`
}

type Guest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Stay struct {
	HotelID     string `json:"hotel_id"`
	RoomID      string `json:"room_id"`
	CheckIn     int64  `json:"check_in"`
	CheckOut    int64  `json:"check_out"`
	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
	BookingType string `json:"booking_type"`
}

type GSTDetails struct {
	Number         string `json:"number"`
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
}
