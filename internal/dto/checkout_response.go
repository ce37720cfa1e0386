package dto

import "github.com/brevistay/checkout-service/internal/pricing"

// CheckoutResponse carries everything the storefront needs to open the
// payment collection UI.
type CheckoutResponse struct {
	SessionID string            `json:"session_id"`
	Key       string            `json:"key"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	OrderID   string            `json:"order_id"`
	Prefill   GatewayPrefill    `json:"prefill"`
	Breakdown pricing.Breakdown `json:"breakdown"`
	ExpiresAt int64             `json:"expires_at"`
}

type GatewayPrefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type PaymentConfirmation struct {
	BookingID    int64  `json:"booking_id"`
	CheckInDate  string `json:"check_in_date"`
	Message      string `json:"msg"`
	RedirectPath string `json:"redirect_path"`
}
