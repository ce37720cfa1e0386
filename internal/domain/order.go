package domain

const (
	OrderStatusInitiated = "initiated"
	OrderStatusPaid      = "paid"
	OrderStatusFailed    = "failed"
	OrderStatusExpired   = "expired"
)

// CheckoutOrder is the durable trace of a payment order handed to the
// gateway. The hot session state lives in the session store; this row exists
// so abandoned checkouts can be swept and audited.
type CheckoutOrder struct {
	ID             int64  `db:"id"`
	SessionID      string `db:"session_id"`
	Reference      string `db:"reference"`
	GatewayOrderID string `db:"gateway_order_id"`
	Amount         int64  `db:"amount"`
	Currency       string `db:"currency"`
	Status         string `db:"status"`
	ExpiresAt      int64  `db:"expires_at"`
	CreatedAt      int64  `db:"created_at"`
	UpdatedAt      int64  `db:"updated_at"`
}
