package dto

import "github.com/shopspring/decimal"

const (
	TaskHotelSettlement    = "hotel_settlement"
	TaskPlatformSettlement = "platform_settlement"
	TaskGuestNotification  = "guest_notification"
	TaskRefundReview       = "refund_review"
)

// TaskMessage is the envelope for best-effort side effects published to the
// broker after a booking is confirmed.
type TaskMessage struct {
	TaskType string      `json:"task_type"`
	Data     interface{} `json:"data"`
}

type SettlementTask struct {
	BookingID      int64           `json:"booking_id"`
	BookingRef     string          `json:"booking_ref"`
	Payee          string          `json:"payee"`
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	FeeAmount      decimal.Decimal `json:"fee_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	Currency       string          `json:"currency"`
	SettlementDate int64           `json:"settlement_date"`
	Status         string          `json:"status"`
}

type NotificationTask struct {
	BookingID  int64  `json:"booking_id"`
	BookingRef string `json:"booking_ref"`
	GuestName  string `json:"guest_name"`
	GuestPhone string `json:"guest_phone"`
	GuestEmail string `json:"guest_email"`
	Message    string `json:"message"`
}

// RefundReviewTask flags a captured payment whose booking could not be
// persisted, so someone can reconcile it instead of the money going quiet.
type RefundReviewTask struct {
	SessionID      string `json:"session_id"`
	GatewayOrderID string `json:"gateway_order_id"`
	PaymentID      string `json:"payment_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Reason         string `json:"reason"`
}
