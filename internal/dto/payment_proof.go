package dto

// PaymentProof is the completion callback payload from the payment
// collection UI. Field names follow the gateway's checkout handler contract.
type PaymentProof struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}
