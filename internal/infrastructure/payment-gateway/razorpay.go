package paymentgateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/brevistay/checkout-service/config"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/sony/gobreaker/v2"
)

// Order is the gateway-issued payment order consumed exactly once by the
// payment collection UI.
type Order struct {
	ID       string
	Amount   int64
	Currency string
}

type Gateway interface {
	CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	Key() string
}

type RazorpayGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
	cb        *gobreaker.CircuitBreaker[map[string]interface{}]
}

func CreateRazorpayGateway(config *config.Config, cb *gobreaker.CircuitBreaker[map[string]interface{}]) *RazorpayGateway {
	client := razorpay.NewClient(config.RazorpayConfig.KeyID, config.RazorpayConfig.KeySecret)

	return &RazorpayGateway{
		client:    client,
		keyID:     config.RazorpayConfig.KeyID,
		keySecret: config.RazorpayConfig.KeySecret,
		cb:        cb,
	}
}

// CreateOrder asks the gateway for a payment order. Amount is in minor units
// (paise); payment_capture is on so a completed payment is captured without a
// second call.
func (g *RazorpayGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (Order, error) {
	data := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := g.cb.Execute(func() (map[string]interface{}, error) {
		return g.client.Order.Create(data, nil)
	})
	if err != nil {
		return Order{}, fmt.Errorf("creating gateway order: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return Order{}, fmt.Errorf("gateway order response has no id: %+v", body)
	}

	order := Order{
		ID:       id,
		Amount:   amount,
		Currency: currency,
	}

	// the gateway echoes the amount back as a JSON number
	if amt, ok := body["amount"].(float64); ok {
		order.Amount = int64(amt)
	}
	if cur, ok := body["currency"].(string); ok {
		order.Currency = cur
	}

	return order, nil
}

// VerifySignature checks the payment proof: HMAC-SHA256 of
// "<order_id>|<payment_id>" keyed with the API secret, hex encoded.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// Key is the publishable key id the collection UI is opened with.
func (g *RazorpayGateway) Key() string {
	return g.keyID
}
