package paymentgateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/brevistay/checkout-service/config"
	circuitbreaker "github.com/brevistay/checkout-service/internal/infrastructure/circuit-breaker"
	"github.com/stretchr/testify/assert"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	conf := &config.Config{
		RazorpayConfig: config.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: "s3cret"},
	}
	g := CreateRazorpayGateway(conf, circuitbreaker.CreateCircuitBreaker("test"))

	valid := sign("s3cret", "order_abc", "pay_123")

	assert.True(t, g.VerifySignature("order_abc", "pay_123", valid))
	assert.False(t, g.VerifySignature("order_abc", "pay_123", "forged"))
	assert.False(t, g.VerifySignature("order_other", "pay_123", valid))
	assert.False(t, g.VerifySignature("order_abc", "pay_123", sign("wrong-secret", "order_abc", "pay_123")))
}

func TestKey(t *testing.T) {
	conf := &config.Config{
		RazorpayConfig: config.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: "s3cret"},
	}
	g := CreateRazorpayGateway(conf, circuitbreaker.CreateCircuitBreaker("test"))

	assert.Equal(t, "rzp_test_key", g.Key())
}
