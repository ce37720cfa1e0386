package pricing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateNonPositiveBasePrice(t *testing.T) {
	testCases := []struct {
		name      string
		basePrice float64
	}{
		{name: "zero", basePrice: 0},
		{name: "negative", basePrice: -500},
		{name: "nan", basePrice: math.NaN()},
		{name: "positive infinity", basePrice: math.Inf(1)},
		{name: "negative infinity", basePrice: math.Inf(-1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := CalculateFromFloat(tc.basePrice, true)

			assert.True(t, b.BasePrice.IsZero())
			assert.True(t, b.GSTOnBase.IsZero())
			assert.True(t, b.PlatformFee.IsZero())
			assert.True(t, b.GSTOnPlatform.IsZero())
			assert.True(t, b.ConvenienceFee.IsZero())
			assert.True(t, b.GSTOnConvenience.IsZero())
			assert.True(t, b.TotalWithoutDiscount.IsZero())
			assert.True(t, b.CouponDiscount.IsZero())
			assert.True(t, b.FinalPrice.IsZero())
		})
	}
}

func TestCalculateThousandRupeeScenario(t *testing.T) {
	b := Calculate(decimal.NewFromInt(1000), true)

	equal := func(expected string, actual decimal.Decimal) {
		assert.True(t, actual.Equal(decimal.RequireFromString(expected)),
			"expected %s, got %s", expected, actual.String())
	}

	equal("50", b.GSTOnBase)
	equal("136.5", b.PlatformFee)
	equal("24.57", b.GSTOnPlatform)
	equal("24.2214", b.ConvenienceFee)
	equal("4.359852", b.GSTOnConvenience)
	equal("1239.651252", b.TotalWithoutDiscount)
	equal("61.9825626", b.CouponDiscount)
	equal("1177.6686894", b.FinalPrice)
}

func TestCalculateCouponApplied(t *testing.T) {
	b := Calculate(decimal.NewFromInt(2400), true)

	expected := b.TotalWithoutDiscount.Mul(decimal.RequireFromString("0.95"))
	assert.True(t, b.FinalPrice.Equal(expected))
	assert.True(t, b.CouponDiscount.Equal(b.TotalWithoutDiscount.Mul(decimal.RequireFromString("0.05"))))
}

func TestCalculateCouponNotApplied(t *testing.T) {
	b := Calculate(decimal.NewFromInt(2400), false)

	assert.True(t, b.CouponDiscount.IsZero())
	assert.True(t, b.FinalPrice.Equal(b.TotalWithoutDiscount))
}

func TestCalculateMonotonicInBasePrice(t *testing.T) {
	prices := []string{"1", "99.99", "100", "1000", "1000.01", "25000"}

	var prev decimal.Decimal
	for i, p := range prices {
		b := Calculate(decimal.RequireFromString(p), true)
		if i > 0 {
			require.True(t, b.FinalPrice.GreaterThan(prev),
				"final price for base %s should exceed the one for %s", p, prices[i-1])
		}
		prev = b.FinalPrice
	}
}

func TestRounded(t *testing.T) {
	b := Calculate(decimal.NewFromInt(1000), true).Rounded()

	assert.Equal(t, "24.22", b.ConvenienceFee.String())
	assert.Equal(t, "4.36", b.GSTOnConvenience.String())
	assert.Equal(t, "1239.65", b.TotalWithoutDiscount.String())
	assert.Equal(t, "61.98", b.CouponDiscount.String())
	assert.Equal(t, "1177.67", b.FinalPrice.String())
}

func TestFinalMinorUnits(t *testing.T) {
	b := Calculate(decimal.NewFromInt(1000), true)

	assert.Equal(t, int64(117767), b.FinalMinorUnits())
}
