package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Fee and tax rates applied during checkout. Each stage is charged on the
// subtotal produced by the previous stages, so the order in Calculate matters.
var (
	gstOnBaseRate      = decimal.NewFromFloat(0.05)
	platformFeeRate    = decimal.NewFromFloat(0.13)
	gstOnPlatformRate  = decimal.NewFromFloat(0.18)
	convenienceFeeRate = decimal.NewFromFloat(0.02)
	gstOnConvRate      = decimal.NewFromFloat(0.18)
	couponDiscountRate = decimal.NewFromFloat(0.05)
)

// Breakdown is the full fee/tax/discount split for a room price. Amounts are
// exact decimals; rounding happens only at presentation (Rounded) or when
// converting to gateway minor units (FinalMinorUnits).
type Breakdown struct {
	BasePrice            decimal.Decimal `json:"base_price"`
	GSTOnBase            decimal.Decimal `json:"gst_on_base"`
	PlatformFee          decimal.Decimal `json:"platform_fee"`
	GSTOnPlatform        decimal.Decimal `json:"gst_on_platform"`
	ConvenienceFee       decimal.Decimal `json:"convenience_fee"`
	GSTOnConvenience     decimal.Decimal `json:"gst_on_convenience"`
	TotalWithoutDiscount decimal.Decimal `json:"total_without_discount"`
	CouponDiscount       decimal.Decimal `json:"coupon_discount"`
	FinalPrice           decimal.Decimal `json:"final_price"`
}

// Calculate builds the breakdown for a base room price. A non-positive base
// price yields the all-zero breakdown rather than an error.
func Calculate(basePrice decimal.Decimal, couponApplied bool) Breakdown {
	if basePrice.Sign() <= 0 {
		return Breakdown{}
	}

	gstOnBase := basePrice.Mul(gstOnBaseRate)
	afterBaseGST := basePrice.Add(gstOnBase)
	platformFee := afterBaseGST.Mul(platformFeeRate)
	gstOnPlatform := platformFee.Mul(gstOnPlatformRate)
	subtotal := basePrice.Add(gstOnBase).Add(platformFee).Add(gstOnPlatform)
	convenienceFee := subtotal.Mul(convenienceFeeRate)
	gstOnConvenience := convenienceFee.Mul(gstOnConvRate)
	total := subtotal.Add(convenienceFee).Add(gstOnConvenience)

	couponDiscount := decimal.Zero
	if couponApplied {
		couponDiscount = total.Mul(couponDiscountRate)
	}

	return Breakdown{
		BasePrice:            basePrice,
		GSTOnBase:            gstOnBase,
		PlatformFee:          platformFee,
		GSTOnPlatform:        gstOnPlatform,
		ConvenienceFee:       convenienceFee,
		GSTOnConvenience:     gstOnConvenience,
		TotalWithoutDiscount: total,
		CouponDiscount:       couponDiscount,
		FinalPrice:           total.Sub(couponDiscount),
	}
}

// CalculateFromFloat guards against NaN/Inf before handing off to Calculate,
// since decimal.NewFromFloat panics on non-finite input.
func CalculateFromFloat(basePrice float64, couponApplied bool) Breakdown {
	if math.IsNaN(basePrice) || math.IsInf(basePrice, 0) || basePrice <= 0 {
		return Breakdown{}
	}
	return Calculate(decimal.NewFromFloat(basePrice), couponApplied)
}

// Rounded returns the breakdown with every amount rounded half-up to two
// decimal places, the form shown to the guest.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		BasePrice:            b.BasePrice.Round(2),
		GSTOnBase:            b.GSTOnBase.Round(2),
		PlatformFee:          b.PlatformFee.Round(2),
		GSTOnPlatform:        b.GSTOnPlatform.Round(2),
		ConvenienceFee:       b.ConvenienceFee.Round(2),
		GSTOnConvenience:     b.GSTOnConvenience.Round(2),
		TotalWithoutDiscount: b.TotalWithoutDiscount.Round(2),
		CouponDiscount:       b.CouponDiscount.Round(2),
		FinalPrice:           b.FinalPrice.Round(2),
	}
}

// FinalMinorUnits is the payable amount in paise, the unit the payment
// gateway charges in.
func (b Breakdown) FinalMinorUnits() int64 {
	return b.FinalPrice.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
