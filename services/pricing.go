package services

// CommissionRateBasisPoints is the platform commission, 3%.
const CommissionRateBasisPoints = 300

const basisPointsDenominator = 10000

// Pricing is the derived price of a booking, fixed at creation.
type Pricing struct {
	BasePrice  int64
	Commission int64
	Total      int64
}

// ComputePricing applies the platform commission to basePrice. The
// commission is truncated toward zero.
func ComputePricing(basePrice int64) Pricing {
	return ComputePricingAtRate(basePrice, CommissionRateBasisPoints)
}

// ComputePricingAtRate splits basePrice at the denominator so the
// intermediate product stays in range for any non-negative basePrice and a
// rate of at most 100%. Total overflows only when basePrice itself is within
// the commission of math.MaxInt64.
func ComputePricingAtRate(basePrice, rateBasisPoints int64) Pricing {
	whole, rest := basePrice/basisPointsDenominator, basePrice%basisPointsDenominator
	commission := whole*rateBasisPoints + rest*rateBasisPoints/basisPointsDenominator
	return Pricing{
		BasePrice:  basePrice,
		Commission: commission,
		Total:      basePrice + commission,
	}
}
