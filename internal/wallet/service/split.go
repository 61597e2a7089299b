package service

// SplitPolicy configures the round-up savings rule.
type SplitPolicy struct {
	// ForceSavingsOnExact makes exact multiples of the rounding unit still
	// produce a full-unit savings leg. Product default is true.
	ForceSavingsOnExact bool
}

// DefaultSplitPolicy is the product-standard round-up rule.
var DefaultSplitPolicy = SplitPolicy{ForceSavingsOnExact: true}

// roundingUnit is the denomination payments are rounded up to, in minor
// currency units.
const roundingUnit int64 = 10

// SplitAmount computes the principal and savings legs for a payment.
// The principal always equals the full amount; savings is the round-up to
// the next multiple of the rounding unit, debited additionally to the
// payer's own savings address. Amounts of zero or less produce no savings.
func SplitAmount(amount int64, policy SplitPolicy) (principal, savings int64) {
	if amount <= 0 {
		return amount, 0
	}

	savings = (roundingUnit - amount%roundingUnit) % roundingUnit
	if savings == 0 && policy.ForceSavingsOnExact {
		savings = roundingUnit
	}
	return amount, savings
}
