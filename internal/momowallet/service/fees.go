package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const Currency = "UGX"

var (
	feeRate        = decimal.RequireFromString("0.35")
	maxGrossAmount = decimal.NewFromInt(10_000_000)
)

// SplitGross splits a gross withdrawal amount into the platform fee and the
// net amount disbursed to the user. The fee is 35% of gross rounded
// half-up to 2 decimal places; net is the exact remainder, so
// fee + net == gross always reconciles.
func SplitGross(gross decimal.Decimal) (fee, net decimal.Decimal) {
	fee = gross.Mul(feeRate).Round(2)
	net = gross.Sub(fee)
	return fee, net
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	}
	if amount.GreaterThan(maxGrossAmount) {
		return fmt.Errorf("%w: exceeds maximum of %s", ErrInvalidAmount, maxGrossAmount)
	}
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: more than 2 decimal places", ErrInvalidAmount)
	}
	return nil
}
