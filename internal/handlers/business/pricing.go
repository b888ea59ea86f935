package business

import (
	"math/bits"

	"crowdvest/internal/models"
)

// BpsDenominator is the basis-point scale: 10000 bps = 100%.
const BpsDenominator = 10000

// PurchaseAmount converts a payment into a token amount at price
// numerator/denominator, flooring the result. The multiply runs in a 128-bit
// intermediate; a quotient that does not fit back into 64 bits is an
// overflow.
func PurchaseAmount(paymentAmount, numerator, denominator uint64) (uint64, error) {
	if numerator == 0 || denominator == 0 {
		return 0, ErrZeroPrice
	}
	hi, lo := bits.Mul64(paymentAmount, numerator)
	if hi >= denominator {
		return 0, ErrCalculationOverflow
	}
	quo, _ := bits.Div64(hi, lo, denominator)
	return quo, nil
}

// trancheAmount is floor(purchased * bps / 10000). With bps capped at 10000
// by schedule validation the 128-bit intermediate always divides back into
// 64 bits.
func trancheAmount(purchased uint64, bps uint16) uint64 {
	hi, lo := bits.Mul64(purchased, uint64(bps))
	quo, _ := bits.Div64(hi, lo, BpsDenominator)
	return quo
}

// SplitPurchase divides a purchased amount across the sale's release
// schedule. Each tranche gets its floored basis-point share; the advance is
// purchased minus the tranche total, so every rounding remainder lands in
// the advance and advance + sum(tranches) == purchased exactly.
func SplitPurchase(purchased uint64, schedule []models.ReleaseTranche) (tranches []uint64, remainingTotal, advance uint64) {
	tranches = make([]uint64, len(schedule))
	for i, line := range schedule {
		tranches[i] = trancheAmount(purchased, line.FractionBps)
		remainingTotal += tranches[i]
	}
	advance = purchased - remainingTotal
	return tranches, remainingTotal, advance
}
