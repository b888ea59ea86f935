package business

import "errors"

// Engine errors. All are terminal for the operation that raised them: the
// caller fixes the input and resubmits, the engine never retries.
var (
	ErrZeroPrice                  = errors.New("price numerator and denominator must be non-zero")
	ErrFractionsNotFullyAllocated = errors.New("advance and tranche fractions must sum to 10000 bps")
	ErrAmountMinimum              = errors.New("payment amount below sale minimum")
	ErrSaleNotActive              = errors.New("sale is not active")
	ErrSaleAlreadyActive          = errors.New("sale is already active")
	ErrCalculationOverflow        = errors.New("purchase amount overflows 64 bits")
	ErrIncompatibleVesting        = errors.New("vesting schedule is incompatible with sale")
	ErrNothingToClaim             = errors.New("no matured tranches to claim")
	ErrNotAuthorized              = errors.New("caller is not the sale authority")
	ErrSaleNotFound               = errors.New("sale not found")
	ErrVestingNotFound            = errors.New("vesting not found")
	ErrVestingExists              = errors.New("vesting already exists")
)
