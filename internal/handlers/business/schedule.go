package business

import "crowdvest/internal/models"

// ValidateSchedule checks the creation-time invariant: the advance fraction
// plus every tranche fraction must allocate exactly 100% of a purchase.
// Validated once at sale creation, immutable afterwards.
func ValidateSchedule(advanceBps uint16, schedule []models.ReleaseTranche) error {
	total := uint64(advanceBps)
	for _, line := range schedule {
		total += uint64(line.FractionBps)
	}
	if total != BpsDenominator {
		return ErrFractionsNotFullyAllocated
	}
	return nil
}

// SchedulesCompatible reports whether a vesting position can absorb a
// purchase from a sale: same tranche count and the same release time at
// every position. Fraction values may differ between sales; only the shape
// must match, since tranche amounts merge positionally.
func SchedulesCompatible(vesting []models.VestingTranche, release []models.ReleaseTranche) bool {
	if len(vesting) != len(release) {
		return false
	}
	for i := range vesting {
		if vesting[i].ReleaseTime != release[i].ReleaseTime {
			return false
		}
	}
	return true
}

// NewVestingSchedule builds the empty vesting schedule aligned positionally
// with a sale's release schedule.
func NewVestingSchedule(release []models.ReleaseTranche) []models.VestingTranche {
	schedule := make([]models.VestingTranche, len(release))
	for i, line := range release {
		schedule[i] = models.VestingTranche{ReleaseTime: line.ReleaseTime}
	}
	return schedule
}
