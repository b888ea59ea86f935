package schedule

import (
	"time"

	"gorm.io/gorm"

	"crowdvest/internal/models"

	log "github.com/sirupsen/logrus"
)

// getZeroSecondTime truncates a timestamp to the start of its minute so
// records from the same run share one key.
func getZeroSecondTime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

type mintAggregate struct {
	positions int
	claimable uint64
	locked    uint64
	total     uint64
}

// RecordVestingMaturity scans every vesting position and writes one
// VestingMaturityRecord per sale mint: how much has already matured but
// is still unclaimed, and how much is locked behind future release times.
func RecordVestingMaturity(db *gorm.DB, now time.Time) error {
	var positions []models.Vesting
	if err := db.Find(&positions).Error; err != nil {
		log.Errorf("> failed to load vesting positions: %v", err)
		return err
	}

	if len(positions) == 0 {
		log.Debug("> no vesting positions, skipping maturity snapshot")
		return nil
	}

	nowUnix := uint64(now.Unix())
	byMint := make(map[string]*mintAggregate)
	for _, v := range positions {
		agg, ok := byMint[v.SaleMint]
		if !ok {
			agg = &mintAggregate{}
			byMint[v.SaleMint] = agg
		}
		agg.positions++
		agg.total += v.TotalAmount
		for _, tranche := range v.Schedule {
			if tranche.ReleaseTime <= nowUnix {
				agg.claimable += tranche.Amount
			} else {
				agg.locked += tranche.Amount
			}
		}
	}

	recordedAt := getZeroSecondTime(now)
	for mint, agg := range byMint {
		record := models.VestingMaturityRecord{
			SaleMint:        mint,
			Positions:       agg.positions,
			ClaimableAmount: agg.claimable,
			LockedAmount:    agg.locked,
			TotalAmount:     agg.total,
			RecordedAt:      recordedAt,
		}
		if err := db.Create(&record).Error; err != nil {
			log.Errorf("> failed to create maturity record for mint %s: %v", mint, err)
			continue
		}
		log.WithFields(log.Fields{
			"sale_mint": mint,
			"positions": agg.positions,
			"claimable": agg.claimable,
			"locked":    agg.locked,
		}).Info("vesting maturity snapshot recorded")
	}

	return nil
}
