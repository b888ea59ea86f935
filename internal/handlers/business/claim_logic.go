package business

import (
	"time"

	"gorm.io/gorm"

	"crowdvest/internal/models"
)

// Claim releases every matured tranche of the buyer's vesting position:
// their amounts are summed, zeroed and transferred from the vesting custody
// sub-account to the buyer's token account. Release times stay in place so
// the schedule keeps its shape for future top-ups.
func (e *Engine) Claim(buyer, mint string, now time.Time) (uint64, error) {
	var claimed uint64
	var saleAddr string

	err := e.DB.Transaction(func(tx *gorm.DB) error {
		vesting, err := lockVesting(tx, buyer, mint)
		if err != nil {
			return err
		}
		saleAddr = vesting.FirstSale

		nowUnix := uint64(now.Unix())
		var due uint64
		for _, line := range vesting.Schedule {
			if line.ReleaseTime <= nowUnix {
				due += line.Amount
			}
		}
		if due == 0 {
			return ErrNothingToClaim
		}

		for i := range vesting.Schedule {
			if vesting.Schedule[i].ReleaseTime <= nowUnix {
				vesting.Schedule[i].Amount = 0
			}
		}
		if err := tx.Model(&models.Vesting{}).Where("id = ?", vesting.ID).
			Select("schedule").
			Updates(models.Vesting{Schedule: vesting.Schedule}).Error; err != nil {
			return err
		}

		userToken, err := e.userTokenAccount(tx, buyer, mint)
		if err != nil {
			return err
		}
		// The vesting's derived identity signs the release.
		if err := e.Custody.Transfer(tx, vesting.CustodyTokenAccount, userToken, vesting.Address, due); err != nil {
			return err
		}

		claimed = due
		return e.logEvent(tx, &models.SaleEventLog{
			EventType:   models.EventClaim,
			SaleAddress: vesting.FirstSale,
			Buyer:       buyer,
			Amount:      due,
		})
	})
	if err != nil {
		return 0, err
	}
	e.notify(&models.SaleEventLog{
		EventType:   models.EventClaim,
		SaleAddress: saleAddr,
		Buyer:       buyer,
		Amount:      claimed,
	})
	return claimed, nil
}

// CloseVesting deallocates a fully claimed vesting position. The custody
// sub-account must hold exactly zero; the custody service enforces that and
// routes the storage deposit back to the buyer.
func (e *Engine) CloseVesting(buyer, mint string) error {
	return e.DB.Transaction(func(tx *gorm.DB) error {
		vesting, err := lockVesting(tx, buyer, mint)
		if err != nil {
			return err
		}
		if err := e.Custody.Close(tx, vesting.CustodyTokenAccount, vesting.Address, buyer); err != nil {
			return err
		}
		if err := tx.Delete(&models.Vesting{}, vesting.ID).Error; err != nil {
			return err
		}
		return e.logEvent(tx, &models.SaleEventLog{
			EventType:   models.EventVestingClose,
			SaleAddress: vesting.FirstSale,
			Buyer:       buyer,
		})
	})
}
