package business

import (
	"fmt"

	"gorm.io/gorm"

	"crowdvest/internal/models"
	"crowdvest/pkg/solana"
)

// PurchaseParams identifies one purchase attempt.
type PurchaseParams struct {
	SaleAddress   string
	Buyer         string
	PaymentAmount uint64
}

// PurchaseResult reports how a purchase was split.
type PurchaseResult struct {
	Purchased uint64          `json:"purchased"`
	Advance   uint64          `json:"advance"`
	Vested    uint64          `json:"vested"`
	Vesting   *models.Vesting `json:"vesting"`
}

// ExecuteSale converts a payment into an immediate advance plus a vesting
// top-up. The whole operation is one transaction; every validation runs
// before any custody transfer so a failure leaves no partial state.
func (e *Engine) ExecuteSale(p PurchaseParams) (*PurchaseResult, error) {
	var result PurchaseResult

	err := e.DB.Transaction(func(tx *gorm.DB) error {
		sale, err := lockSale(tx, p.SaleAddress)
		if err != nil {
			return err
		}
		if !sale.IsActive {
			return ErrSaleNotActive
		}
		if p.PaymentAmount < sale.PaymentMinAmount {
			return ErrAmountMinimum
		}

		purchased := p.PaymentAmount
		if !sale.VestingOnly {
			purchased, err = PurchaseAmount(p.PaymentAmount, sale.PriceNumerator, sale.PriceDenominator)
			if err != nil {
				return err
			}
		}
		tranches, remainingTotal, advance := SplitPurchase(purchased, sale.ReleaseSchedule)

		// Resolve the vesting position before any transfer commits.
		vesting, err := lockVesting(tx, p.Buyer, sale.SaleMint)
		newVesting := err == ErrVestingNotFound
		if err != nil && !newVesting {
			return err
		}
		if !newVesting && !SchedulesCompatible(vesting.Schedule, sale.ReleaseSchedule) {
			return ErrIncompatibleVesting
		}
		if newVesting {
			vesting, err = e.buildVesting(sale, p.Buyer)
			if err != nil {
				return err
			}
			if err := tx.Create(vesting).Error; err != nil {
				return err
			}
			if err := e.Custody.CreateAccount(tx, vesting.CustodyTokenAccount, sale.SaleMint, vesting.Address); err != nil {
				return err
			}
		}

		// Payment moves unconditionally once preconditions pass; the
		// buyer's own identity authorizes the debit.
		if !sale.VestingOnly {
			if err := e.Custody.Transfer(tx, p.Buyer, sale.PaymentDestination, p.Buyer, p.PaymentAmount); err != nil {
				return err
			}
		}

		if advance > 0 {
			userToken, err := e.userTokenAccount(tx, p.Buyer, sale.SaleMint)
			if err != nil {
				return err
			}
			if err := e.Custody.Transfer(tx, sale.EscrowTokenAccount, userToken, sale.SignerAuthority, advance); err != nil {
				return err
			}
		}

		for i := range tranches {
			vesting.Schedule[i].Amount += tranches[i]
		}
		vesting.TotalAmount += remainingTotal
		if err := tx.Model(&models.Vesting{}).Where("id = ?", vesting.ID).
			Select("total_amount", "schedule").
			Updates(models.Vesting{
				TotalAmount: vesting.TotalAmount,
				Schedule:    vesting.Schedule,
			}).Error; err != nil {
			return err
		}

		if err := e.Custody.Transfer(tx, sale.EscrowTokenAccount, vesting.CustodyTokenAccount, sale.SignerAuthority, remainingTotal); err != nil {
			return err
		}

		result = PurchaseResult{
			Purchased: purchased,
			Advance:   advance,
			Vested:    remainingTotal,
			Vesting:   vesting,
		}
		return e.logEvent(tx, &models.SaleEventLog{
			EventType:   models.EventPurchase,
			SaleAddress: sale.Address,
			Buyer:       p.Buyer,
			Amount:      p.PaymentAmount,
			Advance:     advance,
			Vested:      remainingTotal,
		})
	})
	if err != nil {
		return nil, err
	}
	e.notify(&models.SaleEventLog{
		EventType:   models.EventPurchase,
		SaleAddress: p.SaleAddress,
		Buyer:       p.Buyer,
		Amount:      p.PaymentAmount,
		Advance:     result.Advance,
		Vested:      result.Vested,
	})
	return &result, nil
}

// InitVesting explicitly creates an empty vesting position for a buyer, the
// lazily-created path aside. All tranche amounts start at zero.
func (e *Engine) InitVesting(saleAddress, buyer string) (*models.Vesting, error) {
	var created *models.Vesting
	err := e.DB.Transaction(func(tx *gorm.DB) error {
		sale, err := lockSale(tx, saleAddress)
		if err != nil {
			return err
		}
		if _, err := lockVesting(tx, buyer, sale.SaleMint); err == nil {
			return ErrVestingExists
		} else if err != ErrVestingNotFound {
			return err
		}
		vesting, err := e.buildVesting(sale, buyer)
		if err != nil {
			return err
		}
		if err := tx.Create(vesting).Error; err != nil {
			return err
		}
		if err := e.Custody.CreateAccount(tx, vesting.CustodyTokenAccount, sale.SaleMint, vesting.Address); err != nil {
			return err
		}
		created = vesting
		return e.logEvent(tx, &models.SaleEventLog{
			EventType:   models.EventVestingInit,
			SaleAddress: sale.Address,
			Buyer:       buyer,
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// buildVesting derives the vesting record and its custody sub-account for a
// (buyer, mint) pair. The custody sub-account's authority is the vesting's
// own derived identity.
func (e *Engine) buildVesting(sale *models.Sale, buyer string) (*models.Vesting, error) {
	vestingAddr, bump, err := e.Deriver.Derive(solana.Seed(buyer), solana.Seed(sale.SaleMint))
	if err != nil {
		return nil, fmt.Errorf("derive vesting address: %w", err)
	}
	custodyAddr, _, err := e.Deriver.Derive(solana.SeedUserToken, solana.Seed(vestingAddr), solana.Seed(sale.SaleMint))
	if err != nil {
		return nil, fmt.Errorf("derive vesting custody account: %w", err)
	}
	return &models.Vesting{
		Address:             vestingAddr,
		Buyer:               buyer,
		SaleMint:            sale.SaleMint,
		FirstSale:           sale.Address,
		Schedule:            NewVestingSchedule(sale.ReleaseSchedule),
		CustodyTokenAccount: custodyAddr,
		VestingBump:         bump,
	}, nil
}

// userTokenAccount derives and lazily creates the buyer's own token account
// for a mint.
func (e *Engine) userTokenAccount(tx *gorm.DB, buyer, mint string) (string, error) {
	addr, _, err := e.Deriver.Derive(solana.SeedUserToken, solana.Seed(buyer), solana.Seed(mint))
	if err != nil {
		return "", fmt.Errorf("derive user token account: %w", err)
	}
	if err := e.Custody.CreateAccount(tx, addr, mint, buyer); err != nil {
		return "", err
	}
	return addr, nil
}
