package business

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	"crowdvest/internal/models"
	"crowdvest/pkg/solana"
)

// WithdrawAll is the sentinel amount meaning "withdraw the entire escrow
// balance"; it is resolved to the live balance before the transfer.
const WithdrawAll = uint64(math.MaxUint64)

// InitializeSaleParams carries everything a seller provides at creation.
type InitializeSaleParams struct {
	Seller             string
	Sequence           uint64
	Authority          string
	PriceNumerator     uint64
	PriceDenominator   uint64
	PaymentMinAmount   uint64
	AdvanceFractionBps uint16
	ReleaseSchedule    []models.ReleaseTranche
	SaleMint           string
	PaymentDestination string
	VestingOnly        bool
}

// InitializeSale validates pricing and schedule, derives the sale's custody
// addresses and records the sale inactive. Pricing and schedule are immutable
// for the life of the record.
func (e *Engine) InitializeSale(p InitializeSaleParams) (*models.Sale, error) {
	if !p.VestingOnly && (p.PriceNumerator == 0 || p.PriceDenominator == 0) {
		return nil, ErrZeroPrice
	}
	if err := ValidateSchedule(p.AdvanceFractionBps, p.ReleaseSchedule); err != nil {
		return nil, err
	}

	saleAddr, _, err := e.Deriver.Derive(solana.SeedSale, solana.Seed(p.Seller), solana.SeedUint64(p.Sequence))
	if err != nil {
		return nil, fmt.Errorf("derive sale address: %w", err)
	}
	signerAddr, signerBump, err := e.Deriver.Derive(solana.Seed(saleAddr))
	if err != nil {
		return nil, fmt.Errorf("derive sale signer: %w", err)
	}
	escrowAddr, escrowBump, err := e.Deriver.Derive(solana.SeedSaleToken, solana.Seed(saleAddr))
	if err != nil {
		return nil, fmt.Errorf("derive escrow account: %w", err)
	}

	sale := models.Sale{
		Address:            saleAddr,
		Seller:             p.Seller,
		Sequence:           p.Sequence,
		Authority:          p.Authority,
		IsActive:           false,
		PriceNumerator:     p.PriceNumerator,
		PriceDenominator:   p.PriceDenominator,
		PaymentMinAmount:   p.PaymentMinAmount,
		AdvanceFractionBps: p.AdvanceFractionBps,
		ReleaseSchedule:    p.ReleaseSchedule,
		SaleMint:           p.SaleMint,
		EscrowTokenAccount: escrowAddr,
		PaymentDestination: p.PaymentDestination,
		SignerAuthority:    signerAddr,
		SignerBump:         signerBump,
		EscrowBump:         escrowBump,
		VestingOnly:        p.VestingOnly,
	}

	err = e.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		if err := e.Custody.CreateAccount(tx, escrowAddr, p.SaleMint, signerAddr); err != nil {
			return err
		}
		return e.logEvent(tx, &models.SaleEventLog{
			EventType:   models.EventSaleCreated,
			SaleAddress: saleAddr,
		})
	})
	if err != nil {
		return nil, err
	}
	e.notify(&models.SaleEventLog{EventType: models.EventSaleCreated, SaleAddress: saleAddr})
	return &sale, nil
}

// ActivateSale opens the sale for purchases. Activating an already active
// sale fails; callers are expected to check state first.
func (e *Engine) ActivateSale(address, authority string) error {
	return e.DB.Transaction(func(tx *gorm.DB) error {
		sale, err := lockSale(tx, address)
		if err != nil {
			return err
		}
		if sale.Authority != authority {
			return ErrNotAuthorized
		}
		if sale.IsActive {
			return ErrSaleAlreadyActive
		}
		return tx.Model(&models.Sale{}).Where("address = ?", address).
			Update("is_active", true).Error
	})
}

// PauseSale closes the sale for purchases.
func (e *Engine) PauseSale(address, authority string) error {
	return e.DB.Transaction(func(tx *gorm.DB) error {
		sale, err := lockSale(tx, address)
		if err != nil {
			return err
		}
		if sale.Authority != authority {
			return ErrNotAuthorized
		}
		if !sale.IsActive {
			return ErrSaleNotActive
		}
		return tx.Model(&models.Sale{}).Where("address = ?", address).
			Update("is_active", false).Error
	})
}

// RotateAuthority reassigns the sale authority unconditionally.
func (e *Engine) RotateAuthority(address, authority, newAuthority string) error {
	return e.DB.Transaction(func(tx *gorm.DB) error {
		sale, err := lockSale(tx, address)
		if err != nil {
			return err
		}
		if sale.Authority != authority {
			return ErrNotAuthorized
		}
		return tx.Model(&models.Sale{}).Where("address = ?", address).
			Update("authority", newAuthority).Error
	})
}

// FundSale deposits sale tokens into the escrow. Anyone may fund.
func (e *Engine) FundSale(address, source, sourceAuthority string, amount uint64) error {
	var saleAddr string
	err := e.DB.Transaction(func(tx *gorm.DB) error {
		sale, err := lockSale(tx, address)
		if err != nil {
			return err
		}
		saleAddr = sale.Address
		if err := e.Custody.Transfer(tx, source, sale.EscrowTokenAccount, sourceAuthority, amount); err != nil {
			return err
		}
		return e.logEvent(tx, &models.SaleEventLog{
			EventType:   models.EventSaleFunded,
			SaleAddress: sale.Address,
			Amount:      amount,
		})
	})
	if err != nil {
		return err
	}
	e.notify(&models.SaleEventLog{EventType: models.EventSaleFunded, SaleAddress: saleAddr, Amount: amount})
	return nil
}

// WithdrawSale moves escrow tokens to a destination of the authority's
// choosing. Passing WithdrawAll withdraws the whole current balance. Returns
// the amount actually transferred.
func (e *Engine) WithdrawSale(address, authority, destination string, amount uint64) (uint64, error) {
	var withdrawn uint64
	err := e.DB.Transaction(func(tx *gorm.DB) error {
		sale, err := lockSale(tx, address)
		if err != nil {
			return err
		}
		if sale.Authority != authority {
			return ErrNotAuthorized
		}
		if amount == WithdrawAll {
			amount, err = e.Custody.Balance(tx, sale.EscrowTokenAccount)
			if err != nil {
				return err
			}
		}
		if err := e.Custody.Transfer(tx, sale.EscrowTokenAccount, destination, sale.SignerAuthority, amount); err != nil {
			return err
		}
		withdrawn = amount
		return e.logEvent(tx, &models.SaleEventLog{
			EventType:   models.EventSaleWithdraw,
			SaleAddress: sale.Address,
			Amount:      amount,
		})
	})
	if err != nil {
		return 0, err
	}
	e.notify(&models.SaleEventLog{EventType: models.EventSaleWithdraw, SaleAddress: address, Amount: withdrawn})
	return withdrawn, nil
}
