package business

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crowdvest/internal/models"
	"crowdvest/pkg/custody"
	"crowdvest/pkg/solana"
)

// newActiveSale initializes, funds and activates a sale ready for purchases.
func newActiveSale(t *testing.T, e *Engine, ledger *custody.Ledger, p InitializeSaleParams, escrowFunds uint64) *models.Sale {
	t.Helper()
	sale, err := e.InitializeSale(p)
	require.NoError(t, err)
	if escrowFunds > 0 {
		seedAccount(t, e, ledger, "treasury-"+sale.Address, p.SaleMint, "treasury-"+sale.Address, escrowFunds)
		require.NoError(t, e.FundSale(sale.Address, "treasury-"+sale.Address, "treasury-"+sale.Address, escrowFunds))
	}
	require.NoError(t, e.ActivateSale(sale.Address, p.Authority))
	return sale
}

func userTokenAddr(t *testing.T, e *Engine, buyer, mint string) string {
	t.Helper()
	addr, _, err := e.Deriver.Derive(solana.SeedUserToken, solana.Seed(buyer), solana.Seed(mint))
	require.NoError(t, err)
	return addr
}

func TestExecuteSale(t *testing.T) {
	t.Run("First Purchase Creates Vesting", func(t *testing.T) {
		e, ledger := newTestEngine(t)
		sale := newActiveSale(t, e, ledger, defaultSaleParams(), 100000)
		seedAccount(t, e, ledger, "buyer-1", "native", "buyer-1", 5000)

		result, err := e.ExecuteSale(PurchaseParams{SaleAddress: sale.Address, Buyer: "buyer-1", PaymentAmount: 1000})
		require.NoError(t, err)

		assert.Equal(t, uint64(1500), result.Purchased)
		assert.Equal(t, uint64(300), result.Advance)
		assert.Equal(t, uint64(1200), result.Vested)

		vesting := result.Vesting
		assert.Equal(t, "buyer-1", vesting.Buyer)
		assert.Equal(t, sale.SaleMint, vesting.SaleMint)
		assert.Equal(t, sale.Address, vesting.FirstSale)
		assert.Equal(t, uint64(1200), vesting.TotalAmount)
		require.Len(t, vesting.Schedule, 2)
		assert.Equal(t, uint64(600), vesting.Schedule[0].Amount)
		assert.Equal(t, uint64(600), vesting.Schedule[1].Amount)

		// Payment left the buyer, advance reached their token account,
		// the vested remainder sits in the vesting custody account.
		assert.Equal(t, uint64(4000), balance(t, e, ledger, "buyer-1"))
		assert.Equal(t, uint64(1000), balance(t, e, ledger, "payment-dest"))
		assert.Equal(t, uint64(300), balance(t, e, ledger, userTokenAddr(t, e, "buyer-1", "MINT")))
		assert.Equal(t, uint64(1200), balance(t, e, ledger, vesting.CustodyTokenAccount))
		assert.Equal(t, uint64(100000-1500), balance(t, e, ledger, sale.EscrowTokenAccount))
	})

	t.Run("Top Up Merges Into Existing Vesting", func(t *testing.T) {
		e, ledger := newTestEngine(t)
		sale := newActiveSale(t, e, ledger, defaultSaleParams(), 100000)
		seedAccount(t, e, ledger, "buyer-1", "native", "buyer-1", 5000)

		_, err := e.ExecuteSale(PurchaseParams{SaleAddress: sale.Address, Buyer: "buyer-1", PaymentAmount: 1000})
		require.NoError(t, err)

		result, err := e.ExecuteSale(PurchaseParams{SaleAddress: sale.Address, Buyer: "buyer-1", PaymentAmount: 500})
		require.NoError(t, err)

		assert.Equal(t, uint64(750), result.Purchased)
		vesting := result.Vesting
		assert.Equal(t, uint64(1800), vesting.TotalAmount)
		assert.Equal(t, uint64(900), vesting.Schedule[0].Amount)
		assert.Equal(t, uint64(900), vesting.Schedule[1].Amount)

		// Only one vesting row for the pair.
		var count int64
		require.NoError(t, e.DB.Model(&models.Vesting{}).Where("buyer = ?", "buyer-1").Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("Incompatible Schedule Aborts Without State Change", func(t *testing.T) {
		e, ledger := newTestEngine(t)
		sale := newActiveSale(t, e, ledger, defaultSaleParams(), 100000)
		seedAccount(t, e, ledger, "buyer-1", "native", "buyer-1", 5000)

		_, err := e.ExecuteSale(PurchaseParams{SaleAddress: sale.Address, Buyer: "buyer-1", PaymentAmount: 1000})
		require.NoError(t, err)

		// Second sale of the same mint with a shifted release time.
		p := defaultSaleParams()
		p.Sequence = 1
		p.ReleaseSchedule = []models.ReleaseTranche{
			{ReleaseTime: 1000, FractionBps: 4000},
			{ReleaseTime: 2001, FractionBps: 4000},
		}
		other := newActiveSale(t, e, ledger, p, 100000)

		buyerBefore := balance(t, e, ledger, "buyer-1")
		_, err = e.ExecuteSale(PurchaseParams{SaleAddress: other.Address, Buyer: "buyer-1", PaymentAmount: 1000})
		assert.ErrorIs(t, err, ErrIncompatibleVesting)

		// Ledger and vesting untouched.
		assert.Equal(t, buyerBefore, balance(t, e, ledger, "buyer-1"))
		var vesting models.Vesting
		require.NoError(t, e.DB.Where("buyer = ?", "buyer-1").First(&vesting).Error)
		assert.Equal(t, uint64(1200), vesting.TotalAmount)
		assert.Equal(t, uint64(600), vesting.Schedule[0].Amount)
	})

	t.Run("Length Mismatch Is Incompatible", func(t *testing.T) {
		e, ledger := newTestEngine(t)
		sale := newActiveSale(t, e, ledger, defaultSaleParams(), 100000)
		seedAccount(t, e, ledger, "buyer-1", "native", "buyer-1", 5000)

		_, err := e.ExecuteSale(PurchaseParams{SaleAddress: sale.Address, Buyer: "buyer-1", PaymentAmount: 1000})
		require.NoError(t, err)

		p := defaultSaleParams()
		p.Sequence = 1
		p.AdvanceFractionBps = 6000
		p.ReleaseSchedule = []models.ReleaseTranche{{ReleaseTime: 1000, FractionBps: 4000}}
		other := newActiveSale(t, e, ledger, p, 100000)

		_, err = e.ExecuteSale(PurchaseParams{SaleAddress: other.Address, Buyer: "buyer-1", PaymentAmount: 1000})
		assert.ErrorIs(t, err, ErrIncompatibleVesting)
	})

	t.Run("Inactive Sale Rejected", func(t *testing.T) {
		e, ledger := newTestEngine(t)
		sale, err := e.InitializeSale(defaultSaleParams())
		require.NoError(t, err)
		seedAccount(t, e, ledger, "buyer-1", "native", "buyer-1", 5000)

		_, err = e.ExecuteSale(PurchaseParams{SaleAddress: sale.Address, Buyer: "buyer-1", PaymentAmount: 1000})
		assert.ErrorIs(t, err, ErrSaleNotActive)
	})

	t.Run("Below Minimum Rejected", func(t *testing.T) {
		e, ledger := newTestEngine(t)
		sale := newActiveSale(t, e, ledger, defaultSaleParams(), 100000)
		seedAccount(t, e, ledger, "buyer-1", "native", "buyer-1", 5000)

		_, err := e.ExecuteSale(PurchaseParams{SaleAddress: sale.Address, Buyer: "buyer-1", PaymentAmount: 99})
		assert.ErrorIs(t, err, ErrAmountMinimum)
	})

	t.Run("Insufficient Payment Balance Rolls Back", func(t *testing.T) {
		e, ledger := newTestEngine(t)
		sale := newActiveSale(t, e, ledger, defaultSaleParams(), 100000)
		seedAccount(t, e, ledger, "buyer-1", "native", "buyer-1", 500)

		_, err := e.ExecuteSale(PurchaseParams{SaleAddress: sale.Address, Buyer: "buyer-1", PaymentAmount: 1000})
		assert.ErrorIs(t, err, custody.ErrInsufficientFunds)

		// No vesting was left behind.
		var count int64
		require.NoError(t, e.DB.Model(&models.Vesting{}).Count(&count).Error)
		assert.Zero(t, count)
		assert.Equal(t, uint64(500), balance(t, e, ledger, "buyer-1"))
	})

	t.Run("Vesting Only Sale Takes No Payment", func(t *testing.T) {
		e, ledger := newTestEngine(t)
		p := defaultSaleParams()
		p.VestingOnly = true
		p.PaymentMinAmount = 0
		sale := newActiveSale(t, e, ledger, p, 100000)

		// Buyer has no payment balance at all.
		result, err := e.ExecuteSale(PurchaseParams{SaleAddress: sale.Address, Buyer: "buyer-2", PaymentAmount: 1000})
		require.NoError(t, err)

		// The requested amount vests directly, no pricing applied.
		assert.Equal(t, uint64(1000), result.Purchased)
		assert.Equal(t, uint64(200), result.Advance)
		assert.Equal(t, uint64(800), result.Vested)
	})
}

func TestInitVesting(t *testing.T) {
	e, ledger := newTestEngine(t)
	sale := newActiveSale(t, e, ledger, defaultSaleParams(), 0)

	vesting, err := e.InitVesting(sale.Address, "buyer-1")
	require.NoError(t, err)
	assert.Zero(t, vesting.TotalAmount)
	require.Len(t, vesting.Schedule, 2)
	assert.Zero(t, vesting.Schedule[0].Amount)
	assert.Zero(t, balance(t, e, ledger, vesting.CustodyTokenAccount))

	_, err = e.InitVesting(sale.Address, "buyer-1")
	assert.ErrorIs(t, err, ErrVestingExists)
}
