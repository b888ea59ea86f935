package business

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"crowdvest/internal/models"
	"crowdvest/pkg/custody"
	"crowdvest/pkg/solana"
)

// newTestEngine builds an engine on an in-memory sqlite database with the
// gorm custody ledger and the real program deriver.
func newTestEngine(t *testing.T) (*Engine, *custody.Ledger) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Sale{},
		&models.Vesting{},
		&models.CustodyAccount{},
		&models.SaleEventLog{},
	))
	ledger := custody.NewLedger()
	return NewEngine(db, ledger, solana.NewProgramDeriver()), ledger
}

// seedAccount creates a custody account and mints a starting balance.
func seedAccount(t *testing.T, e *Engine, ledger *custody.Ledger, address, mint, authority string, balance uint64) {
	t.Helper()
	require.NoError(t, ledger.CreateAccount(e.DB, address, mint, authority))
	if balance > 0 {
		require.NoError(t, ledger.Mint(e.DB, address, balance))
	}
}

// balance reads an account balance, failing the test on error.
func balance(t *testing.T, e *Engine, ledger *custody.Ledger, address string) uint64 {
	t.Helper()
	amount, err := ledger.Balance(e.DB, address)
	require.NoError(t, err)
	return amount
}
