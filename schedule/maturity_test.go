package schedule

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"crowdvest/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Vesting{}, &models.VestingMaturityRecord{}))
	return db
}

func TestRecordVestingMaturity(t *testing.T) {
	db := newTestDB(t)

	positions := []models.Vesting{
		{
			Address:             "vest-1",
			Buyer:               "buyer-1",
			SaleMint:            "MINT_A",
			FirstSale:           "sale-1",
			TotalAmount:         1000,
			CustodyTokenAccount: "cust-1",
			Schedule: []models.VestingTranche{
				{ReleaseTime: 1000, Amount: 400},
				{ReleaseTime: 2000, Amount: 600},
			},
		},
		{
			Address:             "vest-2",
			Buyer:               "buyer-2",
			SaleMint:            "MINT_A",
			FirstSale:           "sale-1",
			TotalAmount:         500,
			CustodyTokenAccount: "cust-2",
			Schedule: []models.VestingTranche{
				{ReleaseTime: 1000, Amount: 200},
				{ReleaseTime: 2000, Amount: 300},
			},
		},
		{
			Address:             "vest-3",
			Buyer:               "buyer-1",
			SaleMint:            "MINT_B",
			FirstSale:           "sale-2",
			TotalAmount:         100,
			CustodyTokenAccount: "cust-3",
			Schedule: []models.VestingTranche{
				{ReleaseTime: 5000, Amount: 100},
			},
		},
	}
	for i := range positions {
		require.NoError(t, db.Create(&positions[i]).Error)
	}

	now := time.Unix(1500, 0)
	require.NoError(t, RecordVestingMaturity(db, now))

	var recordA models.VestingMaturityRecord
	require.NoError(t, db.Where("sale_mint = ?", "MINT_A").First(&recordA).Error)
	require.Equal(t, 2, recordA.Positions)
	require.Equal(t, uint64(600), recordA.ClaimableAmount)
	require.Equal(t, uint64(900), recordA.LockedAmount)
	require.Equal(t, uint64(1500), recordA.TotalAmount)

	var recordB models.VestingMaturityRecord
	require.NoError(t, db.Where("sale_mint = ?", "MINT_B").First(&recordB).Error)
	require.Equal(t, 1, recordB.Positions)
	require.Equal(t, uint64(0), recordB.ClaimableAmount)
	require.Equal(t, uint64(100), recordB.LockedAmount)

	require.Equal(t, getZeroSecondTime(now), recordA.RecordedAt)
}

func TestRecordVestingMaturityEmpty(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, RecordVestingMaturity(db, time.Now()))

	var count int64
	require.NoError(t, db.Model(&models.VestingMaturityRecord{}).Count(&count).Error)
	require.Zero(t, count)
}
