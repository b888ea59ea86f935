package business

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crowdvest/internal/models"
)

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name       string
		advanceBps uint16
		schedule   []models.ReleaseTranche
		wantErr    error
	}{
		{
			name:       "exact allocation passes",
			advanceBps: 2000,
			schedule: []models.ReleaseTranche{
				{ReleaseTime: 1, FractionBps: 4000},
				{ReleaseTime: 2, FractionBps: 4000},
			},
		},
		{
			name:       "all advance no tranches",
			advanceBps: 10000,
		},
		{
			name:       "under allocated fails",
			advanceBps: 1000,
			schedule:   []models.ReleaseTranche{{ReleaseTime: 1, FractionBps: 4000}},
			wantErr:    ErrFractionsNotFullyAllocated,
		},
		{
			name:       "over allocated fails",
			advanceBps: 5000,
			schedule: []models.ReleaseTranche{
				{ReleaseTime: 1, FractionBps: 4000},
				{ReleaseTime: 2, FractionBps: 4000},
			},
			wantErr: ErrFractionsNotFullyAllocated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(tt.advanceBps, tt.schedule)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSchedulesCompatible(t *testing.T) {
	release := []models.ReleaseTranche{
		{ReleaseTime: 100, FractionBps: 5000},
		{ReleaseTime: 200, FractionBps: 5000},
	}

	t.Run("Same Shape Matches", func(t *testing.T) {
		vesting := []models.VestingTranche{
			{ReleaseTime: 100, Amount: 7},
			{ReleaseTime: 200, Amount: 0},
		}
		assert.True(t, SchedulesCompatible(vesting, release))
	})

	t.Run("Fractions May Differ", func(t *testing.T) {
		other := []models.ReleaseTranche{
			{ReleaseTime: 100, FractionBps: 1000},
			{ReleaseTime: 200, FractionBps: 9000},
		}
		vesting := NewVestingSchedule(release)
		assert.True(t, SchedulesCompatible(vesting, other))
	})

	t.Run("Length Mismatch Fails", func(t *testing.T) {
		vesting := []models.VestingTranche{{ReleaseTime: 100}}
		assert.False(t, SchedulesCompatible(vesting, release))
	})

	t.Run("Release Time Mismatch Fails", func(t *testing.T) {
		vesting := []models.VestingTranche{
			{ReleaseTime: 100},
			{ReleaseTime: 201},
		}
		assert.False(t, SchedulesCompatible(vesting, release))
	})
}

func TestNewVestingSchedule(t *testing.T) {
	release := []models.ReleaseTranche{
		{ReleaseTime: 10, FractionBps: 2500},
		{ReleaseTime: 20, FractionBps: 7500},
	}
	schedule := NewVestingSchedule(release)
	assert.Len(t, schedule, 2)
	for i, line := range schedule {
		assert.Equal(t, release[i].ReleaseTime, line.ReleaseTime)
		assert.Zero(t, line.Amount)
	}
}
