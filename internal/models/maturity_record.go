package models

import "time"

// VestingMaturityRecord is a periodic snapshot of vesting state per sale
// mint, written by the worker's maturity job.
type VestingMaturityRecord struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	SaleMint        string    `gorm:"size:100;not null;index" json:"sale_mint"`
	Positions       int       `gorm:"not null;default:0" json:"positions"`
	ClaimableAmount uint64    `gorm:"not null;default:0" json:"claimable_amount"`
	LockedAmount    uint64    `gorm:"not null;default:0" json:"locked_amount"`
	TotalAmount     uint64    `gorm:"not null;default:0" json:"total_amount"`
	RecordedAt      time.Time `gorm:"not null;index" json:"recorded_at"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (VestingMaturityRecord) TableName() string {
	return "vesting_maturity_record"
}
