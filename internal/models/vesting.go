package models

import "time"

// VestingTranche mirrors a sale's ReleaseTranche positionally: same index,
// same release time. Amount is the unclaimed token amount for that line.
type VestingTranche struct {
	ReleaseTime uint64 `json:"release_time"`
	Amount      uint64 `json:"amount"`
}

// Vesting is one running vesting position per (buyer, sale mint) pair,
// shared by every sale of that mint with a compatible schedule.
type Vesting struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Address   string `gorm:"size:100;uniqueIndex;not null" json:"address"`
	Buyer     string `gorm:"size:100;not null;uniqueIndex:idx_vesting_buyer_mint" json:"buyer"`
	SaleMint  string `gorm:"size:100;not null;uniqueIndex:idx_vesting_buyer_mint" json:"sale_mint"`
	FirstSale string `gorm:"size:100;not null" json:"first_sale"`

	// Lifetime vested amount. Grows with every purchase and is never
	// decremented on claim; the live unclaimed balance is the custody
	// sub-account's balance.
	TotalAmount uint64 `gorm:"not null;default:0" json:"total_amount"`

	Schedule []VestingTranche `gorm:"serializer:json;type:jsonb" json:"schedule"`

	CustodyTokenAccount string `gorm:"size:100;not null" json:"custody_token_account"`
	VestingBump         uint8  `gorm:"not null;default:0" json:"vesting_bump"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Vesting) TableName() string {
	return "vesting"
}
