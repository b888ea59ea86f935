package models

import "time"

// ReleaseTranche is one line of a sale's release schedule. Fraction is in
// basis points, 10000 = 100%.
type ReleaseTranche struct {
	ReleaseTime uint64 `json:"release_time"`
	FractionBps uint16 `json:"fraction_bps"`
}

type Sale struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Address   string `gorm:"size:100;uniqueIndex;not null" json:"address"`
	Seller    string `gorm:"size:100;not null" json:"seller"`
	Sequence  uint64 `gorm:"not null;default:0" json:"sequence"`
	Authority string `gorm:"size:100;not null" json:"authority"`
	IsActive  bool   `gorm:"default:false" json:"is_active"`

	PriceNumerator   uint64 `gorm:"not null" json:"price_numerator"`
	PriceDenominator uint64 `gorm:"not null" json:"price_denominator"`
	PaymentMinAmount uint64 `gorm:"not null;default:0" json:"payment_min_amount"`

	AdvanceFractionBps uint16           `gorm:"not null;default:0" json:"advance_fraction_bps"`
	ReleaseSchedule    []ReleaseTranche `gorm:"serializer:json;type:jsonb" json:"release_schedule"`

	SaleMint           string `gorm:"size:100;not null" json:"sale_mint"`
	EscrowTokenAccount string `gorm:"size:100;not null" json:"escrow_token_account"`
	PaymentDestination string `gorm:"size:100;not null" json:"payment_destination"`

	SignerAuthority string `gorm:"size:100;not null" json:"signer_authority"`
	SignerBump      uint8  `gorm:"not null;default:0" json:"signer_bump"`
	EscrowBump      uint8  `gorm:"not null;default:0" json:"escrow_bump"`

	// VestingOnly sales take no payment: the requested amount is vested
	// directly. Price fields are ignored for these sales.
	VestingOnly bool `gorm:"default:false" json:"vesting_only"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Sale) TableName() string {
	return "sale"
}
