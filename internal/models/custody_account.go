package models

import "time"

// CustodyAccount is a named balance held by the custody ledger. Authority is
// either a user address or a derived program authority; only the authority
// may move funds out or close the account.
type CustodyAccount struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Address   string    `gorm:"size:100;uniqueIndex;not null" json:"address"`
	Mint      string    `gorm:"size:100;not null" json:"mint"`
	Authority string    `gorm:"size:100;not null" json:"authority"`
	Balance   uint64    `gorm:"not null;default:0" json:"balance"`
	IsClosed  bool      `gorm:"default:false" json:"is_closed"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CustodyAccount) TableName() string {
	return "custody_account"
}
