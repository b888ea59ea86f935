package models

import "time"

// Event types recorded in SaleEventLog.
const (
	EventSaleCreated  = "sale_created"
	EventSaleFunded   = "sale_funded"
	EventSaleWithdraw = "sale_withdraw"
	EventPurchase     = "purchase"
	EventClaim        = "claim"
	EventVestingInit  = "vesting_init"
	EventVestingClose = "vesting_close"
)

// SaleEventLog is the audit trail of sale and vesting mutations. One row is
// appended in the same transaction as the mutation it records.
type SaleEventLog struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	EventType   string    `gorm:"size:32;not null;index" json:"event_type"`
	SaleAddress string    `gorm:"size:100;index" json:"sale_address"`
	Buyer       string    `gorm:"size:100" json:"buyer"`
	Amount      uint64    `gorm:"not null;default:0" json:"amount"`
	Advance     uint64    `gorm:"not null;default:0" json:"advance"`
	Vested      uint64    `gorm:"not null;default:0" json:"vested"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (SaleEventLog) TableName() string {
	return "sale_event_log"
}
