package business

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crowdvest/internal/models"
	"crowdvest/pkg/custody"
	"crowdvest/pkg/solana"
)

// Notifier receives event log rows after their transaction commits.
type Notifier interface {
	Publish(event models.SaleEventLog)
}

// Engine runs the sale and vesting state machines. Every operation executes
// as one gorm transaction: record mutations and custody movements commit or
// roll back together.
type Engine struct {
	DB       *gorm.DB
	Custody  custody.Service
	Deriver  solana.AuthorityDeriver
	Notifier Notifier
}

func NewEngine(db *gorm.DB, svc custody.Service, deriver solana.AuthorityDeriver) *Engine {
	return &Engine{DB: db, Custody: svc, Deriver: deriver}
}

// forUpdate applies a row lock on dialects that support it. Postgres rows
// back the production deployment; the sqlite test driver serializes writers
// on its own and rejects FOR UPDATE.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// lockSale loads a sale row under a write lock.
func lockSale(tx *gorm.DB, address string) (*models.Sale, error) {
	var sale models.Sale
	if err := forUpdate(tx).Where("address = ?", address).First(&sale).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// lockVesting loads the vesting row for a (buyer, mint) pair under a write
// lock. The row is the mutual-exclusion unit: purchases and claims against
// the same position serialize here.
func lockVesting(tx *gorm.DB, buyer, mint string) (*models.Vesting, error) {
	var vesting models.Vesting
	err := forUpdate(tx).Where("buyer = ? AND sale_mint = ?", buyer, mint).First(&vesting).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrVestingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vesting, nil
}

func (e *Engine) logEvent(tx *gorm.DB, event *models.SaleEventLog) error {
	return tx.Create(event).Error
}

func (e *Engine) notify(event *models.SaleEventLog) {
	if e.Notifier != nil {
		e.Notifier.Publish(*event)
	}
}
