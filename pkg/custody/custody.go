// Package custody holds named token balances and moves them under an
// authority check. The sale and vesting engines never touch balances
// directly; every debit and credit goes through a Service.
package custody

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrInsufficientFunds = errors.New("custody: insufficient funds")
	ErrNonZeroBalance    = errors.New("custody: account balance is not zero")
	ErrBadAuthority      = errors.New("custody: authority mismatch")
	ErrAccountNotFound   = errors.New("custody: account not found")
	ErrAccountClosed     = errors.New("custody: account is closed")
)

// Service is the custody interface the engines call. Every method takes the
// surrounding gorm transaction so custody movements commit or roll back
// together with the record mutations they accompany.
type Service interface {
	// CreateAccount registers a new balance holder. Creating an address
	// that already exists with the same mint and authority is a no-op.
	CreateAccount(tx *gorm.DB, address, mint, authority string) error

	// Transfer debits source and credits destination. The authority must
	// match the source account's authority. The destination is created
	// with the source's mint if it does not exist yet.
	Transfer(tx *gorm.DB, source, destination, authority string, amount uint64) error

	// Close removes an account whose balance is exactly zero, crediting
	// its storage deposit to rentDestination.
	Close(tx *gorm.DB, account, authority, rentDestination string) error

	// Balance reports the current balance of an account.
	Balance(tx *gorm.DB, account string) (uint64, error)
}
