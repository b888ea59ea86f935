package solana

import (
	"crypto/sha256"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
)

// Default custody program used when CUSTODY_PROGRAM_ID is not set.
var defaultProgramID = solana.MustPublicKeyFromBase58("Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS")

// Seed prefixes for derived addresses.
var (
	SeedSale      = []byte("sale")
	SeedSaleToken = []byte("sale_token")
	SeedUserToken = []byte("user_token")
)

// AuthorityDeriver turns seed material into a deterministic program-owned
// identity. No secret is stored: the same seeds always yield the same
// address, so records can be keyed by derivation instead of an index.
type AuthorityDeriver interface {
	Derive(seeds ...[]byte) (address string, bump uint8, err error)
}

// ProgramDeriver derives addresses off-curve under a fixed program ID, the
// same way on-chain PDAs are found.
type ProgramDeriver struct {
	ProgramID solana.PublicKey
}

// NewProgramDeriver reads the program ID from CUSTODY_PROGRAM_ID, falling
// back to the built-in default.
func NewProgramDeriver() *ProgramDeriver {
	if id := os.Getenv("CUSTODY_PROGRAM_ID"); id != "" {
		return &ProgramDeriver{ProgramID: solana.MustPublicKeyFromBase58(id)}
	}
	return &ProgramDeriver{ProgramID: defaultProgramID}
}

func (d *ProgramDeriver) Derive(seeds ...[]byte) (string, uint8, error) {
	address, bump, err := solana.FindProgramAddress(seeds, d.ProgramID)
	if err != nil {
		return "", 0, fmt.Errorf("failed to find program address: %w", err)
	}
	return address.String(), bump, nil
}

// Seed converts an identity string into seed material. Base58 public keys
// contribute their raw 32 bytes; anything else is hashed down so the seed
// stays within the 32-byte limit.
func Seed(identity string) []byte {
	if pk, err := solana.PublicKeyFromBase58(identity); err == nil {
		return pk.Bytes()
	}
	sum := sha256.Sum256([]byte(identity))
	return sum[:]
}

// SeedUint64 encodes a sequence number as little-endian seed material.
func SeedUint64(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}
