package solana

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/blocto/solana-go-sdk/types"
)

// KeystoreEntry is the on-disk form of an encrypted seller key.
type KeystoreEntry struct {
	Address      string `json:"address"`
	EncryptedKey string `json:"encrypted_key"`
	Version      int    `json:"version"`
}

// Keystore manages keys for seller authorities and payment destinations.
// Keys are AES-256-GCM encrypted at rest under an operator password.
type Keystore struct {
	dir string
}

// NewKeystore uses KEYSTORE_DIR or falls back to configs/keystore.
func NewKeystore() *Keystore {
	dir := os.Getenv("KEYSTORE_DIR")
	if dir == "" {
		dir = "configs/keystore"
	}
	return &Keystore{dir: dir}
}

// GenerateKey creates a fresh Solana keypair.
func (ks *Keystore) GenerateKey() (*types.Account, error) {
	account := types.NewAccount()
	return &account, nil
}

// Encrypt seals a private key with AES-256-GCM under the given password.
func (ks *Keystore) Encrypt(privateKey []byte, password string) (string, error) {
	block, err := aes.NewCipher(deriveKey(password))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	ciphertext := gcm.Seal(nonce, nonce, privateKey, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt.
func (ks *Keystore) Decrypt(encryptedKey string, password string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	block, err := aes.NewCipher(deriveKey(password))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	plaintext, err := gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// Save encrypts the account's private key and writes a keystore entry named
// after its address.
func (ks *Keystore) Save(account *types.Account, password string) error {
	encrypted, err := ks.Encrypt(account.PrivateKey, password)
	if err != nil {
		return fmt.Errorf("failed to encrypt private key: %w", err)
	}
	address := account.PublicKey.ToBase58()
	entry := KeystoreEntry{
		Address:      address,
		EncryptedKey: encrypted,
		Version:      1,
	}
	jsonData, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal keystore entry: %w", err)
	}
	if err := os.MkdirAll(ks.dir, 0700); err != nil {
		return fmt.Errorf("failed to create keystore directory: %w", err)
	}
	filename := filepath.Join(ks.dir, address+".json")
	if err := os.WriteFile(filename, jsonData, 0600); err != nil {
		return fmt.Errorf("failed to write keystore entry: %w", err)
	}
	return nil
}

// Load reads and decrypts the keystore entry for an address.
func (ks *Keystore) Load(address string, password string) (*types.Account, error) {
	data, err := os.ReadFile(filepath.Join(ks.dir, address+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore entry: %w", err)
	}
	var entry KeystoreEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keystore entry: %w", err)
	}
	if entry.Address != address {
		return nil, fmt.Errorf("address mismatch: expected %s, got %s", address, entry.Address)
	}
	privateKey, err := ks.Decrypt(entry.EncryptedKey, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt private key: %w", err)
	}
	account, err := types.AccountFromBytes(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create account from private key: %w", err)
	}
	return &account, nil
}

// deriveKey creates a 32-byte key from a password using SHA-256
func deriveKey(password string) []byte {
	hash := sha256.Sum256([]byte(password))
	return hash[:]
}
