package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	minCostN      = 1024
	minSaltLength = 16
	minKeyLength  = 32
)

// Config holds the scrypt cost parameters. Changing them only affects newly
// produced hashes; existing stored forms remain verifiable because the salt
// and key length are recoverable from the stored form itself.
type Config struct {
	N          int // CPU/memory cost, power of two
	R          int // block size
	P          int // parallelism
	SaltLength int // random salt bytes
	KeyLength  int // derived key bytes
}

// DefaultConfig returns the production parameters: N=16384, r=8, p=1 with a
// 16-byte salt and a 64-byte derived key.
func DefaultConfig() Config {
	return Config{
		N:          16384,
		R:          8,
		P:          1,
		SaltLength: 16,
		KeyLength:  64,
	}
}

// Scrypt hashes and verifies credentials. Immutable after New, safe for
// concurrent use.
type Scrypt struct {
	config Config
}

// New validates cfg and returns a hasher.
func New(cfg Config) (*Scrypt, error) {
	if cfg.N < minCostN || cfg.N&(cfg.N-1) != 0 {
		return nil, errors.New("scrypt N must be a power of two >= 1024")
	}
	if cfg.R < 1 {
		return nil, errors.New("scrypt r must be >= 1")
	}
	if cfg.P < 1 {
		return nil, errors.New("scrypt p must be >= 1")
	}
	if cfg.SaltLength < minSaltLength {
		return nil, errors.New("scrypt salt length must be >= 16")
	}
	if cfg.KeyLength < minKeyLength {
		return nil, errors.New("scrypt key length must be >= 32")
	}
	return &Scrypt{config: cfg}, nil
}

// Hash derives a key from plaintext under a fresh random salt and returns
// the stored form "<hex salt>:<hex key>".
func (s *Scrypt) Hash(plaintext string) (string, error) {
	salt := make([]byte, s.config.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	saltHex := hex.EncodeToString(salt)
	key, err := scrypt.Key([]byte(plaintext), []byte(saltHex), s.config.N, s.config.R, s.config.P, s.config.KeyLength)
	if err != nil {
		return "", err
	}

	return saltHex + ":" + hex.EncodeToString(key), nil
}

// Verify reports whether plaintext matches the stored form. Any malformed
// stored form or derivation failure yields false; Verify never returns an
// error and never panics on attacker-controlled input.
func (s *Scrypt) Verify(plaintext, stored string) bool {
	saltHex, keyHex, ok := strings.Cut(stored, ":")
	if !ok || saltHex == "" || keyHex == "" {
		return false
	}

	storedKey, err := hex.DecodeString(keyHex)
	if err != nil {
		return false
	}

	derived, err := scrypt.Key([]byte(plaintext), []byte(saltHex), s.config.N, s.config.R, s.config.P, s.config.KeyLength)
	if err != nil {
		return false
	}

	if len(storedKey) != len(derived) {
		return false
	}
	return subtle.ConstantTimeCompare(derived, storedKey) == 1
}
