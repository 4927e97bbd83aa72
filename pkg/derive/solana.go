package derive

import (
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// base58Alphabet is the Bitcoin/Solana alphabet (excludes 0, O, I, l).
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// SolanaKeypair treats the candidate as an ed25519 seed and derives the
// 32-byte public key. A Solana address is the Base58 encoding of that
// digest, so pair this deriver with a Base58Matcher.
type SolanaKeypair struct{}

func (SolanaKeypair) Derive(candidate []byte) ([]byte, error) {
	if len(candidate) != ed25519.SeedSize {
		return nil, fmt.Errorf("seed: want %d bytes, got %d", ed25519.SeedSize, len(candidate))
	}
	priv := ed25519.NewKeyFromSeed(candidate)
	return []byte(priv.Public().(ed25519.PublicKey)), nil
}

// SolanaPrivateKeyBase58 renders the 64-byte keypair (seed followed by
// the public key) the way Solana wallets import it.
func SolanaPrivateKeyBase58(candidate []byte) string {
	priv := ed25519.NewKeyFromSeed(candidate)
	return base58.Encode(priv)
}

// SolanaAddress renders a public-key digest as a Solana address.
func SolanaAddress(digest []byte) string {
	return base58.Encode(digest)
}

// Base58Matcher matches the Base58 encoding of a digest against a
// prefix and suffix. Base58 is case-sensitive, so no canonicalization
// happens here.
type Base58Matcher struct {
	prefix string
	suffix string
}

// NewBase58Matcher validates both patterns against the Base58 alphabet
// and builds the matcher.
func NewBase58Matcher(prefix, suffix string) (*Base58Matcher, error) {
	if err := validBase58("prefix", prefix); err != nil {
		return nil, err
	}
	if err := validBase58("suffix", suffix); err != nil {
		return nil, err
	}
	return &Base58Matcher{prefix: prefix, suffix: suffix}, nil
}

func (m *Base58Matcher) Matches(digest []byte) bool {
	addr := base58.Encode(digest)
	if m.prefix != "" && !strings.HasPrefix(addr, m.prefix) {
		return false
	}
	if m.suffix != "" && !strings.HasSuffix(addr, m.suffix) {
		return false
	}
	return true
}

// validBase58 rejects characters outside the alphabet, naming them so
// the error is actionable (0, O, I and l are the usual suspects).
func validBase58(name, s string) error {
	for _, c := range s {
		if !strings.ContainsRune(base58Alphabet, c) {
			return fmt.Errorf("%s: invalid base58 character %q", name, c)
		}
	}
	return nil
}
