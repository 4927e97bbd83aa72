package derive

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"golang.org/x/crypto/ripemd160"
)

// BitcoinKeypair treats the candidate as a secp256k1 private key and
// derives the hash160 of its compressed public key, the 20-byte
// payload of a P2PKH address. Pair it with a P2PKHMatcher.
type BitcoinKeypair struct{}

func (BitcoinKeypair) Derive(candidate []byte) ([]byte, error) {
	if len(candidate) != 32 {
		return nil, fmt.Errorf("private key: want 32 bytes, got %d", len(candidate))
	}
	if allZero(candidate) {
		return nil, errors.New("private key: zero scalar")
	}
	_, pub := btcec.PrivKeyFromBytes(candidate)
	return hash160(pub.SerializeCompressed()), nil
}

// hash160 is RIPEMD160(SHA256(data)).
func hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	r := ripemd160.New()
	r.Write(sha[:])
	return r.Sum(nil)
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// P2PKHAddress renders a hash160 digest as a mainnet legacy address
// (Base58Check, leading '1').
func P2PKHAddress(digest []byte) (string, error) {
	addr, err := btcutil.NewAddressPubKeyHash(digest, &chaincfg.MainNetParams)
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}

// BitcoinWIF renders the winning candidate in wallet import format,
// compressed (mainnet, K/L prefix).
func BitcoinWIF(candidate []byte) (string, error) {
	priv, _ := btcec.PrivKeyFromBytes(candidate)
	wif, err := btcutil.NewWIF(priv, &chaincfg.MainNetParams, true)
	if err != nil {
		return "", err
	}
	return wif.String(), nil
}

// P2PKHMatcher matches the Base58Check address encoding of a hash160
// digest. Patterns are case-sensitive and matched against the full
// address, so a prefix normally starts with the fixed '1' version
// character.
type P2PKHMatcher struct {
	prefix string
	suffix string
}

// NewP2PKHMatcher validates both patterns against the Base58 alphabet
// and builds the matcher.
func NewP2PKHMatcher(prefix, suffix string) (*P2PKHMatcher, error) {
	if err := validBase58("prefix", prefix); err != nil {
		return nil, err
	}
	if err := validBase58("suffix", suffix); err != nil {
		return nil, err
	}
	return &P2PKHMatcher{prefix: prefix, suffix: suffix}, nil
}

func (m *P2PKHMatcher) Matches(digest []byte) bool {
	addr, err := P2PKHAddress(digest)
	if err != nil {
		return false
	}
	if m.prefix != "" && !strings.HasPrefix(addr, m.prefix) {
		return false
	}
	if m.suffix != "" && !strings.HasSuffix(addr, m.suffix) {
		return false
	}
	return true
}
