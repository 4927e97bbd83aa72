// Package derive provides the digest derivations the search engine
// plugs in: the CREATE2 deterministic-deployment address formula and
// keypair schemes for Ethereum, Solana and Bitcoin. Every deriver is a
// pure, total function over fixed-length byte arrays and safe for
// concurrent use.
package derive

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// create2Tag is the literal leading byte of the CREATE2 preimage.
var create2Tag = []byte{0xff}

// Create2 derives deterministic-deployment addresses:
//
//	keccak256(0xff ++ factory ++ salt ++ initCodeHash)[12:]
//
// The byte layout is exact and load-bearing; any offset deviation
// silently produces non-matching addresses.
type Create2 struct {
	factory      [common.AddressLength]byte
	initCodeHash [common.HashLength]byte
}

// NewCreate2 parses and validates the factory address and init code
// hash. Both faults are reported by field name, before any search
// work begins.
func NewCreate2(factory, initCodeHash string) (*Create2, error) {
	f, err := hexField("factory", factory, common.AddressLength)
	if err != nil {
		return nil, err
	}
	h, err := hexField("init code hash", initCodeHash, common.HashLength)
	if err != nil {
		return nil, err
	}
	c := &Create2{}
	copy(c.factory[:], f)
	copy(c.initCodeHash[:], h)
	return c, nil
}

// Derive maps a 32-byte salt to the 20-byte address the factory would
// deploy to with that salt.
func (c *Create2) Derive(salt []byte) ([]byte, error) {
	if len(salt) != common.HashLength {
		return nil, fmt.Errorf("salt: want %d bytes, got %d", common.HashLength, len(salt))
	}
	sum := crypto.Keccak256(create2Tag, c.factory[:], salt, c.initCodeHash[:])
	return sum[12:], nil
}

// Factory returns the configured deployer address.
func (c *Create2) Factory() common.Address {
	return common.Address(c.factory)
}

// InitCodeHash hashes creation bytecode (code plus constructor
// arguments) into the form Create2 consumes, for callers holding raw
// bytecode rather than its hash.
func InitCodeHash(initCode []byte) common.Hash {
	return crypto.Keccak256Hash(initCode)
}

// hexField decodes a 0x-optional hex string and enforces its width,
// naming the field in every error.
func hexField(name, s string, want int) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(s), "0x"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(b) != want {
		return nil, fmt.Errorf("%s: want %d bytes, got %d", name, want, len(b))
	}
	return b, nil
}
