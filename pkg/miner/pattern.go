package miner

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Pattern matches a digest against a fixed prefix and suffix, compiled
// once from hex strings so the hot loop compares raw bytes with no
// allocations. Odd-length hex patterns are nibble-aligned: an odd
// prefix also checks the high nibble of the following byte, an odd
// suffix the low nibble of the byte ahead of its whole bytes (so the
// suffix "ea91e" checks addr[17]&0x0f, addr[18] and addr[19] on a
// 20-byte address).
type Pattern struct {
	prefix       []byte
	prefixNibble byte
	prefixOdd    bool

	suffix       []byte
	suffixNibble byte
	suffixOdd    bool
}

// ParsePattern compiles prefix and suffix hex strings. Both are
// canonicalized to lowercase; the prefix may carry a 0x. An empty
// pattern matches every digest.
func ParsePattern(prefix, suffix string) (*Pattern, error) {
	prefix = strings.TrimPrefix(strings.ToLower(prefix), "0x")
	suffix = strings.ToLower(suffix)

	p := &Pattern{}
	var err error
	if p.prefix, p.prefixNibble, p.prefixOdd, err = compileHex(prefix, false); err != nil {
		return nil, fmt.Errorf("prefix: %w", err)
	}
	if p.suffix, p.suffixNibble, p.suffixOdd, err = compileHex(suffix, true); err != nil {
		return nil, fmt.Errorf("suffix: %w", err)
	}
	return p, nil
}

// compileHex splits a lowercase hex string into whole bytes plus an
// optional loose nibble. For suffixes the loose nibble is the leading
// character, for prefixes the trailing one.
func compileHex(s string, nibbleFirst bool) (whole []byte, nibble byte, odd bool, err error) {
	if len(s)%2 == 1 {
		odd = true
		var c byte
		if nibbleFirst {
			c, s = s[0], s[1:]
		} else {
			c, s = s[len(s)-1], s[:len(s)-1]
		}
		nibble, err = hexNibble(c)
		if err != nil {
			return nil, 0, false, err
		}
	}
	whole, err = hex.DecodeString(s)
	if err != nil {
		return nil, 0, false, err
	}
	return whole, nibble, odd, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	}
	return 0, fmt.Errorf("invalid hex character %q", c)
}

// Matches reports whether the digest carries the pattern's prefix and
// suffix. Byte-exact, no fuzzy or partial-credit matching.
func (p *Pattern) Matches(digest []byte) bool {
	need := len(p.prefix) + len(p.suffix)
	if p.prefixOdd {
		need++
	}
	if p.suffixOdd {
		need++
	}
	if need > len(digest) {
		return false
	}

	for i, b := range p.prefix {
		if digest[i] != b {
			return false
		}
	}
	if p.prefixOdd && digest[len(p.prefix)]>>4 != p.prefixNibble {
		return false
	}

	start := len(digest) - len(p.suffix)
	for i, b := range p.suffix {
		if digest[start+i] != b {
			return false
		}
	}
	if p.suffixOdd && digest[start-1]&0x0f != p.suffixNibble {
		return false
	}
	return true
}

// Bits returns the pattern's specificity in bits, 4 per hex character.
// The expected attempt count for a uniform digest is 2^Bits.
func (p *Pattern) Bits() int {
	bits := 4 * 2 * (len(p.prefix) + len(p.suffix))
	if p.prefixOdd {
		bits += 4
	}
	if p.suffixOdd {
		bits += 4
	}
	return bits
}

// Empty reports whether the pattern carries no criteria at all.
func (p *Pattern) Empty() bool {
	return len(p.prefix) == 0 && len(p.suffix) == 0 && !p.prefixOdd && !p.suffixOdd
}
