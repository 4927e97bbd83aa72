package derive

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/wenakita/saltmine/pkg/miner"
)

const (
	zeroFactory  = "0x0000000000000000000000000000000000000000"
	zeroInitHash = "0x0000000000000000000000000000000000000000000000000000000000000000"
)

func TestCreate2Pin(t *testing.T) {
	// Arachnid proxy, zero salt, zero init code hash.
	c, err := NewCreate2("0x4e59b44847b379578588920cA78FbF26c0B4956C", zeroInitHash)
	if err != nil {
		t.Fatalf("NewCreate2: %v", err)
	}

	digest, err := c.Derive(make([]byte, 32))
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	const want = "778a4590f20db0c23cb7c1befc8da04549f2aa95"
	if got := hex.EncodeToString(digest); got != want {
		t.Errorf("digest = %s, want %s", got, want)
	}
}

func TestCreate2Deterministic(t *testing.T) {
	c, err := NewCreate2("0x4e59b44847b379578588920cA78FbF26c0B4956C",
		"0x636f1a2996f4afbbcdadd097a0e61ae05968fe76f6d1044e32e451a2e46303aa")
	if err != nil {
		t.Fatalf("NewCreate2: %v", err)
	}

	salt := make([]byte, 32)
	rand.Read(salt)

	a, err := c.Derive(salt)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	b, err := c.Derive(salt)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("derivation is not deterministic: %x vs %x", a, b)
	}
	if len(a) != 20 {
		t.Errorf("digest length = %d, want 20", len(a))
	}
}

func TestNewCreate2Errors(t *testing.T) {
	cases := []struct {
		name, factory, initHash, field string
	}{
		{"short factory", "0x1234", zeroInitHash, "factory"},
		{"bad factory hex", "0xzz59b44847b379578588920ca78fbf26c0b4956c", zeroInitHash, "factory"},
		{"short init hash", zeroFactory, "0xabcd", "init code hash"},
		{"bad init hash hex", zeroFactory, strings.Repeat("zz", 32), "init code hash"},
	}
	for _, tc := range cases {
		_, err := NewCreate2(tc.factory, tc.initHash)
		if err == nil {
			t.Errorf("%s: want error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.field) {
			t.Errorf("%s: error %q should name %q", tc.name, err, tc.field)
		}
	}
}

func TestCreate2SaltLength(t *testing.T) {
	c, err := NewCreate2(zeroFactory, zeroInitHash)
	if err != nil {
		t.Fatalf("NewCreate2: %v", err)
	}
	if _, err := c.Derive(make([]byte, 16)); err == nil {
		t.Error("short salt must be rejected")
	}
}

func TestInitCodeHash(t *testing.T) {
	// keccak256 of empty input.
	const want = "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got := InitCodeHash(nil).Hex(); got != want {
		t.Errorf("InitCodeHash(nil) = %s, want %s", got, want)
	}
}

// TestMineTrivialPattern runs the whole engine over real derivations:
// with a zero factory and init hash, counter 95 is the first salt whose
// address starts with a zero byte.
func TestMineTrivialPattern(t *testing.T) {
	c, err := NewCreate2(zeroFactory, zeroInitHash)
	if err != nil {
		t.Fatalf("NewCreate2: %v", err)
	}
	pattern, err := miner.ParsePattern("00", "")
	if err != nil {
		t.Fatalf("ParsePattern: %v", err)
	}

	m, err := miner.New(miner.Config{
		Deriver: c,
		Matcher: pattern,
		Workers: 1,
	})
	if err != nil {
		t.Fatalf("miner.New: %v", err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	res, err := m.Wait()
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if res == nil {
		t.Fatal("want a result")
	}

	if got := res.Nonce(); got != 95 {
		t.Errorf("Nonce = %d, want 95", got)
	}
	if res.Attempts != 96 {
		t.Errorf("Attempts = %d, want 96", res.Attempts)
	}
	const wantAddr = "00153e2e277c6adad0df61e68c404ffc160615a3"
	if got := hex.EncodeToString(res.Digest); got != wantAddr {
		t.Errorf("digest = %s, want %s", got, wantAddr)
	}

	// The published candidate re-derives to the published digest.
	again, err := c.Derive(res.Candidate[:])
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if !bytes.Equal(again, res.Digest) {
		t.Errorf("re-derivation mismatch: %x vs %x", again, res.Digest)
	}
}
