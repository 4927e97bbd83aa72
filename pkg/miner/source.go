package miner

import (
	"crypto/rand"
	"encoding/binary"
)

// Source produces the stream of candidates a single worker tests. Next
// writes the next candidate into buf and reports false once the
// worker's partition is exhausted. Sources are lazy and effectively
// infinite; termination is controlled externally via the found flag.
type Source interface {
	Next(buf []byte) bool
}

// CounterSource walks a deterministic sub-range of the counter
// keyspace. The counter occupies the low-order 8 bytes of the candidate
// big-endian, zero-extended elsewhere, so a run is restartable from any
// saved counter value.
type CounterSource struct {
	next   uint64
	stride uint64
	limit  uint64 // exclusive; 0 means the full uint64 range
	done   bool
}

// NewCounterSource returns a source visiting start, start+stride,
// start+2·stride, … below limit. Stride must be at least 1.
func NewCounterSource(start, stride, limit uint64) *CounterSource {
	return &CounterSource{next: start, stride: stride, limit: limit}
}

func (s *CounterSource) Next(buf []byte) bool {
	if s.done {
		return false
	}
	if s.limit != 0 && s.next >= s.limit {
		s.done = true
		return false
	}

	clear(buf[:len(buf)-8])
	binary.BigEndian.PutUint64(buf[len(buf)-8:], s.next)

	n := s.next + s.stride
	if n < s.next {
		s.done = true // wrapped past the end of the keyspace
	}
	s.next = n
	return true
}

// RandomSource draws a fresh uniformly random candidate each call. It
// never exhausts and carries no state, so random runs are not
// restartable; they rely on the birthday bound to avoid collisions in
// a ~2^256 domain.
type RandomSource struct{}

func NewRandomSource() RandomSource {
	return RandomSource{}
}

func (RandomSource) Next(buf []byte) bool {
	// crypto/rand.Read never returns an error.
	rand.Read(buf)
	return true
}
