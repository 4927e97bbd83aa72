// Package miner implements the parallel brute-force search engine.
// A fixed pool of workers draws candidates from per-worker sources,
// derives each candidate's digest through a pluggable Deriver, and tests
// it against a Matcher. The first worker to find a match wins a
// compare-and-set on the shared found flag; every other worker stops at
// its next flag check.
package miner

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// CandidateLen is the fixed candidate width: a 32-byte salt or 32 bytes
// of key material.
const CandidateLen = 32

// DefaultBatch is the number of candidates a worker evaluates between
// flushes of its local count into the shared attempt counter.
const DefaultBatch = 4096

// Deriver maps a candidate to its fixed-length digest. Implementations
// must be deterministic and safe for concurrent use. A non-nil error
// marks the candidate as invalid; the engine skips it and moves on.
type Deriver interface {
	Derive(candidate []byte) ([]byte, error)
}

// Matcher is the pure predicate a digest must satisfy.
type Matcher interface {
	Matches(digest []byte) bool
}

// Config holds everything a Miner needs. Deriver and Matcher are
// required; zero values elsewhere pick sensible defaults.
type Config struct {
	Deriver Deriver
	Matcher Matcher

	// Workers is the pool size. Zero means runtime.NumCPU().
	Workers int

	// Random switches from the deterministic counter walk to fresh
	// random candidates each iteration. Random runs never exhaust and
	// must be cancelled through the context.
	Random bool

	// Start is the first counter value of a deterministic walk, used to
	// resume a previous run. Ignored when Random is set.
	Start uint64

	// Limit is the exclusive upper counter bound. Zero means the full
	// uint64 range. Ignored when Random is set.
	Limit uint64

	// Batch is the counter flush interval. Zero means DefaultBatch.
	Batch uint64
}

// Result is produced exactly once per successful run.
type Result struct {
	Candidate [CandidateLen]byte // the winning salt / key material
	Digest    []byte             // its derived digest
	Attempts  uint64             // exact total candidates evaluated
	Elapsed   time.Duration
}

// Nonce decodes the counter a deterministic walk embedded in the
// candidate's low-order bytes. Meaningless for random runs.
func (r *Result) Nonce() uint64 {
	return binary.BigEndian.Uint64(r.Candidate[CandidateLen-8:])
}

// Stats is a point-in-time snapshot of a running search.
type Stats struct {
	Attempts uint64
	Rate     float64 // candidates per second
	Elapsed  time.Duration
}

// Miner coordinates the worker pool. Shared mutable state is limited to
// the found flag and the attempt counter; the keyspace partition needs
// no shared iterator because each worker computes its own stride.
type Miner struct {
	cfg Config

	found    atomic.Bool
	attempts atomic.Uint64

	started   atomic.Bool
	startTime time.Time

	group      *errgroup.Group
	finishOnce sync.Once
	waitErr    error

	result *Result // written by the CAS winner, read after Wait
}

// New validates the configuration and builds a Miner. All configuration
// faults surface here, before any worker is spawned.
func New(cfg Config) (*Miner, error) {
	if cfg.Deriver == nil {
		return nil, errors.New("miner: deriver is required")
	}
	if cfg.Matcher == nil {
		return nil, errors.New("miner: matcher is required")
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("miner: workers must be non-negative, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Batch == 0 {
		cfg.Batch = DefaultBatch
	}
	if !cfg.Random && cfg.Limit != 0 && cfg.Limit <= cfg.Start {
		return nil, fmt.Errorf("miner: limit %d must be greater than start %d", cfg.Limit, cfg.Start)
	}
	return &Miner{cfg: cfg}, nil
}

// Start launches the worker pool. It returns immediately; use Wait to
// collect the outcome. Start may be called once per Miner.
func (m *Miner) Start(ctx context.Context) error {
	if !m.started.CompareAndSwap(false, true) {
		return errors.New("miner: already started")
	}
	m.startTime = time.Now()

	group, ctx := errgroup.WithContext(ctx)
	m.group = group
	for i := 0; i < m.cfg.Workers; i++ {
		src := m.newSource(i)
		group.Go(func() error {
			return m.run(ctx, src)
		})
	}
	return nil
}

// newSource builds the candidate source for worker w. Deterministic
// walks use a disjoint stride: worker w visits start+w, start+w+W, …,
// which covers the range completely with zero duplication. A worker
// whose first counter already wraps past the keyspace end gets an
// empty partition; it must never restart near zero.
func (m *Miner) newSource(w int) Source {
	if m.cfg.Random {
		return NewRandomSource()
	}
	first := m.cfg.Start + uint64(w)
	src := NewCounterSource(first, uint64(m.cfg.Workers), m.cfg.Limit)
	if first < m.cfg.Start {
		src.done = true
	}
	return src
}

// run is the per-worker loop. The found-flag check precedes the
// expensive derivation each iteration, so wasted work after a match is
// bounded by one in-flight batch per worker.
func (m *Miner) run(ctx context.Context, src Source) error {
	var (
		candidate [CandidateLen]byte
		local     uint64
	)
	defer func() {
		if local > 0 {
			m.attempts.Add(local)
		}
	}()

	for {
		if m.found.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !src.Next(candidate[:]) {
			return nil // partition exhausted
		}

		local++
		if local >= m.cfg.Batch {
			m.attempts.Add(local)
			local = 0
		}

		digest, err := m.cfg.Deriver.Derive(candidate[:])
		if err != nil {
			continue
		}
		if !m.cfg.Matcher.Matches(digest) {
			continue
		}

		// Several workers may compute true matches in the race window;
		// any true positive is valid, the CAS winner is reported.
		if m.found.CompareAndSwap(false, true) {
			res := &Result{Candidate: candidate}
			res.Digest = append([]byte(nil), digest...)
			m.result = res
		}
		return nil
	}
}

// Wait blocks until every worker has stopped and returns the outcome:
// a Result on success, (nil, nil) when the deterministic keyspace was
// exhausted with no match, or (nil, ctx.Err()) when the run was
// cancelled externally. Attempts is exact by the time Wait returns.
func (m *Miner) Wait() (*Result, error) {
	if !m.started.Load() {
		return nil, errors.New("miner: not started")
	}
	m.finishOnce.Do(func() {
		m.waitErr = m.group.Wait()
		if m.result != nil {
			m.result.Attempts = m.attempts.Load()
			m.result.Elapsed = time.Since(m.startTime)
		}
	})
	if m.result != nil {
		return m.result, nil
	}
	return nil, m.waitErr
}

// Attempts returns the approximate number of candidates evaluated so
// far. Counts are batched, so mid-run values are a lower bound.
func (m *Miner) Attempts() uint64 {
	return m.attempts.Load()
}

// Found reports whether a match has been published.
func (m *Miner) Found() bool {
	return m.found.Load()
}

// Stats returns a cumulative snapshot of the running search.
func (m *Miner) Stats() Stats {
	if m.startTime.IsZero() {
		return Stats{}
	}
	elapsed := time.Since(m.startTime)
	attempts := m.attempts.Load()
	var rate float64
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(attempts) / s
	}
	return Stats{Attempts: attempts, Rate: rate, Elapsed: elapsed}
}
