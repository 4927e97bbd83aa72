package main

import (
	"context"
	"errors"
	"math"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/wenakita/saltmine/internal/ui"
	"github.com/wenakita/saltmine/pkg/miner"
)

const reportInterval = 2 * time.Second

// errInterrupted makes an interrupted run exit non-zero, so scripts
// chaining on the result file never mistake it for success.
var errInterrupted = errors.New("search interrupted before a match")

// runSearch drives a configured search to completion, rendering
// progress and the terminal summary. Exhaustion returns (nil, nil);
// an external interrupt returns errInterrupted.
func runSearch(cfg miner.Config, target string, difficulty uint64) (*miner.Result, error) {
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	m, err := miner.New(cfg)
	if err != nil {
		return nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ui.PrintSearchInfo(target, cfg.Workers, difficulty)
	if err := m.Start(ctx); err != nil {
		return nil, err
	}

	frame := 0
	reporter := miner.NewReporter(m, reportInterval, func(st miner.Stats) {
		ui.PrintProgress(st, frame)
		frame++
	})
	go reporter.Run(ctx)

	res, err := m.Wait()
	ui.ClearLine()
	st := m.Stats()
	switch {
	case err != nil:
		ui.PrintCancelled(st.Attempts, st.Elapsed)
		return nil, errInterrupted
	case res == nil:
		ui.PrintExhausted(st.Attempts, st.Elapsed)
		return nil, nil
	}
	return res, nil
}

// patternLabel renders the search target the way it will appear in the
// final address, e.g. "0x47…ea91e".
func patternLabel(prefix, suffix string, hexPattern bool) string {
	if hexPattern {
		prefix = "0x" + strings.TrimPrefix(strings.ToLower(prefix), "0x")
		suffix = strings.ToLower(suffix)
	}
	return prefix + "…" + suffix
}

// hexDifficulty is the expected attempt count for a hex pattern of the
// given specificity.
func hexDifficulty(bits int) uint64 {
	if bits >= 64 {
		return math.MaxUint64
	}
	return 1 << bits
}

// base58Difficulty is the expected attempt count for a base58 pattern
// with the given number of fixed characters.
func base58Difficulty(chars int) uint64 {
	d := uint64(1)
	for i := 0; i < chars; i++ {
		if d > math.MaxUint64/58 {
			return math.MaxUint64
		}
		d *= 58
	}
	return d
}
