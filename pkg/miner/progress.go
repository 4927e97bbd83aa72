package miner

import (
	"context"
	"time"
)

// DefaultReportInterval is how often a Reporter samples the miner.
const DefaultReportInterval = 2 * time.Second

// Reporter periodically samples a running Miner and hands throughput
// snapshots to a callback. It reads the shared counters out-of-band and
// never blocks a worker; it is strictly best-effort, so a panicking
// callback is swallowed rather than allowed to abort the search.
type Reporter struct {
	miner    *Miner
	interval time.Duration
	onTick   func(Stats)
}

// NewReporter builds a reporter around a miner. A non-positive interval
// falls back to DefaultReportInterval.
func NewReporter(m *Miner, interval time.Duration, onTick func(Stats)) *Reporter {
	if interval <= 0 {
		interval = DefaultReportInterval
	}
	return &Reporter{miner: m, interval: interval, onTick: onTick}
}

// Run blocks until the context is cancelled or the miner publishes a
// match. Rate is computed from the delta between successive samples,
// not the lifetime average.
func (r *Reporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	last := r.miner.Attempts()
	lastAt := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if r.miner.Found() {
				return
			}
			now := time.Now()
			st := r.miner.Stats()
			if dt := now.Sub(lastAt).Seconds(); dt > 0 {
				st.Rate = float64(st.Attempts-last) / dt
			}
			r.emit(st)
			last, lastAt = st.Attempts, now
		}
	}
}

func (r *Reporter) emit(st Stats) {
	defer func() {
		recover() // reporting is advisory; never unwind into the search
	}()
	r.onTick(st)
}
