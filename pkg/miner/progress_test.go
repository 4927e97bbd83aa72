package miner

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestReporterTicks(t *testing.T) {
	m, err := New(Config{Deriver: echoDeriver{}, Matcher: matchNever, Workers: 2, Random: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var ticks atomic.Int64
	var lastAttempts atomic.Uint64
	rep := NewReporter(m, 5*time.Millisecond, func(st Stats) {
		ticks.Add(1)
		lastAttempts.Store(st.Attempts)
	})

	done := make(chan struct{})
	go func() {
		rep.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reporter did not stop on context cancellation")
	}
	if _, err := m.Wait(); err == nil {
		t.Fatal("cancelled run should surface the context error")
	}

	if ticks.Load() == 0 {
		t.Error("reporter never ticked")
	}
	if lastAttempts.Load() == 0 {
		t.Error("reporter observed no progress")
	}
}

func TestReporterStopsOnFound(t *testing.T) {
	m, err := New(Config{Deriver: echoDeriver{}, Matcher: matchCounter(0), Workers: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := m.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	rep := NewReporter(m, 5*time.Millisecond, func(Stats) {})
	done := make(chan struct{})
	go func() {
		rep.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reporter did not stop after the match")
	}
}

func TestReporterSwallowsCallbackPanic(t *testing.T) {
	m, err := New(Config{Deriver: echoDeriver{}, Matcher: matchNever, Workers: 1, Random: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	rep := NewReporter(m, 5*time.Millisecond, func(Stats) {
		panic("reporting failure")
	})
	done := make(chan struct{})
	go func() {
		// A leaked panic here would crash the test binary.
		rep.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reporter did not survive the panicking callback")
	}
	if _, err := m.Wait(); err == nil {
		t.Fatal("cancelled run should surface the context error")
	}
}

func TestReporterDefaultInterval(t *testing.T) {
	m, err := New(Config{Deriver: echoDeriver{}, Matcher: matchNever, Workers: 1, Random: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rep := NewReporter(m, 0, func(Stats) {})
	if rep.interval != DefaultReportInterval {
		t.Errorf("interval = %v, want %v", rep.interval, DefaultReportInterval)
	}
}
