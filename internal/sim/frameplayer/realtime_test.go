package frameplayer

import (
	"context"
	"testing"
	"time"

	"github.com/banshee-data/velocity.report/internal/testutil"
	"github.com/banshee-data/velocity.report/internal/timeutil"
)

func TestRealtimeDriverAdvancesOnTick(t *testing.T) {
	p := New(&stubSource{n: 3}, 1, 10)
	p.Play()
	waitForPrefetch()

	clock := timeutil.NewMockClock(time.Unix(0, 0))
	driver := NewRealtimeDriver(p, clock, 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	// Give the ticker goroutine a chance to register before advancing.
	time.Sleep(10 * time.Millisecond)
	clock.Advance(100 * time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	if p.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1 after one tick", p.CurrentIndex())
	}

	cancel()
	testutil.AssertNoError(t, <-done)
}

func TestRealtimeDriverStopsAtEndOfSource(t *testing.T) {
	p := New(&stubSource{n: 2}, 0, 10)
	p.Play()
	waitForPrefetch()

	clock := timeutil.NewMockClock(time.Unix(0, 0))
	driver := NewRealtimeDriver(p, clock, 100*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- driver.Run(context.Background()) }()

	// First tick steps from frame 0 to frame 1 (the last frame); the
	// second tick finds no further frame to advance to and stops playback.
	time.Sleep(10 * time.Millisecond)
	clock.Advance(100 * time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	clock.Advance(100 * time.Millisecond)

	select {
	case err := <-done:
		testutil.AssertNoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("driver did not stop after reaching end of source")
	}
}

func TestRealtimeDriverStop(t *testing.T) {
	p := New(&stubSource{n: 100}, 1, 10)
	p.Play()
	waitForPrefetch()

	clock := timeutil.NewMockClock(time.Unix(0, 0))
	driver := NewRealtimeDriver(p, clock, time.Hour)

	done := make(chan error, 1)
	go func() { done <- driver.Run(context.Background()) }()
	time.Sleep(10 * time.Millisecond)

	driver.Stop()

	select {
	case err := <-done:
		testutil.AssertNoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Stop() did not cause Run() to return")
	}
}
