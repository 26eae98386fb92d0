package frameplayer

import (
	"context"
	"sync"
	"time"

	"github.com/banshee-data/velocity.report/internal/monitoring"
	"github.com/banshee-data/velocity.report/internal/timeutil"
)

// RealtimeDriver advances a Player on a fixed tick using an injectable
// Clock, so the same playback loop used in production can be driven by a
// MockClock in tests.
type RealtimeDriver struct {
	player *Player
	clock  timeutil.Clock
	tick   time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewRealtimeDriver builds a driver that calls player.Update(tick.Seconds())
// once per tick, using clock to schedule ticks.
func NewRealtimeDriver(player *Player, clock timeutil.Clock, tick time.Duration) *RealtimeDriver {
	return &RealtimeDriver{player: player, clock: clock, tick: tick}
}

// Run blocks, stepping the player once per tick, until ctx is cancelled,
// Stop is called, or the player reaches the end of its source and stops
// playing. Returns nil on any of those clean-shutdown paths.
func (d *RealtimeDriver) Run(ctx context.Context) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = true
	d.stopCh = make(chan struct{})
	d.doneCh = make(chan struct{})
	d.mu.Unlock()

	defer func() {
		close(d.doneCh)
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
	}()

	ticker := d.clock.NewTicker(d.tick)
	defer ticker.Stop()

	dt := d.tick.Seconds()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-d.stopCh:
			return nil
		case <-ticker.C():
			d.player.Update(dt)
			if !d.player.Playing() {
				monitoring.Logf("frameplayer: realtime driver stopping, player reached end of source at frame %d", d.player.CurrentIndex())
				return nil
			}
		}
	}
}

// Stop requests the driver to stop and waits for Run to return. Safe to
// call even if Run was never started.
func (d *RealtimeDriver) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	select {
	case <-d.stopCh:
	default:
		close(d.stopCh)
	}
	d.mu.Unlock()
	<-d.doneCh
}
