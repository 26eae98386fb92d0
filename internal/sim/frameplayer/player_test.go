package frameplayer

import (
	"fmt"
	"testing"
	"time"

	"github.com/banshee-data/velocity.report/internal/sim/frameio"
	"github.com/banshee-data/velocity.report/internal/sim/simerr"
)

type stubSource struct {
	n int
}

func (s *stubSource) Count() int { return s.n }

func (s *stubSource) Load(index int) (*frameio.Frame, error) {
	if index < 0 || index >= s.n {
		return nil, &simerr.StateError{Msg: fmt.Sprintf("index %d out of range", index)}
	}
	return &frameio.Frame{Timestamp: float64(index), Cloud: frameio.EmptyFrame().Cloud, FilePath: fmt.Sprintf("frame_%05d.json", index)}, nil
}

type recordingObserver struct {
	seen []float64
}

func (o *recordingObserver) OnFrameChanged(frame *frameio.Frame) {
	o.seen = append(o.seen, frame.Timestamp)
}

func waitForPrefetch() {
	time.Sleep(20 * time.Millisecond)
}

func TestNewLoadsWindowAroundZero(t *testing.T) {
	p := New(&stubSource{n: 10}, 2, 10)
	waitForPrefetch()

	window := p.Window()
	if len(window) != 5 {
		t.Fatalf("len(Window()) = %d, want 5", len(window))
	}
	// Slots [-2, -1] are out of range and should be empty sentinels.
	if !window[0].Cloud.Empty() || window[0].FilePath != "" {
		t.Errorf("expected slot 0 (index -2) to be the empty sentinel, got %+v", window[0])
	}
	if window[2].FilePath != "frame_00000.json" {
		t.Errorf("expected center slot to be frame 0, got %+v", window[2])
	}
}

func TestStepForwardAdvancesCursorAndNotifies(t *testing.T) {
	p := New(&stubSource{n: 10}, 2, 10)
	waitForPrefetch()

	obs := &recordingObserver{}
	p.AddObserver(obs)

	p.StepForward()
	waitForPrefetch()

	if p.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", p.CurrentIndex())
	}
	if p.CurrentFrame().Timestamp != 1 {
		t.Errorf("CurrentFrame().Timestamp = %v, want 1", p.CurrentFrame().Timestamp)
	}
	if len(obs.seen) != 1 || obs.seen[0] != 1 {
		t.Errorf("observer saw %v, want [1]", obs.seen)
	}
}

func TestStepForwardAtEndIsNoOp(t *testing.T) {
	p := New(&stubSource{n: 3}, 1, 10)
	waitForPrefetch()

	p.StepForward() // cursor 0 -> 1
	p.StepForward() // cursor 1 -> 2 (last)
	p.StepForward() // no-op: 2 -> 3 is out of range

	if p.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() = %d, want 2 (clamped at last frame)", p.CurrentIndex())
	}
}

func TestSeekReloadsWindowAndInvalidatesPrefetch(t *testing.T) {
	p := New(&stubSource{n: 10}, 2, 10)
	waitForPrefetch()

	if err := p.Seek(5); err != nil {
		t.Fatalf("Seek(5): %v", err)
	}
	if p.CurrentIndex() != 5 {
		t.Errorf("CurrentIndex() = %d, want 5", p.CurrentIndex())
	}
	if p.CurrentFrame().Timestamp != 5 {
		t.Errorf("CurrentFrame().Timestamp = %v, want 5", p.CurrentFrame().Timestamp)
	}
}

func TestSeekOutOfRangeErrors(t *testing.T) {
	p := New(&stubSource{n: 3}, 1, 10)
	if err := p.Seek(99); err == nil {
		t.Error("expected an error seeking out of range")
	}
}

func TestUpdateStepsAtRateAndStopsAtEnd(t *testing.T) {
	p := New(&stubSource{n: 2}, 0, 2) // rate = 2 fps => step every 0.5s
	p.Play()

	p.Update(0.5)
	if p.CurrentIndex() != 1 {
		t.Fatalf("CurrentIndex() after one tick = %d, want 1", p.CurrentIndex())
	}
	if !p.Playing() {
		t.Fatal("expected player to still be playing after reaching the last frame via Update")
	}

	p.Update(0.5)
	if p.Playing() {
		t.Error("expected playback to stop once it would advance past the last frame")
	}
}

func TestObserverHandleDropStopsNotifications(t *testing.T) {
	p := New(&stubSource{n: 5}, 1, 10)
	obs := &recordingObserver{}
	handle := p.AddObserver(obs)

	p.StepForward()
	handle.Drop()
	p.StepForward()

	if len(obs.seen) != 1 {
		t.Errorf("observer received %d notifications, want 1 (after Drop)", len(obs.seen))
	}
}
