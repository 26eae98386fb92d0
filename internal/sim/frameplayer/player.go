// Package frameplayer implements the sliding frame window, single-slot
// async prefetch, and playback clock that drive a scene's external cloud
// from a sequence of recorded (or live-replayed) frames.
package frameplayer

import (
	"sync"
	"sync/atomic"

	"github.com/banshee-data/velocity.report/internal/sim/frameio"
	"github.com/banshee-data/velocity.report/internal/sim/simerr"
)

type observerEntry struct {
	id       uint64
	observer Observer
}

// Player steps a FrameSource through a sliding window of 2*windowSize+1
// frames, optionally auto-advancing at a fixed playback rate, and fans
// out the current center frame to registered observers on every change.
type Player struct {
	source     frameio.FrameSource
	windowSize int
	rate       float64

	cursor      int
	playing     bool
	accumulator float64

	window []*frameio.Frame

	preloadMu       sync.Mutex
	preloadedFrame  *frameio.Frame
	preloadedIndex  int
	preloadReady    atomic.Bool
	preloadInFlight atomic.Bool

	observers  []observerEntry
	nextObsID  uint64
}

// New constructs a player over source with the given half-window size and
// playback rate (frames/second), loads the initial window around frame 0,
// and kicks off the first background prefetch.
func New(source frameio.FrameSource, windowSize int, rate float64) *Player {
	p := &Player{source: source, windowSize: windowSize, rate: rate}
	p.loadWindowAround(0)
	p.startPreloadingNextFrame()
	return p
}

// CurrentFrame returns the window's center frame.
func (p *Player) CurrentFrame() *frameio.Frame {
	return p.window[p.windowSize]
}

// CurrentIndex returns the cursor's current frame index.
func (p *Player) CurrentIndex() int {
	return p.cursor
}

// Window returns the full 2*windowSize+1 slice of frames currently loaded,
// oldest first. Out-of-range slots hold frameio.EmptyFrame().
func (p *Player) Window() []*frameio.Frame {
	return p.window
}

// Play sets the player to auto-advance on Update.
func (p *Player) Play() { p.playing = true }

// Pause stops auto-advance.
func (p *Player) Pause() { p.playing = false }

// Playing reports whether the player is currently auto-advancing.
func (p *Player) Playing() bool { return p.playing }

// AddObserver registers o for frame-change notifications and returns a
// handle that unregisters it on Drop.
func (p *Player) AddObserver(o Observer) ObserverHandle {
	id := p.nextObsID
	p.nextObsID++
	p.observers = append(p.observers, observerEntry{id: id, observer: o})
	return ObserverHandle{player: p, id: id}
}

func (p *Player) removeObserver(id uint64) {
	for i, e := range p.observers {
		if e.id == id {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			return
		}
	}
}

func (p *Player) notifyObservers() {
	frame := p.CurrentFrame()
	for _, e := range p.observers {
		e.observer.OnFrameChanged(frame)
	}
}

// canAdvance reports whether cursor+direction stays within [0, source.Count()).
func (p *Player) canAdvance(direction int) bool {
	target := p.cursor + direction
	return target >= 0 && target < p.source.Count()
}

// StepForward advances the cursor by one, slides the window forward by
// one slot, and notifies observers with the new center frame. It is a
// no-op if the cursor is already at the last frame.
func (p *Player) StepForward() {
	if !p.canAdvance(1) {
		return
	}
	p.cursor++
	p.shiftWindowForward()
	p.notifyObservers()
}

// Seek reloads the entire window around frame index j, invalidating any
// in-flight prefetch slot, and notifies observers. It is a no-op (and
// returns an error) if j is out of range.
func (p *Player) Seek(j int) error {
	if j < 0 || j >= p.source.Count() {
		return &simerr.StateError{Msg: "seek index out of range"}
	}
	p.cursor = j
	p.invalidatePreload()
	p.loadWindowAround(j)
	p.notifyObservers()
	p.startPreloadingNextFrame()
	return nil
}

// Update advances the playback clock by dt seconds. If playing and the
// accumulated time reaches 1/rate, it resets the accumulator and issues
// one StepForward; if that step would run off the end of the source,
// playback stops instead.
func (p *Player) Update(dt float64) {
	if !p.playing || p.source.Count() == 0 {
		return
	}
	p.accumulator += dt
	if p.accumulator < 1.0/p.rate {
		return
	}
	p.accumulator = 0
	if p.canAdvance(1) {
		p.StepForward()
	} else {
		p.playing = false
	}
}

func (p *Player) loadWindowAround(center int) {
	window := make([]*frameio.Frame, 0, 2*p.windowSize+1)
	for offset := -p.windowSize; offset <= p.windowSize; offset++ {
		index := center + offset
		window = append(window, p.loadOrEmpty(index))
	}
	p.window = window
}

func (p *Player) loadOrEmpty(index int) *frameio.Frame {
	if index < 0 || index >= p.source.Count() {
		return frameio.EmptyFrame()
	}
	frame, err := p.source.Load(index)
	if err != nil {
		return frameio.EmptyFrame()
	}
	return frame
}

// shiftWindowForward drops the window's front slot, appends one new slot
// for cursor+windowSize (using the prefetched frame if it matches, else
// loading synchronously), and starts the next background prefetch.
func (p *Player) shiftWindowForward() {
	p.window = p.window[1:]

	newIndex := p.cursor + p.windowSize
	if newIndex >= p.source.Count() {
		p.window = append(p.window, frameio.EmptyFrame())
		return
	}

	if p.preloadReady.Load() {
		p.preloadMu.Lock()
		if p.preloadReady.Load() && p.preloadedIndex == newIndex {
			frame := p.preloadedFrame
			p.preloadedFrame = nil
			p.preloadReady.Store(false)
			p.preloadMu.Unlock()
			p.window = append(p.window, frame)
			p.startPreloadingNextFrame()
			return
		}
		p.preloadMu.Unlock()
	}

	p.window = append(p.window, p.loadOrEmpty(newIndex))
	p.startPreloadingNextFrame()
}

// startPreloadingNextFrame launches a background load of frame
// cursor+windowSize+1 into the single prefetch slot, unless a prefetch is
// already in flight or there is no such frame.
func (p *Player) startPreloadingNextFrame() {
	if p.preloadInFlight.Load() {
		return
	}
	nextIndex := p.cursor + p.windowSize + 1
	if nextIndex >= p.source.Count() {
		return
	}

	p.preloadInFlight.Store(true)
	go func() {
		defer p.preloadInFlight.Store(false)
		frame, err := p.source.Load(nextIndex)
		if err != nil {
			return
		}
		p.preloadMu.Lock()
		p.preloadedFrame = frame
		p.preloadedIndex = nextIndex
		p.preloadMu.Unlock()
		p.preloadReady.Store(true)
	}()
}

func (p *Player) invalidatePreload() {
	p.preloadMu.Lock()
	p.preloadedFrame = nil
	p.preloadMu.Unlock()
	p.preloadReady.Store(false)
}
