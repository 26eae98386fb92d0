// Package replay adapts external capture formats (a live serial link, a
// recorded packet capture) into frameio.FrameSource, so a frame player
// can step through them the same way it steps through a directory of
// frame files.
package replay

import (
	"context"
	"sync"

	"go.bug.st/serial"

	"github.com/banshee-data/velocity.report/internal/serialmux"
	"github.com/banshee-data/velocity.report/internal/sim/frameio"
	"github.com/banshee-data/velocity.report/internal/sim/simerr"
)

// SerialFrameSource subscribes to a serialmux.SerialMux's line stream and
// decodes each line as a frame record, buffering every frame seen so far
// so it can satisfy the random-access frameio.FrameSource contract a
// frame player expects.
type SerialFrameSource struct {
	mux    *serialmux.SerialMux[serial.Port]
	cancel context.CancelFunc

	mu      sync.Mutex
	frames  []*frameio.Frame
	readErr error
}

// OpenSerialFrameSource opens path with opts and subscribes to its line
// stream in the background, decoding each line as a frame record.
func OpenSerialFrameSource(path string, opts serialmux.PortOptions) (*SerialFrameSource, error) {
	mux, err := serialmux.NewRealSerialMux(path, opts)
	if err != nil {
		return nil, &simerr.IoError{Op: "open", Path: path, Err: err}
	}

	ctx, cancel := context.WithCancel(context.Background())
	src := &SerialFrameSource{mux: mux, cancel: cancel}

	_, lines := mux.Subscribe()
	go func() {
		if err := mux.Monitor(ctx); err != nil {
			src.mu.Lock()
			src.readErr = err
			src.mu.Unlock()
		}
	}()
	go src.consume(lines)

	return src, nil
}

func (s *SerialFrameSource) consume(lines <-chan string) {
	for line := range lines {
		if line == "" {
			continue
		}
		frame, err := frameio.DecodeFrame([]byte(line), "serial")
		s.mu.Lock()
		if err != nil {
			s.readErr = err
		} else {
			s.frames = append(s.frames, frame)
		}
		s.mu.Unlock()
	}
}

// Count returns the number of frames decoded so far.
func (s *SerialFrameSource) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// Load returns the frame at index, which must already have been decoded.
func (s *SerialFrameSource) Load(index int) (*frameio.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.frames) {
		return nil, &simerr.ConfigurationError{Msg: "serial frame index out of range"}
	}
	return s.frames[index], nil
}

// Err returns the most recent decode or serial read error, if any.
func (s *SerialFrameSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readErr
}

// Close stops monitoring and closes the underlying serial port.
func (s *SerialFrameSource) Close() error {
	s.cancel()
	return s.mux.Close()
}
