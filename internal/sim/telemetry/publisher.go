package telemetry

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"google.golang.org/grpc"

	"github.com/banshee-data/velocity.report/internal/monitoring"
	"github.com/banshee-data/velocity.report/internal/sim/frameio"
)

// Config holds the gRPC publisher's listen address and a client limit.
// MaxClients is stored but not enforced: the Publisher accepts any number
// of client streams.
type Config struct {
	ListenAddr string
	MaxClients int
}

// DefaultConfig returns a Config listening on localhost:50061 (distinct
// from the teacher's LiDAR visualiser default port) with MaxClients set
// to five.
func DefaultConfig() Config {
	return Config{ListenAddr: "localhost:50061", MaxClients: 5}
}

// Publisher broadcasts DetectionEvents to every client stream registered
// through streamLoop, and doubles as a frameplayer.Observer so it can be
// registered directly on a running Player. The gRPC server it starts has
// no service registered.
type Publisher struct {
	config   Config
	runID    string
	server   *grpc.Server
	listener net.Listener

	eventChan chan DetectionEvent
	clients   map[string]*clientStream
	clientsMu sync.RWMutex

	eventCount  atomic.Uint64
	clientCount atomic.Int32

	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

type clientStream struct {
	id      string
	eventCh chan DetectionEvent
	doneCh  chan struct{}
}

// NewPublisher returns a Publisher configured but not yet listening, tagged
// with a fresh run ID distinguishing it from any other publisher instance
// in logs and client-facing diagnostics.
func NewPublisher(cfg Config) *Publisher {
	return &Publisher{
		config:    cfg,
		runID:     uuid.New().String(),
		eventChan: make(chan DetectionEvent, 100),
		clients:   make(map[string]*clientStream),
		stopCh:    make(chan struct{}),
	}
}

// RunID returns the run ID generated for this publisher instance by
// NewPublisher; a new Publisher gets a new ID.
func (p *Publisher) RunID() string { return p.runID }

// Start opens the listener and begins the broadcast loop.
func (p *Publisher) Start() error {
	if p.running.Load() {
		return fmt.Errorf("telemetry publisher already running")
	}

	lis, err := net.Listen("tcp", p.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", p.config.ListenAddr, err)
	}
	p.listener = lis
	p.server = grpc.NewServer()
	// The detection-stream gRPC service itself is not yet generated from
	// a .proto definition; registration happens here once it is:
	// pb.RegisterDetectionStreamServer(p.server, p)

	p.running.Store(true)

	p.wg.Add(1)
	go p.broadcastLoop()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		monitoring.Logf("telemetry: run %s gRPC server listening on %s", p.runID, p.config.ListenAddr)
		if err := p.server.Serve(lis); err != nil && p.running.Load() {
			monitoring.Logf("telemetry: gRPC server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts the server down and waits for its goroutines.
func (p *Publisher) Stop() {
	if !p.running.Load() {
		return
	}
	p.running.Store(false)
	close(p.stopCh)

	if p.server != nil {
		p.server.GracefulStop()
	}
	if p.listener != nil {
		p.listener.Close()
	}
	p.wg.Wait()
}

// Publish enqueues event for broadcast, dropping it if the internal
// channel is full rather than blocking the caller.
func (p *Publisher) Publish(event DetectionEvent) {
	if !p.running.Load() {
		return
	}
	select {
	case p.eventChan <- event:
		p.eventCount.Add(1)
	default:
		monitoring.Logf("telemetry: dropping event for frame %d, channel full", event.FrameIndex)
	}
}

// OnFrameChanged implements frameplayer.Observer by publishing the
// current frame's point cloud as a DetectionEvent. frame's index is not
// tracked by frameio.Frame itself, so FrameIndex is left at zero; callers
// that need it should publish a DetectionEvent directly instead.
func (p *Publisher) OnFrameChanged(frame *frameio.Frame) {
	if frame == nil {
		return
	}
	p.Publish(DetectionEvent{Timestamp: frame.Timestamp, Points: frame.Cloud.Points()})
}

func (p *Publisher) broadcastLoop() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopCh:
			return
		case event := <-p.eventChan:
			p.clientsMu.RLock()
			for _, c := range p.clients {
				select {
				case c.eventCh <- event:
				default:
				}
			}
			p.clientsMu.RUnlock()
		}
	}
}

func (p *Publisher) addClient(id string) *clientStream {
	c := &clientStream{id: id, eventCh: make(chan DetectionEvent, 10), doneCh: make(chan struct{})}
	p.clientsMu.Lock()
	p.clients[id] = c
	p.clientsMu.Unlock()
	p.clientCount.Add(1)
	return c
}

func (p *Publisher) removeClient(id string) {
	p.clientsMu.Lock()
	if c, ok := p.clients[id]; ok {
		close(c.doneCh)
		delete(p.clients, id)
		p.clientsMu.Unlock()
		p.clientCount.Add(-1)
		return
	}
	p.clientsMu.Unlock()
}

// Stats reports the publisher's current counters.
func (p *Publisher) Stats() Stats {
	return Stats{EventCount: p.eventCount.Load(), ClientCount: p.clientCount.Load(), Running: p.running.Load()}
}

// Stats snapshots a Publisher's broadcast counters.
type Stats struct {
	EventCount  uint64
	ClientCount int32
	Running     bool
}

// streamLoop implements the (not-yet-generated) DetectionStream RPC:
// it registers a client, forwards events to ctx until cancellation or
// shutdown, and unregisters on return.
func (p *Publisher) streamLoop(ctx context.Context, clientID string, send func(DetectionEvent) error) error {
	client := p.addClient(clientID)
	defer p.removeClient(clientID)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.stopCh:
			return nil
		case event := <-client.eventCh:
			if err := send(event); err != nil {
				return err
			}
		}
	}
}
