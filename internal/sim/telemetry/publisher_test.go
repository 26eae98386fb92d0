package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/banshee-data/velocity.report/internal/sim/frameio"
	"github.com/banshee-data/velocity.report/internal/sim/geom"
)

func TestPublishDropsEventsWhenNotRunning(t *testing.T) {
	p := NewPublisher(DefaultConfig())
	p.Publish(DetectionEvent{FrameIndex: 1})
	if p.Stats().EventCount != 0 {
		t.Errorf("EventCount = %d, want 0 before Start", p.Stats().EventCount)
	}
}

func TestStartStopBroadcastsToStreamLoop(t *testing.T) {
	cfg := Config{ListenAddr: "127.0.0.1:0", MaxClients: 5}
	p := NewPublisher(cfg)
	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	received := make(chan DetectionEvent, 1)
	go p.streamLoop(ctx, "test-client", func(e DetectionEvent) error {
		received <- e
		return nil
	})

	// Give streamLoop a moment to register before publishing.
	time.Sleep(10 * time.Millisecond)
	p.Publish(DetectionEvent{FrameIndex: 7, Timestamp: 1.0})

	select {
	case e := <-received:
		if e.FrameIndex != 7 {
			t.Errorf("FrameIndex = %d, want 7", e.FrameIndex)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast event")
	}
	cancel()

	if p.Stats().ClientCount < 0 {
		t.Errorf("ClientCount = %d, want >= 0", p.Stats().ClientCount)
	}
}

func TestOnFrameChangedPublishesDetectionEvent(t *testing.T) {
	cfg := Config{ListenAddr: "127.0.0.1:0"}
	p := NewPublisher(cfg)
	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Stop()

	cloud := geom.NewPointCloud(1)
	cloud.Append(geom.Point{X: 1, Y: 2, Z: 3})
	frame := &frameio.Frame{Timestamp: 2.5, Cloud: cloud}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	received := make(chan DetectionEvent, 1)
	go p.streamLoop(ctx, "obs-client", func(e DetectionEvent) error {
		received <- e
		return nil
	})
	time.Sleep(10 * time.Millisecond)

	p.OnFrameChanged(frame)

	select {
	case e := <-received:
		if e.Timestamp != 2.5 || len(e.Points) != 1 {
			t.Errorf("event = %+v, want timestamp 2.5 with 1 point", e)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnFrameChanged broadcast")
	}
}

func TestOnFrameChangedIgnoresNilFrame(t *testing.T) {
	p := NewPublisher(DefaultConfig())
	p.OnFrameChanged(nil)
	if p.Stats().EventCount != 0 {
		t.Errorf("EventCount = %d, want 0", p.Stats().EventCount)
	}
}
