package telemetry

import "testing"

func TestDetectionEventProtoTimestamp(t *testing.T) {
	e := DetectionEvent{Timestamp: 2.5}
	ts := e.ProtoTimestamp()
	if !ts.IsValid() {
		t.Fatalf("ProtoTimestamp() returned an invalid timestamp for %+v", e)
	}
	if got := ts.AsTime().UnixNano(); got != int64(2.5e9) {
		t.Errorf("ProtoTimestamp().AsTime() = %d ns, want %d", got, int64(2.5e9))
	}
}
