package frameio

import "testing"

func TestDecodeFrame(t *testing.T) {
	raw := []byte(`{
		"timestamp": 1.5,
		"cloud": [[1,2,3],{"x":4,"y":5,"z":6}],
		"linear_acceleration": [0,0,9.8]
	}`)

	frame, err := DecodeFrame(raw, "frame_00000.json")
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if frame.Timestamp != 1.5 {
		t.Errorf("Timestamp = %v, want 1.5", frame.Timestamp)
	}
	if frame.Cloud.Len() != 2 {
		t.Errorf("Cloud.Len() = %d, want 2", frame.Cloud.Len())
	}
	if frame.LinearAcceleration == nil || frame.LinearAcceleration.Z != 9.8 {
		t.Errorf("LinearAcceleration = %v, want (0,0,9.8)", frame.LinearAcceleration)
	}
	if frame.AngularVelocity != nil {
		t.Errorf("AngularVelocity = %v, want nil", frame.AngularVelocity)
	}
	if frame.FilePath != "frame_00000.json" {
		t.Errorf("FilePath = %q, want frame_00000.json", frame.FilePath)
	}
}

func TestDecodeFrameMalformedReturnsParseError(t *testing.T) {
	_, err := DecodeFrame([]byte("not json"), "bad.json")
	if err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
	if _, ok := err.(interface{ Unwrap() error }); !ok {
		t.Errorf("expected a wrapping ParseError, got %T", err)
	}
}

func TestEmptyFrame(t *testing.T) {
	f := EmptyFrame()
	if !f.Cloud.Empty() {
		t.Error("expected EmptyFrame to carry an empty cloud")
	}
}
