package replay

import "testing"

func TestConsumeBuffersDecodedFrames(t *testing.T) {
	src := &SerialFrameSource{}
	lines := make(chan string, 2)
	lines <- `{"timestamp": 1, "cloud": []}`
	lines <- `{"timestamp": 2, "cloud": [[1,2,3]]}`
	close(lines)

	src.consume(lines)

	if src.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", src.Count())
	}
	f, err := src.Load(1)
	if err != nil {
		t.Fatalf("Load(1): %v", err)
	}
	if f.Timestamp != 2 || f.Cloud.Len() != 1 {
		t.Errorf("frame 1 = %+v, want timestamp 2 with 1 point", f)
	}
}

func TestConsumeRecordsDecodeErrors(t *testing.T) {
	src := &SerialFrameSource{}
	lines := make(chan string, 1)
	lines <- "not json"
	close(lines)

	src.consume(lines)

	if src.Count() != 0 {
		t.Errorf("Count() = %d, want 0 for an undecodable line", src.Count())
	}
	if src.Err() == nil {
		t.Error("expected Err() to report the decode failure")
	}
}

func TestLoadOutOfRange(t *testing.T) {
	src := &SerialFrameSource{}
	if _, err := src.Load(0); err == nil {
		t.Error("expected an error loading from an empty source")
	}
}
