package frameio

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/velocity.report/internal/fsutil"
)

func writeFrameFile(t *testing.T, dir string, index int, timestamp float64) {
	t.Helper()
	path := filepath.Join(dir, frameFileName(index))
	content := []byte(fmt.Sprintf(`{"timestamp": %v, "cloud": []}`, timestamp))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func TestDirSourceCountsContiguousFiles(t *testing.T) {
	dir := t.TempDir()
	writeFrameFile(t, dir, 0, 0)
	writeFrameFile(t, dir, 1, 1)
	writeFrameFile(t, dir, 2, 2)
	// A gap at 3 should stop the contiguous count at 3, even though
	// frame_00004.json exists.
	writeFrameFile(t, dir, 4, 4)

	src, err := NewDirSource(fsutil.OSFileSystem{}, dir)
	if err != nil {
		t.Fatalf("NewDirSource: %v", err)
	}
	if src.Count() != 3 {
		t.Errorf("Count() = %d, want 3", src.Count())
	}
}

func TestDirSourceLoadOutOfRange(t *testing.T) {
	dir := t.TempDir()
	writeFrameFile(t, dir, 0, 0)

	src, err := NewDirSource(fsutil.OSFileSystem{}, dir)
	if err != nil {
		t.Fatalf("NewDirSource: %v", err)
	}
	if _, err := src.Load(5); err == nil {
		t.Error("expected an error loading an out-of-range index")
	}
}

func TestDirSourceLoadDecodesFile(t *testing.T) {
	dir := t.TempDir()
	writeFrameFile(t, dir, 0, 0)

	src, err := NewDirSource(fsutil.OSFileSystem{}, dir)
	if err != nil {
		t.Fatalf("NewDirSource: %v", err)
	}
	frame, err := src.Load(0)
	if err != nil {
		t.Fatalf("Load(0): %v", err)
	}
	if frame.Cloud.Len() != 0 {
		t.Errorf("Cloud.Len() = %d, want 0", frame.Cloud.Len())
	}
}
