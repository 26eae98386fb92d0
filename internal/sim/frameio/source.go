package frameio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/velocity.report/internal/fsutil"
	"github.com/banshee-data/velocity.report/internal/sim/simerr"
)

// FrameSource is anything that can report how many frames it has and load
// one by index. A frameplayer.Player is agnostic to whether frames come
// from a directory, a serial device, or a packet capture, as long as the
// adapter implements this.
type FrameSource interface {
	Count() int
	Load(index int) (*Frame, error)
}

// DirSource scans a directory once at construction for files named
// frame_XXXXX.json (zero-padded 5 digits, contiguous from 0) and loads
// them on demand.
type DirSource struct {
	fs    fsutil.FileSystem
	dir   string
	count int
}

// NewDirSource scans dir for frame_XXXXX.json files and returns a source
// over the contiguous run starting at frame_00000.json.
func NewDirSource(fs fsutil.FileSystem, dir string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &simerr.IoError{Op: "readdir", Path: dir, Err: err}
	}

	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names[e.Name()] = true
		}
	}

	count := 0
	for names[frameFileName(count)] {
		count++
	}

	return &DirSource{fs: fs, dir: dir, count: count}, nil
}

// Count returns the number of contiguous frame files found at construction.
func (d *DirSource) Count() int { return d.count }

// Load reads and decodes frame_<index>.json.
func (d *DirSource) Load(index int) (*Frame, error) {
	if index < 0 || index >= d.count {
		return nil, &simerr.StateError{Msg: fmt.Sprintf("frame index %d out of range [0, %d)", index, d.count)}
	}
	path := filepath.Join(d.dir, frameFileName(index))
	raw, err := d.fs.ReadFile(path)
	if err != nil {
		return nil, &simerr.IoError{Op: "read", Path: path, Err: err}
	}
	return DecodeFrame(raw, path)
}

func frameFileName(index int) string {
	return fmt.Sprintf("frame_%05d.json", index)
}
