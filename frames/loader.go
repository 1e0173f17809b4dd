package frames

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultPattern is the asset naming convention: frames/out0001.png.
const DefaultPattern = "out%04d.png"

// Loader requests frames by index. Request must return immediately;
// the handle resolves whenever the loader gets to it, possibly never.
type Loader interface {
	Request(index int) *PendingFrame
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(index int) *PendingFrame

// Request calls f(index).
func (f LoaderFunc) Request(index int) *PendingFrame {
	return f(index)
}

// SourceFunc produces the raster for one frame index. It may block.
type SourceFunc func(index int) (*Frame, error)

// InstantLoader resolves every request synchronously from a source.
// Used in tests and anywhere loading latency is irrelevant.
type InstantLoader struct {
	Source SourceFunc

	mu        sync.Mutex
	requested []int
}

// Request resolves the frame before returning.
func (l *InstantLoader) Request(index int) *PendingFrame {
	l.mu.Lock()
	l.requested = append(l.requested, index)
	l.mu.Unlock()

	p := NewPendingFrame(index)
	f, err := l.Source(index)
	if err != nil {
		p.Fail(err)
		return p
	}
	p.Resolve(f)
	return p
}

// Requested returns the indices requested so far, in order.
func (l *InstantLoader) Requested() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]int, len(l.requested))
	copy(out, l.requested)
	return out
}

// FramePath maps a frame index to its file path.
func FramePath(dir, pattern string, index int) string {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return filepath.Join(dir, fmt.Sprintf(pattern, index))
}

// DiskSource returns a source that decodes frames from dir.
func DiskSource(dir, pattern string) SourceFunc {
	return func(index int) (*Frame, error) {
		return DecodeFile(FramePath(dir, pattern, index))
	}
}

// DecodeFile decodes an image file into a Frame.
func DecodeFile(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening frame: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding frame %s: %w", path, err)
	}
	slog.Debug("frame decoded", "path", path, "format", format)
	return FromImage(img), nil
}

// EncodePNG writes a frame to path as PNG.
func EncodePNG(path string, f *Frame) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(out, f.Image()); err != nil {
		out.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return out.Close()
}
