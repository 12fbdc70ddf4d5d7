// Package screen serializes a render.Canvas into character grids and hands
// them to a display Surface.
package screen

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/taigrr/monowire/pkg/render"
)

// Default pixel glyphs.
const (
	DefaultOn  = '█'
	DefaultOff = ' '
)

// ErrChunkOrder reports a Flush call that does not continue the current frame.
var ErrChunkOrder = errors.New("chunk out of order")

// Surface is an external display that shows one text frame at a time. Rows
// are separated by '\n'.
type Surface interface {
	WriteText(text string) error
}

// Flusher converts canvas pixels to text, one character per pixel and one
// line per row, and delivers complete frames to a Surface. A frame may be
// built across several calls to Flush, one row band per call.
type Flusher struct {
	On, Off rune
	Mirror  bool            // Reverse every row before clipping
	Clip    image.Rectangle // Sub-rectangle to emit; empty means the whole canvas
	Surface Surface

	pending strings.Builder
	next    int // next expected chunk index
	frame   string
	ready   bool // frame is complete and not yet written
}

// NewFlusher creates a flusher writing to s with the default glyphs.
func NewFlusher(s Surface) *Flusher {
	return &Flusher{
		On:      DefaultOn,
		Off:     DefaultOff,
		Surface: s,
	}
}

// Region returns the canvas rectangle the flusher emits.
func (f *Flusher) Region(c *render.Canvas) image.Rectangle {
	r := f.Clip
	if r.Empty() {
		return c.Bounds()
	}
	return r.Intersect(c.Bounds())
}

// Chunk renders row band i of n. Bands split the region's rows as evenly as
// integer division allows; concatenating bands 0..n-1 equals Render.
func (f *Flusher) Chunk(c *render.Canvas, invert bool, i, n int) string {
	r := f.Region(c)
	if n < 1 || i < 0 || i >= n || r.Empty() {
		return ""
	}
	h := r.Dy()
	lo := r.Min.Y + i*h/n
	hi := r.Min.Y + (i+1)*h/n

	on, off := f.On, f.Off
	if invert {
		on, off = off, on
	}

	var sb strings.Builder
	sb.Grow((hi - lo) * (r.Dx() + 1))
	for y := lo; y < hi; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			sx := x
			if f.Mirror {
				sx = c.Width - 1 - x
			}
			if c.Pixel(sx, y) {
				sb.WriteRune(on)
			} else {
				sb.WriteRune(off)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Render renders the whole region in one pass.
func (f *Flusher) Render(c *render.Canvas, invert bool) string {
	return f.Chunk(c, invert, 0, 1)
}

// Flush appends band i of n to the frame being accumulated. Band 0 first
// writes the previously completed frame to the Surface and then starts a new
// frame, so the display never shows a partial frame. A write error is
// returned after band 0 has been accumulated, so the next band can follow.
func (f *Flusher) Flush(c *render.Canvas, invert bool, i, n int) error {
	if n < 1 || i < 0 || i >= n {
		return fmt.Errorf("%w: chunk %d of %d", ErrChunkOrder, i, n)
	}

	var syncErr error
	if i == 0 {
		// A failed write drops that frame; accumulation restarts either way.
		syncErr = f.Sync()
		f.pending.Reset()
		f.next = 0
	} else if i != f.next {
		return fmt.Errorf("%w: got chunk %d, want %d", ErrChunkOrder, i, f.next)
	}

	f.pending.WriteString(f.Chunk(c, invert, i, n))
	f.next = i + 1

	if f.next == n {
		f.frame = f.pending.String()
		f.ready = true
		f.pending.Reset()
		f.next = 0
	}
	return syncErr
}

// Sync writes the last completed frame to the Surface if it has not been
// written yet.
func (f *Flusher) Sync() error {
	if !f.ready {
		return nil
	}
	if f.Surface == nil {
		return errors.New("no display surface")
	}
	if err := f.Surface.WriteText(f.frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	f.ready = false
	return nil
}

// Frame returns the last completed frame.
func (f *Flusher) Frame() string {
	return f.frame
}
