package screen

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/monowire/pkg/render"
)

// recordSurface keeps every frame written to it.
type recordSurface struct {
	frames []string
	err    error
}

func (r *recordSurface) WriteText(text string) error {
	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, text)
	return nil
}

func testCanvas() *render.Canvas {
	c := render.NewCanvas(4, 3)
	c.SetPixel(0, 0, true)
	c.SetPixel(3, 1, true)
	c.SetPixel(1, 2, true)
	return c
}

func asciiFlusher(s Surface) *Flusher {
	f := NewFlusher(s)
	f.On, f.Off = '#', '.'
	return f
}

func TestRender(t *testing.T) {
	f := asciiFlusher(nil)
	assert.Equal(t, "#...\n...#\n.#..\n", f.Render(testCanvas(), false))
	assert.Equal(t, ".###\n###.\n#.##\n", f.Render(testCanvas(), true))
}

func TestRenderMirror(t *testing.T) {
	f := asciiFlusher(nil)
	f.Mirror = true
	assert.Equal(t, "...#\n#...\n..#.\n", f.Render(testCanvas(), false))
}

func TestRenderClip(t *testing.T) {
	f := asciiFlusher(nil)
	f.Clip = image.Rect(1, 1, 4, 3)
	assert.Equal(t, "..#\n#..\n", f.Render(testCanvas(), false))

	// Mirroring happens on the full row before clipping
	f.Mirror = true
	assert.Equal(t, "...\n.#.\n", f.Render(testCanvas(), false))

	// Clip larger than the canvas is intersected
	f.Mirror = false
	f.Clip = image.Rect(2, -5, 50, 1)
	assert.Equal(t, "..\n", f.Render(testCanvas(), false))
}

func TestChunksConcatenateToRender(t *testing.T) {
	c := render.NewCanvas(7, 12)
	c.DrawLine(0, 0, 6, 11, true)
	c.DrawRect(1, 2, 5, 9, false, false)

	f := asciiFlusher(nil)
	whole := f.Render(c, false)

	for _, n := range []int{1, 2, 3, 4, 5, 6, 12} {
		var sb strings.Builder
		for i := range n {
			sb.WriteString(f.Chunk(c, false, i, n))
		}
		assert.Equal(t, whole, sb.String(), "%d chunks", n)
	}
}

func TestChunkInvalid(t *testing.T) {
	f := asciiFlusher(nil)
	c := testCanvas()
	assert.Empty(t, f.Chunk(c, false, 0, 0))
	assert.Empty(t, f.Chunk(c, false, 3, 3))
	assert.Empty(t, f.Chunk(c, false, -1, 3))
}

func TestFlushDeliversPreviousFrameOnChunkZero(t *testing.T) {
	surface := &recordSurface{}
	f := asciiFlusher(surface)
	c := testCanvas()

	require.NoError(t, f.Flush(c, false, 0, 3))
	require.NoError(t, f.Flush(c, false, 1, 3))
	require.NoError(t, f.Flush(c, false, 2, 3))
	assert.Empty(t, surface.frames, "frame is held until the next cycle starts")
	assert.Equal(t, f.Render(c, false), f.Frame())

	c.Clear(false)
	require.NoError(t, f.Flush(c, false, 0, 3))
	require.Len(t, surface.frames, 1)
	assert.Equal(t, "#...\n...#\n.#..\n", surface.frames[0])

	require.NoError(t, f.Flush(c, false, 1, 3))
	require.NoError(t, f.Flush(c, false, 2, 3))
	require.NoError(t, f.Sync())
	require.Len(t, surface.frames, 2)
	assert.Equal(t, "....\n....\n....\n", surface.frames[1])

	// Nothing new to write
	require.NoError(t, f.Sync())
	assert.Len(t, surface.frames, 2)
}

func TestFlushRejectsOutOfOrder(t *testing.T) {
	f := asciiFlusher(&recordSurface{})
	c := testCanvas()

	assert.ErrorIs(t, f.Flush(c, false, 1, 3), ErrChunkOrder)
	require.NoError(t, f.Flush(c, false, 0, 3))
	assert.ErrorIs(t, f.Flush(c, false, 2, 3), ErrChunkOrder)
	assert.ErrorIs(t, f.Flush(c, false, 0, 0), ErrChunkOrder)
}

func TestFlushSurfaceError(t *testing.T) {
	boom := errors.New("boom")
	f := asciiFlusher(&recordSurface{err: boom})
	c := testCanvas()

	require.NoError(t, f.Flush(c, false, 0, 1))
	assert.ErrorIs(t, f.Flush(c, false, 0, 1), boom)
}

func TestSyncWithoutSurface(t *testing.T) {
	f := asciiFlusher(nil)
	require.NoError(t, f.Flush(testCanvas(), false, 0, 1))
	assert.Error(t, f.Sync())
}

func TestFlushContinuesAfterSurfaceError(t *testing.T) {
	surface := &recordSurface{}
	f := asciiFlusher(surface)
	c := testCanvas()

	require.NoError(t, f.Flush(c, false, 0, 2))
	require.NoError(t, f.Flush(c, false, 1, 2))

	surface.err = errors.New("display busy")
	assert.Error(t, f.Flush(c, false, 0, 2))
	surface.err = nil
	require.NoError(t, f.Flush(c, false, 1, 2), "band 1 follows a failed band 0")
	require.NoError(t, f.Sync())
	assert.Equal(t, []string{f.Render(c, false)}, surface.frames)
}
