// Package render provides the monochrome pixel canvas, its drawing
// primitives and the pseudo-perspective projector used by monowire.
package render

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"math/bits"
	"os"
)

// Canvas is a fixed-size monochrome pixel buffer packed 8 pixels per byte,
// row-major. Every primitive clips silently: writes outside
// [0,Width)×[0,Height) are dropped.
type Canvas struct {
	Width  int
	Height int

	// Font is used by DrawText. Nil means DefaultFont.
	Font *Font

	stride int // bytes per row
	bits   []byte
}

// NewCanvas creates a cleared canvas. Non-positive dimensions yield an empty
// canvas that ignores all drawing.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	stride := (width + 7) / 8
	return &Canvas{
		Width:  width,
		Height: height,
		stride: stride,
		bits:   make([]byte, stride*height),
	}
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// In reports whether (x, y) lies inside the canvas.
func (c *Canvas) In(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// maskIndex returns the bit mask and byte index for the pixel at (x, y).
func (c *Canvas) maskIndex(x, y int) (byte, int) {
	return 1 << uint(x&7), y*c.stride + x>>3
}

// Clear sets every pixel to v.
func (c *Canvas) Clear(v bool) {
	var fill byte
	if v {
		fill = 0xff
	}
	for i := range c.bits {
		c.bits[i] = fill
	}
}

// SetPixel sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (c *Canvas) SetPixel(x, y int, v bool) {
	if !c.In(x, y) {
		return
	}
	mask, index := c.maskIndex(x, y)
	if v {
		c.bits[index] |= mask
	} else {
		c.bits[index] &^= mask
	}
}

// Pixel returns the pixel at (x, y). Out-of-bounds pixels read as off.
func (c *Canvas) Pixel(x, y int) bool {
	if !c.In(x, y) {
		return false
	}
	mask, index := c.maskIndex(x, y)
	return c.bits[index]&mask != 0
}

// Count returns the number of lit pixels.
func (c *Canvas) Count() int {
	if c.Width == 0 {
		return 0
	}
	// Padding bits past Width in each row's last byte are not pixels
	tail := byte(0xff)
	if r := c.Width & 7; r != 0 {
		tail = byte(1)<<uint(r) - 1
	}

	n := 0
	for y := range c.Height {
		row := c.bits[y*c.stride : (y+1)*c.stride]
		for i, b := range row {
			if i == len(row)-1 {
				b &= tail
			}
			n += bits.OnesCount8(b)
		}
	}
	return n
}

// maxLineCoord bounds line endpoints. Segments reaching further out are
// skipped rather than clipped, since clipping them loses all precision.
const maxLineCoord = 1e9

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
// Lines leaving the canvas are clipped first, so the cost is bounded by the
// canvas size and not by the distance between the endpoints.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, v bool) {
	if c.In(x0, y0) && c.In(x1, y1) {
		c.bresenham(x0, y0, x1, y1, v)
		return
	}
	c.DrawLineF(float64(x0), float64(y0), float64(x1), float64(y1), v)
}

// DrawLineF draws a line between fractional endpoints rounded to the nearest
// pixel. Segments with a non-finite endpoint, or one beyond maxLineCoord, are
// skipped.
func (c *Canvas) DrawLineF(x0, y0, x1, y1 float64, v bool) {
	c.lineF(x0, y0, x1, y1, v)
}

// lineF is DrawLineF returning the number of pixels stepped.
func (c *Canvas) lineF(x0, y0, x1, y1 float64, v bool) int {
	for _, f := range [...]float64{x0, y0, x1, y1} {
		if math.IsNaN(f) || math.Abs(f) > maxLineCoord {
			return 0
		}
	}

	x0, y0, x1, y1, ok := c.clipLine(x0, y0, x1, y1)
	if !ok {
		return 0
	}
	return c.bresenham(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x1)), int(math.Round(y1)), v)
}

// clipLine clips a segment to the pixel centers' cell rectangle
// [-0.5, Width-0.5]×[-0.5, Height-0.5] (Liang-Barsky). It reports false when
// nothing of the segment is visible.
func (c *Canvas) clipLine(x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	xmin, ymin := -0.5, -0.5
	xmax, ymax := float64(c.Width)-0.5, float64(c.Height)-0.5
	dx, dy := x1-x0, y1-y0

	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// bresenham steps from (x0, y0) to (x1, y1) and returns the number of
// pixels visited.
func (c *Canvas) bresenham(x0, y0, x1, y1 int, v bool) int {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	steps := 0
	for {
		c.SetPixel(x0, y0, v)
		steps++
		if x0 == x1 && y0 == y1 {
			return steps
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect draws the rectangle spanning the corners (x1, y1) and (x2, y2),
// inclusive. The corners may be given in any order and are clamped to the
// canvas. The border is always drawn; the interior only when filled. Pixels
// are lit, or cleared when invert is set.
func (c *Canvas) DrawRect(x1, y1, x2, y2 int, invert, filled bool) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if x2 < 0 || y2 < 0 || x1 >= c.Width || y1 >= c.Height {
		return
	}
	x1, y1 = max(x1, 0), max(y1, 0)
	x2, y2 = min(x2, c.Width-1), min(y2, c.Height-1)

	v := !invert
	for x := x1; x <= x2; x++ {
		c.SetPixel(x, y1, v)
		c.SetPixel(x, y2, v)
	}
	for y := y1; y <= y2; y++ {
		c.SetPixel(x1, y, v)
		c.SetPixel(x2, y, v)
	}

	if !filled {
		return
	}
	for y := y1 + 1; y < y2; y++ {
		for x := x1 + 1; x < x2; x++ {
			c.SetPixel(x, y, v)
		}
	}
}

// BitBlt copies src onto the canvas with its top-left corner at (x, y).
//
// The composition rule for each source pixel s over destination d:
//
//	invert  transparent  result
//	no      no           s
//	yes     no           !s
//	no      yes          d || s
//	yes     yes          d && !s
//
// Negative x or y rejects the whole blit; pixels past the right or bottom
// edge are clipped.
func (c *Canvas) BitBlt(src *Sprite, x, y int, invert, transparent bool) {
	if src == nil || x < 0 || y < 0 {
		return
	}

	for sy := range src.Height {
		dy := y + sy
		if dy >= c.Height {
			break
		}
		for sx := range src.Width {
			dx := x + sx
			if dx >= c.Width {
				break
			}
			s := src.At(sx, sy)
			switch {
			case !transparent:
				c.SetPixel(dx, dy, s != invert)
			case s && !invert:
				c.SetPixel(dx, dy, true)
			case s && invert:
				c.SetPixel(dx, dy, false)
			}
		}
	}
}

// DrawText draws text with its top-left corner at (x, y) and returns the x
// position after the last character. Runes missing from the font leave a gap
// of Font.Spacing pixels.
func (c *Canvas) DrawText(x, y int, text string, invert, transparent bool) int {
	font := c.Font
	if font == nil {
		font = DefaultFont()
	}

	for _, r := range text {
		glyph := font.Glyph(r)
		if glyph == nil {
			x += font.Spacing
			continue
		}
		c.BitBlt(glyph, x, y, invert, transparent)
		x += glyph.Width
	}
	return x
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the canvas to a grayscale image, lit pixels white.
func (c *Canvas) ToImage() *image.Gray {
	img := image.NewGray(c.Bounds())
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if c.Pixel(x, y) {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// SavePNG saves the canvas as a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, c.ToImage())
}
