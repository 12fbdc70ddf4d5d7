package render

// Sprite is a small monochrome bitmap blitted onto a Canvas.
type Sprite struct {
	Width  int
	Height int
	Pixels []bool // Row-major
}

// NewSprite creates a blank sprite.
func NewSprite(width, height int) *Sprite {
	width, height = max(width, 0), max(height, 0)
	return &Sprite{
		Width:  width,
		Height: height,
		Pixels: make([]bool, width*height),
	}
}

// ParseSprite builds a sprite from text rows where '#' marks a lit pixel.
// Rows shorter than the widest row are padded with unlit pixels.
func ParseSprite(rows ...string) *Sprite {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	s := NewSprite(width, len(rows))
	for y, row := range rows {
		for x := range len(row) {
			s.Set(x, y, row[x] == '#')
		}
	}
	return s
}

// At returns the pixel at (x, y), or false outside the sprite.
func (s *Sprite) At(x, y int) bool {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return false
	}
	return s.Pixels[y*s.Width+x]
}

// Set sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (s *Sprite) Set(x, y int, v bool) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return
	}
	s.Pixels[y*s.Width+x] = v
}
