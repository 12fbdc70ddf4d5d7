package render

import (
	"sync"

	"golang.org/x/image/font/basicfont"
)

// Font is a fixed bitmap glyph table indexed by character.
type Font struct {
	Glyphs  map[rune]*Sprite
	Spacing int // Advance used for runes without a glyph
	Height  int
}

// Glyph returns the sprite for r, or nil when the font has none.
func (f *Font) Glyph(r rune) *Sprite {
	return f.Glyphs[r]
}

// NewFontFromFace rasterizes every rune of a basicfont face into glyph
// sprites. Each sprite spans the full advance so opaque text paints a solid
// background.
func NewFontFromFace(face *basicfont.Face) *Font {
	height := face.Ascent + face.Descent
	f := &Font{
		Glyphs:  make(map[rune]*Sprite),
		Spacing: face.Advance,
		Height:  height,
	}

	for _, rng := range face.Ranges {
		for r := rng.Low; r < rng.High; r++ {
			top := (int(r-rng.Low) + rng.Offset) * height
			glyph := NewSprite(face.Advance, height)
			for y := range height {
				for x := range face.Width {
					_, _, _, a := face.Mask.At(x, top+y).RGBA()
					glyph.Set(x+face.Left, y, a >= 0x8000)
				}
			}
			f.Glyphs[r] = glyph
		}
	}
	return f
}

var defaultFont = sync.OnceValue(func() *Font {
	return NewFontFromFace(basicfont.Face7x13)
})

// DefaultFont returns the built-in 7x13 font.
func DefaultFont() *Font {
	return defaultFont()
}
