package screen

import (
	"strings"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalSurface draws frames onto an ultraviolet screen, one cell per
// character, starting at Origin.
type TerminalSurface struct {
	Screen uv.Screen
	Origin uv.Position
	Style  uv.Style
}

// NewTerminalSurface creates a surface over scr.
func NewTerminalSurface(scr uv.Screen) *TerminalSurface {
	return &TerminalSurface{Screen: scr}
}

// displayer is implemented by screens that buffer cells until told to
// present them, such as *uv.Terminal.
type displayer interface {
	Display() error
}

// WriteText implements Surface.
func (s *TerminalSurface) WriteText(text string) error {
	area := s.Screen.Bounds()

	for row, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		y := s.Origin.Y + row
		if y >= area.Max.Y {
			break
		}
		x := s.Origin.X
		for _, r := range line {
			if x >= area.Max.X {
				break
			}
			s.Screen.SetCell(x, y, &uv.Cell{
				Content: string(r),
				Width:   1,
				Style:   s.Style,
			})
			x++
		}
	}

	if d, ok := s.Screen.(displayer); ok {
		return d.Display()
	}
	return nil
}
