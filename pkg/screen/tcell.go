package screen

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// TcellSurface draws frames onto a tcell screen.
type TcellSurface struct {
	Screen tcell.Screen
	Style  tcell.Style
}

// NewTcellSurface creates a surface over scr with the default style.
func NewTcellSurface(scr tcell.Screen) *TcellSurface {
	return &TcellSurface{Screen: scr, Style: tcell.StyleDefault}
}

// WriteText implements Surface.
func (s *TcellSurface) WriteText(text string) error {
	w, h := s.Screen.Size()

	for y, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if y >= h {
			break
		}
		x := 0
		for _, r := range line {
			if x >= w {
				break
			}
			s.Screen.SetContent(x, y, r, nil, s.Style)
			x++
		}
	}
	s.Screen.Show()
	return nil
}
