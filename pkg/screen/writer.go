package screen

import (
	"io"
)

// cursorHome moves the cursor to the top-left corner.
const cursorHome = "\x1b[H"

// WriterSurface writes frames to an io.Writer such as stdout. With Home set
// each frame is preceded by a cursor-home sequence so frames overwrite each
// other in a terminal.
type WriterSurface struct {
	W    io.Writer
	Home bool
}

// WriteText implements Surface.
func (s *WriterSurface) WriteText(text string) error {
	if s.Home {
		text = cursorHome + text
	}
	_, err := io.WriteString(s.W, text)
	return err
}
