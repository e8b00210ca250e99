// Package termout writes rendered canvases to a terminal, one full frame per
// call, styling cells by their modifier.
package termout

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/smasonuk/gosieterm"
)

// Writer draws frames over the top of each other.
type Writer struct {
	out    *termenv.Output
	colour bool
	frames int
}

// New wraps w. The colour profile is detected from w unless given in opts.
// With colour false every modifier is ignored.
func New(w io.Writer, colour bool, opts ...termenv.OutputOption) *Writer {
	return &Writer{
		out:    termenv.NewOutput(w, opts...),
		colour: colour,
	}
}

// Begin switches to the alternate screen and hides the cursor.
func (w *Writer) Begin() {
	w.out.AltScreen()
	w.out.HideCursor()
	w.out.ClearScreen()
}

// End restores the screen Begin took over.
func (w *Writer) End() {
	w.out.Reset()
	w.out.ShowCursor()
	w.out.ExitAltScreen()
}

// Frames is the number of frames written so far.
func (w *Writer) Frames() int {
	return w.frames
}

// WriteFrame homes the cursor and writes every row of c in a single write.
func (w *Writer) WriteFrame(c *gosieterm.Canvas) error {
	var sb strings.Builder
	sb.WriteString(termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, 1, 1))
	for y := 0; y < c.Height(); y++ {
		if y > 0 {
			sb.WriteString("\r\n")
		}
		sb.WriteString(w.FormatRow(c.Row(y)))
	}
	if _, err := io.WriteString(w.out, sb.String()); err != nil {
		return fmt.Errorf("writing frame %d: %w", w.frames, err)
	}
	w.frames++
	return nil
}

// FormatRow renders a row of cells, grouping neighbours that share a
// modifier into one styled run.
func (w *Writer) FormatRow(row []gosieterm.Cell) string {
	var sb strings.Builder
	var run strings.Builder
	var mod gosieterm.Modifier

	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(w.style(run.String(), mod))
		run.Reset()
	}

	for _, cell := range row {
		m := cell.Mod
		if !w.colour {
			m = gosieterm.Modifier{}
		}
		if m != mod {
			flush()
			mod = m
		}
		run.WriteRune(cell.Char)
	}
	flush()
	return sb.String()
}

func (w *Writer) style(s string, m gosieterm.Modifier) string {
	st := w.out.String(s)
	switch m.Kind {
	case gosieterm.ModColour:
		hex := fmt.Sprintf("#%02x%02x%02x", m.Col.R, m.Col.G, m.Col.B)
		st = st.Foreground(w.out.Color(hex))
	case gosieterm.ModBold:
		st = st.Bold()
	case gosieterm.ModItalic:
		st = st.Italic()
	case gosieterm.ModUnderline:
		st = st.Underline()
	default:
		return s
	}
	return st.String()
}
