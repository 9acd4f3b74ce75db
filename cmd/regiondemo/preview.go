package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/region"
)

// Cell glyphs by coverage of the canvas area a cell stands for.
const (
	glyphIn   = '█'
	glyphPart = '▒'
	glyphOut  = '·'
)

var (
	styleIn     = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue)
	stylePart   = tcell.StyleDefault.Foreground(tcell.ColorLightSteelBlue)
	styleOut    = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleStatus = tcell.StyleDefault.Reverse(true)
)

// preview shows r in the terminal until a key is pressed.
func preview(r *region.Region, canvas region.Box) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	return runPreview(s, r, canvas)
}

// runPreview draws r on an initialized screen and redraws on resize until
// Escape, Enter, q or Ctrl-C.
func runPreview(s tcell.Screen, r *region.Region, canvas region.Box) error {
	drawPreview(s, r, canvas)
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			s.Sync()
			drawPreview(s, r, canvas)
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyEnter, ev.Key() == tcell.KeyCtrlC:
				return nil
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				return nil
			}
		}
	}
}

// drawPreview maps canvas onto all but the last screen row. Each cell is
// classified with ContainsRect against the canvas area it covers. The last
// row shows a status line.
func drawPreview(s tcell.Screen, r *region.Region, canvas region.Box) {
	s.Clear()
	cols, rows := s.Size()
	rows--
	if cols <= 0 || rows <= 0 || canvas.Empty() {
		s.Show()
		return
	}

	// Cells are never smaller than one canvas pixel.
	cellW := max(ceilDiv(canvas.Width(), cols), 1)
	cellH := max(ceilDiv(canvas.Height(), rows), 1)

	for cy := 0; cy < rows; cy++ {
		y1 := canvas.Y1 + cy*cellH
		if y1 >= canvas.Y2 {
			break
		}
		for cx := 0; cx < cols; cx++ {
			x1 := canvas.X1 + cx*cellW
			if x1 >= canvas.X2 {
				break
			}
			cell := region.Box{X1: x1, Y1: y1, X2: min(x1+cellW, canvas.X2), Y2: min(y1+cellH, canvas.Y2)}

			glyph, style := glyphOut, styleOut
			switch r.ContainsRect(cell) {
			case region.OverlapIn:
				glyph, style = glyphIn, styleIn
			case region.OverlapPart:
				glyph, style = glyphPart, stylePart
			}
			s.SetContent(cx, cy, glyph, nil, style)
		}
	}

	status := fmt.Sprintf(" %d rects  %v  %dx%d px/cell  q: quit ", r.NumRects(), r.Extents(), cellW, cellH)
	for i, ch := range []rune(status) {
		if i >= cols {
			break
		}
		s.SetContent(i, rows, ch, nil, styleStatus)
	}
	s.Show()
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
