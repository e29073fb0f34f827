package render

import "github.com/rook-computer/hdldisplay/internal/glyph"

// Character cell pitch before scaling: 5 columns, 8 glyph rows on a 6 row line.
const (
	CellWidth  = glyph.Cols
	CellHeight = 6
)

// DrawText blits text through p one byte at a time. '\n' starts a new line and
// ' ' advances one cell without drawing. Every inked glyph bit becomes a
// size x size block; clipping is left to p.
func DrawText(p Pixeler, glyphs *glyph.Table, x, y int, text string, size int) {
	line, column := 0, 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '\n':
			line++
			column = 0
			continue
		case ' ':
			column++
			continue
		}
		rows := glyphs.Glyph(c)
		for gr, bits := range rows {
			if bits == 0 {
				continue
			}
			for gc := 0; gc < glyph.Cols; gc++ {
				if bits>>(7-uint(gc))&1 == 0 {
					continue
				}
				rx := x + (gc+column*CellWidth)*size
				ry := y + (gr+line*CellHeight)*size
				fillBlock(p, rx, ry, size)
			}
		}
		column++
	}
}

// MeasureText returns the cell box text covers at size: the widest line in
// columns and the number of lines, both scaled to pixels.
func MeasureText(text string, size int) (width, height int) {
	if text == "" {
		return 0, 0
	}
	lines, column, widest := 1, 0, 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines++
			column = 0
			continue
		}
		column++
		if column > widest {
			widest = column
		}
	}
	return widest * CellWidth * size, lines * CellHeight * size
}

func fillBlock(p Pixeler, x, y, size int) {
	for sy := 0; sy < size; sy++ {
		for sx := 0; sx < size; sx++ {
			p.Pixel(x+sx, y+sy)
		}
	}
}
