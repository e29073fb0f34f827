package render

import (
	"testing"

	"github.com/rook-computer/hdldisplay/internal/glyph"
)

type point struct{ x, y int }

// recorder collects every Pixel call.
type recorder struct {
	points []point
}

func (r *recorder) Pixel(x, y int) { r.points = append(r.points, point{x, y}) }

func (r *recorder) set() map[point]bool {
	m := make(map[point]bool, len(r.points))
	for _, p := range r.points {
		m[p] = true
	}
	return m
}

// glyphPoints lists the inked pixels of c drawn at the origin with size 1.
func glyphPoints(c byte) []point {
	var out []point
	for row := 0; row < glyph.Rows; row++ {
		for col := 0; col < glyph.Cols; col++ {
			if glyph.Default.Bit(c, row, col) {
				out = append(out, point{col, row})
			}
		}
	}
	return out
}

func TestTextNewlineOffsetsBySixRows(t *testing.T) {
	var rec recorder
	DrawText(&rec, glyph.Default, 10, 3, "\nA", 1)

	want := glyphPoints('A')
	if len(rec.points) != len(want) {
		t.Fatalf("drew %d pixels, want %d", len(rec.points), len(want))
	}
	got := rec.set()
	for _, p := range want {
		if !got[point{10 + p.x, 3 + 6 + p.y}] {
			t.Errorf("missing pixel (%d,%d)", 10+p.x, 9+p.y)
		}
	}
}

func TestTextSpaceAdvancesWithoutDrawing(t *testing.T) {
	var rec recorder
	DrawText(&rec, glyph.Default, 0, 0, " ", 1)
	if len(rec.points) != 0 {
		t.Fatalf("space drew %d pixels", len(rec.points))
	}

	DrawText(&rec, glyph.Default, 0, 0, " A", 1)
	got := rec.set()
	for _, p := range glyphPoints('A') {
		if !got[point{5 + p.x, p.y}] {
			t.Errorf("missing pixel (%d,%d)", 5+p.x, p.y)
		}
	}
}

func TestTextColumnsAdvance(t *testing.T) {
	var rec recorder
	DrawText(&rec, glyph.Default, 0, 0, "AA", 1)
	got := rec.set()
	for _, p := range glyphPoints('A') {
		if !got[point{p.x, p.y}] || !got[point{5 + p.x, p.y}] {
			t.Errorf("glyph pixel (%d,%d) missing in one of the cells", p.x, p.y)
		}
	}
}

func TestTextScaledBlocks(t *testing.T) {
	var rec recorder
	DrawText(&rec, glyph.Default, 0, 0, "A", 3)
	want := len(glyphPoints('A')) * 9
	if len(rec.points) != want {
		t.Fatalf("drew %d pixels at size 3, want %d", len(rec.points), want)
	}
	got := rec.set()
	// 'A' row 0 column 1 is inked, so the block (3..5, 0..2) is drawn.
	for y := 0; y < 3; y++ {
		for x := 3; x < 6; x++ {
			if !got[point{x, y}] {
				t.Errorf("missing block pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestTextClipsOnSurface(t *testing.T) {
	s := newTestSurface(t, 16, 8)
	s.Text(12, 4, "WWWW\nWW", 2)
	for i := len(s.Bytes()); i < MaxBufferSize; i++ {
		if s.Raw()[i] != 0xFF {
			t.Fatalf("text overflow wrote byte %d", i)
		}
	}
}

func TestTextZeroSizeDrawsNothing(t *testing.T) {
	var rec recorder
	DrawText(&rec, glyph.Default, 0, 0, "ABC", 0)
	if len(rec.points) != 0 {
		t.Errorf("size 0 drew %d pixels", len(rec.points))
	}
}

func TestMeasureText(t *testing.T) {
	tests := []struct {
		text         string
		size         int
		wantW, wantH int
	}{
		{"", 1, 0, 0},
		{"A", 1, 5, 6},
		{"12:30", 2, 50, 12},
		{"ab\nabcd", 1, 20, 12},
		{"a b", 1, 15, 6},
	}
	for _, tc := range tests {
		w, h := MeasureText(tc.text, tc.size)
		if w != tc.wantW || h != tc.wantH {
			t.Errorf("MeasureText(%q, %d) = (%d, %d), want (%d, %d)", tc.text, tc.size, w, h, tc.wantW, tc.wantH)
		}
	}
}
