package render

import "testing"

func TestArcFullCircleSamples360Points(t *testing.T) {
	var rec recorder
	DrawArc(&rec, 40, 64, 20, 0, 360)
	if len(rec.points) != 360 {
		t.Fatalf("sampled %d points, want 360", len(rec.points))
	}
	for _, p := range rec.points {
		if p.x < 20 || p.x > 60 || p.y < 44 || p.y > 84 {
			t.Errorf("point (%d,%d) outside the bounding box", p.x, p.y)
		}
	}
}

func TestArcCardinalPoints(t *testing.T) {
	var rec recorder
	DrawArc(&rec, 40, 64, 20, 0, 360)
	got := rec.set()
	for _, p := range []point{{60, 64}, {40, 84}} {
		if !got[p] {
			t.Errorf("missing cardinal point (%d,%d)", p.x, p.y)
		}
	}
}

func TestArcHalfOpenRange(t *testing.T) {
	var rec recorder
	DrawArc(&rec, 0, 0, 10, 90, 180)
	if len(rec.points) != 90 {
		t.Fatalf("sampled %d points, want 90", len(rec.points))
	}
	if first := rec.points[0]; first != (point{0, 10}) {
		t.Errorf("first point = %v, want (0,10)", first)
	}
}

func TestArcEmptyOrReversedRange(t *testing.T) {
	var rec recorder
	DrawArc(&rec, 0, 0, 10, 45, 45)
	DrawArc(&rec, 0, 0, 10, 90, 0)
	if len(rec.points) != 0 {
		t.Errorf("sampled %d points, want 0", len(rec.points))
	}
}

func TestArcClipsOnSurface(t *testing.T) {
	s := newTestSurface(t, 80, 32)
	s.Arc(0, 0, 10, 0, 360)
	for y := 0; y < 32; y++ {
		for x := 0; x < 80; x++ {
			if s.Lit(x, y) && (x > 10 || y > 10) {
				t.Errorf("pixel (%d,%d) lit outside the arc box", x, y)
			}
		}
	}
	if !s.Lit(10, 0) {
		t.Error("pixel (10,0) not lit")
	}
}
