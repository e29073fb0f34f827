package glyph

import (
	"bytes"
	"errors"
	"testing"
)

func TestDefaultGlyphA(t *testing.T) {
	want := [Rows]byte{0x70, 0x88, 0x88, 0x88, 0xf8, 0x88, 0x88, 0x00}
	if got := Default.Glyph('A'); got != want {
		t.Errorf("Default.Glyph('A') = %#v, want %#v", got, want)
	}
}

func TestDefaultBlankSlots(t *testing.T) {
	for _, c := range []byte{0x00, ' ', 0x7f, 0xff} {
		if got := Default.Glyph(c); got != ([Rows]byte{}) {
			t.Errorf("Default.Glyph(%#x) = %#v, want blank", c, got)
		}
	}
}

func TestDefaultUsesOnlyFiveColumns(t *testing.T) {
	for i, b := range Default {
		if b&0x07 != 0 {
			t.Fatalf("byte %d = %#x has bits beyond column 5", i, b)
		}
	}
}

func TestBit(t *testing.T) {
	if !Default.Bit('A', 0, 1) {
		t.Error("Bit('A', 0, 1) = false, want true")
	}
	if Default.Bit('A', 0, 0) {
		t.Error("Bit('A', 0, 0) = true, want false")
	}
	if Default.Bit('A', -1, 0) || Default.Bit('A', 0, Cols) || Default.Bit('A', Rows, 0) {
		t.Error("Bit out of range should be false")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	n, err := Default.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != Size {
		t.Fatalf("WriteTo wrote %d bytes, want %d", n, Size)
	}
	got, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *Default {
		t.Error("loaded table differs from Default")
	}
}

func TestLoadShort(t *testing.T) {
	_, err := Load(bytes.NewReader(make([]byte, Size-1)))
	if !errors.Is(err, ErrShortTable) {
		t.Errorf("Load(short) error = %v, want ErrShortTable", err)
	}
	_, err = Load(bytes.NewReader(nil))
	if !errors.Is(err, ErrShortTable) {
		t.Errorf("Load(empty) error = %v, want ErrShortTable", err)
	}
}

func TestFromFaceBasicfont(t *testing.T) {
	tab := FromFace(nil)
	if tab.Glyph(' ') != ([Rows]byte{}) {
		t.Error("space should stay blank")
	}
	if tab.Glyph('A') == ([Rows]byte{}) {
		t.Error("'A' rasterised blank")
	}
	if tab.Glyph('A') == tab.Glyph('.') {
		t.Error("'A' and '.' rasterised identically")
	}
	for i, b := range tab {
		if b&0x07 != 0 {
			t.Fatalf("byte %d = %#x has bits beyond column 5", i, b)
		}
	}
}

func TestFromTrueTypeRejectsGarbage(t *testing.T) {
	if _, err := FromTrueType([]byte("not a font"), 8); err == nil {
		t.Error("FromTrueType(garbage) error = nil, want error")
	}
}
