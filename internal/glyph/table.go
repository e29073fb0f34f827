// Package glyph holds the fixed bitmap font used by the text rasterizer.
//
// A Table has 256 slots of 8 rows each. Every row is one byte whose five most
// significant bits are the glyph's pixel columns, leftmost column in bit 7.
package glyph

import (
	"errors"
	"fmt"
	"io"
)

const (
	Slots = 256
	Rows  = 8
	Cols  = 5

	// Size is the encoded length of a table in bytes.
	Size = Slots * Rows
)

var ErrShortTable = errors.New("glyph: short table")

// Table is an immutable-by-convention glyph set. Load it once at startup and
// share the pointer.
type Table [Size]byte

// Glyph returns the 8 row bytes for character c.
func (t *Table) Glyph(c byte) [Rows]byte {
	var rows [Rows]byte
	copy(rows[:], t[int(c)*Rows:int(c)*Rows+Rows])
	return rows
}

// Set replaces the rows of character c.
func (t *Table) Set(c byte, rows [Rows]byte) {
	copy(t[int(c)*Rows:], rows[:])
}

// Bit reports whether pixel (col,row) of character c is inked.
func (t *Table) Bit(c byte, row, col int) bool {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return false
	}
	return (t[int(c)*Rows+row]>>(7-uint(col)))&1 == 1
}

// Load reads a raw 2048 byte table.
func Load(r io.Reader) (*Table, error) {
	t := new(Table)
	if _, err := io.ReadFull(r, t[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: want %d bytes", ErrShortTable, Size)
		}
		return nil, fmt.Errorf("glyph: read table: %w", err)
	}
	return t, nil
}

// WriteTo writes the raw table, the inverse of Load.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(t[:])
	return int64(n), err
}
