// Package binding maps stable numeric ids to typed fields of the application
// state record, so a layout interpreter can read and write them by id.
package binding

import (
	"bytes"
	"strconv"
)

// Type tells the interpreter how to read the bytes behind a binding.
type Type uint8

const (
	Int8 Type = iota + 1
	Int16
	Bool
	String
)

func (t Type) String() string {
	switch t {
	case Int8:
		return "i8"
	case Int16:
		return "i16"
	case Bool:
		return "bool"
	case String:
		return "string"
	default:
		return "type(" + strconv.Itoa(int(t)) + ")"
	}
}

// StringSize is the capacity of a FixedString including its terminating NUL.
const StringSize = 16

// FixedString is a NUL-terminated string field of fixed size.
type FixedString [StringSize]byte

func NewFixedString(v string) FixedString {
	var s FixedString
	s.Set(v)
	return s
}

// Set stores v, truncated to StringSize-1 bytes.
func (s *FixedString) Set(v string) {
	*s = FixedString{}
	copy(s[:StringSize-1], v)
}

func (s FixedString) String() string {
	if i := bytes.IndexByte(s[:], 0); i >= 0 {
		return string(s[:i])
	}
	return string(s[:])
}

// Binding is one registered variable. The target is a pointer into the
// state record; accessors read and write through it.
type Binding struct {
	Name string
	ID   uint16
	Type Type

	target any
}

// Target returns the pointer the binding aliases.
func (b Binding) Target() any { return b.target }

func (b Binding) Int() int {
	switch p := b.target.(type) {
	case *int8:
		return int(*p)
	case *int16:
		return int(*p)
	case *bool:
		if *p {
			return 1
		}
		return 0
	}
	return 0
}

// SetInt stores v with the target's width; out-of-range values wrap.
func (b Binding) SetInt(v int) {
	switch p := b.target.(type) {
	case *int8:
		*p = int8(v)
	case *int16:
		*p = int16(v)
	case *bool:
		*p = v != 0
	}
}

func (b Binding) Bool() bool {
	if p, ok := b.target.(*bool); ok {
		return *p
	}
	return b.Int() != 0
}

func (b Binding) SetBool(v bool) {
	if p, ok := b.target.(*bool); ok {
		*p = v
		return
	}
	if v {
		b.SetInt(1)
	} else {
		b.SetInt(0)
	}
}

// String formats any binding as text; string bindings return their content.
func (b Binding) String() string {
	switch p := b.target.(type) {
	case *FixedString:
		return p.String()
	case *bool:
		return strconv.FormatBool(*p)
	}
	return strconv.Itoa(b.Int())
}

// SetString only affects string bindings.
func (b Binding) SetString(v string) {
	if p, ok := b.target.(*FixedString); ok {
		p.Set(v)
	}
}

// Value returns the current value as a plain Go value.
func (b Binding) Value() any {
	switch b.Type {
	case Bool:
		return b.Bool()
	case String:
		return b.String()
	}
	return b.Int()
}
