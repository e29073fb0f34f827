package web

import (
	"errors"
)

var ErrBadPatch = errors.New("web: invalid state patch")

// Display is the render task the API drives. Implementations serialise every
// call against their own update loop.
type Display interface {
	Build(width, height uint16, layout []byte) (uint8, error)
	Update() (uint8, error)
	Screen() Frame
	Bindings() []BindingInfo
	PatchState(patch StatePatch) error
}

// Frame is a copy of the packed buffer taken between updates.
type Frame struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Built  bool   `json:"built"`
	Buffer []byte `json:"-"`
}

type BindingInfo struct {
	Name  string `json:"name"`
	ID    uint16 `json:"id"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// StatePatch carries the record fields a client may overwrite. Nil fields are
// left alone.
type StatePatch struct {
	View        *int8   `json:"view,omitempty"`
	BattPercent *int    `json:"battPercent,omitempty"`
	Charging    *bool   `json:"charging,omitempty"`
	Time        *string `json:"time,omitempty"`
	Date        *string `json:"date,omitempty"`
}
