package state

import (
	"fmt"

	"github.com/rook-computer/hdldisplay/internal/binding"
)

// Binding ids. They are part of the layout contract and must stay stable
// across builds and firmware releases.
const (
	BindView        uint16 = 1
	BindBattPercent uint16 = 2
	BindBattSprite  uint16 = 3
	BindCharging    uint16 = 4
	BindTime        uint16 = 5
	BindDate        uint16 = 6
)

// Views selectable through the VIEW binding.
const (
	ViewMain int8 = iota
	ViewSleep
)

// Record is the application state the layout reads. Firmware writes every
// field; the interpreter may write View back.
type Record struct {
	View        int8
	BattPercent int8
	BattSprite  int8
	Charging    bool
	Time        binding.FixedString
	Date        binding.FixedString
}

// Seed writes the startup placeholders shown before the clock is known.
func (r *Record) Seed() {
	r.Time.Set("--:--")
	r.Date.Set("--/--")
}

// Register binds every field into reg in the fixed layout order.
func (r *Record) Register(reg *binding.Registry) error {
	entries := []struct {
		name   string
		id     uint16
		target any
		typ    binding.Type
	}{
		{"VIEW", BindView, &r.View, binding.Int8},
		{"BATT_PERCENT", BindBattPercent, &r.BattPercent, binding.Int8},
		{"BATT_SPRITE", BindBattSprite, &r.BattSprite, binding.Int8},
		{"CHRG", BindCharging, &r.Charging, binding.Bool},
		{"TIME", BindTime, &r.Time, binding.String},
		{"DATE", BindDate, &r.Date, binding.String},
	}
	for _, e := range entries {
		if err := reg.Register(e.name, e.id, e.target, e.typ); err != nil {
			return fmt.Errorf("register %s: %w", e.name, err)
		}
	}
	return nil
}

// SpriteFor maps a battery percentage onto the five-step sprite index.
func SpriteFor(percent int) int8 {
	switch {
	case percent <= 5:
		return 0
	case percent <= 25:
		return 1
	case percent <= 50:
		return 2
	case percent <= 75:
		return 3
	default:
		return 4
	}
}
