package binding

import (
	"errors"
	"fmt"
)

// ReservedBit marks ids owned by preloaded assets; bindings may not use it.
const ReservedBit uint16 = 1 << 15

var (
	ErrDuplicateID   = errors.New("binding: duplicate id")
	ErrDuplicateName = errors.New("binding: duplicate name")
	ErrReservedID    = errors.New("binding: id uses the reserved asset bit")
	ErrEmptyName     = errors.New("binding: empty name")
	ErrTypeMismatch  = errors.New("binding: target does not match type")
)

// Registry is an ordered id -> binding table. It is rebuilt from scratch on
// every build; nothing is patched in place.
type Registry struct {
	entries []Binding
	byID    map[uint16]int
	byName  map[string]int
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[uint16]int), byName: make(map[string]int)}
}

// Register appends a binding. target must be a non-nil *int8, *int16, *bool
// or *FixedString matching typ.
func (r *Registry) Register(name string, id uint16, target any, typ Type) error {
	if name == "" {
		return ErrEmptyName
	}
	if id&ReservedBit != 0 {
		return fmt.Errorf("%w: %s=%#04x", ErrReservedID, name, id)
	}
	if !targetMatches(target, typ) {
		return fmt.Errorf("%w: %s wants %s, got %T", ErrTypeMismatch, name, typ, target)
	}
	if prev, ok := r.byID[id]; ok {
		return fmt.Errorf("%w: %d already bound to %s", ErrDuplicateID, id, r.entries[prev].Name)
	}
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	r.byID[id] = len(r.entries)
	r.byName[name] = len(r.entries)
	r.entries = append(r.entries, Binding{Name: name, ID: id, Type: typ, target: target})
	return nil
}

func (r *Registry) Lookup(id uint16) (Binding, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Binding{}, false
	}
	return r.entries[i], true
}

func (r *Registry) LookupName(name string) (Binding, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Binding{}, false
	}
	return r.entries[i], true
}

// All returns the bindings in registration order.
func (r *Registry) All() []Binding {
	out := make([]Binding, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry) Len() int { return len(r.entries) }

// Reset drops every binding.
func (r *Registry) Reset() {
	r.entries = nil
	clear(r.byID)
	clear(r.byName)
}

func targetMatches(target any, typ Type) bool {
	switch p := target.(type) {
	case *int8:
		return typ == Int8 && p != nil
	case *int16:
		return typ == Int16 && p != nil
	case *bool:
		return typ == Bool && p != nil
	case *FixedString:
		return typ == String && p != nil
	}
	return false
}
