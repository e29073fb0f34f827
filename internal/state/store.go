package state

import "sync"

// Store owns the single Record. Firmware goroutines and the render task
// serialise through Do; bindings alias the record returned by Record.
type Store struct {
	mu     sync.Mutex
	record Record
}

func NewStore() *Store {
	return &Store{record: Record{BattPercent: 100, BattSprite: SpriteFor(100)}}
}

// Record returns the live record for binding registration. Access outside Do
// is only safe from the goroutine that holds the render task.
func (store *Store) Record() *Record {
	return &store.record
}

// Do runs fn with exclusive access to the record.
func (store *Store) Do(fn func(rec *Record)) {
	store.mu.Lock()
	defer store.mu.Unlock()
	fn(&store.record)
}

func (store *Store) Snapshot() Record {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.record
}

// SetBattery updates percentage and the matching sprite together.
func (store *Store) SetBattery(percent int, charging bool) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	store.Do(func(rec *Record) {
		rec.BattPercent = int8(percent)
		rec.BattSprite = SpriteFor(percent)
		rec.Charging = charging
	})
}

func (store *Store) SetView(view int8) {
	store.Do(func(rec *Record) { rec.View = view })
}
