package state

import (
	"errors"
	"sync"
	"testing"

	"github.com/rook-computer/hdldisplay/internal/binding"
)

func TestRegisterFixedOrder(t *testing.T) {
	var rec Record
	reg := binding.NewRegistry()
	if err := rec.Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	want := []struct {
		name string
		id   uint16
		typ  binding.Type
	}{
		{"VIEW", BindView, binding.Int8},
		{"BATT_PERCENT", BindBattPercent, binding.Int8},
		{"BATT_SPRITE", BindBattSprite, binding.Int8},
		{"CHRG", BindCharging, binding.Bool},
		{"TIME", BindTime, binding.String},
		{"DATE", BindDate, binding.String},
	}
	all := reg.All()
	if len(all) != len(want) {
		t.Fatalf("registered %d bindings, want %d", len(all), len(want))
	}
	for i, w := range want {
		if all[i].Name != w.name || all[i].ID != w.id || all[i].Type != w.typ {
			t.Errorf("binding %d = %s/%d/%s, want %s/%d/%s", i, all[i].Name, all[i].ID, all[i].Type, w.name, w.id, w.typ)
		}
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	var rec Record
	reg := binding.NewRegistry()
	_ = rec.Register(reg)
	if err := rec.Register(reg); !errors.Is(err, binding.ErrDuplicateID) {
		t.Errorf("second Register error = %v, want ErrDuplicateID", err)
	}
}

func TestSeed(t *testing.T) {
	var rec Record
	rec.Seed()
	if rec.Time.String() != "--:--" || rec.Date.String() != "--/--" {
		t.Errorf("seeded time/date = %q/%q", rec.Time.String(), rec.Date.String())
	}
}

func TestBindingsAliasRecord(t *testing.T) {
	store := NewStore()
	reg := binding.NewRegistry()
	if err := store.Record().Register(reg); err != nil {
		t.Fatal(err)
	}
	store.SetBattery(42, true)
	pct, _ := reg.Lookup(BindBattPercent)
	chrg, _ := reg.Lookup(BindCharging)
	if pct.Int() != 42 || !chrg.Bool() {
		t.Errorf("bindings read %d/%v, want 42/true", pct.Int(), chrg.Bool())
	}
	view, _ := reg.Lookup(BindView)
	view.SetInt(int(ViewSleep))
	if got := store.Snapshot().View; got != ViewSleep {
		t.Errorf("View = %d after interpreter write, want %d", got, ViewSleep)
	}
}

func TestSetBatteryClamps(t *testing.T) {
	store := NewStore()
	store.SetBattery(150, false)
	if got := store.Snapshot(); got.BattPercent != 100 || got.BattSprite != 4 {
		t.Errorf("SetBattery(150) = %d/%d, want 100/4", got.BattPercent, got.BattSprite)
	}
	store.SetBattery(-3, false)
	if got := store.Snapshot(); got.BattPercent != 0 || got.BattSprite != 0 {
		t.Errorf("SetBattery(-3) = %d/%d, want 0/0", got.BattPercent, got.BattSprite)
	}
}

func TestSpriteFor(t *testing.T) {
	for pct, want := range map[int]int8{0: 0, 5: 0, 6: 1, 25: 1, 50: 2, 51: 3, 75: 3, 76: 4, 100: 4} {
		if got := SpriteFor(pct); got != want {
			t.Errorf("SpriteFor(%d) = %d, want %d", pct, got, want)
		}
	}
}

func TestStoreConcurrentWriters(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.SetBattery(i*10, i%2 == 0)
			_ = store.Snapshot()
		}(i)
	}
	wg.Wait()
}
