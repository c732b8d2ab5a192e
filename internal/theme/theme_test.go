package theme

import (
	"errors"
	"testing"

	"github.com/catpaladin/inkwell/internal/db"
)

type memStore struct {
	mode   Mode
	ok     bool
	getErr error
	setErr error
	sets   int
}

func (s *memStore) Get() (Mode, bool, error) { return s.mode, s.ok, s.getErr }

func (s *memStore) Set(m Mode) error {
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.mode, s.ok = m, true
	return nil
}

func noSignal() (Mode, bool) { return "", false }

func lightSignal() (Mode, bool) { return Light, true }

func TestResolutionOrder(t *testing.T) {
	tests := []struct {
		name   string
		store  *memStore
		system SystemSignal
		want   Mode
	}{
		{"stored wins over system", &memStore{mode: Light, ok: true}, func() (Mode, bool) { return Dark, true }, Light},
		{"system when nothing stored", &memStore{}, lightSignal, Light},
		{"dark default", &memStore{}, noSignal, Dark},
		{"store error falls through", &memStore{getErr: errors.New("locked")}, lightSignal, Light},
		{"garbage stored value ignored", &memStore{mode: "sepia", ok: true}, noSignal, Dark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(tt.store, tt.system)
			if got := c.Current(); got != tt.want {
				t.Errorf("resolved mode = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestToggleNegatesAndPersists(t *testing.T) {
	store := &memStore{}
	c := NewController(store, noSignal)

	before := c.Current()
	after := c.Toggle()

	if after != before.Opposite() {
		t.Errorf("toggle: %s -> %s, want %s", before, after, before.Opposite())
	}
	if store.mode != after {
		t.Errorf("persisted mode = %s, want %s", store.mode, after)
	}
	if c.Toggle() != before {
		t.Error("double toggle should restore the original mode")
	}
}

func TestInitialResolutionPersists(t *testing.T) {
	store := &memStore{}
	NewController(store, lightSignal)

	if !store.ok || store.mode != Light {
		t.Errorf("initial apply should persist, store = %+v", store)
	}
}

func TestSubscribers(t *testing.T) {
	c := NewController(&memStore{}, noSignal)

	var seen []Mode
	cancel := c.Subscribe(func(m Mode) { seen = append(seen, m) })

	c.Toggle()
	c.Set(Dark)
	c.Set(Dark) // no-op, already dark
	cancel()
	c.Toggle()

	want := []Mode{Light, Dark}
	if len(seen) != len(want) {
		t.Fatalf("notifications = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notification[%d] = %s, want %s", i, seen[i], want[i])
		}
	}
}

func TestSetIgnoresInvalidMode(t *testing.T) {
	store := &memStore{}
	c := NewController(store, noSignal)
	sets := store.sets

	c.Set("sepia")
	if c.Current() != Dark {
		t.Errorf("mode = %s, want dark", c.Current())
	}
	if store.sets != sets {
		t.Error("invalid mode should not persist")
	}
}

func TestTogglePersistFailureKeepsMode(t *testing.T) {
	store := &memStore{setErr: errors.New("disk full")}
	c := NewController(store, noSignal)

	after := c.Toggle()
	if c.Current() != after {
		t.Error("in-memory mode should survive a persist failure")
	}
}

func TestDBStoreRoundTrip(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory error: %v", err)
	}
	defer database.Close()

	store := NewDBStore(database)

	if _, ok, err := store.Get(); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v, want no value", ok, err)
	}

	if err := store.Set(Light); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	mode, ok, err := store.Get()
	if err != nil || !ok || mode != Light {
		t.Errorf("Get = (%s, %v, %v), want (light, true, nil)", mode, ok, err)
	}

	if err := store.Set(Dark); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if mode, _, _ := store.Get(); mode != Dark {
		t.Errorf("overwrite: got %s, want dark", mode)
	}
}
