// Package theme manages the site's light/dark mode: initial resolution,
// toggling, persistence, and change notification.
package theme

import (
	"log"
	"sync"
)

// Mode is one of the two supported color schemes.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == Light || m == Dark
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Store persists the selected mode across runs.
type Store interface {
	// Get returns the persisted mode and whether one was stored.
	Get() (Mode, bool, error)
	// Set persists the mode.
	Set(Mode) error
}

// SystemSignal reports the OS-level color-scheme preference and whether one
// could be determined.
type SystemSignal func() (Mode, bool)

// Controller holds the current mode and notifies subscribers on change.
type Controller struct {
	mu    sync.Mutex
	mode  Mode
	store Store
	next  int
	subs  map[int]func(Mode)
}

// NewController resolves the initial mode and persists it. Resolution order:
// stored preference, then the system signal, then dark.
func NewController(store Store, system SystemSignal) *Controller {
	c := &Controller{
		store: store,
		subs:  make(map[int]func(Mode)),
	}
	c.mode = resolve(store, system)
	c.persist(c.mode)
	return c
}

func resolve(store Store, system SystemSignal) Mode {
	if store != nil {
		stored, ok, err := store.Get()
		if err != nil {
			log.Printf("theme: reading stored preference: %v", err)
		} else if ok && stored.Valid() {
			return stored
		}
	}
	if system != nil {
		if m, ok := system(); ok && m.Valid() {
			return m
		}
	}
	return Dark
}

// Current returns the active mode.
func (c *Controller) Current() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Toggle flips the mode unconditionally, persists it, and notifies
// subscribers. It returns the new mode.
func (c *Controller) Toggle() Mode {
	c.mu.Lock()
	c.mode = c.mode.Opposite()
	mode := c.mode
	subs := c.snapshot()
	c.mu.Unlock()

	c.persist(mode)
	for _, fn := range subs {
		fn(mode)
	}
	return mode
}

// Set applies a specific mode. Invalid modes are ignored; setting the
// current mode is a no-op.
func (c *Controller) Set(mode Mode) {
	if !mode.Valid() {
		return
	}
	c.mu.Lock()
	if c.mode == mode {
		c.mu.Unlock()
		return
	}
	c.mode = mode
	subs := c.snapshot()
	c.mu.Unlock()

	c.persist(mode)
	for _, fn := range subs {
		fn(mode)
	}
}

// Subscribe registers fn to run on every mode change. The returned function
// cancels the subscription.
func (c *Controller) Subscribe(fn func(Mode)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.next
	c.next++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller) snapshot() []func(Mode) {
	subs := make([]func(Mode), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return subs
}

func (c *Controller) persist(mode Mode) {
	if c.store == nil {
		return
	}
	if err := c.store.Set(mode); err != nil {
		log.Printf("theme: persisting %s: %v", mode, err)
	}
}
