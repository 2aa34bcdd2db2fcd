package live

import (
	"sync"

	"github.com/Ahmed-3del/portfolio/internal/section"
)

// Viewport is a section.Window whose geometry is pushed by the browser.
type Viewport struct {
	mu        sync.Mutex
	height    float64
	bounds    map[section.ID]section.Bounds
	listeners map[int]func()
	next      int
}

func NewViewport() *Viewport {
	return &Viewport{
		bounds:    map[section.ID]section.Bounds{},
		listeners: map[int]func(){},
	}
}

func (v *Viewport) Height() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.height
}

func (v *Viewport) Bounds(id section.ID) (section.Bounds, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	b, ok := v.bounds[id]
	return b, ok
}

func (v *Viewport) OnScroll(fn func()) func() {
	v.mu.Lock()
	key := v.next
	v.next++
	v.listeners[key] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.listeners, key)
		v.mu.Unlock()
	}
}

// Scroll replaces the geometry with a new snapshot and notifies listeners.
// Entries for unknown sections are dropped; sections absent from the
// snapshot are treated as missing elements.
func (v *Viewport) Scroll(height float64, sections map[string]section.Bounds) {
	v.mu.Lock()
	v.height = height
	v.bounds = make(map[section.ID]section.Bounds, len(sections))
	for name, b := range sections {
		id, err := section.Parse(name)
		if err != nil {
			continue
		}
		v.bounds[id] = b
	}
	fns := make([]func(), 0, len(v.listeners))
	for _, fn := range v.listeners {
		fns = append(fns, fn)
	}
	v.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
