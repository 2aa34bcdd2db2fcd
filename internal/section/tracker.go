package section

import "sync"

// Bounds is an element's vertical extent relative to the top of the viewport.
type Bounds struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Straddles reports whether b spans the horizontal line at y.
func (b Bounds) Straddles(y float64) bool {
	return b.Top < y && b.Bottom > y
}

// Window is the viewport the tracker reads geometry from.
type Window interface {
	Height() float64
	// Bounds returns false when no element exists for id.
	Bounds(id ID) (Bounds, bool)
	// OnScroll registers fn for scroll events and returns its deregistration.
	OnScroll(fn func()) (remove func())
}

// Resolve returns the section straddling the viewport midpoint. When several
// sections qualify the last one in order wins; when none does, current is
// returned unchanged.
func Resolve(current ID, w Window, order []ID) ID {
	mid := w.Height() / 2
	active := current
	for _, id := range order {
		b, ok := w.Bounds(id)
		if !ok {
			continue
		}
		if b.Straddles(mid) {
			active = id
		}
	}
	return active
}

// Tracker keeps an active-section value in sync with a Window's scroll position.
type Tracker struct {
	order  []ID
	get    func() ID
	update func(ID)
}

// NewTracker builds a tracker over order. get reads the current value and
// update is the single writer callback.
func NewTracker(order []ID, get func() ID, update func(ID)) *Tracker {
	if len(order) == 0 {
		order = Order
	}
	return &Tracker{order: order, get: get, update: update}
}

// ForState wires a tracker to s.
func ForState(s *State, onChange func(ID)) *Tracker {
	return NewTracker(Order, s.Active, func(id ID) {
		changed, err := s.Set(id)
		if err == nil && changed && onChange != nil {
			onChange(id)
		}
	})
}

// Mount subscribes to w's scroll events, evaluates once right away, and
// returns the unmount func. Calling unmount more than once is a no-op.
func (t *Tracker) Mount(w Window) (unmount func()) {
	var (
		mu      sync.Mutex
		mounted = true
	)
	check := func() {
		mu.Lock()
		defer mu.Unlock()
		if !mounted {
			return
		}
		t.update(Resolve(t.get(), w, t.order))
	}
	remove := w.OnScroll(check)
	check()

	var once sync.Once
	return func() {
		once.Do(func() {
			remove()
			mu.Lock()
			mounted = false
			mu.Unlock()
		})
	}
}
