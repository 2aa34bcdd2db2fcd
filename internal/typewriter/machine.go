// Package typewriter animates a list of phrases one rune at a time.
package typewriter

import (
	"errors"
	"time"
)

var (
	ErrNoStrings    = errors.New("typewriter: no strings to type")
	ErrInvalidSpeed = errors.New("typewriter: type and back speeds must be positive")
)

// Options configures the animation. Speeds are per-rune delays.
type Options struct {
	Strings        []string      `koanf:"strings"`
	TypeSpeed      time.Duration `koanf:"type_speed"`
	BackSpeed      time.Duration `koanf:"back_speed"`
	BackDelay      time.Duration `koanf:"back_delay"`
	StartDelay     time.Duration `koanf:"start_delay"`
	Loop           bool          `koanf:"loop"`
	SmartBackspace bool          `koanf:"smart_backspace"`
}

// DefaultOptions mirrors the timings of the hero heading.
func DefaultOptions() Options {
	return Options{
		TypeSpeed: 50 * time.Millisecond,
		BackSpeed: 40 * time.Millisecond,
		BackDelay: 700 * time.Millisecond,
		Loop:      true,
	}
}

func (o Options) Validate() error {
	if len(o.Strings) == 0 {
		return ErrNoStrings
	}
	if o.TypeSpeed <= 0 || o.BackSpeed <= 0 {
		return ErrInvalidSpeed
	}
	if o.BackDelay < 0 || o.StartDelay < 0 {
		return errors.New("typewriter: negative delay")
	}
	return nil
}

// Machine is the frame-by-frame state of the animation. It is not safe for
// concurrent use; the Driver owns one per animation.
type Machine struct {
	opts     Options
	phrases  [][]rune
	idx      int
	pos      int
	deleting bool
	done     bool
}

func NewMachine(opts Options) (*Machine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	phrases := make([][]rune, len(opts.Strings))
	for i, s := range opts.Strings {
		phrases[i] = []rune(s)
	}
	return &Machine{opts: opts, phrases: phrases}, nil
}

// Text is what is currently displayed.
func (m *Machine) Text() string {
	return string(m.phrases[m.idx][:m.pos])
}

func (m *Machine) Done() bool { return m.done }

// Step applies one frame and returns the delay before the next one. ok is
// false once the animation has finished, which only happens without Loop.
func (m *Machine) Step() (next time.Duration, ok bool) {
	if m.done {
		return 0, false
	}
	cur := m.phrases[m.idx]

	if !m.deleting {
		if m.pos < len(cur) {
			m.pos++
		}
		if m.pos < len(cur) {
			return m.opts.TypeSpeed, true
		}
		if !m.opts.Loop && m.idx == len(m.phrases)-1 {
			m.done = true
			return 0, false
		}
		m.deleting = true
		return m.opts.BackDelay, true
	}

	stop := m.stopAt()
	if m.pos > stop {
		m.pos--
	}
	if m.pos > stop {
		return m.opts.BackSpeed, true
	}
	m.deleting = false
	m.idx = (m.idx + 1) % len(m.phrases)
	return m.opts.TypeSpeed, true
}

// stopAt is how far deletion goes before moving to the next phrase.
func (m *Machine) stopAt() int {
	if !m.opts.SmartBackspace {
		return 0
	}
	cur := m.phrases[m.idx]
	next := m.phrases[(m.idx+1)%len(m.phrases)]
	n := 0
	for n < len(cur) && n < len(next) && cur[n] == next[n] {
		n++
	}
	return n
}
