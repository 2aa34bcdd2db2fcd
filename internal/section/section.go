// Package section tracks which page section sits under the middle of the viewport.
package section

import (
	"errors"
	"fmt"
	"sync"
)

// ID names one of the fixed page sections.
type ID string

const (
	Home     ID = "home"
	About    ID = "about"
	Projects ID = "projects"
	Contact  ID = "contact"
)

// Order is the rendering and iteration order of the sections.
var Order = []ID{Home, About, Projects, Contact}

var ErrUnknown = errors.New("unknown section")

// Parse returns the ID for a known section label.
func Parse(s string) (ID, error) {
	for _, id := range Order {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknown, s)
}

func (id ID) Known() bool {
	_, err := Parse(string(id))
	return err == nil
}

// State holds the active section. It starts at the first section in Order
// and only ever holds a known ID.
type State struct {
	mu     sync.RWMutex
	active ID
}

func NewState() *State {
	return &State{active: Order[0]}
}

func (s *State) Active() ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Set stores id and reports whether the active section changed.
func (s *State) Set(id ID) (bool, error) {
	if !id.Known() {
		return false, fmt.Errorf("%w: %q", ErrUnknown, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == id {
		return false, nil
	}
	s.active = id
	return true, nil
}
