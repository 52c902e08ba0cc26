package sprite

import (
	"sync"

	"github.com/bodgit/packmaker/tint"
	"github.com/google/uuid"
)

type subscriber struct {
	id int
	fn func(*Layer)
}

// Stack is an insertion-ordered collection of layers drawn from a single
// sheet. Rendering only needs a read lock so the same stack can be drawn
// into several surfaces at once.
type Stack struct {
	mu     sync.RWMutex
	sheet  *Sheet
	layers []*Layer

	smu         sync.Mutex
	subscribers []subscriber
	nextID      int
	slot        func()
}

// NewStack returns an empty stack drawing tiles from sheet
func NewStack(sheet *Sheet) *Stack {
	return &Stack{
		sheet: sheet,
	}
}

// Sheet returns the sheet the stack draws from
func (s *Stack) Sheet() *Sheet {
	return s.sheet
}

func (s *Stack) add(index int, removable bool) *Layer {
	l := &Layer{
		id:        uuid.New(),
		index:     index,
		removable: removable,
		sheet:     s.sheet,
		mu:        &s.mu,
		tint:      tint.White,
		notify:    s.notify,
	}

	s.mu.Lock()
	s.layers = append(s.layers, l)
	s.mu.Unlock()

	return l
}

// AddBase appends a fixed layer that can't be removed
func (s *Stack) AddBase(index int) *Layer {
	return s.add(index, false)
}

// Add appends an overlay layer on top of the stack. No notification is sent,
// callers re-render or subscribe as needed.
func (s *Stack) Add(index int) *Layer {
	return s.add(index, true)
}

// Remove deletes the first overlay layer with the given identity and
// reports whether one was found. Unknown identities and base layers are
// silently ignored. A removed layer no longer notifies the stack's
// subscribers.
func (s *Stack) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	var removed *Layer
	for i, l := range s.layers {
		if l.id == id && l.removable {
			removed = l
			removed.notify = nil
			s.layers = append(s.layers[:i:i], s.layers[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if removed == nil {
		return false
	}
	s.notify(removed)
	return true
}

// Layer returns the layer with the given identity, or nil
func (s *Stack) Layer(id uuid.UUID) *Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.layers {
		if l.id == id {
			return l
		}
	}
	return nil
}

// Layers returns a copy of the layers in drawing order
func (s *Stack) Layers() []*Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Layer(nil), s.layers...)
}

// Len returns the number of layers
func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.layers)
}

// Render draws every layer in order onto surface, each at the same size and
// offset. It returns once the last layer has been drawn.
func (s *Stack) Render(surface Surface, size, offset int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.layers {
		l.render(surface, size, offset)
	}
}

// Subscribe registers fn to be called with the affected layer whenever a
// layer's tint changes or a layer is removed. The returned function
// unregisters it.
func (s *Stack) Subscribe(fn func(*Layer)) func() {
	s.smu.Lock()
	defer s.smu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.smu.Lock()
		defer s.smu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// SetUpdateCallback installs fn in a single callback slot, replacing
// whatever was registered there before. A nil fn empties the slot. Other
// subscribers are unaffected.
func (s *Stack) SetUpdateCallback(fn func()) {
	s.smu.Lock()
	cancel := s.slot
	s.slot = nil
	s.smu.Unlock()

	if cancel != nil {
		cancel()
	}
	if fn == nil {
		return
	}

	cancel = s.Subscribe(func(*Layer) { fn() })

	s.smu.Lock()
	s.slot = cancel
	s.smu.Unlock()
}

func (s *Stack) notify(l *Layer) {
	s.smu.Lock()
	subscribers := append([]subscriber(nil), s.subscribers...)
	s.smu.Unlock()

	for _, sub := range subscribers {
		sub.fn(l)
	}
}
