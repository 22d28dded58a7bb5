package notify

import (
	"sync"
	"sync/atomic"
)

// Signal is a pathless set of observers. The zero value is ready to use.
type Signal struct {
	mu     sync.Mutex
	subs   atomic.Pointer[[]subscription]
	nextID uint64
}

// Subscribe registers cb. A nil callback is ignored.
func (s *Signal) Subscribe(cb Callback) Unsubscribe {
	if cb == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	sub := subscription{id: s.nextID, cb: cb}
	old := s.load()
	next := make([]subscription, len(old), len(old)+1)
	copy(next, old)
	next = append(next, sub)
	s.subs.Store(&next)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(sub.id) })
	}
}

func (s *Signal) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.load()
	next := make([]subscription, 0, len(old))
	for _, sub := range old {
		if sub.id != id {
			next = append(next, sub)
		}
	}
	s.subs.Store(&next)
}

// Notify invokes every observer and returns their number
func (s *Signal) Notify() int {
	subs := s.load()
	for _, sub := range subs {
		sub.cb()
	}
	callbacksInvoked.Add(len(subs))
	return len(subs)
}

// Len returns the number of observers
func (s *Signal) Len() int {
	return len(s.load())
}

func (s *Signal) load() []subscription {
	if p := s.subs.Load(); p != nil {
		return *p
	}
	return nil
}
