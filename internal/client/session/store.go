package session

import "sync"

// Store holds the current State. It is safe for concurrent use.
//
// Every Replace bumps the version and then calls subscribers in the order
// they registered. Callbacks run outside the lock, so a subscriber may read
// the store or trigger further replacements.
type Store struct {
	mu      sync.Mutex
	state   State
	version uint64

	nextID int
	subs   []subscriber
}

type subscriber struct {
	id int
	fn func(State)
}

// NewStore returns a store in the Pending state.
func NewStore() *Store {
	return &Store{state: Pending()}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Version counts replacements since creation.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Replace swaps in st and notifies subscribers. Concurrent writers are
// serialized; the last one wins.
func (s *Store) Replace(st State) {
	s.mu.Lock()
	s.state = st
	s.version++
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(st)
	}
}

// Subscribe registers fn for future replacements and returns a function that
// removes it. Calling the returned function more than once is harmless.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}
