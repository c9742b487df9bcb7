package config

import "sync"

// Store holds the in-memory settings and notifies same-process observers
// when they change, so multiple open views stay in sync. Reads and writes
// are synchronous; persistence goes through SaveSettings.
type Store struct {
	mu          sync.Mutex
	settings    Settings
	nextSubID   int
	subscribers map[int]func(Settings)
}

// NewStore creates a Store seeded with the given settings
func NewStore(settings *Settings) *Store {
	s := Settings{}
	if settings != nil {
		s = *settings
	}
	return &Store{
		settings:    s,
		subscribers: make(map[int]func(Settings)),
	}
}

// Current returns a copy of the current settings
func (s *Store) Current() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Update applies the mutation, persists the result, and notifies
// subscribers. Subscribers run on the caller's goroutine.
func (s *Store) Update(mutate func(*Settings)) error {
	s.mu.Lock()
	updated := s.settings
	mutate(&updated)

	if err := SaveSettings(&updated); err != nil {
		s.mu.Unlock()
		return err
	}

	s.settings = updated
	subs := make([]func(Settings), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(updated)
	}
	return nil
}

// Subscribe registers a change observer and returns an unsubscribe func
func (s *Store) Subscribe(fn func(Settings)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}
