package prefs

import "sync"

// subscribers keeps callbacks in subscription order. Notification walks a
// snapshot, so callbacks may subscribe or unsubscribe while it runs
// without any other subscriber being skipped or called twice.
type subscribers[F any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []*subscription[F]
}

type subscription[F any] struct {
	id     uint64
	fn     F
	active bool
}

func (s *subscribers[F]) add(fn F) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	sub := &subscription[F]{id: s.nextID, fn: fn, active: true}
	s.subs = append(s.subs, sub)

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(sub.id) })
	}
}

func (s *subscribers[F]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub.id == id {
			sub.active = false
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *subscribers[F]) each(call func(F)) {
	s.mu.Lock()
	snapshot := append([]*subscription[F](nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range snapshot {
		s.mu.Lock()
		active := sub.active
		s.mu.Unlock()
		if active {
			call(sub.fn)
		}
	}
}

func (s *subscribers[F]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
