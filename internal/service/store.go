package service

import (
	"sync"
	"sync/atomic"

	"github.com/jask/signboard/internal/signage"
)

// Store is the single shared snapshot cell. Only the Aggregator writes to it;
// every write replaces the whole snapshot.
type Store struct {
	cur atomic.Pointer[signage.Snapshot]

	writeMu sync.Mutex

	subMu sync.Mutex
	subs  map[int]chan signage.Snapshot
	next  int
}

func NewStore() *Store {
	s := &Store{subs: map[int]chan signage.Snapshot{}}
	initial := signage.InitialSnapshot()
	s.cur.Store(&initial)
	return s
}

// Load returns the current snapshot.
func (s *Store) Load() signage.Snapshot {
	return *s.cur.Load()
}

// Subscribe returns a channel that always holds the most recent snapshot not
// yet received. Older undelivered snapshots are dropped. The cancel func closes
// the channel.
func (s *Store) Subscribe() (<-chan signage.Snapshot, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.next
	s.next++
	ch := make(chan signage.Snapshot, 1)
	s.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// replace publishes next as the current snapshot.
func (s *Store) replace(next signage.Snapshot) signage.Snapshot {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.cur.Store(&next)
	s.publish(next)
	return next
}

// update applies fn to the current snapshot and publishes the result.
func (s *Store) update(fn func(prev signage.Snapshot) signage.Snapshot) signage.Snapshot {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	next := fn(*s.cur.Load())
	s.cur.Store(&next)
	s.publish(next)
	return next
}

func (s *Store) publish(snap signage.Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// drop the stale value, then retry once
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
