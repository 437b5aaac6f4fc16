package repository

import (
	"context"
	"sync"
)

// MemoryDocStore is an in-process DocStore used by tests and by local
// runs without Redis. It keeps every document in a map and fans change
// signals out to registered watchers.
type MemoryDocStore struct {
	mu       sync.Mutex
	docs     map[string][]byte
	watchers map[string][]chan struct{}
}

var _ DocStore = (*MemoryDocStore)(nil)

func NewMemoryDocStore() *MemoryDocStore {
	return &MemoryDocStore{
		docs:     make(map[string][]byte),
		watchers: make(map[string][]chan struct{}),
	}
}

func (s *MemoryDocStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(doc))
	copy(out, doc)
	return out, nil
}

func (s *MemoryDocStore) Save(_ context.Context, key string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(doc))
	copy(cp, doc)
	s.docs[key] = cp

	// Non-blocking notify: a watcher that has not drained its previous
	// signal still learns that something changed. The sends stay under
	// the mutex so they cannot hit a channel that a cancelled watcher is
	// closing at the same moment.
	for _, ch := range s.watchers[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (s *MemoryDocStore) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.watchers[key] = append(s.watchers[key], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		ws := s.watchers[key]
		for i, w := range ws {
			if w == ch {
				s.watchers[key] = append(ws[:i], ws[i+1:]...)
				break
			}
		}
		// Closed under the same mutex Save sends under, so no send can
		// land after the close.
		close(ch)
	}()
	return ch, nil
}
