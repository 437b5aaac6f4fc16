package repository

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryStoreLoadAbsentKey(t *testing.T) {
	s := NewMemoryDocStore()
	doc, err := s.Load(context.Background(), OrdersKey)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc != nil {
		t.Fatalf("absent key returned %q, want nil", doc)
	}
}

func TestMemoryStoreWatchClosesOnCancel(t *testing.T) {
	s := NewMemoryDocStore()
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := s.Watch(ctx, OrdersKey)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel, got a signal")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed after cancellation")
	}
}

// Concurrent writes racing watcher cancellations must never send on a
// channel the cleanup just closed.
func TestMemoryStoreWatchCancelDuringWrites(t *testing.T) {
	s := NewMemoryDocStore()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					_ = s.Save(context.Background(), OrdersKey, []byte(`[]`))
				}
			}
		}()
	}

	for i := 0; i < 2000; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		if _, err := s.Watch(ctx, OrdersKey); err != nil {
			cancel()
			t.Fatalf("Watch: %v", err)
		}
		cancel()
	}

	close(stop)
	wg.Wait()
}
