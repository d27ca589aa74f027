package uid

import (
	"sync"
	"testing"
)

func TestNextIncreases(t *testing.T) {
	a := New()
	prev := a.Next()
	if prev != 0 {
		t.Errorf("first id: got %d, want 0", prev)
	}
	for i := 0; i < 100; i++ {
		id := a.Next()
		if id <= prev {
			t.Fatalf("id %d not greater than previous %d", id, prev)
		}
		prev = id
	}
}

func TestNewFrom(t *testing.T) {
	a := NewFrom(1000)
	if got := a.Peek(); got != 1000 {
		t.Errorf("Peek: got %d, want 1000", got)
	}
	if got := a.Next(); got != 1000 {
		t.Errorf("Next: got %d, want 1000", got)
	}
	if got := a.Peek(); got != 1001 {
		t.Errorf("Peek after Next: got %d, want 1001", got)
	}
}

func TestIndependentSpaces(t *testing.T) {
	groups, members := New(), New()
	for i := 0; i < 5; i++ {
		members.Next()
	}
	if got := groups.Next(); got != 0 {
		t.Errorf("group allocator perturbed by member allocator: got %d", got)
	}
}

func TestConcurrentUnique(t *testing.T) {
	const workers, perWorker = 8, 1000

	a := New()
	ids := make(chan int, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids <- a.Next()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, workers*perWorker)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != workers*perWorker {
		t.Errorf("got %d unique ids, want %d", len(seen), workers*perWorker)
	}
}
