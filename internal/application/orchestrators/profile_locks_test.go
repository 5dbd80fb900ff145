package orchestrators

import (
	"sync"
	"testing"
)

// TestProfileLocks_Serializes tests mutual exclusion per key and cleanup.
func TestProfileLocks_Serializes(t *testing.T) {
	var locks ProfileLocks
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("p1")
			defer unlock()
			v := counter
			counter = v + 1
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
	if locks.Len() != 0 {
		t.Errorf("Len = %d, want 0", locks.Len())
	}
}

// TestProfileLocks_IndependentKeys tests that different keys do not block each other.
func TestProfileLocks_IndependentKeys(t *testing.T) {
	var locks ProfileLocks
	unlockA := locks.Lock("a")
	unlockB := locks.Lock("b")
	if locks.Len() != 2 {
		t.Errorf("Len = %d, want 2", locks.Len())
	}
	unlockA()
	unlockB()
	if locks.Len() != 0 {
		t.Errorf("Len = %d, want 0", locks.Len())
	}

	noop := lockProfile(nil, "a")
	noop()
}
