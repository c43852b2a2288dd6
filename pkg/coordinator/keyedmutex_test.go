package coordinator

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	k := newKeyedMutex()
	var mu sync.Mutex
	var order []int
	active, maxActive := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("job-1")
			defer unlock()
			mu.Lock()
			order = append(order, i)
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, order, 5)
	assert.Equal(t, 1, maxActive, "at most one holder of the same key at a time")
}

func TestKeyedMutexAllowsDifferentKeysConcurrently(t *testing.T) {
	k := newKeyedMutex()
	start := make(chan struct{})
	held := make(chan struct{}, 2)
	done := make(chan struct{}, 2)

	go func() {
		unlock := k.Lock("a")
		defer unlock()
		held <- struct{}{}
		<-start
		done <- struct{}{}
	}()
	go func() {
		unlock := k.Lock("b")
		defer unlock()
		held <- struct{}{}
		<-start
		done <- struct{}{}
	}()

	// Both locks must be held at the same time before either is released.
	for i := 0; i < 2; i++ {
		select {
		case <-held:
		case <-time.After(time.Second):
			t.Fatal("locks on different keys were not held concurrently")
		}
	}
	close(start)
	<-done
	<-done
}

func TestKeyedMutexReleasesEmptyEntries(t *testing.T) {
	k := newKeyedMutex()
	unlock := k.Lock("job-1")
	unlock()

	k.mu.Lock()
	_, exists := k.locks["job-1"]
	k.mu.Unlock()

	assert.False(t, exists)
}
