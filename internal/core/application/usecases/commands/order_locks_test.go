package commands_test

import (
	"sync"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestOrderLocks_SerializesSameOrder(t *testing.T) {
	locks := commands.NewOrderLocks()
	id := kernel.NewUUID()

	const workers = 16
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()

			unlock := locks.Lock(id)
			defer unlock()

			// Unsynchronized read-modify-write; only the lock protects it.
			v := counter
			time.Sleep(time.Millisecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestOrderLocks_IndependentOrdersDoNotBlock(t *testing.T) {
	locks := commands.NewOrderLocks()

	unlockA := locks.Lock(kernel.NewUUID())
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock(kernel.NewUUID())
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different order blocked")
	}
}

func TestOrderLocks_ReacquireAfterUnlock(t *testing.T) {
	locks := commands.NewOrderLocks()
	id := kernel.NewUUID()

	unlock := locks.Lock(id)
	unlock()

	done := make(chan struct{})
	go func() {
		unlock := locks.Lock(id)
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock was not released")
	}
}
