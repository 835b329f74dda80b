package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerialDispatcherDo(t *testing.T) {
	t.Run("no lost updates under concurrent callers", func(t *testing.T) {
		d := NewSerialDispatcher()
		defer d.Stop()

		// counter is mutated without any synchronization of its own; the
		// dispatcher is the only thing keeping this race-free.
		var counter int
		var wg sync.WaitGroup
		const callers, perCaller = 8, 50

		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < perCaller; j++ {
					d.Do(func() { counter++ })
				}
			}()
		}
		wg.Wait()

		d.Do(func() {})
		assert.Equal(t, callers*perCaller, counter)
	})

	t.Run("waits for fn to finish", func(t *testing.T) {
		d := NewSerialDispatcher()
		defer d.Stop()

		ran := false
		d.Do(func() { ran = true })

		assert.True(t, ran)
	})

	t.Run("returns without running after stop", func(t *testing.T) {
		d := NewSerialDispatcher()
		d.Stop()

		ran := false
		d.Do(func() { ran = true })

		assert.False(t, ran)
	})
}

func TestSerialDispatcherPost(t *testing.T) {
	t.Run("runs in arrival order", func(t *testing.T) {
		d := NewSerialDispatcher()
		defer d.Stop()

		var order []int
		for i := 0; i < 10; i++ {
			i := i
			d.Post(func() { order = append(order, i) })
		}

		// A Do behind the Posts acts as a barrier.
		d.Do(func() {})

		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
	})

	t.Run("accepted work is drained on stop", func(t *testing.T) {
		d := NewSerialDispatcher()

		var counter int
		for i := 0; i < 5; i++ {
			d.Post(func() { counter++ })
		}
		d.Stop()

		assert.Equal(t, 5, counter)
	})
}

func TestSerialDispatcherStop(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		d := NewSerialDispatcher()

		assert.NotPanics(t, func() {
			d.Stop()
			d.Stop()
		})
	})
}
