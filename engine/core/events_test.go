package core

import (
	"sync"
	"testing"
)

func TestEventFireDispatchesInRegistrationOrder(t *testing.T) {
	EventSystemInitialize()
	defer EventSystemShutdown()

	var order []int
	EventRegister(EVENT_CODE_SCENE_CHANGED, func(EventContext) { order = append(order, 1) })
	EventRegister(EVENT_CODE_SCENE_CHANGED, func(EventContext) { order = append(order, 2) })

	EventFire(EventContext{Type: EVENT_CODE_SCENE_CHANGED})

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("expected handlers in registration order, got %v", order)
	}
}

func TestEventEnqueueDefersUntilProcessed(t *testing.T) {
	EventSystemInitialize()
	defer EventSystemShutdown()

	fired := 0
	EventRegister(EVENT_CODE_SCENE_FILE_CHANGED, func(EventContext) { fired++ })

	EventEnqueue(EventContext{Type: EVENT_CODE_SCENE_FILE_CHANGED})
	if fired != 0 {
		t.Fatalf("enqueued event fired before ProcessEvents")
	}
	ProcessEvents()
	if fired != 1 {
		t.Fatalf("expected 1 deferred event after ProcessEvents, got %d", fired)
	}
}

// Enqueue from several goroutines while the tick side drains, the way
// the store watcher posts reload events during a running frame loop.
func TestEventEnqueueConcurrentWithProcessing(t *testing.T) {
	EventSystemInitialize()
	defer EventSystemShutdown()

	received := 0
	EventRegister(EVENT_CODE_SCENE_FILE_CHANGED, func(EventContext) { received++ })

	const producers = 4
	const perProducer = 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				EventEnqueue(EventContext{Type: EVENT_CODE_SCENE_FILE_CHANGED})
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	draining := true
	for draining {
		ProcessEvents()
		select {
		case <-done:
			draining = false
		default:
		}
	}
	ProcessEvents()

	if received != producers*perProducer {
		t.Fatalf("expected %d events delivered, got %d", producers*perProducer, received)
	}
}
