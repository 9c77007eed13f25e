package events

import (
	"context"
	"log"
	"sync"
)

// HandlerFunc consumes one event. Panics and errors stay inside the
// dispatcher; they never reach the request that published the event.
type HandlerFunc func(ctx context.Context, event Event)

// Dispatcher is the in-process Publisher: a bounded queue drained by
// worker goroutines. Close drains the queue before returning so queued
// events are not dropped by process shutdown.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc

	queue chan Event
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// NewDispatcher creates a dispatcher with the given queue capacity and
// worker count and starts its workers.
func NewDispatcher(queueSize, workers int) *Dispatcher {
	if queueSize < 1 {
		queueSize = 64
	}
	if workers < 1 {
		workers = 1
	}

	d := &Dispatcher{
		handlers: make(map[string][]HandlerFunc),
		queue:    make(chan Event, queueSize),
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}
	return d
}

// Subscribe registers a handler for a topic. Not safe to call after the
// first Publish from another goroutine unless externally ordered; wiring
// happens at startup.
func (d *Dispatcher) Subscribe(topic string, handler HandlerFunc) {
	d.mu.Lock()
	d.handlers[topic] = append(d.handlers[topic], handler)
	d.mu.Unlock()
}

// Publish enqueues the event without blocking the caller. If the queue is
// full the event is dropped with a log line rather than stalling the
// request path.
func (d *Dispatcher) Publish(ctx context.Context, event Event) {
	select {
	case d.queue <- event:
	default:
		log.Printf("events: queue full, dropping %s", event.Topic)
	}
}

// Close stops accepting events and blocks until queued events have been
// handled.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for event := range d.queue {
		d.mu.RLock()
		handlers := d.handlers[event.Topic]
		d.mu.RUnlock()

		for _, handler := range handlers {
			d.invoke(handler, event)
		}
	}
}

func (d *Dispatcher) invoke(handler HandlerFunc, event Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("events: handler for %s panicked: %v", event.Topic, r)
		}
	}()
	handler(context.Background(), event)
}
