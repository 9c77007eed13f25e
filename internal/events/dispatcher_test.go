package events

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewDispatcher(16, 2)

	var created, cancelled atomic.Int64
	d.Subscribe(TopicAppointmentCreated, func(ctx context.Context, e Event) {
		created.Add(1)
	})
	d.Subscribe(TopicAppointmentCancelled, func(ctx context.Context, e Event) {
		cancelled.Add(1)
	})

	for i := 0; i < 5; i++ {
		d.Publish(context.Background(), Event{Topic: TopicAppointmentCreated})
	}
	d.Publish(context.Background(), Event{Topic: TopicAppointmentCancelled})

	d.Close()

	assert.Equal(t, int64(5), created.Load())
	assert.Equal(t, int64(1), cancelled.Load())
}

func TestDispatcherCloseDrainsQueue(t *testing.T) {
	d := NewDispatcher(128, 1)

	var handled atomic.Int64
	d.Subscribe(TopicVideoProgressUpdated, func(ctx context.Context, e Event) {
		handled.Add(1)
	})

	for i := 0; i < 100; i++ {
		d.Publish(context.Background(), Event{Topic: TopicVideoProgressUpdated})
	}

	d.Close()
	assert.Equal(t, int64(100), handled.Load(), "Close must drain queued events")
}

func TestDispatcherHandlerPanicDoesNotKillWorker(t *testing.T) {
	d := NewDispatcher(16, 1)

	var after atomic.Int64
	d.Subscribe(TopicAppointmentCreated, func(ctx context.Context, e Event) {
		panic("boom")
	})
	d.Subscribe(TopicAppointmentCompleted, func(ctx context.Context, e Event) {
		after.Add(1)
	})

	d.Publish(context.Background(), Event{Topic: TopicAppointmentCreated})
	d.Publish(context.Background(), Event{Topic: TopicAppointmentCompleted})

	d.Close()
	assert.Equal(t, int64(1), after.Load())
}

func TestDispatcherUnknownTopicIgnored(t *testing.T) {
	d := NewDispatcher(4, 1)
	d.Publish(context.Background(), Event{Topic: "nobody.listens"})
	d.Close()
}

func TestDispatcherConcurrentPublish(t *testing.T) {
	d := NewDispatcher(1024, 4)

	var handled atomic.Int64
	d.Subscribe(TopicAppointmentCreated, func(ctx context.Context, e Event) {
		handled.Add(1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Publish(context.Background(), Event{Topic: TopicAppointmentCreated})
			}
		}()
	}
	wg.Wait()
	d.Close()

	assert.Equal(t, int64(500), handled.Load())
}
