package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	alice := uuid.New()

	sub := hub.Subscribe(alice)
	defer sub.Close()

	hub.Publish(alice, TypeMessageNew, "payload")

	event := <-sub.C
	assert.Equal(t, TypeMessageNew, event.Type)
	assert.Equal(t, "payload", event.Data)
	assert.False(t, event.At.IsZero())
}

func TestPublishIsScopedToIdentity(t *testing.T) {
	hub := NewHub()
	alice, bob := uuid.New(), uuid.New()

	sub := hub.Subscribe(bob)
	defer sub.Close()

	hub.Publish(alice, TypeMessageNew, nil)

	select {
	case event := <-sub.C:
		t.Fatalf("unexpected event for bob: %v", event)
	default:
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	hub := NewHub()
	hub.Publish(uuid.New(), TypeCallState, nil)
}

func TestSlowConsumerDropsEvents(t *testing.T) {
	hub := NewHub()
	alice := uuid.New()

	sub := hub.Subscribe(alice)
	defer sub.Close()

	// Overfill the buffer; Publish must not block.
	for i := 0; i < bufferSize*2; i++ {
		hub.Publish(alice, TypeMessageNew, i)
	}

	received := 0
	for {
		select {
		case <-sub.C:
			received++
			continue
		default:
		}
		break
	}
	assert.Equal(t, bufferSize, received)
}

func TestCloseUnsubscribes(t *testing.T) {
	hub := NewHub()
	alice := uuid.New()

	sub := hub.Subscribe(alice)
	sub.Close()
	sub.Close() // idempotent

	_, open := <-sub.C
	require.False(t, open)

	// Publishing after close must not panic.
	hub.Publish(alice, TypeMessageNew, nil)
}

func TestMultipleSubscribersEachReceive(t *testing.T) {
	hub := NewHub()
	alice := uuid.New()

	first := hub.Subscribe(alice)
	defer first.Close()
	second := hub.Subscribe(alice)
	defer second.Close()

	hub.Publish(alice, TypeConnectionRequest, nil)

	for _, sub := range []*Subscription{first, second} {
		event := <-sub.C
		assert.Equal(t, TypeConnectionRequest, event.Type)
	}
}
