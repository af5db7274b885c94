package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSubscriberDeliversPublishedEvents(t *testing.T) {
	client := newTestClient(t)
	pub := NewPublisher(client)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pub.Publish(ctx, UserEventsStream, UserDeleted, UserDeletedEvent{UserID: "alice01"}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	received := make(chan Event, 1)
	sub := NewSubscriber(client, SubscriberConfig{
		Group:         "test-group",
		Consumer:      "test-consumer",
		Stream:        UserEventsStream,
		BlockDuration: 50 * time.Millisecond,
		Handler: func(ctx context.Context, event Event) error {
			select {
			case received <- event:
			default:
			}
			return nil
		},
	})

	done := make(chan error, 1)
	go func() { done <- sub.Start(ctx) }()

	select {
	case event := <-received:
		if event.Type != UserDeleted {
			t.Errorf("expected %q, got %q", UserDeleted, event.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the event")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop after cancellation")
	}
}
