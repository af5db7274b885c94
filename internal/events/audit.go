package events

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// AuditLog is a stream handler that records user lifecycle events.
// It is wired as the consumer of UserEventsStream in main.
func AuditLog(ctx context.Context, event Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}
	log.Printf("audit: %s at %s: %s", event.Type, event.Timestamp.Format(time.RFC3339), data)
	return nil
}
