package services

import (
	"encoding/json"
	"log"
	"time"

	"shopadmin/internal/models"
)

// EventPublisher sends catalog events to a broker. *rabbitmq.Client
// satisfies it.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// publishEvent sends event when a publisher is configured. Broker failures
// are logged and never fail the request that triggered them.
func publishEvent(publisher EventPublisher, event models.CatalogEvent) {
	if publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event.Type, err)
		return
	}
	if err := publisher.Publish(event.Type, body); err != nil {
		log.Printf("Warning: Failed to publish %s event for %s: %v", event.Type, event.ResourceID, err)
	}
}
