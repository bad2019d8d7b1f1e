package models

import "time"

// Routing keys of catalog events.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventImagesUploaded = "image.uploaded"
	EventImagesOrphaned = "image.orphaned"
)

// CatalogEvent is the message published to the broker after a change.
type CatalogEvent struct {
	Type       string    `json:"type"`
	ResourceID string    `json:"resource_id,omitempty"`
	Images     []string  `json:"images,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
