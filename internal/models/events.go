package models

import "time"

const (
	EventProductCreated    = "product.created"
	EventVisitScheduled    = "product.visit_scheduled"
	EventDonationConcluded = "product.donation_concluded"
)

// ProductEvent is published to Kafka on product lifecycle transitions so
// downstream consumers (notifications, analytics) can react.
type ProductEvent struct {
	Type      string    `json:"type"`
	ProductID string    `json:"product_id"`
	OwnerID   string    `json:"owner_id"`
	ActorID   string    `json:"actor_id,omitempty"`
	At        time.Time `json:"at"`
}
