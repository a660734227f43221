package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderIngested = "OrderIngested"

	TopicOrderIngested = "orders.ingested"
)

// Envelope wraps every event this service publishes.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderIngestedPayload struct {
	Platform        string `json:"platform"`
	ExternalOrderID string `json:"external_order_id"`
	StoreID         string `json:"store_id"`
	Status          string `json:"status,omitempty"`
	GrossAmount     int64  `json:"gross_amount"`
	Currency        string `json:"currency"`
}

// Partition key = platform:order id, so redeliveries of one order stay ordered.
func PartitionKey(platform, externalOrderID string) []byte {
	return []byte(platform + ":" + externalOrderID)
}
