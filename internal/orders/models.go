package orders

import (
	"encoding/json"
	"time"
)

// PlatformDeliveroo is the only platform this bridge ingests today.
const PlatformDeliveroo = "deliveroo"

// Record is one normalized marketplace order, keyed on (platform, external order id).
// Commission and delivery fee are owned by the enrichment job and stay NULL here.
type Record struct {
	Platform        string          `json:"platform"`
	ExternalOrderID string          `json:"external_order_id"`
	StoreID         string          `json:"store_id"`
	OrderPlacedAt   time.Time       `json:"order_placed_at"`
	GrossAmount     int64           `json:"gross_amount"`
	NetAmount       int64           `json:"net_amount"`
	DiscountTotal   int64           `json:"discount_total"`
	Currency        string          `json:"currency"`
	RawPayload      json.RawMessage `json:"raw_payload"`
}
