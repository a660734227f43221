package redisx

import "time"

const (
	// Latest known status per ingested order: order_status:{platform}:{external_order_id}
	// Written best-effort after every upsert; the dashboard reads it, we never do.
	KeyOrderStatus = "order_status:%s:%s"

	// Last webhook seen per platform: webhook:last_event:{platform} -> RFC3339
	KeyLastEvent = "webhook:last_event:%s"
)

var (
	TTLStatusCache = 5 * time.Minute
	TTLLastEvent   = 24 * time.Hour
)
