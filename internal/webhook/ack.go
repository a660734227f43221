package webhook

import (
	"context"
	"log"
)

// SyncAPI is the partner call that acknowledges successful processing.
type SyncAPI interface {
	SyncSucceeded(ctx context.Context, orderID string) error
}

// Acknowledger is deliberately best-effort: the sender controls webhook retries,
// so a failed partner callback is logged with the order id and dropped rather
// than turned into a webhook error.
type Acknowledger struct {
	API SyncAPI
}

func (a *Acknowledger) Acknowledge(ctx context.Context, orderID string) {
	if a == nil || a.API == nil {
		return
	}
	if err := a.API.SyncSucceeded(ctx, orderID); err != nil {
		log.Printf("sync status failed for order %s: %v", orderID, err)
		return
	}
	log.Printf("sync status sent for order %s", orderID)
}
