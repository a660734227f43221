package webhook

import (
	"encoding/json"
	"time"

	"github.com/nigelbigappetite/wingshack-orders-bridge/internal/orders"
)

const (
	eventStatusUpdate = "order.status_update"
	statusAccepted    = "accepted"

	// Orders without any currency tag are assumed GBP.
	fallbackCurrency = "GBP"
)

// firstNonEmpty returns the first non-empty candidate, keeping the precedence
// explicit instead of scattering it across call sites.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// placedAt picks confirm_at, then start_preparing_at, then prepare_for.
// Missing or unparseable values fall back to now.
func placedAt(o *Order, now time.Time) time.Time {
	raw := firstNonEmpty(o.ConfirmAt, o.StartPreparingAt, o.PrepareFor)
	if raw == "" {
		return now
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return now
	}
	return t
}

// resolveCurrency picks the total price currency, then the subtotal currency.
func resolveCurrency(o *Order) string {
	var total, subtotal string
	if o.TotalPrice != nil {
		total = o.TotalPrice.Currency
	}
	if o.Subtotal != nil {
		subtotal = o.Subtotal.Currency
	}
	if c := firstNonEmpty(total, subtotal); c != "" {
		return c
	}
	return fallbackCurrency
}

// isAccepted reports whether the order reached "accepted", either as its
// current status or anywhere in the status history.
func isAccepted(o *Order) bool {
	if o.Status == statusAccepted {
		return true
	}
	for _, e := range o.StatusLog {
		if e.Status == statusAccepted {
			return true
		}
	}
	return false
}

// toRecord normalizes an inbound order into the stored row shape. Commission
// and delivery fee are not ours to set; the repo writes them as NULL.
func toRecord(o *Order, raw json.RawMessage, now time.Time) orders.Record {
	rec := orders.Record{
		Platform:        orders.PlatformDeliveroo,
		ExternalOrderID: o.ID,
		StoreID:         o.LocationID,
		OrderPlacedAt:   placedAt(o, now),
		Currency:        resolveCurrency(o),
		RawPayload:      raw,
	}
	if o.TotalPrice != nil {
		rec.GrossAmount = o.TotalPrice.Value
	}
	if o.Subtotal != nil {
		rec.NetAmount = o.Subtotal.Value
	}
	if o.OfferDiscount != nil {
		rec.DiscountTotal = o.OfferDiscount.Value
	}
	return rec
}
