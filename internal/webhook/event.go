package webhook

// Inbound Deliveroo webhook shapes. Only the fields the bridge normalizes are
// declared; the full payload is kept verbatim in the stored row.

type Event struct {
	Event string    `json:"event"`
	Body  EventBody `json:"body"`
}

type EventBody struct {
	Order *Order `json:"order"`
}

type Order struct {
	ID         string `json:"id"`
	LocationID string `json:"location_id"`
	Status     string `json:"status"`

	// Candidate "placed at" timestamps, in precedence order.
	ConfirmAt        string `json:"confirm_at,omitempty"`
	StartPreparingAt string `json:"start_preparing_at,omitempty"`
	PrepareFor       string `json:"prepare_for,omitempty"`

	TotalPrice    *Money `json:"total_price,omitempty"`
	Subtotal      *Money `json:"partner_order_subtotal,omitempty"`
	OfferDiscount *Money `json:"offer_discount,omitempty"`

	StatusLog []StatusEntry `json:"status_log,omitempty"`
}

type Money struct {
	Value    int64  `json:"value"`
	Currency string `json:"currency"`
}

type StatusEntry struct {
	Status string `json:"status"`
	At     string `json:"at,omitempty"`
}
