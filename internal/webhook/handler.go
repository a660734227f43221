package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	kafkax "github.com/nigelbigappetite/wingshack-orders-bridge/internal/kafka"
	"github.com/nigelbigappetite/wingshack-orders-bridge/internal/orders"
	"github.com/nigelbigappetite/wingshack-orders-bridge/internal/redisx"
)

type Store interface {
	UpsertOrder(ctx context.Context, rec orders.Record) error
}

// Handler ingests Deliveroo webhooks. Redis and Producer are optional; only the
// upsert decides the response, everything downstream of it is best-effort.
type Handler struct {
	Store    Store
	Ack      *Acknowledger
	Producer *kafkax.Producer
	Redis    *redis.Client
	Service  string
	Now      func() time.Time // test hook, defaults to time.Now
}

func (h *Handler) Register(r *chi.Mux) {
	r.Get("/webhook", h.health)
	r.Post("/webhook", h.receive)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("webhook: read body: %v", err)
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	// Malformed bodies are acknowledged, not rejected: the sender retries on
	// errors and a broken payload will never parse better the second time.
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		log.Printf("webhook: unparseable payload: %v", err)
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	// Not every event type carries an order.
	if ev.Body.Order == nil {
		writeJSON(w, http.StatusOK, map[string]bool{"ignored": true})
		return
	}
	o := ev.Body.Order

	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now()
	}
	rec := toRecord(o, raw, now)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.UpsertOrder(ctx, rec); err != nil {
		log.Printf("webhook: upsert order %s: %v", o.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "failed to store order",
			"details": err.Error(),
		})
		return
	}

	h.cacheStatus(ctx, rec, o.Status, now)
	h.publishIngested(rec, o.Status, r.Header.Get("X-Request-Id"), now)

	if ev.Event == eventStatusUpdate && isAccepted(o) {
		h.Ack.Acknowledge(ctx, o.ID)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// cacheStatus mirrors the latest status into Redis so the dashboard can read it
// without touching the orders table. Errors are ignored.
func (h *Handler) cacheStatus(ctx context.Context, rec orders.Record, status string, now time.Time) {
	if h.Redis == nil {
		return
	}
	if status != "" {
		key := fmt.Sprintf(redisx.KeyOrderStatus, rec.Platform, rec.ExternalOrderID)
		_ = h.Redis.Set(ctx, key, status, redisx.TTLStatusCache).Err()
	}
	lastKey := fmt.Sprintf(redisx.KeyLastEvent, rec.Platform)
	_ = h.Redis.Set(ctx, lastKey, now.Format(time.RFC3339), redisx.TTLLastEvent).Err()
}

func (h *Handler) publishIngested(rec orders.Record, status, traceID string, now time.Time) {
	if h.Producer == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderIngested,
		EventVersion:  1,
		OccurredAt:    now,
		Producer:      h.Service,
		TraceID:       traceID,
		CorrelationID: rec.ExternalOrderID,
		Payload: kafkax.MustMarshal(orders.OrderIngestedPayload{
			Platform:        rec.Platform,
			ExternalOrderID: rec.ExternalOrderID,
			StoreID:         rec.StoreID,
			Status:          status,
			GrossAmount:     rec.GrossAmount,
			Currency:        rec.Currency,
		}),
	}
	h.Producer.Publish(orders.PartitionKey(rec.Platform, rec.ExternalOrderID), kafkax.MustMarshal(ev))
}
