package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nigelbigappetite/wingshack-orders-bridge/internal/deliveroo"
)

// DeliverooHandler exposes the partner API lookups the dashboard uses to check
// credentials and site wiring. Failures come back as a structured 500 carrying
// the partner's status code and raw body.
type DeliverooHandler struct {
	API        *deliveroo.Client
	LocationID string
}

func (h *DeliverooHandler) Register(r *chi.Mux) {
	r.Get("/deliveroo/auth", h.authTest)
	r.Get("/deliveroo/sites", h.brandsAndSites)
	r.Get("/deliveroo/orders", h.listOrders)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeAPIError maps typed client errors to {error, status, body}; anything
// else (transport failures, missing config) becomes {error: message}.
func writeAPIError(w http.ResponseWriter, label string, err error) {
	var authErr *deliveroo.AuthError
	if errors.As(err, &authErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": label, "status": authErr.Status, "body": authErr.Body,
		})
		return
	}
	var apiErr *deliveroo.APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": label, "status": apiErr.Status, "body": apiErr.Body,
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func (h *DeliverooHandler) authTest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	tok, err := h.API.Token(ctx)
	if err != nil {
		writeAPIError(w, "Auth failed", err)
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

func (h *DeliverooHandler) brandsAndSites(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	tok, err := h.API.Token(ctx)
	if err != nil {
		writeAPIError(w, "Failed to fetch brands/sites", err)
		return
	}
	brands, err := h.API.Brands(ctx, tok.AccessToken)
	if err != nil {
		writeAPIError(w, "Failed to fetch brands/sites", err)
		return
	}
	if len(brands) == 0 {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "no brands found for this account",
		})
		return
	}
	sites, err := h.API.Sites(ctx, tok.AccessToken, brands[0].ID)
	if err != nil {
		writeAPIError(w, "Failed to fetch brands/sites", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"brands": brands, "sites": sites})
}

func (h *DeliverooHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	if h.LocationID == "" {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "DELIVEROO_SITE_LOCATION_ID missing",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var from, to time.Time
	if d := r.URL.Query().Get("date"); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date"})
			return
		}
		from = t
	}
	if d := r.URL.Query().Get("date_end"); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date_end"})
			return
		}
		to = t
	}

	if from.IsZero() != to.IsZero() {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "date and date_end must be provided together",
		})
		return
	}

	tok, err := h.API.Token(ctx)
	if err != nil {
		writeAPIError(w, "Orders fetch failed", err)
		return
	}
	list, err := h.API.Orders(ctx, tok.AccessToken, h.LocationID, from, to)
	if err != nil {
		writeAPIError(w, "Orders fetch failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": list})
}
