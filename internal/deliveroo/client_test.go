package deliveroo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/oauth2/token", srv.URL, "client-id", "client-secret")
}

func TestTokenSuccess(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth2/token", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client-id", r.PostForm.Get("client_id"))
		require.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "  tok-123  ",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))

	tok, err := c.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-123", tok.AccessToken)
	require.Equal(t, "Bearer", tok.TokenType)
	require.Equal(t, 3600, tok.ExpiresIn)
}

func TestTokenNon2xx(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))

	_, err := c.Token(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, http.StatusUnauthorized, authErr.Status)
	require.Contains(t, authErr.Body, "invalid_client")
}

func TestTokenMissingCredentials(t *testing.T) {
	c := NewClient("http://unused", "http://unused", "", "secret")
	_, err := c.Token(context.Background())
	require.ErrorIs(t, err, ErrNoCredentials)

	c = NewClient("http://unused", "http://unused", "id", "")
	_, err = c.Token(context.Background())
	require.ErrorIs(t, err, ErrNoCredentials)
}

func TestBrandsAndSites(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/site/v2/brands":
			_, _ = w.Write([]byte(`[{"id":"b1","name":"Wing Shack"}]`))
		case "/site/v2/brand/b1/sites":
			_, _ = w.Write([]byte(`[{"id":"s1"},{"id":"s2"}]`))
		default:
			http.NotFound(w, r)
		}
	}))

	brands, err := c.Brands(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, brands, 1)
	require.Equal(t, "b1", brands[0].ID)

	sites, err := c.Sites(context.Background(), "tok", "b1")
	require.NoError(t, err)
	require.Len(t, sites, 2)
}

func TestBrandsNon2xx(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))

	_, err := c.Brands(context.Background(), "tok")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.Status)
	require.Contains(t, apiErr.Body, "forbidden")
}

func TestOrdersExplicitWindow(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/order/v1/loc-1/orders", r.URL.Path)
		gotQuery = map[string]string{
			"date":     r.URL.Query().Get("date"),
			"date_end": r.URL.Query().Get("date_end"),
		}
		_, _ = w.Write([]byte(`[{"id":"o1","status":"accepted"}]`))
	}))

	from := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)
	to := time.Date(2026, 8, 15, 23, 0, 0, 0, time.UTC)
	list, err := c.Orders(context.Background(), "tok", "loc-1", from, to)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "o1", list[0].ID)
	require.Equal(t, "2026-08-01", gotQuery["date"])
	require.Equal(t, "2026-08-15", gotQuery["date_end"])
}

func TestOrdersDefaultWindow(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"date":     r.URL.Query().Get("date"),
			"date_end": r.URL.Query().Get("date_end"),
		}
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := c.Orders(context.Background(), "tok", "loc-1", time.Time{}, time.Time{})
	require.NoError(t, err)

	now := time.Now().UTC()
	require.Equal(t, now.Format("2006-01-02"), gotQuery["date_end"])
	require.Equal(t, now.AddDate(0, 0, -7).Format("2006-01-02"), gotQuery["date"])
}

func TestSyncSucceeded(t *testing.T) {
	var gotBody map[string]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth2/token" {
			_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok"})
			return
		}
		require.Equal(t, "/order/v1/orders/o1/sync_status", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, c.SyncSucceeded(context.Background(), "o1"))
	require.Equal(t, "succeeded", gotBody["status"])
	_, err := time.Parse(time.RFC3339, gotBody["occurred_at"])
	require.NoError(t, err)
}

func TestSyncSucceededConflictTolerated(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth2/token" {
			_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok"})
			return
		}
		w.WriteHeader(http.StatusConflict)
	}))

	require.NoError(t, c.SyncSucceeded(context.Background(), "o1"))
}

func TestSyncSucceededNon2xx(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth2/token" {
			_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "tok"})
			return
		}
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	err := c.SyncSucceeded(context.Background(), "o1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestSyncSucceededAuthFailurePropagates(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))

	err := c.SyncSucceeded(context.Background(), "o1")
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
}
