package deliveroo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the Deliveroo partner API. Every call authenticates itself:
// tokens are short-lived and cheap, so nothing is cached or refreshed.
type Client struct {
	AuthURL      string
	APIBase      string
	ClientID     string
	ClientSecret string
	HTTP         *http.Client
}

func NewClient(authURL, apiBase, clientID, clientSecret string) *Client {
	return &Client{
		AuthURL:      authURL,
		APIBase:      strings.TrimRight(apiBase, "/"),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		HTTP:         &http.Client{Timeout: 10 * time.Second},
	}
}

// Token runs the client-credentials grant and returns the raw token response.
func (c *Client) Token(ctx context.Context) (TokenResponse, error) {
	if c.ClientID == "" || c.ClientSecret == "" {
		return TokenResponse{}, ErrNoCredentials
	}

	form := url.Values{
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
		"grant_type":    {"client_credentials"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return TokenResponse{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return TokenResponse{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return TokenResponse{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return TokenResponse{}, &AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var tok TokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return TokenResponse{}, err
	}
	tok.AccessToken = strings.TrimSpace(tok.AccessToken)
	return tok, nil
}

func (c *Client) Brands(ctx context.Context, token string) ([]Brand, error) {
	var out []Brand
	if err := c.getJSON(ctx, token, c.APIBase+"/site/v2/brands", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Sites(ctx context.Context, token, brandID string) ([]Site, error) {
	var out []Site
	if err := c.getJSON(ctx, token, c.APIBase+"/site/v2/brand/"+brandID+"/sites", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Orders lists orders for a site location over [from, to], both inclusive and
// formatted YYYY-MM-DD in UTC. Zero times default to the last 7 days ending today.
func (c *Client) Orders(ctx context.Context, token, locationID string, from, to time.Time) ([]Order, error) {
	if from.IsZero() || to.IsZero() {
		to = time.Now().UTC()
		from = to.AddDate(0, 0, -7)
	}
	u, err := url.Parse(c.APIBase + "/order/v1/" + locationID + "/orders")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("date", from.UTC().Format("2006-01-02"))
	q.Set("date_end", to.UTC().Format("2006-01-02"))
	u.RawQuery = q.Encode()

	var out []Order
	if err := c.getJSON(ctx, token, u.String(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SyncSucceeded tells Deliveroo the order was processed. 409 means the partner
// already has this status and counts as success.
func (c *Client) SyncSucceeded(ctx context.Context, orderID string) error {
	tok, err := c.Token(ctx)
	if err != nil {
		return err
	}

	payload, _ := json.Marshal(map[string]string{
		"occurred_at": time.Now().UTC().Format(time.RFC3339),
		"status":      "succeeded",
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.APIBase+"/order/v1/orders/"+orderID+"/sync_status", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusConflict {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, token, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return json.Unmarshal(body, out)
}
