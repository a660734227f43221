package deliveroo

import (
	"errors"
	"fmt"
)

// ErrNoCredentials means DELIVEROO_CLIENT_ID / DELIVEROO_CLIENT_SECRET are unset.
var ErrNoCredentials = errors.New("deliveroo client id or secret not configured")

// AuthError is a non-2xx from the token endpoint.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("deliveroo auth failed: %d %s", e.Status, e.Body)
}

// APIError is a non-2xx from any partner data endpoint.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("deliveroo api: %d %s", e.Status, e.Body)
}
