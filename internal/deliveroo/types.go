package deliveroo

// TokenResponse is the body of a successful client-credentials exchange.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type Site struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	BrandID  string `json:"brand_id,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

type Order struct {
	ID         string `json:"id"`
	LocationID string `json:"location_id,omitempty"`
	Status     string `json:"status,omitempty"`
}
