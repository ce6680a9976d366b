package domain

import "errors"

// Token is the response of the oauth token endpoints.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Validate checks the shape of a token response before it is trusted.
func (t *Token) Validate() error {
	if t.AccessToken == "" {
		return errors.New("token: access_token missing")
	}
	if t.ExpiresIn <= 0 {
		return errors.New("token: expires_in must be positive")
	}
	return nil
}
