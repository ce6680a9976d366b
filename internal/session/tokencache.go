package session

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"storefront-client/internal/storage"
)

const (
	anonymousIDKey    = "ct_anonymous_id"
	anonymousTokenKey = "ct_anonymous_token"

	// Safety margin so a cached token is never used when it would expire
	// mid-flight.
	expiryMarginSeconds = 60
)

type cachedToken struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// TokenCache persists the device-scoped anonymous identity and its
// time-boxed token in the local store.
type TokenCache struct {
	store storage.Store
	now   func() time.Time
}

// NewTokenCache wraps the given store.
func NewTokenCache(store storage.Store) *TokenCache {
	return &TokenCache{store: store, now: time.Now}
}

// AnonymousID returns the stable per-device identifier, generating and
// persisting a new random UUID if none exists.
func (c *TokenCache) AnonymousID() (string, error) {
	raw, ok, err := c.store.Get(anonymousIDKey)
	if err != nil {
		return "", err
	}
	if ok && len(raw) > 0 {
		return string(raw), nil
	}
	id := uuid.NewString()
	if err := c.store.Put(anonymousIDKey, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}

// CachedToken returns the cached anonymous token iff it has not expired.
// Expired or malformed entries are treated as absent.
func (c *TokenCache) CachedToken() string {
	raw, ok, err := c.store.Get(anonymousTokenKey)
	if err != nil || !ok {
		return ""
	}
	var entry cachedToken
	if json.Unmarshal(raw, &entry) != nil {
		return ""
	}
	if entry.Token == "" || entry.ExpiresAt <= c.now().UnixMilli() {
		return ""
	}
	return entry.Token
}

// CacheToken stores the token with an expiry shortened by the safety margin.
func (c *TokenCache) CacheToken(token string, expiresInSeconds int) error {
	entry := cachedToken{
		Token:     token,
		ExpiresAt: c.now().UnixMilli() + int64(expiresInSeconds-expiryMarginSeconds)*1000,
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.store.Put(anonymousTokenKey, raw)
}

// Clear removes both the anonymous id and the cached token.
func (c *TokenCache) Clear() error {
	if err := c.store.Delete(anonymousIDKey); err != nil {
		return err
	}
	return c.store.Delete(anonymousTokenKey)
}
