// Package sessions issues the opaque tokens handed out by the admin login.
package sessions

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache keeps tokens in memory until they expire or are revoked.
// Tokens do not survive a restart.
type Cache struct {
	cache *gocache.Cache
}

// New returns a cache whose tokens live for ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{cache: gocache.New(ttl, ttl)}
}

// Issue creates and remembers a new token.
func (c *Cache) Issue() (string, error) {
	b := make([]byte, 32) //nolint: mnd // 256 bits
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(b)
	c.cache.SetDefault(token, struct{}{})
	return token, nil
}

func (c *Cache) Valid(token string) bool {
	if token == "" {
		return false
	}
	_, ok := c.cache.Get(token)
	return ok
}

func (c *Cache) Revoke(token string) { c.cache.Delete(token) }
