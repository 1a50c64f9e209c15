package fakeapi

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/recyclemate/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

type claims struct {
	Role users.Role `json:"role"`
	jwtlib.RegisteredClaims
}

// revocationCache remembers revoked token ids until the tokens would have expired anyway
type revocationCache struct {
	revoked map[string]time.Time
	mu      sync.RWMutex
}

func newRevocationCache() *revocationCache {
	return &revocationCache{revoked: make(map[string]time.Time)}
}

func (c *revocationCache) Add(jti string, exp time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revoked[jti] = exp
}

func (c *revocationCache) IsRevoked(jti string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.revoked[jti]
	return exists
}

// Cleanup drops entries whose tokens have expired
func (c *revocationCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := NowTimeFunc()
	for jti, exp := range c.revoked {
		if now.After(exp) {
			delete(c.revoked, jti)
		}
	}
}

type tokenIssuer struct {
	secret  []byte
	expiry  time.Duration
	revoked *revocationCache

	mu     sync.Mutex
	issued map[string]time.Time // jti -> expiry, for RevokeAll
}

func newTokenIssuer(expiry time.Duration) *tokenIssuer {
	secret := make([]byte, 32)
	_, _ = rand.Read(secret)
	return &tokenIssuer{
		secret:  secret,
		expiry:  expiry,
		revoked: newRevocationCache(),
		issued:  make(map[string]time.Time),
	}
}

func (ti *tokenIssuer) Issue(account *users.Account) (string, error) {
	now := NowTimeFunc()
	exp := now.Add(ti.expiry)
	c := claims{
		Role: account.Role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(exp),
			ID:        uuid.New().String(),
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("[tokenIssuer Issue] %w", err)
	}

	ti.mu.Lock()
	ti.issued[c.ID] = exp
	ti.mu.Unlock()
	return signed, nil
}

func (ti *tokenIssuer) Verify(raw string) (*claims, error) {
	c := &claims{}
	token, err := jwtlib.ParseWithClaims(raw, c, func(t *jwtlib.Token) (interface{}, error) {
		return ti.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}), jwtlib.WithTimeFunc(NowTimeFunc))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if ti.revoked.IsRevoked(c.ID) {
		return nil, fmt.Errorf("token revoked")
	}
	return c, nil
}

// RevokeAll revokes every token issued so far. Later tokens are unaffected.
func (ti *tokenIssuer) RevokeAll() {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	for jti, exp := range ti.issued {
		ti.revoked.Add(jti, exp)
	}
	ti.issued = make(map[string]time.Time)
	ti.revoked.Cleanup()
}
