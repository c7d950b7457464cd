// Package auth provides bearer tokens for the catalog client and verifies them on the server.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a bearer credential. A zero Expiry means the token never expires.
type Token struct {
	Value  string
	Expiry time.Time
}

func (t Token) validAt(now time.Time) bool {
	if t.Value == "" {
		return false
	}
	return t.Expiry.IsZero() || now.Before(t.Expiry)
}

// TokenSource yields the token attached to every outgoing request.
type TokenSource interface {
	Token(ctx context.Context) (Token, error)
}

// StaticTokenSource always returns the same token.
type StaticTokenSource struct {
	Value string
}

func (s StaticTokenSource) Token(context.Context) (Token, error) {
	if s.Value == "" {
		return Token{}, errors.New("static token is empty")
	}
	return Token{Value: s.Value}, nil
}

// HMACTokenSource mints short-lived HS256 tokens from a shared secret.
type HMACTokenSource struct {
	secret  []byte
	issuer  string
	subject string
	ttl     time.Duration
	now     func() time.Time
}

// NewHMACTokenSource creates a signer. ttl defaults to 15 minutes.
func NewHMACTokenSource(secret, issuer, subject string, ttl time.Duration) (*HMACTokenSource, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt signing key cannot be empty")
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &HMACTokenSource{
		secret:  []byte(secret),
		issuer:  issuer,
		subject: subject,
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

func (s *HMACTokenSource) Token(context.Context) (Token, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   s.subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Token{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return Token{Value: signed, Expiry: exp}, nil
}

// CachedTokenSource reuses the token from src until shortly before it expires.
// Tokens without an explicit Expiry are inspected for a JWT "exp" claim and
// otherwise kept for the fallback TTL. It is safe for concurrent use.
type CachedTokenSource struct {
	src         TokenSource
	fallbackTTL time.Duration
	skew        time.Duration
	now         func() time.Time

	mu  sync.Mutex
	cur Token
}

// NewCachedTokenSource wraps src. A fallbackTTL <= 0 caches opaque tokens forever.
func NewCachedTokenSource(src TokenSource, fallbackTTL time.Duration) *CachedTokenSource {
	return &CachedTokenSource{
		src:         src,
		fallbackTTL: fallbackTTL,
		skew:        30 * time.Second,
		now:         time.Now,
	}
}

func (c *CachedTokenSource) Token(ctx context.Context) (Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.cur.validAt(now.Add(c.skew)) {
		return c.cur, nil
	}

	t, err := c.src.Token(ctx)
	if err != nil {
		return Token{}, err
	}
	if t.Expiry.IsZero() {
		t.Expiry = expiryOf(t.Value)
		if t.Expiry.IsZero() && c.fallbackTTL > 0 {
			t.Expiry = now.Add(c.fallbackTTL)
		}
	}
	c.cur = t
	return t, nil
}

// Invalidate drops the cached token so the next call fetches a fresh one.
func (c *CachedTokenSource) Invalidate() {
	c.mu.Lock()
	c.cur = Token{}
	c.mu.Unlock()
}

// expiryOf reads the exp claim without verifying the signature.
func expiryOf(raw string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
