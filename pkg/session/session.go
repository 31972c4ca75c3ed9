// Package session holds the credentials of an authenticated platform
// session: the API token, the optional web_next_auth browser cookie, and
// the numeric account id learned from the first profile fetch.
package session

import (
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/charai-dev/charai/pkg/account"
	"github.com/charai-dev/charai/pkg/debug"
)

// Session carries the auth material for one account. Safe for concurrent
// use; the token and cookie are immutable after construction, the account
// id is guarded by a mutex.
type Session struct {
	token       string
	webNextAuth string

	mu        sync.Mutex
	accountID int64
}

var _ account.Credentials = (*Session)(nil)

// Option configures a Session.
type Option func(*Session)

// WithWebNextAuth attaches the web_next_auth browser cookie for the few
// endpoints that require browser-session auth on top of the API token.
func WithWebNextAuth(cookie string) Option {
	return func(s *Session) {
		s.webNextAuth = cookie
	}
}

// New creates a Session for the given API token.
func New(token string, opts ...Option) *Session {
	s := &Session{token: token}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the raw API token.
func (s *Session) Token() string {
	return s.token
}

// Headers returns the header set every API call carries.
func (s *Session) Headers() map[string]string {
	return map[string]string{
		"Authorization": "Token " + s.token,
		"Content-Type":  "application/json",
	}
}

// WebHeaders returns Headers plus the web_next_auth cookie when one is
// configured.
func (s *Session) WebHeaders() map[string]string {
	h := s.Headers()
	if s.webNextAuth != "" {
		h["Cookie"] = s.webNextAuth
	}
	return h
}

// AccountID returns the numeric account id, or 0 when it has not been
// learned yet.
func (s *Session) AccountID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountID
}

// SetAccountID records the account id after a profile fetch.
func (s *Session) SetAccountID(id int64) {
	s.mu.Lock()
	s.accountID = id
	s.mu.Unlock()
	debug.Log("session", "account id learned", "account_id", id)
}

// TokenExpiry returns the exp claim of the token when the token is a JWT.
// The signature is deliberately not verified; expiry inspection is a
// convenience, not an auth decision. Opaque tokens report ok=false.
func (s *Session) TokenExpiry() (time.Time, bool) {
	parser := jwtlib.NewParser()
	token, _, err := parser.ParseUnverified(s.token, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token is a JWT whose exp claim has passed.
// Opaque tokens are never reported as expired.
func (s *Session) Expired() bool {
	exp, ok := s.TokenExpiry()
	if !ok {
		return false
	}
	return time.Now().After(exp)
}
