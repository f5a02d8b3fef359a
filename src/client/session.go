// Package client is the Go front end of the appeal service: an explicit
// auth session, account calls and the complaint submission pipeline that
// turns a completed wizard form into a multipart request.
package client

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"appealapp/src/types"
)

// Session is the single source of auth truth for everything built on top
// of a Client. Components that care about sign-in state subscribe instead
// of polling.
type Session struct {
	mu       sync.RWMutex
	token    string
	expiry   time.Time
	userID   uint
	username string
	role     string

	nextSub int
	subs    map[int]func(signedIn bool)
}

func NewSession() *Session {
	return &Session{subs: make(map[int]func(bool))}
}

// Subscribe registers a callback fired on every sign-in and sign-out.
// The returned function removes the subscription.
func (s *Session) Subscribe(fn func(signedIn bool)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notify fires the callbacks outside the lock so they may read the
// session freely.
func (s *Session) notify(signedIn bool) {
	s.mu.RLock()
	fns := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(signedIn)
	}
}

// SignIn stores a bearer token. The expiry is read from the token's own
// exp claim; the signature is the server's concern, not ours.
func (s *Session) SignIn(token string) error {
	var claims types.Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.userID = claims.UserID
	s.username = claims.Username
	s.role = claims.Role
	s.expiry = time.Time{}
	if claims.ExpiresAt != nil {
		s.expiry = claims.ExpiresAt.Time
	}
	s.mu.Unlock()
	s.notify(true)
	return nil
}

// SignOut drops the token.
func (s *Session) SignOut() {
	s.mu.Lock()
	s.token = ""
	s.userID = 0
	s.username = ""
	s.role = ""
	s.expiry = time.Time{}
	s.mu.Unlock()
	s.notify(false)
}

// Token returns the stored token and whether it is still live.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", false
	}
	if !s.expiry.IsZero() && time.Now().After(s.expiry) {
		return "", false
	}
	return s.token, true
}

// SignedIn reports whether a non-expired token is held.
func (s *Session) SignedIn() bool {
	_, ok := s.Token()
	return ok
}

func (s *Session) UserID() uint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}
