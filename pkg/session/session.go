package session

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated identity behind the bearer token. The token
// is issued and verified by the backend; the client only reads the claims
// it needs to address per-user resources.
type Session struct {
	Token     string
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Store holds the process-wide session. Components read the current
// credential from here; nothing else is shared between them.
type Store struct {
	mu  sync.RWMutex
	cur *Session
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Set(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = sess
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = nil
}

// Current returns the active session, or false when there is none or the
// token has expired.
func (s *Store) Current() (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cur == nil || s.cur.Expired() {
		return nil, false
	}
	return s.cur, true
}

// Token implements the credential source used by the gateways.
func (s *Store) Token() (string, bool) {
	cur, ok := s.Current()
	if !ok {
		return "", false
	}
	return cur.Token, true
}

// FromToken builds a Session from an issued access token. The signature is
// not checked here: the backend rejects bad tokens on every call, the
// client only needs the identity claims.
func FromToken(token string) (*Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	sess := &Session{Token: token}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		sess.ExpiresAt = exp.Time
	}

	if v, ok := claims["username"].(string); ok {
		sess.Username = v
	}

	switch v := claims["userId"].(type) {
	case float64:
		sess.UserID = int64(v)
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse userId claim %q: %w", v, err)
		}
		sess.UserID = id
	default:
		// Fall back to the subject for tokens that carry the id there.
		sub, _ := claims.GetSubject()
		if id, err := strconv.ParseInt(sub, 10, 64); err == nil {
			sess.UserID = id
		}
	}

	if sess.UserID == 0 {
		return nil, fmt.Errorf("access token carries no user id")
	}

	return sess, nil
}
