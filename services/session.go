package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"lexdesk/models"

	"github.com/patrickmn/go-cache"
)

const (
	// SessionTokenLength is the length of an API session token in bytes (64 chars hex)
	SessionTokenLength = 32

	// Five failed logins per username and source within a minute lock both out for that minute
	MaxFailedLogins    = 5
	FailedLoginWindow  = time.Minute
	sessionCleanupTick = 10 * time.Minute
)

// Session is the authenticated user of one command or API client. It is
// created by a successful login and passed explicitly to the services that
// need the current user.
type Session struct {
	mu        sync.RWMutex
	user      *models.User
	startedAt time.Time
}

// NewSession starts a session for u
func NewSession(u *models.User, startedAt time.Time) *Session {
	return &Session{user: u, startedAt: startedAt}
}

// Current returns the logged-in user, or nil once the session has ended
func (s *Session) Current() *models.User {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// End clears the session. Safe to call more than once.
func (s *Session) End() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

func (s *Session) Active() bool {
	return s.Current() != nil
}

func (s *Session) StartedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.startedAt
}

// UserID returns the current user's ID or zero
func (s *Session) UserID() uint {
	if u := s.Current(); u != nil {
		return u.ID
	}
	return 0
}

// HasRole reports whether the current user holds one of roles
func (s *Session) HasRole(roles ...string) bool {
	u := s.Current()
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// Require returns ErrForbidden unless the session is active and, when roles
// are given, holds one of them
func (s *Session) Require(roles ...string) error {
	u := s.Current()
	if u == nil {
		return fmt.Errorf("%w: no active session", ErrForbidden)
	}
	if len(roles) > 0 && !s.HasRole(roles...) {
		return fmt.Errorf("%w: role %s may not perform this action", ErrForbidden, u.Role)
	}
	return nil
}

// creatorID returns a pointer to the session user's ID for creator columns
func (s *Session) creatorID() *uint {
	id := s.UserID()
	if id == 0 {
		return nil
	}
	return &id
}

func requireFinancial(s *Session) error {
	return s.Require(models.RoleAdmin, models.RoleLawyer)
}

// GenerateSessionToken generates a cryptographically secure random token
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, SessionTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// SessionStore maps opaque API tokens to sessions. Entries expire after ttl
// without use; nothing survives a restart.
type SessionStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{cache: cache.New(ttl, sessionCleanupTick), ttl: ttl}
}

// Start registers sess and returns its token
func (st *SessionStore) Start(sess *Session) (string, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return "", err
	}
	st.cache.Set(token, sess, cache.DefaultExpiration)
	return token, nil
}

// Get returns the active session for token and slides its expiry
func (st *SessionStore) Get(token string) (*Session, bool) {
	if token == "" {
		return nil, false
	}
	v, ok := st.cache.Get(token)
	if !ok {
		return nil, false
	}
	sess := v.(*Session)
	if !sess.Active() {
		st.cache.Delete(token)
		return nil, false
	}
	st.cache.Set(token, sess, cache.DefaultExpiration)
	return sess, true
}

// End ends and forgets the session behind token
func (st *SessionStore) End(token string) {
	if v, ok := st.cache.Get(token); ok {
		v.(*Session).End()
	}
	st.cache.Delete(token)
}

// EndUser ends every session of the user with id and returns how many there were
func (st *SessionStore) EndUser(id uint) int {
	ended := 0
	for token, item := range st.cache.Items() {
		sess, ok := item.Object.(*Session)
		if !ok || sess.UserID() != id {
			continue
		}
		sess.End()
		st.cache.Delete(token)
		ended++
	}
	return ended
}

func (st *SessionStore) Count() int {
	return st.cache.ItemCount()
}

// LoginThrottle counts failed logins per username and source
type LoginThrottle struct {
	cache  *cache.Cache
	max    int
	window time.Duration
}

func NewLoginThrottle(max int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{cache: cache.New(window, window), max: max, window: window}
}

func throttleKey(username, source string) string {
	return strings.ToLower(strings.TrimSpace(username)) + "|" + source
}

// Allowed reports whether another attempt may be made
func (t *LoginThrottle) Allowed(username, source string) bool {
	v, ok := t.cache.Get(throttleKey(username, source))
	if !ok {
		return true
	}
	return v.(int) < t.max
}

// Fail records a failed attempt and returns the count within the window.
// The window starts at the first failure and is not extended by later ones.
func (t *LoginThrottle) Fail(username, source string) int {
	key := throttleKey(username, source)
	if err := t.cache.Add(key, 1, t.window); err == nil {
		return 1
	}
	n, err := t.cache.IncrementInt(key, 1)
	if err != nil {
		// Expired between Add and Increment
		t.cache.Set(key, 1, t.window)
		return 1
	}
	return n
}

// Reset clears the counter after a successful login
func (t *LoginThrottle) Reset(username, source string) {
	t.cache.Delete(throttleKey(username, source))
}
