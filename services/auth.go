package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"lexdesk/logger"
	"lexdesk/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
	// LocalSource identifies logins that do not come from the network
	LocalSource = "local"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// VerifyPassword verifies a password against a bcrypt hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burnCompare spends the same bcrypt work as a real comparison so unknown
// usernames are not distinguishable by timing
func burnCompare(password string) {
	dummyHashOnce.Do(func() {
		h, _ := bcrypt.GenerateFromPassword([]byte("lexdesk-timing-equaliser"), BcryptCost)
		dummyHash = string(h)
	})
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}

// AuthService checks credentials and opens sessions
type AuthService struct {
	users    *repository.UserRepository
	throttle *LoginThrottle
	clock    Clock
}

// NewAuthService creates the service; throttle may be nil
func NewAuthService(users *repository.UserRepository, throttle *LoginThrottle, clock Clock) *AuthService {
	if clock == nil {
		clock = SystemClock
	}
	return &AuthService{users: users, throttle: throttle, clock: clock}
}

// Login authenticates a local user
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	return s.LoginFrom(ctx, username, password, LocalSource)
}

// LoginFrom authenticates username from source (an IP for API clients).
// Unknown users, inactive users and wrong passwords all yield ErrInvalidCredentials.
func (s *AuthService) LoginFrom(ctx context.Context, username, password, source string) (*Session, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	sec := logger.Security()

	if s.throttle != nil && !s.throttle.Allowed(username, source) {
		sec.Warnw("login blocked by throttle", "username", username, "source", source)
		return nil, ErrLoginThrottled
	}

	user, err := s.users.FindActiveByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if user == nil {
		burnCompare(password)
	}
	if user == nil || !VerifyPassword(user.PasswordHash, password) {
		attempts := 0
		if s.throttle != nil {
			attempts = s.throttle.Fail(username, source)
		}
		sec.Warnw("failed login", "username", username, "source", source, "attempts", attempts)
		return nil, ErrInvalidCredentials
	}

	if s.throttle != nil {
		s.throttle.Reset(username, source)
	}

	now := s.clock().UTC()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	sec.Infow("login", "user_id", user.ID, "username", user.Username, "role", user.Role, "source", source)
	return NewSession(user, now), nil
}

// Logout ends sess
func (s *AuthService) Logout(sess *Session) {
	if u := sess.Current(); u != nil {
		logger.Security().Infow("logout", "user_id", u.ID, "username", u.Username)
	}
	sess.End()
}
