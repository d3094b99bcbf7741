package services

import (
	"context"
	"fmt"
	"strings"

	"lexdesk/models"
	"lexdesk/repository"
)

// NewUser holds the fields of an account to create
type NewUser struct {
	Username string
	Password string
	FullName string
	Email    *string
	Role     string
}

// UserService manages accounts. Only admins manage users other than themselves.
type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Create validates and stores a new account
func (s *UserService) Create(ctx context.Context, sess *Session, in NewUser) (*models.User, error) {
	if err := sess.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.create(ctx, in)
}

func (s *UserService) create(ctx context.Context, in NewUser) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" {
		return nil, invalid("username", "is required")
	}
	if strings.ContainsAny(username, " \t\n") {
		return nil, invalid("username", "cannot contain spaces")
	}
	fullName, err := requireText("full_name", in.FullName)
	if err != nil {
		return nil, err
	}
	if !models.IsValidRole(in.Role) {
		return nil, invalid("role", fmt.Sprintf("unknown role %q", in.Role))
	}
	if err := ValidatePassword(in.Password, username); err != nil {
		return nil, err
	}
	email := cleanOptional(in.Email)
	if email != nil && !IsValidEmail(*email) {
		return nil, invalid("email", "is not a valid address")
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicate("username", "is already taken")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		Email:        email,
		Role:         in.Role,
		Active:       true,
	}
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, sess *Session) ([]models.User, error) {
	if err := sess.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.users.ListAll(ctx)
}

// SetActive enables or disables an account. Admins cannot disable themselves.
func (s *UserService) SetActive(ctx context.Context, sess *Session, id uint, active bool) error {
	if err := sess.Require(models.RoleAdmin); err != nil {
		return err
	}
	if !active && id == sess.UserID() {
		return invalid("active", "you cannot deactivate your own account")
	}
	return s.users.SetActive(ctx, id, active)
}

// ChangePassword sets a new password. Users changing their own password must
// give the current one; admins may reset anyone else's.
func (s *UserService) ChangePassword(ctx context.Context, sess *Session, id uint, current, next string) error {
	if err := sess.Require(); err != nil {
		return err
	}
	self := id == sess.UserID()
	if !self && !sess.HasRole(models.RoleAdmin) {
		return fmt.Errorf("%w: only admins can change other users' passwords", ErrForbidden)
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return notFound("user", id)
	}
	if err := ValidatePassword(next, u.Username); err != nil {
		return err
	}
	if self && !VerifyPassword(u.PasswordHash, current) {
		return invalid("current_password", "is incorrect")
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, id, hash)
}
