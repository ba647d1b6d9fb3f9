package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cyber_portal/internal/model"
	"cyber_portal/internal/repository"
)

const (
	RedirectDashboard = "dashboard"
	RedirectHome      = "home"
)

// Session is the part of the session manager the auth service drives
type Session interface {
	Login(ctx context.Context, user *model.User) error
	Logout(ctx context.Context) error
}

// LoginResult tells the caller where to send the user and how long to show the welcome message first
type LoginResult struct {
	User     *model.User
	Redirect string
	Delay    time.Duration
}

// AuthService provides registration and login
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Authenticate(ctx context.Context, username, password, role string) (*model.User, error)
	Login(ctx context.Context, sess Session, req model.LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, sess Session) error
}

type authService struct {
	userRepo      repository.UserRepository
	redirectDelay time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, redirectDelay time.Duration) AuthService {
	return &authService{
		userRepo:      userRepo,
		redirectDelay: redirectDelay,
	}
}

// Register creates a new account. Usernames are unique ignoring case; emails are not checked.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	user := &model.User{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
		Role:     req.Role,
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
	}
	if user.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if user.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	if !model.IsValidRole(user.Role) {
		return nil, fmt.Errorf("%w: role must be %q or %q", ErrValidation, model.RoleUser, model.RolePolice)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	log.Printf("INFO: Registered %s as %s", user.Username, user.Role)
	return user, nil
}

// Authenticate returns the user whose username, password and role all match exactly.
// Every mismatch yields the same ErrAuthenticationFailed.
func (s *authService) Authenticate(ctx context.Context, username, password, role string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil || user.Password != password || user.Role != role {
		return nil, ErrAuthenticationFailed
	}
	return user, nil
}

// Login authenticates and, on success, makes the user the session's current actor
func (s *authService) Login(ctx context.Context, sess Session, req model.LoginRequest) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, req.Username, req.Password, req.Role)
	if err != nil {
		return nil, err
	}
	if err := sess.Login(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	redirect := RedirectHome
	if user.Role == model.RolePolice {
		redirect = RedirectDashboard
	}
	return &LoginResult{User: user, Redirect: redirect, Delay: s.redirectDelay}, nil
}

func (s *authService) Logout(ctx context.Context, sess Session) error {
	if err := sess.Logout(ctx); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}
