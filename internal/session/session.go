// Package session tracks which user is logged in for one client profile.
//
// The session is two scalars in the profile's store: the username and a cached
// copy of the role taken at login. Current re-reads the user record on every
// call; the cached role is never re-validated against it.
package session

import (
	"context"
	"fmt"

	"cyber_portal/internal/model"
	"cyber_portal/internal/repository"
	"cyber_portal/internal/store"
)

const (
	KeyLoggedInUser = "loggedInUser"
	KeyLoggedInRole = "loggedInRole"
)

// Manager reads and writes the session scalars of a single profile
type Manager struct {
	store store.Store
	users repository.UserRepository
}

// NewManager creates a session manager over the profile store s.
// users is consulted by Current to resolve the stored username.
func NewManager(s store.Store, users repository.UserRepository) *Manager {
	return &Manager{store: s, users: users}
}

// Login records user as the current actor, replacing any previous session
func (m *Manager) Login(ctx context.Context, user *model.User) error {
	if err := m.store.Set(ctx, KeyLoggedInUser, user.Username); err != nil {
		return fmt.Errorf("failed to store session user: %w", err)
	}
	if err := m.store.Set(ctx, KeyLoggedInRole, user.Role); err != nil {
		return fmt.Errorf("failed to store session role: %w", err)
	}
	return nil
}

// Logout clears both session fields
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Remove(ctx, KeyLoggedInUser); err != nil {
		return fmt.Errorf("failed to clear session user: %w", err)
	}
	if err := m.store.Remove(ctx, KeyLoggedInRole); err != nil {
		return fmt.Errorf("failed to clear session role: %w", err)
	}
	return nil
}

// Current returns the user record for the stored username, or nil when there is
// no session or the username no longer exists in the users collection.
func (m *Manager) Current(ctx context.Context) (*model.User, error) {
	username, ok, err := m.store.Get(ctx, KeyLoggedInUser)
	if err != nil {
		return nil, fmt.Errorf("failed to read session user: %w", err)
	}
	if !ok || username == "" {
		return nil, nil
	}
	return m.users.FindByUsername(ctx, username)
}

// CachedRole returns the role stored at login time, possibly stale.
func (m *Manager) CachedRole(ctx context.Context) (string, error) {
	role, _, err := m.store.Get(ctx, KeyLoggedInRole)
	if err != nil {
		return "", fmt.Errorf("failed to read session role: %w", err)
	}
	return role, nil
}

// HasRole reports whether the current user exists and holds role
func (m *Manager) HasRole(ctx context.Context, role string) (bool, error) {
	user, err := m.Current(ctx)
	if err != nil {
		return false, err
	}
	return user != nil && user.Role == role, nil
}
