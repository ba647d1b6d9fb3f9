package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cyber_portal/internal/model"
	"cyber_portal/internal/store"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type userRepository struct {
	store store.Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{store: s}
}

func checkUser(u model.User) error {
	if u.Username == "" {
		return errors.New("user without username")
	}
	return nil
}

// Create appends user unless a username equal to it ignoring case already exists
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := updateCollection(ctx, r.store, KeyUsers, checkUser, func(users []model.User) ([]model.User, error) {
		for _, u := range users {
			if strings.EqualFold(u.Username, user.Username) {
				return nil, ErrDuplicateKey
			}
		}
		return append(users, *user), nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateKey) || errors.Is(err, ErrCorruptStore) {
			return err
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByUsername retrieves a user by exact (case-sensitive) username
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil // Not found
}

// List returns every user in insertion order
func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	return loadCollection(ctx, r.store, KeyUsers, checkUser)
}
