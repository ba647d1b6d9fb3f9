package service

import (
	"errors"

	"cyber_portal/internal/repository"
	"cyber_portal/internal/store"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateUsername    = errors.New("username already exists")
	ErrAuthenticationFailed = errors.New("invalid credentials")
	ErrAccessDenied         = errors.New("access denied")
	ErrNotFound             = errors.New("complaint not found")

	// Store-level failures, re-exported so handlers only depend on this package
	ErrCorruptStore = repository.ErrCorruptStore
	ErrConflict     = store.ErrConflict
)
