// Package store provides the key-value string store that backs every portal collection.
package store

import (
	"context"
	"errors"
)

var (
	// ErrConflict is returned by Update when another writer changed the key between read and write.
	ErrConflict = errors.New("store: concurrent update conflict")
)

// UpdateFunc receives the current value (ok is false when the key is absent) and returns the new value.
type UpdateFunc func(current string, ok bool) (string, error)

// Store is a synchronous key-value string store
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	// Update performs a read-modify-write of a single key. If fn returns an error
	// nothing is written and the error is returned unchanged.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Ping(ctx context.Context) error
}

// prefixed namespaces every key of an underlying store
type prefixed struct {
	base   Store
	prefix string
}

// WithPrefix returns a Store that stores every key as prefix+key in base.
func WithPrefix(base Store, prefix string) Store {
	return &prefixed{base: base, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.base.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.base.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.base.Remove(ctx, p.prefix+key)
}

func (p *prefixed) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return p.base.Update(ctx, p.prefix+key, fn)
}

func (p *prefixed) Ping(ctx context.Context) error {
	return p.base.Ping(ctx)
}
