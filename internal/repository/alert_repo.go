package repository

import (
	"context"
	"errors"

	"cyber_portal/internal/model"
	"cyber_portal/internal/store"
)

// AlertCache keeps the last successfully fetched alert list
type AlertCache interface {
	Load(ctx context.Context) ([]model.Alert, error)
	Save(ctx context.Context, alerts []model.Alert) error
}

type alertCache struct {
	store store.Store
}

func NewAlertCache(s store.Store) AlertCache {
	return &alertCache{store: s}
}

func checkAlert(a model.Alert) error {
	if a.Title == "" {
		return errors.New("alert without title")
	}
	return nil
}

func (c *alertCache) Load(ctx context.Context) ([]model.Alert, error) {
	return loadCollection(ctx, c.store, KeyAlerts, checkAlert)
}

func (c *alertCache) Save(ctx context.Context, alerts []model.Alert) error {
	return saveCollection(ctx, c.store, KeyAlerts, alerts)
}
