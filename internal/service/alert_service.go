package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"cyber_portal/internal/model"
	"cyber_portal/internal/repository"
)

// Where a loaded alert list came from
const (
	AlertSourceRemote  = "remote"
	AlertSourceCache   = "cache"
	AlertSourceDefault = "default"
)

var ErrAlertSourceDisabled = errors.New("no alert source configured")

// AlertSource fetches the external alerts document
type AlertSource interface {
	Fetch(ctx context.Context) ([]model.Alert, error)
}

// HTTPAlertSource GETs a JSON array of alerts from URL
type HTTPAlertSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPAlertSource creates an HTTPAlertSource with its own client timeout
func NewHTTPAlertSource(url string, timeout time.Duration) *HTTPAlertSource {
	return &HTTPAlertSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPAlertSource) Fetch(ctx context.Context) ([]model.Alert, error) {
	if s.URL == "" {
		return nil, ErrAlertSourceDisabled
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build alerts request: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch alerts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch alerts: unexpected status %d", resp.StatusCode)
	}
	var alerts []model.Alert
	if err := json.NewDecoder(resp.Body).Decode(&alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alerts: %w", err)
	}
	return alerts, nil
}

// AlertService loads alerts with a three step fallback: external source, local cache, embedded defaults.
type AlertService interface {
	Load(ctx context.Context) ([]model.Alert, string)
}

type alertService struct {
	source AlertSource
	cache  repository.AlertCache
}

func NewAlertService(source AlertSource, cache repository.AlertCache) AlertService {
	return &alertService{source: source, cache: cache}
}

// Load never fails; the second value names the tier that supplied the list.
func (s *alertService) Load(ctx context.Context) ([]model.Alert, string) {
	alerts, err := s.source.Fetch(ctx)
	if err == nil {
		if alerts == nil {
			alerts = []model.Alert{}
		}
		if err := s.cache.Save(ctx, alerts); err != nil {
			log.Printf("WARN: Failed to cache fetched alerts: %v", err)
		}
		return alerts, AlertSourceRemote
	}
	if !errors.Is(err, ErrAlertSourceDisabled) {
		log.Printf("WARN: Falling back from external alerts: %v", err)
	}

	cached, err := s.cache.Load(ctx)
	if err != nil {
		log.Printf("WARN: Ignoring unreadable alert cache: %v", err)
	} else if len(cached) > 0 {
		return cached, AlertSourceCache
	}

	return model.DefaultAlerts(), AlertSourceDefault
}
