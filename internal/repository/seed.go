package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"cyber_portal/internal/model"
	"cyber_portal/internal/store"
)

// InitDefaults seeds the collections that are absent: two default users and empty
// complaint and feedback lists. Existing collections are left untouched.
func InitDefaults(ctx context.Context, s store.Store) error {
	defaults := []struct {
		key   string
		value any
	}{
		{KeyUsers, model.DefaultUsers()},
		{KeyComplaints, []model.Complaint{}},
		{KeyFeedbacks, []model.Feedback{}},
	}
	for _, d := range defaults {
		_, ok, err := s.Get(ctx, d.key)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", d.key, err)
		}
		if ok {
			continue
		}
		encoded, err := json.Marshal(d.value)
		if err != nil {
			return fmt.Errorf("failed to encode default %s: %w", d.key, err)
		}
		if err := s.Set(ctx, d.key, string(encoded)); err != nil {
			return fmt.Errorf("failed to seed %s: %w", d.key, err)
		}
		log.Printf("INFO: Seeded default %s", d.key)
	}
	return nil
}
