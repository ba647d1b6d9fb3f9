package repository

import (
	"context"
	"fmt"

	"cyber_portal/internal/model"
	"cyber_portal/internal/store"
)

// FeedbackRepository stores citizen feedback newest first
type FeedbackRepository interface {
	Prepend(ctx context.Context, feedback *model.Feedback) error
	List(ctx context.Context) ([]model.Feedback, error)
}

type feedbackRepository struct {
	store store.Store
}

func NewFeedbackRepository(s store.Store) FeedbackRepository {
	return &feedbackRepository{store: s}
}

// Prepend inserts feedback at the front of the collection
func (r *feedbackRepository) Prepend(ctx context.Context, feedback *model.Feedback) error {
	err := updateCollection(ctx, r.store, KeyFeedbacks, nil, func(all []model.Feedback) ([]model.Feedback, error) {
		return append([]model.Feedback{*feedback}, all...), nil
	})
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// List returns feedback in stored order
func (r *feedbackRepository) List(ctx context.Context) ([]model.Feedback, error) {
	return loadCollection[model.Feedback](ctx, r.store, KeyFeedbacks, nil)
}
