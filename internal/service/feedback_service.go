package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cyber_portal/internal/model"
	"cyber_portal/internal/repository"
)

// FeedbackService accepts and lists citizen feedback. No login is needed for either.
type FeedbackService interface {
	Submit(ctx context.Context, req model.FeedbackRequest) (*model.Feedback, error)
	List(ctx context.Context) ([]model.Feedback, error)
}

type feedbackService struct {
	repo repository.FeedbackRepository
	now  func() time.Time
}

func NewFeedbackService(repo repository.FeedbackRepository) FeedbackService {
	return &feedbackService{repo: repo, now: time.Now}
}

func (s *feedbackService) Submit(ctx context.Context, req model.FeedbackRequest) (*model.Feedback, error) {
	feedback := &model.Feedback{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
		Date:    s.now().Format(model.TimestampLayout),
	}
	if err := s.repo.Prepend(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to save feedback in repo: %w", err)
	}
	return feedback, nil
}

func (s *feedbackService) List(ctx context.Context) ([]model.Feedback, error) {
	feedbacks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback from repo: %w", err)
	}
	return feedbacks, nil
}
