package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cyber_portal/internal/model"
	"cyber_portal/internal/repository"
)

// maxIDAttempts bounds id regeneration when a freshly generated id is already taken
const maxIDAttempts = 3

// ComplaintService defines the complaint lifecycle
type ComplaintService interface {
	FileComplaint(ctx context.Context, actor *model.User, req model.CreateComplaintRequest) (*model.Complaint, error)
	LookupComplaint(ctx context.Context, id string) (*model.Complaint, error)
	SetStatus(ctx context.Context, actor *model.User, id, status string) (*model.Complaint, error)

	// Police methods
	ListComplaints(ctx context.Context, actor *model.User) ([]model.Complaint, error)
	Dashboard(ctx context.Context, actor *model.User) (*model.Dashboard, error)
}

type complaintService struct {
	repo      repository.ComplaintRepository
	feedbacks repository.FeedbackRepository
	ids       *IDGenerator
	now       func() time.Time
}

// NewComplaintService creates a new ComplaintService
func NewComplaintService(repo repository.ComplaintRepository, feedbacks repository.FeedbackRepository, ids *IDGenerator) ComplaintService {
	return &complaintService{repo: repo, feedbacks: feedbacks, ids: ids, now: time.Now}
}

func requireRole(actor *model.User, role string) error {
	if actor == nil || actor.Role != role {
		return ErrAccessDenied
	}
	return nil
}

// FileComplaint records a new complaint for a logged-in citizen and returns it with its id
func (s *complaintService) FileComplaint(ctx context.Context, actor *model.User, req model.CreateComplaintRequest) (*model.Complaint, error) {
	if err := requireRole(actor, model.RoleUser); err != nil {
		return nil, err
	}

	complaint := &model.Complaint{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Category: strings.TrimSpace(req.Category),
		Details:  strings.TrimSpace(req.Details),
		Status:   model.StatusPending,
		FiledBy:  actor.Username,
	}
	required := []struct{ field, value string }{
		{"name", complaint.Name},
		{"email", complaint.Email},
		{"phone", complaint.Phone},
		{"category", complaint.Category},
		{"details", complaint.Details},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrValidation, r.field)
		}
	}
	complaint.CreatedAt = s.now().Format(model.TimestampLayout)

	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		complaint.ID = s.ids.NewID()
		err = s.repo.Create(ctx, complaint)
		if !errors.Is(err, repository.ErrDuplicateKey) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create complaint in repo: %w", err)
	}
	return complaint, nil
}

// LookupComplaint is public: anyone holding an id may track it
func (s *complaintService) LookupComplaint(ctx context.Context, id string) (*model.Complaint, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: complaint id is required", ErrValidation)
	}
	complaint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find complaint by ID: %w", err)
	}
	if complaint == nil {
		return nil, ErrNotFound
	}
	return complaint, nil
}

// SetStatus overwrites the status of complaint id. Any settable status may follow any other.
func (s *complaintService) SetStatus(ctx context.Context, actor *model.User, id, status string) (*model.Complaint, error) {
	if err := requireRole(actor, model.RolePolice); err != nil {
		return nil, err
	}
	if !model.IsSettableStatus(status) {
		return nil, fmt.Errorf("%w: status must be one of %s", ErrValidation, strings.Join(model.StatusActions, ", "))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update complaint status in repo: %w", err)
	}

	complaint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload complaint: %w", err)
	}
	if complaint == nil {
		return nil, ErrNotFound
	}
	return complaint, nil
}

// --- Police Methods ---

func (s *complaintService) ListComplaints(ctx context.Context, actor *model.User) ([]model.Complaint, error) {
	if err := requireRole(actor, model.RolePolice); err != nil {
		return nil, err
	}
	complaints, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

// Dashboard returns every complaint with its status actions, plus all feedback
func (s *complaintService) Dashboard(ctx context.Context, actor *model.User) (*model.Dashboard, error) {
	complaints, err := s.ListComplaints(ctx, actor)
	if err != nil {
		return nil, err
	}
	feedbacks, err := s.feedbacks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	dashboard := &model.Dashboard{
		Complaints: make([]model.DashboardEntry, 0, len(complaints)),
		Feedbacks:  feedbacks,
	}
	for _, c := range complaints {
		actions := make([]string, len(model.StatusActions))
		copy(actions, model.StatusActions)
		dashboard.Complaints = append(dashboard.Complaints, model.DashboardEntry{Complaint: c, Actions: actions})
	}
	return dashboard, nil
}
