package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cyber_portal/internal/model"
	"cyber_portal/internal/store"
)

// ComplaintRepository defines operations for complaint data
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *model.Complaint) error
	FindByID(ctx context.Context, id string) (*model.Complaint, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListNewestFirst(ctx context.Context) ([]model.Complaint, error)
}

type complaintRepository struct {
	store store.Store
}

// NewComplaintRepository creates a new ComplaintRepository
func NewComplaintRepository(s store.Store) ComplaintRepository {
	return &complaintRepository{store: s}
}

func checkComplaint(c model.Complaint) error {
	if c.ID == "" {
		return errors.New("complaint without id")
	}
	if !model.IsKnownStatus(c.Status) {
		return fmt.Errorf("complaint %s with unknown status %q", c.ID, c.Status)
	}
	return nil
}

// Create appends a complaint; an id already present (compared exactly) yields ErrDuplicateKey
func (r *complaintRepository) Create(ctx context.Context, complaint *model.Complaint) error {
	err := updateCollection(ctx, r.store, KeyComplaints, checkComplaint, func(all []model.Complaint) ([]model.Complaint, error) {
		for _, c := range all {
			if c.ID == complaint.ID {
				return nil, ErrDuplicateKey
			}
		}
		return append(all, *complaint), nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateKey) || errors.Is(err, ErrCorruptStore) {
			return err
		}
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

// FindByID matches the full id ignoring case
func (r *complaintRepository) FindByID(ctx context.Context, id string) (*model.Complaint, error) {
	all, err := loadCollection(ctx, r.store, KeyComplaints, checkComplaint)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if strings.EqualFold(all[i].ID, id) {
			return &all[i], nil
		}
	}
	return nil, nil // Not found
}

// UpdateStatus overwrites the status of the complaint whose id matches exactly
func (r *complaintRepository) UpdateStatus(ctx context.Context, id, status string) error {
	err := updateCollection(ctx, r.store, KeyComplaints, checkComplaint, func(all []model.Complaint) ([]model.Complaint, error) {
		for i := range all {
			if all[i].ID == id {
				all[i].Status = status
				return all, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrCorruptStore) {
			return err
		}
		return fmt.Errorf("failed to update complaint status: %w", err)
	}
	return nil
}

// ListNewestFirst returns complaints in reverse creation order
func (r *complaintRepository) ListNewestFirst(ctx context.Context) ([]model.Complaint, error) {
	all, err := loadCollection(ctx, r.store, KeyComplaints, checkComplaint)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all, nil
}
