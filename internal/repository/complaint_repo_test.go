package repository

import (
	"context"
	"testing"

	"cyber_portal/internal/model"
	"cyber_portal/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComplaint(id string) *model.Complaint {
	return &model.Complaint{
		ID: id, Name: "A", Email: "a@example.com", Phone: "1", Category: "Phishing",
		Details: "lost money", Status: model.StatusPending, CreatedAt: "2025-09-01 10:00:00", FiledBy: "user1",
	}
}

func TestComplaintRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewComplaintRepository(store.NewMemoryStore())

	require.NoError(t, repo.Create(ctx, newComplaint("CYP123456789")))
	assert.ErrorIs(t, repo.Create(ctx, newComplaint("CYP123456789")), ErrDuplicateKey)

	found, err := repo.FindByID(ctx, "cyp123456789")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "CYP123456789", found.ID)
	assert.Equal(t, "lost money", found.Details)

	missing, err := repo.FindByID(ctx, "CYP000000000")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestComplaintRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewComplaintRepository(store.NewMemoryStore())
	require.NoError(t, repo.Create(ctx, newComplaint("CYP111111111")))

	require.NoError(t, repo.UpdateStatus(ctx, "CYP111111111", model.StatusResolved))
	c, _ := repo.FindByID(ctx, "CYP111111111")
	assert.Equal(t, model.StatusResolved, c.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, "CYP000000000", model.StatusResolved), ErrNotFound)
	// status changes match the id exactly
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "cyp111111111", model.StatusRejected), ErrNotFound)
}

func TestComplaintRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewComplaintRepository(store.NewMemoryStore())

	empty, err := repo.ListNewestFirst(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, id := range []string{"CYP1", "CYP2", "CYP3"} {
		require.NoError(t, repo.Create(ctx, newComplaint(id)))
	}
	all, err := repo.ListNewestFirst(ctx)
	require.NoError(t, err)
	ids := []string{}
	for _, c := range all {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"CYP3", "CYP2", "CYP1"}, ids)
}

func TestComplaintRepository_CorruptRecord(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing status", `[{"id":"CYP1"}]`},
		{"unknown status", `[{"id":"CYP1","status":"Closed"}]`},
		{"missing id", `[{"status":"Resolved"}]`},
		{"not an array", `{"id":"CYP1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := store.NewMemoryStore()
			require.NoError(t, s.Set(ctx, KeyComplaints, tt.raw))

			_, err := NewComplaintRepository(s).ListNewestFirst(ctx)
			assert.ErrorIs(t, err, ErrCorruptStore)
			_, err = NewComplaintRepository(s).FindByID(ctx, "CYP1")
			assert.ErrorIs(t, err, ErrCorruptStore)
		})
	}
}

func TestComplaintRepository_AcceptsEveryStatus(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	repo := NewComplaintRepository(s)
	require.NoError(t, repo.Create(ctx, newComplaint("CYP1")))

	for _, status := range model.StatusActions {
		require.NoError(t, repo.UpdateStatus(ctx, "CYP1", status))
		got, err := repo.FindByID(ctx, "CYP1")
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}
}
