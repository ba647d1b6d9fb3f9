package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"cyber_portal/internal/model"
	"cyber_portal/internal/repository"
	"cyber_portal/internal/service"
	"cyber_portal/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryOpener(st store.Store) opener {
	return func(ctx context.Context) (store.Store, func(), error) {
		return st, func() {}, nil
	}
}

func run(t *testing.T, st store.Store, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out, memoryOpener(st))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ee *exitErr
	require.True(t, errors.As(err, &ee), "expected exitErr, got %v", err)
	return ee.code
}

func seededStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	st := store.NewMemoryStore()
	_, err := run(t, st, "init")
	require.NoError(t, err)
	return st
}

func fileComplaint(t *testing.T, st store.Store) *model.Complaint {
	t.Helper()
	ctx := context.Background()
	citizen, err := repository.NewUserRepository(st).FindByUsername(ctx, "user1")
	require.NoError(t, err)
	complaint, err := newComplaintService(st).FileComplaint(ctx, citizen, model.CreateComplaintRequest{
		Name: "Demo User", Email: "user1@example.com", Phone: "5550100", Category: "Phishing", Details: "lost money",
	})
	require.NoError(t, err)
	return complaint
}

func TestInit_SeedsDefaults(t *testing.T) {
	st := store.NewMemoryStore()
	out, err := run(t, st, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "defaults seeded")

	users, err := repository.NewUserRepository(st).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestLookup(t *testing.T) {
	st := seededStore(t)
	complaint := fileComplaint(t, st)

	out, err := run(t, st, "lookup", complaint.ID)
	require.NoError(t, err)
	var got model.Complaint
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, complaint.ID, got.ID)
	assert.Equal(t, model.StatusPending, got.Status)

	_, err = run(t, st, "lookup", "CYP000000000")
	assert.Equal(t, 1, exitCode(t, err))
}

func TestComplaints_RequiresPolice(t *testing.T) {
	st := seededStore(t)
	fileComplaint(t, st)

	_, err := run(t, st, "complaints", "--username", "user1", "--password", "user123")
	assert.Equal(t, 1, exitCode(t, err))

	_, err = run(t, st, "complaints", "--username", "police1", "--password", "wrong")
	assert.Equal(t, 1, exitCode(t, err))

	out, err := run(t, st, "complaints", "--username", "police1", "--password", "police123")
	require.NoError(t, err)
	var got []model.Complaint
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 1)
}

func TestSetStatus(t *testing.T) {
	st := seededStore(t)
	complaint := fileComplaint(t, st)

	out, err := run(t, st, "set-status", complaint.ID, model.StatusResolved, "--username", "police1", "--password", "police123")
	require.NoError(t, err)
	var got model.Complaint
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, model.StatusResolved, got.Status)

	_, err = run(t, st, "set-status", complaint.ID, "Closed", "--username", "police1", "--password", "police123")
	assert.Equal(t, 1, exitCode(t, err))

	_, err = run(t, st, "set-status", complaint.ID, model.StatusResolved)
	assert.Error(t, err, "credentials are required")
}

func TestFeedback(t *testing.T) {
	st := seededStore(t)
	_, err := service.NewFeedbackService(repository.NewFeedbackRepository(st)).
		Submit(context.Background(), model.FeedbackRequest{Name: "A", Message: "thanks"})
	require.NoError(t, err)

	out, err := run(t, st, "feedback")
	require.NoError(t, err)
	var got []model.Feedback
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "thanks", got[0].Message)
}

func TestOpenFailureIsConfigError(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd(&out, func(ctx context.Context) (store.Store, func(), error) {
		return nil, nil, errors.New("dial tcp: refused")
	})
	root.SetArgs([]string{"feedback"})
	err := root.Execute()
	assert.Equal(t, 3, exitCode(t, err))
}
