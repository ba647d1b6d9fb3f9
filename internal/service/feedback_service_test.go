package service

import (
	"context"
	"testing"
	"time"

	"cyber_portal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackService_SubmitPrepends(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.feedback.now = func() time.Time { return time.Date(2025, 9, 2, 8, 0, 0, 0, time.Local) }

	a, err := f.feedback.Submit(ctx, model.FeedbackRequest{Name: " A ", Email: "a@example.com", Message: " great portal "})
	require.NoError(t, err)
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, "great portal", a.Message)
	assert.Equal(t, "2025-09-02 08:00:00", a.Date)

	_, err = f.feedback.Submit(ctx, model.FeedbackRequest{Name: "B"})
	require.NoError(t, err)

	list, err := f.feedback.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Name)
	assert.Equal(t, "A", list[1].Name)
}

func TestFeedbackService_EmptySubmissionSucceeds(t *testing.T) {
	f := newFixture(t)
	fb, err := f.feedback.Submit(context.Background(), model.FeedbackRequest{})
	require.NoError(t, err)
	assert.Empty(t, fb.Message)
}
