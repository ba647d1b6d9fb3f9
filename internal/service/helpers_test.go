package service

import (
	"context"
	"testing"
	"time"

	"cyber_portal/internal/model"
	"cyber_portal/internal/repository"
	"cyber_portal/internal/session"
	"cyber_portal/internal/store"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	store      *store.MemoryStore
	users      repository.UserRepository
	sess       *session.Manager
	auth       AuthService
	complaints *complaintService
	feedback   *feedbackService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := store.NewMemoryStore()
	require.NoError(t, repository.InitDefaults(context.Background(), s))
	users := repository.NewUserRepository(s)
	feedbacks := repository.NewFeedbackRepository(s)
	return &fixture{
		store:      s,
		users:      users,
		sess:       session.NewManager(store.WithPrefix(s, "profile:test:"), users),
		auth:       NewAuthService(users, 800*time.Millisecond),
		complaints: NewComplaintService(repository.NewComplaintRepository(s), feedbacks, NewIDGenerator()).(*complaintService),
		feedback:   NewFeedbackService(feedbacks).(*feedbackService),
	}
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	u, err := f.users.FindByUsername(context.Background(), username)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func validComplaint() model.CreateComplaintRequest {
	return model.CreateComplaintRequest{
		Name: "Demo User", Email: "user1@example.com", Phone: "5550100",
		Category: "Phishing", Details: "lost money",
	}
}
