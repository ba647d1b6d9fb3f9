package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cyber_portal/internal/middleware"
	"cyber_portal/internal/model"
	"cyber_portal/internal/repository"
	"cyber_portal/internal/service"
	"cyber_portal/internal/store"
	"cyber_portal/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	store  *store.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	st := store.NewMemoryStore()
	require.NoError(t, repository.InitDefaults(context.Background(), st))

	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	userRepo := repository.NewUserRepository(st)
	feedbackRepo := repository.NewFeedbackRepository(st)

	authHandler := NewAuthHandler(service.NewAuthService(userRepo, 0), jwtUtil, st, userRepo)
	complaintHandler := NewComplaintHandler(service.NewComplaintService(repository.NewComplaintRepository(st), feedbackRepo, service.NewIDGenerator()))
	feedbackHandler := NewFeedbackHandler(service.NewFeedbackService(feedbackRepo))
	alertHandler := NewAlertHandler(service.NewAlertService(service.NewHTTPAlertSource("", 0), repository.NewAlertCache(st)))

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.SessionMiddleware(jwtUtil, st, userRepo))
	authHandler.RegisterAuthRoutes(api)
	complaintHandler.RegisterComplaintRoutes(api, middleware.CitizenMiddleware(), middleware.PoliceMiddleware())
	feedbackHandler.RegisterFeedbackRoutes(api)
	alertHandler.RegisterAlertRoutes(api)
	return &testServer{router: r, store: st}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var decoded map[string]any
	if strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func (s *testServer) login(t *testing.T, username, password, role string) (string, map[string]any) {
	t.Helper()
	w, body := s.do(t, http.MethodPost, "/api/v1/auth/login", "", model.LoginRequest{Username: username, Password: password, Role: role})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return body["token"].(string), body
}

func complaintBody() model.CreateComplaintRequest {
	return model.CreateComplaintRequest{
		Name: "Demo User", Email: "user1@example.com", Phone: "5550100",
		Category: "Phishing", Details: "lost money",
	}
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		body   model.RegisterRequest
		status int
	}{
		{"new citizen", model.RegisterRequest{Name: "Alice", Email: "a@x.com", Username: "alice", Password: "pw", Role: model.RoleUser}, http.StatusCreated},
		{"duplicate differing only in case", model.RegisterRequest{Username: "ALICE", Password: "pw2", Role: model.RoleUser}, http.StatusConflict},
		{"invalid role", model.RegisterRequest{Username: "bob", Password: "pw", Role: "admin"}, http.StatusBadRequest},
		{"missing password", model.RegisterRequest{Username: "carol", Role: model.RoleUser}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := s.do(t, http.MethodPost, "/api/v1/auth/register", "", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestLogin_RedirectsByRole(t *testing.T) {
	s := newTestServer(t)

	_, body := s.login(t, "police1", "police123", model.RolePolice)
	assert.Equal(t, service.RedirectDashboard, body["redirect"])
	assert.Equal(t, "Welcome Officer! Redirecting...", body["message"])

	_, body = s.login(t, "user1", "user123", model.RoleUser)
	assert.Equal(t, service.RedirectHome, body["redirect"])
	assert.NotContains(t, body, "password")
}

func TestLogin_Failures(t *testing.T) {
	s := newTestServer(t)

	for _, req := range []model.LoginRequest{
		{Username: "user1", Password: "wrong", Role: model.RoleUser},
		{Username: "user1", Password: "user123", Role: model.RolePolice},
		{Username: "USER1", Password: "user123", Role: model.RoleUser},
	} {
		w, body := s.do(t, http.MethodPost, "/api/v1/auth/login", "", req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials!", body["error"])
	}
}

func TestMeAndLogout(t *testing.T) {
	s := newTestServer(t)

	_, body := s.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, false, body["authenticated"])

	token, _ := s.login(t, "user1", "user123", model.RoleUser)
	_, body = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "user1", body["username"])
	assert.Equal(t, "user1@example.com", body["email"])

	w, _ := s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	_, body = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, false, body["authenticated"])
}

func TestLogin_ReusesProfile(t *testing.T) {
	s := newTestServer(t)

	token, _ := s.login(t, "user1", "user123", model.RoleUser)
	w, body := s.do(t, http.MethodPost, "/api/v1/auth/login", token, model.LoginRequest{Username: "police1", Password: "police123", Role: model.RolePolice})
	require.Equal(t, http.StatusOK, w.Code)

	// the old token names the same profile, which now holds the police session
	_, me := s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, "police1", me["username"])
	_, me = s.do(t, http.MethodGet, "/api/v1/auth/me", body["token"].(string), nil)
	assert.Equal(t, "police1", me["username"])
}

func TestComplaint_RoleGates(t *testing.T) {
	s := newTestServer(t)
	policeToken, _ := s.login(t, "police1", "police123", model.RolePolice)
	userToken, _ := s.login(t, "user1", "user123", model.RoleUser)

	w, _ := s.do(t, http.MethodPost, "/api/v1/complaints", "", complaintBody())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/complaints", policeToken, complaintBody())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/police/dashboard", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/police/complaints", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestComplaint_MissingField(t *testing.T) {
	s := newTestServer(t)
	userToken, _ := s.login(t, "user1", "user123", model.RoleUser)

	req := complaintBody()
	req.Details = "   "
	w, body := s.do(t, http.MethodPost, "/api/v1/complaints", userToken, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "details")
}

func TestPortalFlow(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodPost, "/api/v1/auth/register", "", model.RegisterRequest{Username: "alice", Password: "pass1", Role: model.RoleUser})
	require.Equal(t, http.StatusCreated, w.Code)
	userToken, login := s.login(t, "alice", "pass1", model.RoleUser)
	assert.Equal(t, service.RedirectHome, login["redirect"])

	// citizen files
	w, body := s.do(t, http.MethodPost, "/api/v1/complaints", userToken, complaintBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := body["id"].(string)
	assert.Regexp(t, `^CYP\d{9}$`, id)
	assert.Equal(t, "Complaint submitted. Your Complaint ID: "+id, body["message"])

	// anyone can track, case-insensitively
	w, body = s.do(t, http.MethodGet, "/api/v1/complaints/"+strings.ToLower(id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.StatusPending, body["status"])
	assert.Equal(t, "alice", body["filed_by"])
	assert.Equal(t, "lost money", body["details"])

	w, body = s.do(t, http.MethodGet, "/api/v1/complaints/CYP000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Complaint ID not found.", body["error"])

	// feedback is public and newest first
	for _, msg := range []string{"first", "second"} {
		w, _ = s.do(t, http.MethodPost, "/api/v1/feedback", "", model.FeedbackRequest{Name: "A", Message: msg})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// police triage
	policeToken, _ := s.login(t, "police1", "police123", model.RolePolice)
	w, _ = s.do(t, http.MethodGet, "/api/v1/police/dashboard", policeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dashboard model.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
	require.Len(t, dashboard.Complaints, 1)
	assert.Equal(t, id, dashboard.Complaints[0].ID)
	assert.Equal(t, model.StatusActions, dashboard.Complaints[0].Actions)
	require.Len(t, dashboard.Feedbacks, 2)
	assert.Equal(t, "second", dashboard.Feedbacks[0].Message)

	path := "/api/v1/police/complaints/" + id + "/status"
	w, _ = s.do(t, http.MethodPut, path, policeToken, model.UpdateStatusRequest{Status: "Closed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPut, "/api/v1/police/complaints/CYP000000000/status", policeToken, model.UpdateStatusRequest{Status: model.StatusResolved})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodPut, path, userToken, model.UpdateStatusRequest{Status: model.StatusResolved})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = s.do(t, http.MethodPut, path, policeToken, model.UpdateStatusRequest{Status: model.StatusResolved})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.StatusResolved, body["status"])

	_, body = s.do(t, http.MethodGet, "/api/v1/complaints/"+id, "", nil)
	assert.Equal(t, model.StatusResolved, body["status"])

	w, _ = s.do(t, http.MethodGet, "/api/v1/police/complaints", policeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []model.Complaint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
}

func TestFeedbackList(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(t, http.MethodGet, "/api/v1/feedback", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestAlerts_FallBackWithoutSource(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(t, http.MethodGet, "/api/v1/alerts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["alerts"])
	assert.NotEqual(t, service.AlertSourceRemote, body["source"])
}

func TestCorruptStoreIsServerError(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.store.Set(context.Background(), repository.KeyFeedbacks, "{not json"))

	w, body := s.do(t, http.MethodGet, "/api/v1/feedback", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to retrieve feedback", body["error"])
}

func TestExpiredTokenIsAnonymous(t *testing.T) {
	s := newTestServer(t)
	expired, err := utils.NewJWTUtil("test-secret", -1).GenerateToken("p-old")
	require.NoError(t, err)

	userToken, _ := s.login(t, "user1", "user123", model.RoleUser)
	w, body := s.do(t, http.MethodPost, "/api/v1/complaints", userToken, complaintBody())
	require.Equal(t, http.StatusCreated, w.Code)
	id := body["id"].(string)

	w, body = s.do(t, http.MethodGet, "/api/v1/complaints/"+id, expired, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, body["id"])

	w, _ = s.do(t, http.MethodGet, "/api/v1/alerts", expired, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/feedback", expired, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	_, body = s.do(t, http.MethodGet, "/api/v1/auth/me", expired, nil)
	assert.Equal(t, false, body["authenticated"])

	// gated routes still deny
	w, _ = s.do(t, http.MethodPost, "/api/v1/complaints", expired, complaintBody())
	assert.Equal(t, http.StatusForbidden, w.Code)

	// login starts a fresh profile
	w, body = s.do(t, http.MethodPost, "/api/v1/auth/login", expired, model.LoginRequest{Username: "police1", Password: "police123", Role: model.RolePolice})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	fresh := body["token"].(string)
	assert.NotEqual(t, expired, fresh)

	_, me := s.do(t, http.MethodGet, "/api/v1/auth/me", fresh, nil)
	assert.Equal(t, "police1", me["username"])
}
