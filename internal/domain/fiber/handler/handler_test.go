package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/resumeready/backend/internal/model"
	"github.com/resumeready/backend/internal/repository"
	"github.com/resumeready/backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	users map[string]*model.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]*model.User)}
}

func (s *memStore) Insert(ctx context.Context, user *model.User) error {
	if _, ok := s.users[user.UserID]; ok {
		return repository.ErrAlreadyExists
	}
	s.users[user.UserID] = user
	return nil
}

func (s *memStore) FindByUserID(ctx context.Context, userID string) (*model.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (s *memStore) SetResume(ctx context.Context, userID, resume string) error {
	user, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.Resume = resume
	return nil
}

func (s *memStore) SetMembership(ctx context.Context, userID, membership string) error {
	user, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.Membership = membership
	return nil
}

func (s *memStore) Append(ctx context.Context, userID string, app model.Application) error {
	user, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.Applications = append(user.Applications, app)
	return nil
}

func (s *memStore) AppendQuestions(ctx context.Context, userID, applicationID string, questions []model.InterviewQuestion) error {
	user, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range user.Applications {
		if user.Applications[i].ID == applicationID {
			user.Applications[i].InterviewQuestions = append(user.Applications[i].InterviewQuestions, questions...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memStore) UpdateStatus(ctx context.Context, userID, applicationID, status string) error {
	user, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range user.Applications {
		if user.Applications[i].ID == applicationID && user.Applications[i].Status != status {
			user.Applications[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memStore) Remove(ctx context.Context, userID, applicationID string) error {
	user, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range user.Applications {
		if user.Applications[i].ID == applicationID {
			user.Applications = append(user.Applications[:i], user.Applications[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type stubEnricher struct{}

func (stubEnricher) Build(ctx context.Context, resume, jobDescription string) (model.Application, error) {
	return model.Application{
		ID:                 uuid.NewString(),
		CompanyName:        "Acme Corp",
		Position:           "Backend Engineer",
		Location:           "Remote",
		JobDescription:     jobDescription,
		ResumeFeedback:     "Add metrics, POINT Trim old tech",
		CoverLetter:        "Dear Hiring Manager,",
		InterviewQuestions: []model.InterviewQuestion{},
		Status:             model.StatusSubmitted,
		DateCreated:        time.Now(),
	}, nil
}

func (stubEnricher) GenerateQuestions(ctx context.Context, resume, jobDescription, questionType string, numQuestions int) ([]model.InterviewQuestion, error) {
	return []model.InterviewQuestion{{Type: "Technical", Question: "Q", Answer: "A"}}, nil
}

func newTestApp(store *memStore) *fiber.App {
	uc := usecase.NewApplicationUsecase(store, store, stubEnricher{})
	app := fiber.New()
	NewUserHandler(uc).RegisterRoutes(app)
	NewApplicationHandler(uc).RegisterRoutes(app)
	NewResumeHandler(uc, nil).RegisterRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSignupValidation(t *testing.T) {
	app := newTestApp(newMemStore())

	resp := postJSON(t, app, "/api/users/signup", fiber.Map{"userId": "uid-1"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSignupThenDuplicate(t *testing.T) {
	app := newTestApp(newMemStore())
	body := fiber.Map{"userId": "uid-1", "email": "jo@example.com", "firstName": "Jo", "lastName": "Doe"}

	resp := postJSON(t, app, "/api/users/signup", body)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/users/signup", body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestGetUserNotFound(t *testing.T) {
	app := newTestApp(newMemStore())

	req := httptest.NewRequest(http.MethodGet, "/api/users/nobody", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAnalyzeTextStatuses(t *testing.T) {
	store := newMemStore()
	store.users["uid-1"] = &model.User{UserID: "uid-1", Resume: "Experienced engineer..."}
	store.users["uid-2"] = &model.User{UserID: "uid-2"}
	app := newTestApp(store)

	// Missing fields.
	resp := postJSON(t, app, "/api/resume/analyzeText", fiber.Map{"userId": "uid-1"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// No stored resume.
	resp = postJSON(t, app, "/api/resume/analyzeText", fiber.Map{"userId": "uid-2", "jobDescription": "job"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Success returns the application.
	resp = postJSON(t, app, "/api/resume/analyzeText", fiber.Map{"userId": "uid-1", "jobDescription": "Backend role at Acme Corp"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope struct {
		Data struct {
			Application model.Application `json:"application"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "Acme Corp", envelope.Data.Application.CompanyName)
	assert.Equal(t, model.StatusSubmitted, envelope.Data.Application.Status)
}

func TestUpdateStatusStatuses(t *testing.T) {
	store := newMemStore()
	store.users["uid-1"] = &model.User{UserID: "uid-1", Applications: []model.Application{
		{ID: "app-1", Status: model.StatusSubmitted},
	}}
	app := newTestApp(store)

	// Unknown status value.
	resp := postJSON(t, app, "/api/applications/updateStatus", fiber.Map{
		"userId": "uid-1", "applicationId": "app-1", "newStatus": "Ghosted",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Missing id.
	resp = postJSON(t, app, "/api/applications/updateStatus", fiber.Map{
		"userId": "uid-1", "applicationId": "missing-id", "newStatus": model.StatusInterviewing,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Success.
	resp = postJSON(t, app, "/api/applications/updateStatus", fiber.Map{
		"userId": "uid-1", "applicationId": "app-1", "newStatus": model.StatusInterviewing,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDeleteStatuses(t *testing.T) {
	store := newMemStore()
	store.users["uid-1"] = &model.User{UserID: "uid-1", Applications: []model.Application{
		{ID: "app-1", Status: model.StatusSubmitted},
	}}
	app := newTestApp(store)

	resp := postJSON(t, app, "/api/applications/delete", fiber.Map{"userId": "uid-1", "applicationId": "app-1"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = postJSON(t, app, "/api/applications/delete", fiber.Map{"userId": "uid-1", "applicationId": "app-1"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListApplicationsEndpoint(t *testing.T) {
	store := newMemStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.users["uid-1"] = &model.User{UserID: "uid-1", Applications: []model.Application{
		{ID: "a", Status: model.StatusSubmitted, DateCreated: base},
		{ID: "b", Status: model.StatusSubmitted, DateCreated: base.Add(time.Hour)},
	}}
	app := newTestApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/users/uid-1/applications?page=1&page_size=1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope struct {
		Data       []model.Application `json:"data"`
		Pagination struct {
			TotalItems int64 `json:"total_items"`
			HasMore    bool  `json:"has_more"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "b", envelope.Data[0].ID)
	assert.Equal(t, int64(2), envelope.Pagination.TotalItems)
	assert.True(t, envelope.Pagination.HasMore)
}

func TestPlusSuccessRedirects(t *testing.T) {
	store := newMemStore()
	store.users["uid-1"] = &model.User{UserID: "uid-1", Membership: model.MembershipFree}
	app := newTestApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/plus/success?session_id=sess&userId=uid-1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	assert.Equal(t, model.MembershipPlus, store.users["uid-1"].Membership)
}
