package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"campusfix/internal/models"
	"campusfix/internal/realtime"
	"campusfix/internal/services"
)

// stubTaskService hands back canned results and records the inputs it saw.
type stubTaskService struct {
	task       *models.Task
	err        error
	lastStatus services.StatusInput
	lastAssign services.AssignInput
}

func (s *stubTaskService) Create(ctx context.Context, in services.TaskInput, creatorID int64) (*models.Task, error) {
	return s.task, s.err
}
func (s *stubTaskService) CreatePublic(ctx context.Context, in services.TaskInput) (*models.Task, error) {
	return s.task, s.err
}
func (s *stubTaskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	return s.task, s.err
}
func (s *stubTaskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	if s.task == nil {
		return nil, s.err
	}
	return []models.Task{*s.task}, s.err
}
func (s *stubTaskService) Update(ctx context.Context, id int64, in services.UpdateInput) (*models.Task, error) {
	return s.task, s.err
}
func (s *stubTaskService) Delete(ctx context.Context, id int64) error { return s.err }
func (s *stubTaskService) Assign(ctx context.Context, id int64, in services.AssignInput, actorID int64) (*models.Task, error) {
	s.lastAssign = in
	return s.task, s.err
}
func (s *stubTaskService) UpdateStatus(ctx context.Context, id int64, in services.StatusInput, actorID int64) (*models.Task, error) {
	s.lastStatus = in
	return s.task, s.err
}
func (s *stubTaskService) Approve(ctx context.Context, id int64, actorID int64) (*models.Task, error) {
	return s.task, s.err
}
func (s *stubTaskService) Reject(ctx context.Context, id int64, actorID int64) error { return s.err }

func newTestTaskHandler(svc services.TaskService) *TaskHandler {
	return NewTaskHandler(svc, nil, &stubUploader{}, realtime.NewHub(), nil, nil)
}

func doJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	c.Set("user_id", int64(1))
	handler(c)
	return w
}

func TestApproveEndpoint(t *testing.T) {
	svc := &stubTaskService{task: &models.Task{ID: 12, Status: models.StatusPending}}
	h := newTestTaskHandler(svc)

	w := doJSON(t, h.Approve, http.MethodPost, "/tasks/12/approve", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, models.StatusPending, got.Status)
}

func TestApproveEndpointInvalidTransition(t *testing.T) {
	svc := &stubTaskService{err: fmt.Errorf("%w: task is not awaiting approval", services.ErrInvalidTransition)}
	h := newTestTaskHandler(svc)

	w := doJSON(t, h.Approve, http.MethodPost, "/tasks/12/approve", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssignEndpointRequiresAssignee(t *testing.T) {
	svc := &stubTaskService{task: &models.Task{ID: 12, Status: models.StatusAssigned}}
	h := newTestTaskHandler(svc)

	w := doJSON(t, h.Assign, http.MethodPost, "/tasks/12/assign", map[string]interface{}{
		"materials": []string{"washer"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h.Assign, http.MethodPost, "/tasks/12/assign", map[string]interface{}{
		"assignedTo": "R. Kumar",
		"materials":  []string{"washer"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "R. Kumar", svc.lastAssign.AssignedTo)
	require.Equal(t, []string{"washer"}, svc.lastAssign.Materials)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	svc := &stubTaskService{task: &models.Task{ID: 12, Status: models.StatusCompleted}}
	h := newTestTaskHandler(svc)

	w := doJSON(t, h.UpdateStatus, http.MethodPost, "/tasks/12/status", map[string]interface{}{
		"status":     "Completed",
		"remarks":    "done",
		"actualTime": "3 hours",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, models.StatusCompleted, svc.lastStatus.Status)
	require.Equal(t, "done", svc.lastStatus.Remarks)
	require.Equal(t, "3 hours", svc.lastStatus.ActualTime)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := &stubTaskService{err: services.ErrNotFound}
	h := newTestTaskHandler(svc)

	w := doJSON(t, h.GetByID, http.MethodGet, "/tasks/12", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "task not found", body["error"])
}

func TestTaskFilterFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet,
		"/tasks?status=Pending&workType=3&tags=urgent,leak&dateFrom=2026-01-01", nil)

	filter, err := taskFilterFromQuery(c)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, *filter.Status)
	require.Equal(t, int64(3), *filter.WorkTypeID)
	require.Equal(t, []string{"urgent", "leak"}, filter.Tags)
	require.NotNil(t, filter.DateFrom)
	require.Nil(t, filter.DateTo)

	// gin caches parsed query params on first access, so a reused context
	// would still see the first request's query; use a fresh one.
	c2, _ := gin.CreateTestContext(httptest.NewRecorder())
	c2.Request = httptest.NewRequest(http.MethodGet, "/tasks?status=Bogus", nil)
	_, err = taskFilterFromQuery(c2)
	require.Error(t, err)
}
