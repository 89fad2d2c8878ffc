package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"campusfix/internal/models"
	"campusfix/internal/repositories"
)

// fakeTaskRepo is an in-memory TaskRepository with the same version-check
// semantics as the SQL implementation.
type fakeTaskRepo struct {
	tasks  map[int64]models.Task
	nextID int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[int64]models.Task{}, nextID: 1}
}

func (r *fakeTaskRepo) Store(ctx context.Context, task *models.Task) error {
	task.ID = r.nextID
	r.nextID++
	task.Version = 1
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := t
	return &cp, nil
}

func (r *fakeTaskRepo) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	out := []models.Task{}
	for _, t := range r.tasks {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *models.Task) error {
	stored, ok := r.tasks[task.ID]
	if !ok || stored.Version != task.Version {
		return repositories.ErrStaleTask
	}
	task.Version++
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id int64) error {
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) CountByStatus(ctx context.Context) (map[models.TaskStatus]int, error) {
	out := map[models.TaskStatus]int{}
	for _, t := range r.tasks {
		out[t.Status]++
	}
	return out, nil
}

func (r *fakeTaskRepo) CountByWorkType(ctx context.Context) (map[int64]int, error) {
	out := map[int64]int{}
	for _, t := range r.tasks {
		out[t.WorkTypeID]++
	}
	return out, nil
}

type fakeImageStore struct {
	deleted []string
}

func (s *fakeImageStore) Delete(ctx context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

func newTestTaskService(t *testing.T) (TaskService, *fakeTaskRepo, *fakeImageStore) {
	t.Helper()
	repo := newFakeTaskRepo()
	images := &fakeImageStore{}
	return NewTaskService(repo, images), repo, images
}

func validInput() TaskInput {
	return TaskInput{
		Title:       "Leaky faucet",
		Description: "Faucet drips in hostel B washroom",
		WorkTypeID:  2,
		Area:        "Hostel B",
	}
}

func TestCreateStartsPendingWithSeedHistory(t *testing.T) {
	svc, _, _ := newTestTaskService(t)

	task, err := svc.Create(context.Background(), validInput(), 7)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, task.Status)
	require.Len(t, task.History, 1)
	require.Equal(t, models.StatusPending, task.History[0].Status)
	require.NotNil(t, task.History[0].ChangedBy)
	require.Equal(t, int64(7), *task.History[0].ChangedBy)
	require.NotNil(t, task.CreatedBy)
}

func TestCreatePublicStartsAwaitingApproval(t *testing.T) {
	svc, _, _ := newTestTaskService(t)

	task, err := svc.CreatePublic(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, models.StatusAwaitingApproval, task.Status)
	require.Nil(t, task.CreatedBy)
	require.Len(t, task.History, 1)
	require.Nil(t, task.History[0].ChangedBy)
	require.Equal(t, "Public submission", task.History[0].Remarks)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestTaskService(t)
	ctx := context.Background()

	in := validInput()
	in.Title = "   "
	_, err := svc.Create(ctx, in, 1)
	require.ErrorIs(t, err, ErrValidation)

	in = validInput()
	in.WorkTypeID = 0
	_, err = svc.Create(ctx, in, 1)
	require.ErrorIs(t, err, ErrValidation)

	in = validInput()
	in.WorkNature = "Demolition"
	_, err = svc.Create(ctx, in, 1)
	require.ErrorIs(t, err, ErrValidation)
}

func TestApproveMovesAwaitingToPending(t *testing.T) {
	svc, _, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.CreatePublic(ctx, validInput())
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, task.ID, 3)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, approved.Status)
	require.Len(t, approved.History, 2)
	require.Equal(t, "Approved by admin", approved.History[1].Remarks)
	require.Equal(t, int64(3), *approved.History[1].ChangedBy)
}

func TestApproveRejectsNonAwaitingTask(t *testing.T) {
	svc, _, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, validInput(), 1)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, task.ID, 1)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRejectDeletesTaskAndImages(t *testing.T) {
	svc, repo, images := newTestTaskService(t)
	ctx := context.Background()

	in := validInput()
	in.Images = []string{"https://bucket.s3/tasks/a.jpg", "https://bucket.s3/tasks/b.jpg"}
	task, err := svc.CreatePublic(ctx, in)
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, task.ID, 1))
	require.Empty(t, repo.tasks)
	require.ElementsMatch(t, in.Images, images.deleted)
}

func TestRejectRefusesApprovedTask(t *testing.T) {
	svc, _, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, validInput(), 1)
	require.NoError(t, err)

	err = svc.Reject(ctx, task.ID, 1)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusKeepsHistoryInLockstep(t *testing.T) {
	svc, _, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, validInput(), 1)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, task.ID, StatusInput{
		Status:  models.StatusInProgress,
		Remarks: "Plumber on site",
	}, 4)
	require.NoError(t, err)
	require.Equal(t, models.StatusInProgress, updated.Status)
	require.Equal(t, updated.Status, updated.History[len(updated.History)-1].Status)
	require.Equal(t, "Plumber on site", updated.History[1].Remarks)
}

func TestUpdateStatusRefusesAwaitingApproval(t *testing.T) {
	svc, _, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, validInput(), 1)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, task.ID, StatusInput{Status: models.StatusAwaitingApproval}, 1)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(ctx, task.ID, StatusInput{Status: "Cancelled"}, 1)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAssignRecordsAssigneeAndHistory(t *testing.T) {
	svc, _, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, validInput(), 1)
	require.NoError(t, err)

	assigned, err := svc.Assign(ctx, task.ID, AssignInput{
		AssignedTo:    "R. Kumar",
		EstimatedTime: "2 days",
	}, 5)
	require.NoError(t, err)
	require.Equal(t, models.StatusAssigned, assigned.Status)
	require.Equal(t, "R. Kumar", assigned.AssignedTo)
	require.Equal(t, "2 days", assigned.EstimatedTime)
	require.Len(t, assigned.History, 2)

	_, err = svc.Assign(ctx, task.ID, AssignInput{AssignedTo: "  "}, 5)
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateUnionsImagesAndSkipsHistory(t *testing.T) {
	svc, _, _ := newTestTaskService(t)
	ctx := context.Background()

	in := validInput()
	in.Images = []string{"u1", "u2"}
	task, err := svc.Create(ctx, in, 1)
	require.NoError(t, err)

	up := UpdateInput{TaskInput: validInput()}
	up.ExistingImages = []string{"u2"}
	up.Images = []string{"u3"}
	updated, err := svc.Update(ctx, task.ID, up)
	require.NoError(t, err)
	require.Equal(t, []string{"u2", "u3"}, updated.Images)
	require.Len(t, updated.History, 1)

	// empty image lists leave stored images alone
	updated, err = svc.Update(ctx, task.ID, UpdateInput{TaskInput: validInput()})
	require.NoError(t, err)
	require.Equal(t, []string{"u2", "u3"}, updated.Images)
}

func TestConcurrentWriteSurfacesConflict(t *testing.T) {
	svc, repo, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, validInput(), 1)
	require.NoError(t, err)

	// another writer bumps the stored version behind this caller's back
	stored := repo.tasks[task.ID]
	stored.Version++
	repo.tasks[task.ID] = stored

	stale := *task
	err = svc.(*taskService).save(ctx, &stale)
	require.ErrorIs(t, err, ErrConflict)
}

func TestDeleteCleansUpImages(t *testing.T) {
	svc, repo, images := newTestTaskService(t)
	ctx := context.Background()

	in := validInput()
	in.Images = []string{"https://bucket.s3/tasks/x.png"}
	task, err := svc.Create(ctx, in, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, task.ID))
	require.Empty(t, repo.tasks)
	require.Equal(t, in.Images, images.deleted)

	require.ErrorIs(t, svc.Delete(ctx, task.ID), ErrNotFound)
}

// Walks a public report through its whole life: submit, approve, assign,
// start, complete.
func TestPublicSubmissionLifecycle(t *testing.T) {
	svc, _, _ := newTestTaskService(t)
	ctx := context.Background()

	task, err := svc.CreatePublic(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Approve(ctx, task.ID, 1)
	require.NoError(t, err)

	_, err = svc.Assign(ctx, task.ID, AssignInput{AssignedTo: "R. Kumar"}, 1)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, task.ID, StatusInput{Status: models.StatusInProgress}, 2)
	require.NoError(t, err)

	done, err := svc.UpdateStatus(ctx, task.ID, StatusInput{
		Status:     models.StatusCompleted,
		ActualTime: "1 day",
	}, 2)
	require.NoError(t, err)

	require.Equal(t, models.StatusCompleted, done.Status)
	require.Equal(t, "1 day", done.ActualTime)
	require.Len(t, done.History, 5)

	want := []models.TaskStatus{
		models.StatusAwaitingApproval,
		models.StatusPending,
		models.StatusAssigned,
		models.StatusInProgress,
		models.StatusCompleted,
	}
	for i, entry := range done.History {
		require.Equal(t, want[i], entry.Status)
	}
	require.Nil(t, done.History[0].ChangedBy)
	for _, entry := range done.History[1:] {
		require.NotNil(t, entry.ChangedBy)
	}
}
