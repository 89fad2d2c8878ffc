package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"campusfix/internal/models"
	"campusfix/internal/repositories"
)

// publicSubmissionRemark seeds the history of anonymous intake tasks.
const publicSubmissionRemark = "Public submission"

// ImageStore is the slice of the object store the lifecycle needs: removing
// stored images when a task goes away. Failures are logged, never fatal.
type ImageStore interface {
	Delete(ctx context.Context, url string) error
}

// TaskInput carries the writable task fields shared by the create paths.
type TaskInput struct {
	Title           string
	Description     string
	WorkTypeID      int64
	Area            string
	Materials       []string
	Manpower        string
	EstimatedTime   string
	Tags            []string
	Images          []string // object-storage URLs of freshly uploaded files
	SubmittedByName string
	WorkNature      models.WorkNature
}

// UpdateInput is a field edit: scalars are rewritten, the image list becomes
// union(ExistingImages, Images) with retained URLs first.
type UpdateInput struct {
	TaskInput
	ExistingImages []string
}

type AssignInput struct {
	AssignedTo    string
	Materials     []string
	Manpower      string
	EstimatedTime string
}

type StatusInput struct {
	Status     models.TaskStatus
	Remarks    string
	ActualTime string
	AssignedTo string
}

// TaskService is the task lifecycle controller: the only component that may
// change a task's status, and the component that keeps status and history in
// lockstep.
type TaskService interface {
	Create(ctx context.Context, in TaskInput, creatorID int64) (*models.Task, error)
	CreatePublic(ctx context.Context, in TaskInput) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
	Assign(ctx context.Context, id int64, in AssignInput, actorID int64) (*models.Task, error)
	UpdateStatus(ctx context.Context, id int64, in StatusInput, actorID int64) (*models.Task, error)
	Approve(ctx context.Context, id int64, actorID int64) (*models.Task, error)
	Reject(ctx context.Context, id int64, actorID int64) error
}

type taskService struct {
	repo   repositories.TaskRepository
	images ImageStore
}

// NewTaskService creates a new instance of TaskService. images may be nil
// when no object store is configured; cleanup is then skipped.
func NewTaskService(repo repositories.TaskRepository, images ImageStore) TaskService {
	return &taskService{repo: repo, images: images}
}

func validateTaskInput(in TaskInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if in.WorkTypeID == 0 {
		return fmt.Errorf("%w: workType is required", ErrValidation)
	}
	if in.WorkNature != "" && in.WorkNature != models.NatureRepairWork && in.WorkNature != models.NatureNewWork {
		return fmt.Errorf("%w: unknown workNature %q", ErrValidation, in.WorkNature)
	}
	return nil
}

func newTaskFromInput(in TaskInput) *models.Task {
	now := time.Now()
	return &models.Task{
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		WorkTypeID:      in.WorkTypeID,
		Area:            in.Area,
		Materials:       in.Materials,
		Manpower:        in.Manpower,
		EstimatedTime:   in.EstimatedTime,
		Tags:            in.Tags,
		Images:          in.Images,
		SubmittedByName: in.SubmittedByName,
		WorkNature:      in.WorkNature,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *taskService) Create(ctx context.Context, in TaskInput, creatorID int64) (*models.Task, error) {
	if err := validateTaskInput(in); err != nil {
		return nil, err
	}
	task := newTaskFromInput(in)
	task.Status = models.StatusPending
	task.CreatedBy = &creatorID
	task.History = []models.HistoryEntry{{
		Status:    models.StatusPending,
		ChangedBy: &creatorID,
		ChangedAt: task.CreatedAt,
	}}
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) CreatePublic(ctx context.Context, in TaskInput) (*models.Task, error) {
	if err := validateTaskInput(in); err != nil {
		return nil, err
	}
	task := newTaskFromInput(in)
	task.Status = models.StatusAwaitingApproval
	task.CreatedBy = nil
	task.History = []models.HistoryEntry{{
		Status:    models.StatusAwaitingApproval,
		ChangedBy: nil,
		ChangedAt: task.CreatedAt,
		Remarks:   publicSubmissionRemark,
	}}
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return task, nil
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *taskService) Update(ctx context.Context, id int64, in UpdateInput) (*models.Task, error) {
	if err := validateTaskInput(in.TaskInput); err != nil {
		return nil, err
	}
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(in.Title)
	task.Description = in.Description
	task.WorkTypeID = in.WorkTypeID
	task.Area = in.Area
	task.Materials = in.Materials
	task.Manpower = in.Manpower
	task.EstimatedTime = in.EstimatedTime
	task.Tags = in.Tags
	task.SubmittedByName = in.SubmittedByName
	task.WorkNature = in.WorkNature

	// Retained images first, fresh uploads appended. An empty combined list
	// leaves the stored images untouched, matching the admin form's contract.
	if len(in.ExistingImages)+len(in.Images) > 0 {
		task.Images = append(append([]string{}, in.ExistingImages...), in.Images...)
	}

	// Field edits do not touch status and leave no history entry.
	task.UpdatedAt = time.Now()
	if err := s.save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.cleanupImages(ctx, task)
	return s.repo.Delete(ctx, id)
}

func (s *taskService) Assign(ctx context.Context, id int64, in AssignInput, actorID int64) (*models.Task, error) {
	if strings.TrimSpace(in.AssignedTo) == "" {
		return nil, fmt.Errorf("%w: assignedTo is required", ErrValidation)
	}
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task.AssignedTo = in.AssignedTo
	if len(in.Materials) > 0 {
		task.Materials = in.Materials
	}
	if in.Manpower != "" {
		task.Manpower = in.Manpower
	}
	if in.EstimatedTime != "" {
		task.EstimatedTime = in.EstimatedTime
	}

	s.appendHistory(task, models.StatusAssigned, &actorID, "")
	if err := s.save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) UpdateStatus(ctx context.Context, id int64, in StatusInput, actorID int64) (*models.Task, error) {
	if !IsSettableStatus(in.Status) {
		return nil, fmt.Errorf("%w: status %q is not settable", ErrInvalidTransition, in.Status)
	}
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.ActualTime != "" {
		task.ActualTime = in.ActualTime
	}
	if strings.TrimSpace(in.AssignedTo) != "" {
		task.AssignedTo = in.AssignedTo
	}

	s.appendHistory(task, in.Status, &actorID, in.Remarks)
	if err := s.save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Approve(ctx context.Context, id int64, actorID int64) (*models.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status != models.StatusAwaitingApproval {
		return nil, fmt.Errorf("%w: task is not awaiting approval", ErrInvalidTransition)
	}

	s.appendHistory(task, models.StatusPending, &actorID, "Approved by admin")
	if err := s.save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Reject removes an awaiting-approval task outright; no history survives.
func (s *taskService) Reject(ctx context.Context, id int64, actorID int64) error {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if task.Status != models.StatusAwaitingApproval {
		return fmt.Errorf("%w: task is not awaiting approval", ErrInvalidTransition)
	}
	s.cleanupImages(ctx, task)
	return s.repo.Delete(ctx, id)
}

// appendHistory moves the task to the given status and records exactly one
// history entry, keeping task.Status equal to history[last].Status.
func (s *taskService) appendHistory(task *models.Task, to models.TaskStatus, actorID *int64, remarks string) {
	now := time.Now()
	task.Status = to
	task.History = append(task.History, models.HistoryEntry{
		Status:    to,
		ChangedBy: actorID,
		ChangedAt: now,
		Remarks:   remarks,
	})
	task.UpdatedAt = now
}

func (s *taskService) save(ctx context.Context, task *models.Task) error {
	if err := s.repo.Update(ctx, task); err != nil {
		if errors.Is(err, repositories.ErrStaleTask) {
			return fmt.Errorf("%w: task %d changed underneath this write", ErrConflict, task.ID)
		}
		return err
	}
	return nil
}

// cleanupImages deletes the task's stored images best-effort; the caller's
// operation proceeds regardless of failures here.
func (s *taskService) cleanupImages(ctx context.Context, task *models.Task) {
	if s.images == nil {
		return
	}
	for _, url := range task.Images {
		if err := s.images.Delete(ctx, url); err != nil {
			log.Printf("[task][cleanup][warn] delete image %s: %v", url, err)
		}
	}
}
