package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campusfix/internal/models"
	"campusfix/internal/repositories"
)

type WorkTypeService interface {
	Create(ctx context.Context, name, description string) (*models.WorkType, error)
	GetByID(ctx context.Context, id int64) (*models.WorkType, error)
	GetAll(ctx context.Context) ([]models.WorkType, error)
	Update(ctx context.Context, id int64, name, description string) (*models.WorkType, error)
	Delete(ctx context.Context, id int64) error
	Seed(ctx context.Context, names []string) error
}

type workTypeService struct {
	repo repositories.WorkTypeRepository
}

func NewWorkTypeService(repo repositories.WorkTypeRepository) WorkTypeService {
	return &workTypeService{repo: repo}
}

func (s *workTypeService) Create(ctx context.Context, name, description string) (*models.WorkType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: work type %q already exists", ErrDuplicate, name)
	}
	wt := &models.WorkType{Name: name, Description: description, CreatedAt: time.Now()}
	if err := s.repo.Store(ctx, wt); err != nil {
		return nil, err
	}
	return wt, nil
}

func (s *workTypeService) GetByID(ctx context.Context, id int64) (*models.WorkType, error) {
	wt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wt == nil {
		return nil, ErrNotFound
	}
	return wt, nil
}

func (s *workTypeService) GetAll(ctx context.Context) ([]models.WorkType, error) {
	return s.repo.FindAll(ctx)
}

func (s *workTypeService) Update(ctx context.Context, id int64, name, description string) (*models.WorkType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	wt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	other, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != id {
		return nil, fmt.Errorf("%w: work type %q already exists", ErrDuplicate, name)
	}
	wt.Name = name
	wt.Description = description
	if err := s.repo.Update(ctx, wt); err != nil {
		return nil, err
	}
	return wt, nil
}

// Delete performs no referential check: tasks keep the dangling work type id.
func (s *workTypeService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Seed inserts any of the given names that are not present yet.
func (s *workTypeService) Seed(ctx context.Context, names []string) error {
	for _, name := range names {
		existing, err := s.repo.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.repo.Store(ctx, &models.WorkType{Name: name, CreatedAt: time.Now()}); err != nil {
			return err
		}
	}
	return nil
}
