package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campusfix/internal/models"
	"campusfix/internal/repositories"
)

type AdminInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Campus      string
}

// AdminService manages the admin contact directory. These records are plain
// contacts used for notifications, not login identities.
type AdminService interface {
	Create(ctx context.Context, in AdminInput) (*models.Admin, error)
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
	GetAll(ctx context.Context) ([]models.Admin, error)
	Update(ctx context.Context, id int64, in AdminInput) (*models.Admin, error)
	Delete(ctx context.Context, id int64) error
}

type adminService struct {
	repo repositories.AdminRepository
}

func NewAdminService(repo repositories.AdminRepository) AdminService {
	return &adminService{repo: repo}
}

func validateAdminInput(in AdminInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	return nil
}

func (s *adminService) Create(ctx context.Context, in AdminInput) (*models.Admin, error) {
	if err := validateAdminInput(in); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(in.Email)
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already exists", ErrDuplicate)
	}
	admin := &models.Admin{
		Name:        strings.TrimSpace(in.Name),
		Email:       email,
		PhoneNumber: in.PhoneNumber,
		Campus:      in.Campus,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Store(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *adminService) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}
	return admin, nil
}

func (s *adminService) GetAll(ctx context.Context) ([]models.Admin, error) {
	return s.repo.FindAll(ctx)
}

func (s *adminService) Update(ctx context.Context, id int64, in AdminInput) (*models.Admin, error) {
	if err := validateAdminInput(in); err != nil {
		return nil, err
	}
	admin, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(in.Email)
	other, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != id {
		return nil, fmt.Errorf("%w: email already exists", ErrDuplicate)
	}
	admin.Name = strings.TrimSpace(in.Name)
	admin.Email = email
	admin.PhoneNumber = in.PhoneNumber
	admin.Campus = in.Campus
	if err := s.repo.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *adminService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
