package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"campusfix/internal/models"
)

type fakeWorkTypeRepo struct {
	types  map[int64]models.WorkType
	nextID int64
}

func newFakeWorkTypeRepo() *fakeWorkTypeRepo {
	return &fakeWorkTypeRepo{types: map[int64]models.WorkType{}, nextID: 1}
}

func (r *fakeWorkTypeRepo) Store(ctx context.Context, wt *models.WorkType) error {
	wt.ID = r.nextID
	r.nextID++
	r.types[wt.ID] = *wt
	return nil
}

func (r *fakeWorkTypeRepo) FindByID(ctx context.Context, id int64) (*models.WorkType, error) {
	wt, ok := r.types[id]
	if !ok {
		return nil, nil
	}
	cp := wt
	return &cp, nil
}

func (r *fakeWorkTypeRepo) FindByName(ctx context.Context, name string) (*models.WorkType, error) {
	for _, wt := range r.types {
		if wt.Name == name {
			cp := wt
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkTypeRepo) FindAll(ctx context.Context) ([]models.WorkType, error) {
	out := []models.WorkType{}
	for _, wt := range r.types {
		out = append(out, wt)
	}
	return out, nil
}

func (r *fakeWorkTypeRepo) Update(ctx context.Context, wt *models.WorkType) error {
	r.types[wt.ID] = *wt
	return nil
}

func (r *fakeWorkTypeRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.types[id]; !ok {
		return false, nil
	}
	delete(r.types, id)
	return true, nil
}

func TestWorkTypeCreateRejectsDuplicateName(t *testing.T) {
	svc := NewWorkTypeService(newFakeWorkTypeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "Plumbing", "pipes and drains")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Plumbing", "again")
	require.ErrorIs(t, err, ErrDuplicate)

	_, err = svc.Create(ctx, "   ", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestWorkTypeUpdateAllowsKeepingOwnName(t *testing.T) {
	svc := NewWorkTypeService(newFakeWorkTypeRepo())
	ctx := context.Background()

	a, err := svc.Create(ctx, "Electrical", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Plumbing", "")
	require.NoError(t, err)

	// same name, new description: not a duplicate
	updated, err := svc.Update(ctx, a.ID, "Electrical", "wiring, fixtures")
	require.NoError(t, err)
	require.Equal(t, "wiring, fixtures", updated.Description)

	_, err = svc.Update(ctx, a.ID, "Plumbing", "")
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestWorkTypeDelete(t *testing.T) {
	svc := NewWorkTypeService(newFakeWorkTypeRepo())
	ctx := context.Background()

	wt, err := svc.Create(ctx, "Masonry", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, wt.ID))
	require.ErrorIs(t, svc.Delete(ctx, wt.ID), ErrNotFound)
}

func TestWorkTypeSeedInsertsOnlyMissing(t *testing.T) {
	repo := newFakeWorkTypeRepo()
	svc := NewWorkTypeService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Plumbing", "existing")
	require.NoError(t, err)

	require.NoError(t, svc.Seed(ctx, []string{"Plumbing", "Electrical", "Cleaning"}))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	existing, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "existing", existing.Description)
}
