package repositories

import (
	"context"
	"database/sql"
	"errors"

	"campusfix/internal/models"
)

type WorkTypeRepository interface {
	Store(ctx context.Context, wt *models.WorkType) error
	FindByID(ctx context.Context, id int64) (*models.WorkType, error)
	FindByName(ctx context.Context, name string) (*models.WorkType, error)
	FindAll(ctx context.Context) ([]models.WorkType, error)
	Update(ctx context.Context, wt *models.WorkType) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type workTypeRepository struct {
	db *sql.DB
}

func NewWorkTypeRepository(db *sql.DB) WorkTypeRepository {
	return &workTypeRepository{db: db}
}

func (r *workTypeRepository) Store(ctx context.Context, wt *models.WorkType) error {
	query := `INSERT INTO work_types (name, description, created_at)
		VALUES ($1,$2,$3) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, wt.Name, wt.Description, wt.CreatedAt).
		Scan(&wt.ID, &wt.CreatedAt)
}

func (r *workTypeRepository) FindByID(ctx context.Context, id int64) (*models.WorkType, error) {
	wt := &models.WorkType{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM work_types WHERE id = $1`, id).
		Scan(&wt.ID, &wt.Name, &wt.Description, &wt.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return wt, nil
}

func (r *workTypeRepository) FindByName(ctx context.Context, name string) (*models.WorkType, error) {
	wt := &models.WorkType{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM work_types WHERE name = $1`, name).
		Scan(&wt.ID, &wt.Name, &wt.Description, &wt.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return wt, nil
}

func (r *workTypeRepository) FindAll(ctx context.Context) ([]models.WorkType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_at FROM work_types ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.WorkType
	for rows.Next() {
		var wt models.WorkType
		if err := rows.Scan(&wt.ID, &wt.Name, &wt.Description, &wt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, wt)
	}
	return out, rows.Err()
}

func (r *workTypeRepository) Update(ctx context.Context, wt *models.WorkType) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE work_types SET name=$1, description=$2 WHERE id=$3`,
		wt.Name, wt.Description, wt.ID)
	return err
}

func (r *workTypeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM work_types WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
