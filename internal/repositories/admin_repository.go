package repositories

import (
	"context"
	"database/sql"
	"errors"

	"campusfix/internal/models"
)

type AdminRepository interface {
	Store(ctx context.Context, admin *models.Admin) error
	FindByID(ctx context.Context, id int64) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindAll(ctx context.Context) ([]models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type adminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Store(ctx context.Context, admin *models.Admin) error {
	query := `INSERT INTO admins (name, email, phone_number, campus, created_at)
		VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		admin.Name, admin.Email, admin.PhoneNumber, admin.Campus, admin.CreatedAt).
		Scan(&admin.ID, &admin.CreatedAt)
}

func (r *adminRepository) FindByID(ctx context.Context, id int64) (*models.Admin, error) {
	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone_number, campus, created_at FROM admins WHERE id = $1`, id).
		Scan(&admin.ID, &admin.Name, &admin.Email, &admin.PhoneNumber, &admin.Campus, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return admin, nil
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone_number, campus, created_at FROM admins WHERE email = $1`, email).
		Scan(&admin.ID, &admin.Name, &admin.Email, &admin.PhoneNumber, &admin.Campus, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return admin, nil
}

func (r *adminRepository) FindAll(ctx context.Context) ([]models.Admin, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, phone_number, campus, created_at FROM admins ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Admin
	for rows.Next() {
		var a models.Admin
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.PhoneNumber, &a.Campus, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *adminRepository) Update(ctx context.Context, admin *models.Admin) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE admins SET name=$1, email=$2, phone_number=$3, campus=$4 WHERE id=$5`,
		admin.Name, admin.Email, admin.PhoneNumber, admin.Campus, admin.ID)
	return err
}

func (r *adminRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
