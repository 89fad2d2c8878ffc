package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"campusfix/internal/models"
)

// ErrStaleTask is returned by Update when the row exists but its version no
// longer matches the one the caller read (concurrent write won).
var ErrStaleTask = errors.New("task version conflict")

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[models.TaskStatus]int, error)
	CountByWorkType(ctx context.Context) (map[int64]int, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, description, work_type_id, area, status, assigned_to,
       materials, manpower, estimated_time, actual_time, images, created_by,
       submitted_by_name, work_nature, tags, history, version, created_at, updated_at`

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	history, err := json.Marshal(task.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	query := `
		INSERT INTO tasks (
			title, description, work_type_id, area, status, assigned_to,
			materials, manpower, estimated_time, actual_time, images, created_by,
			submitted_by_name, work_nature, tags, history, version, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		RETURNING id, version, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.WorkTypeID, task.Area, task.Status, task.AssignedTo,
		pq.Array(task.Materials), task.Manpower, task.EstimatedTime, task.ActualTime,
		pq.Array(task.Images), task.CreatedBy, task.SubmittedByName, task.WorkNature,
		pq.Array(task.Tags), history, task.Version, task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID, &task.Version, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.WorkTypeID != nil {
		conditions = append(conditions, fmt.Sprintf("work_type_id = $%d", argID))
		args = append(args, *filter.WorkTypeID)
		argID++
	}
	if filter.Area != nil {
		conditions = append(conditions, fmt.Sprintf("area = $%d", argID))
		args = append(args, *filter.Area)
		argID++
	}
	if len(filter.Tags) > 0 {
		// match-any: task tags overlap the requested set
		conditions = append(conditions, fmt.Sprintf("tags && $%d", argID))
		args = append(args, pq.Array(filter.Tags))
		argID++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argID))
		args = append(args, *filter.DateFrom)
		argID++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argID))
		args = append(args, *filter.DateTo)
		argID++
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// Update replaces the whole row in one statement, so a status change and its
// history append land atomically. The write is conditional on the version the
// caller read; a miss on an existing row reports ErrStaleTask.
func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	history, err := json.Marshal(task.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	query := `
		UPDATE tasks SET
			title=$1, description=$2, work_type_id=$3, area=$4, status=$5, assigned_to=$6,
			materials=$7, manpower=$8, estimated_time=$9, actual_time=$10, images=$11,
			submitted_by_name=$12, work_nature=$13, tags=$14, history=$15,
			version=version+1, updated_at=$16
		WHERE id=$17 AND version=$18`
	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.WorkTypeID, task.Area, task.Status, task.AssignedTo,
		pq.Array(task.Materials), task.Manpower, task.EstimatedTime, task.ActualTime,
		pq.Array(task.Images), task.SubmittedByName, task.WorkNature, pq.Array(task.Tags),
		history, task.UpdatedAt, task.ID, task.Version,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStaleTask
	}
	task.Version++
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *taskRepository) CountByStatus(ctx context.Context) (map[models.TaskStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[models.TaskStatus]int)
	for rows.Next() {
		var status models.TaskStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[status] = count
	}
	return out, rows.Err()
}

func (r *taskRepository) CountByWorkType(ctx context.Context) (map[int64]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT work_type_id, COUNT(*) FROM tasks GROUP BY work_type_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]int)
	for rows.Next() {
		var workTypeID int64
		var count int
		if err := rows.Scan(&workTypeID, &count); err != nil {
			return nil, err
		}
		out[workTypeID] = count
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var materials, images, tags pq.StringArray
	var createdBy sql.NullInt64
	var history []byte
	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.WorkTypeID, &task.Area,
		&task.Status, &task.AssignedTo, &materials, &task.Manpower, &task.EstimatedTime,
		&task.ActualTime, &images, &createdBy, &task.SubmittedByName, &task.WorkNature,
		&tags, &history, &task.Version, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if createdBy.Valid {
		uid := createdBy.Int64
		task.CreatedBy = &uid
	}
	task.Materials = materials
	task.Images = images
	task.Tags = tags
	if len(history) > 0 {
		if err := json.Unmarshal(history, &task.History); err != nil {
			return nil, fmt.Errorf("unmarshal history for task %d: %w", task.ID, err)
		}
	}
	return task, nil
}
