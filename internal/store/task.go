package store

import (
	"context"

	"github.com/taskflow-dev/taskflow/internal/models"
	"gorm.io/gorm"
)

// TaskFilter narrows a task listing; zero values mean "no filter" and
// filters combine with AND.
type TaskFilter struct {
	Status     string
	Priority   string
	AssigneeID *uint
}

var taskSortColumns = map[string]string{
	"position":   "position",
	"created_at": "created_at",
	"priority":   "priority",
}

// MaxTaskPosition returns the highest position among non-deleted tasks in
// the (project, status) bucket, or -1 for an empty bucket.
func (s *Store) MaxTaskPosition(ctx context.Context, projectID uint, status string) (int, error) {
	var max int

	err := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("project_id = ? AND status = ?", projectID, status).
		Select("COALESCE(MAX(position), -1)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}

	return max, nil
}

func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	return s.db.WithContext(ctx).Create(task).Error
}

// FindTask looks up a non-deleted task scoped to its project; a task id
// from another project is indistinguishable from a missing one.
func (s *Store) FindTask(ctx context.Context, projectID, taskID uint) (*models.Task, error) {
	var task models.Task

	err := s.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", taskID, projectID).
		First(&task).Error
	if err != nil {
		return nil, err
	}

	return &task, nil
}

func (s *Store) ListTasks(ctx context.Context, projectID uint, filter TaskFilter, sortBy, order string, offset, limit int) ([]models.Task, int64, error) {
	var total int64

	if err := s.taskQuery(ctx, projectID, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := taskSortColumns[sortBy]
	if !ok {
		column = "position"
	}

	if order == "desc" {
		column += " DESC"
	}

	var tasks []models.Task

	err := s.taskQuery(ctx, projectID, filter).
		Order(column).
		Offset(offset).
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (s *Store) taskQuery(ctx context.Context, projectID uint, filter TaskFilter) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Task{}).Where("project_id = ?", projectID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}

	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}

	return query
}

func (s *Store) UpdateTask(ctx context.Context, task *models.Task, updates map[string]interface{}) error {
	if err := s.db.WithContext(ctx).Model(task).Updates(updates).Error; err != nil {
		return err
	}

	return s.db.WithContext(ctx).First(task, task.ID).Error
}

func (s *Store) SoftDeleteTask(ctx context.Context, task *models.Task) error {
	return s.db.WithContext(ctx).Delete(task).Error
}
