package store

import (
	"context"
	"time"

	"github.com/taskflow-dev/taskflow/internal/models"
	"gorm.io/gorm"
)

// Member is a membership row joined with its user, as returned to clients.
type Member struct {
	UserID   uint      `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// TaskSummary counts a project's non-deleted tasks per status bucket.
type TaskSummary struct {
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
	Done       int64 `json:"done"`
}

// CreateProjectWithOwner inserts the project and the creator's owner
// membership in one transaction: both rows persist or neither does.
func (s *Store) CreateProjectWithOwner(ctx context.Context, project *models.Project) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		member := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    project.OwnerID,
			Role:      models.RoleOwner,
		}

		return tx.Create(&member).Error
	})
}

func (s *Store) FindProjectByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project

	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// ListProjectsForUser returns the page of non-deleted projects the user is
// a member of, newest first, plus the total count.
func (s *Store) ListProjectsForUser(ctx context.Context, userID uint, offset, limit int) ([]models.Project, int64, error) {
	var total int64

	err := s.db.WithContext(ctx).Model(&models.Project{}).
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var projects []models.Project

	err = s.db.WithContext(ctx).Model(&models.Project{}).
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Order("projects.created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (s *Store) UpdateProject(ctx context.Context, project *models.Project, updates map[string]interface{}) error {
	if err := s.db.WithContext(ctx).Model(project).Updates(updates).Error; err != nil {
		return err
	}

	return s.db.WithContext(ctx).First(project, project.ID).Error
}

func (s *Store) SoftDeleteProject(ctx context.Context, project *models.Project) error {
	return s.db.WithContext(ctx).Delete(project).Error
}

func (s *Store) CountMembers(ctx context.Context, projectID uint) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).Model(&models.ProjectMember{}).
		Where("project_id = ?", projectID).
		Count(&count).Error

	return count, err
}

// TaskSummaryFor aggregates the project's non-deleted tasks by status.
func (s *Store) TaskSummaryFor(ctx context.Context, projectID uint) (TaskSummary, error) {
	var rows []struct {
		Status string
		Count  int64
	}

	err := s.db.WithContext(ctx).Model(&models.Task{}).
		Select("status, COUNT(*) AS count").
		Where("project_id = ?", projectID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return TaskSummary{}, err
	}

	var summary TaskSummary

	for _, row := range rows {
		switch row.Status {
		case models.StatusTodo:
			summary.Todo = row.Count
		case models.StatusInProgress:
			summary.InProgress = row.Count
		case models.StatusDone:
			summary.Done = row.Count
		}
	}

	return summary, nil
}

func (s *Store) FindMembership(ctx context.Context, projectID, userID uint) (*models.ProjectMember, error) {
	var member models.ProjectMember

	err := s.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}

	return &member, nil
}

func (s *Store) CreateMembership(ctx context.Context, member *models.ProjectMember) error {
	return s.db.WithContext(ctx).Create(member).Error
}

// FindMembersByProject joins memberships with users, oldest first.
func (s *Store) FindMembersByProject(ctx context.Context, projectID uint) ([]Member, error) {
	var members []Member

	err := s.db.WithContext(ctx).Model(&models.ProjectMember{}).
		Select("project_members.user_id, users.name, users.email, project_members.role, project_members.created_at AS joined_at").
		Joins("JOIN users ON users.id = project_members.user_id").
		Where("project_members.project_id = ?", projectID).
		Order("project_members.created_at ASC").
		Scan(&members).Error
	if err != nil {
		return nil, err
	}

	return members, nil
}
