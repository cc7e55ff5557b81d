package models

import "gorm.io/gorm"

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// ProjectMember joins a user to a project with one of two roles. The
// (project_id, user_id) pair is unique; CreatedAt doubles as joined_at.
type ProjectMember struct {
	gorm.Model

	ProjectID uint   `gorm:"not null;uniqueIndex:idx_project_user"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_project_user"`
	Role      string `gorm:"size:20;not null;default:member"`
}
