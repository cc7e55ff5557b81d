package access

import (
	"context"
	"errors"

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrForbidden       = errors.New("not a member of this project")
	ErrOwnerOnly       = errors.New("only the project owner can do this")
)

// Checker gates every project- and task-scoped operation. Existence is
// always checked before authorization: probing a missing or deleted
// project yields not-found, never forbidden.
type Checker struct {
	store *store.Store
}

func NewChecker(s *store.Store) *Checker {
	return &Checker{store: s}
}

// RequireMembership resolves the project (not-found if absent or soft
// deleted) and the caller's membership row (forbidden if none).
func (c *Checker) RequireMembership(ctx context.Context, projectID, userID uint) (*models.Project, *models.ProjectMember, error) {
	project, err := c.store.FindProjectByID(ctx, projectID)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrProjectNotFound
	}

	if err != nil {
		return nil, nil, err
	}

	member, err := c.store.FindMembership(ctx, projectID, userID)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrForbidden
	}

	if err != nil {
		return nil, nil, err
	}

	return project, member, nil
}

// RequireOwner is RequireMembership plus an owner-role check. Ownership is
// an attribute of the membership row, not of the user: the same user can
// be owner of one project and plain member of another.
func (c *Checker) RequireOwner(ctx context.Context, projectID, userID uint) (*models.Project, *models.ProjectMember, error) {
	project, member, err := c.RequireMembership(ctx, projectID, userID)

	if err != nil {
		return nil, nil, err
	}

	if member.Role != models.RoleOwner {
		return nil, nil, ErrOwnerOnly
	}

	return project, member, nil
}
