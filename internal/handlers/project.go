package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
	"github.com/taskflow-dev/taskflow/internal/utils"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ProjectResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uint      `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProjectListItem struct {
	ProjectResponse
	MemberCount int64             `json:"member_count"`
	TaskSummary store.TaskSummary `json:"task_summary"`
}

type ProjectDetailResponse struct {
	ProjectResponse
	Members []store.Member `json:"members"`
}

type MembershipResponse struct {
	ProjectID uint      `json:"project_id"`
	UserID    uint      `json:"user_id"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

func projectResponse(project *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// CreateProject inserts the project and the creator's owner membership in
// one transaction.
func (h *Handler) CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, http.StatusUnprocessableEntity, "Invalid request")
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	}

	if err := h.store.CreateProjectWithOwner(ctx.Request.Context(), &project); err != nil {
		log.Printf("failed to create project: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to create project")
		return
	}

	success(ctx, http.StatusCreated, projectResponse(&project))
}

// ListProjects returns the caller's projects, newest first, with member
// counts and per-status task summaries.
func (h *Handler) ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	page, size := pageParams(ctx, 20)

	projects, total, err := h.store.ListProjectsForUser(ctx.Request.Context(), userID, (page-1)*size, size)

	if err != nil {
		log.Printf("failed to list projects: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to retrieve projects")
		return
	}

	items := make([]ProjectListItem, 0, len(projects))

	for i := range projects {
		project := &projects[i]

		memberCount, err := h.store.CountMembers(ctx.Request.Context(), project.ID)

		if err != nil {
			log.Printf("failed to count members: %v", err)
			fail(ctx, http.StatusInternalServerError, "Failed to retrieve projects")
			return
		}

		summary, err := h.store.TaskSummaryFor(ctx.Request.Context(), project.ID)

		if err != nil {
			log.Printf("failed to summarize tasks: %v", err)
			fail(ctx, http.StatusInternalServerError, "Failed to retrieve projects")
			return
		}

		items = append(items, ProjectListItem{
			ProjectResponse: projectResponse(project),
			MemberCount:     memberCount,
			TaskSummary:     summary,
		})
	}

	success(ctx, http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

func (h *Handler) GetProject(ctx *gin.Context) {
	projectID, userID, ok := h.projectScope(ctx)

	if !ok {
		return
	}

	project, _, err := h.access.RequireMembership(ctx.Request.Context(), projectID, userID)

	if err != nil {
		failAccess(ctx, err)
		return
	}

	members, err := h.store.FindMembersByProject(ctx.Request.Context(), projectID)

	if err != nil {
		log.Printf("failed to list members: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to retrieve project")
		return
	}

	success(ctx, http.StatusOK, ProjectDetailResponse{
		ProjectResponse: projectResponse(project),
		Members:         members,
	})
}

// UpdateProject applies a partial update; absent fields stay untouched
// and an explicit null clears the description. Owner only.
func (h *Handler) UpdateProject(ctx *gin.Context) {
	projectID, userID, ok := h.projectScope(ctx)

	if !ok {
		return
	}

	var req UpdateProjectRequest

	fields, err := bindPatch(ctx, &req)

	if err != nil {
		fail(ctx, http.StatusUnprocessableEntity, "Invalid request")
		return
	}

	project, _, err := h.access.RequireOwner(ctx.Request.Context(), projectID, userID)

	if err != nil {
		failAccess(ctx, err)
		return
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}

	if req.Description != nil {
		updates["description"] = *req.Description
	} else if explicitNull(fields, "description") {
		updates["description"] = ""
	}

	if len(updates) > 0 {
		if err := h.store.UpdateProject(ctx.Request.Context(), project, updates); err != nil {
			log.Printf("failed to update project: %v", err)
			fail(ctx, http.StatusInternalServerError, "Failed to update project")
			return
		}
	}

	success(ctx, http.StatusOK, projectResponse(project))
}

// DeleteProject tombstones the project. Members and tasks persist but
// become unreachable through the standard read paths. Owner only.
func (h *Handler) DeleteProject(ctx *gin.Context) {
	projectID, userID, ok := h.projectScope(ctx)

	if !ok {
		return
	}

	project, _, err := h.access.RequireOwner(ctx.Request.Context(), projectID, userID)

	if err != nil {
		failAccess(ctx, err)
		return
	}

	if err := h.store.SoftDeleteProject(ctx.Request.Context(), project); err != nil {
		log.Printf("failed to delete project: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddMember adds a registered user to the project with role member.
// Owner only; there is no direct owner invite.
func (h *Handler) AddMember(ctx *gin.Context) {
	projectID, userID, ok := h.projectScope(ctx)

	if !ok {
		return
	}

	var req AddMemberRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, http.StatusUnprocessableEntity, "Invalid request")
		return
	}

	if _, _, err := h.access.RequireOwner(ctx.Request.Context(), projectID, userID); err != nil {
		failAccess(ctx, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	target, err := h.store.FindUserByEmail(ctx.Request.Context(), email)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(ctx, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("failed to fetch user: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to add member")
		return
	}

	_, err = h.store.FindMembership(ctx.Request.Context(), projectID, target.ID)

	if err == nil {
		fail(ctx, http.StatusConflict, "Already a project member")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("failed to check membership: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to add member")
		return
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    target.ID,
		Role:      models.RoleMember,
	}

	if err := h.store.CreateMembership(ctx.Request.Context(), &member); err != nil {
		log.Printf("failed to add member: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to add member")
		return
	}

	success(ctx, http.StatusCreated, MembershipResponse{
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Role:      member.Role,
		JoinedAt:  member.CreatedAt,
	})
}

func (h *Handler) ListMembers(ctx *gin.Context) {
	projectID, userID, ok := h.projectScope(ctx)

	if !ok {
		return
	}

	if _, _, err := h.access.RequireMembership(ctx.Request.Context(), projectID, userID); err != nil {
		failAccess(ctx, err)
		return
	}

	members, err := h.store.FindMembersByProject(ctx.Request.Context(), projectID)

	if err != nil {
		log.Printf("failed to list members: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to retrieve members")
		return
	}

	success(ctx, http.StatusOK, members)
}

// projectScope pulls the project id path parameter and the authenticated
// caller out of the request.
func (h *Handler) projectScope(ctx *gin.Context) (projectID, userID uint, ok bool) {
	projectID, err := utils.GetIDParam(ctx, "project_id")

	if err != nil {
		fail(ctx, http.StatusNotFound, "Project not found")
		return 0, 0, false
	}

	userID, err = utils.GetCurrentUserID(ctx)

	if err != nil {
		fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return 0, 0, false
	}

	return projectID, userID, true
}
