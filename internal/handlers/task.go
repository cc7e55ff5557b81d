package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/store"
	"github.com/taskflow-dev/taskflow/internal/types"
	"github.com/taskflow-dev/taskflow/internal/utils"
	"gorm.io/gorm"
)

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssigneeID  *uint  `json:"assignee_id"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssigneeID  *uint   `json:"assignee_id"`
	Position    *int    `json:"position" binding:"omitempty,gte=0"`
}

type TaskResponse struct {
	ID          uint             `json:"id"`
	ProjectID   uint             `json:"project_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	Position    int              `json:"position"`
	Assignee    *types.UserBrief `json:"assignee"`
	CreatedBy   *types.UserBrief `json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CreateTask appends a task to the end of its (project, status) bucket:
// position is one past the bucket's current maximum.
func (h *Handler) CreateTask(ctx *gin.Context) {
	projectID, userID, ok := h.projectScope(ctx)

	if !ok {
		return
	}

	var req CreateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, http.StatusUnprocessableEntity, "Invalid request")
		return
	}

	if req.Status == "" {
		req.Status = models.StatusTodo
	}

	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}

	if !models.ValidStatus(req.Status) {
		fail(ctx, http.StatusUnprocessableEntity, "Invalid task status")
		return
	}

	if !models.ValidPriority(req.Priority) {
		fail(ctx, http.StatusUnprocessableEntity, "Invalid task priority")
		return
	}

	if _, _, err := h.access.RequireMembership(ctx.Request.Context(), projectID, userID); err != nil {
		failAccess(ctx, err)
		return
	}

	if req.AssigneeID != nil {
		if ok := h.checkAssignee(ctx, projectID, *req.AssigneeID); !ok {
			return
		}
	}

	maxPosition, err := h.store.MaxTaskPosition(ctx.Request.Context(), projectID, req.Status)

	if err != nil {
		log.Printf("failed to compute task position: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to create task")
		return
	}

	task := models.Task{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Position:    maxPosition + 1,
		AssigneeID:  req.AssigneeID,
		CreatedBy:   userID,
	}

	if err := h.store.CreateTask(ctx.Request.Context(), &task); err != nil {
		log.Printf("failed to create task: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to create task")
		return
	}

	response, err := h.taskResponses(ctx.Request.Context(), []models.Task{task})

	if err != nil {
		log.Printf("failed to assemble task response: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to create task")
		return
	}

	success(ctx, http.StatusCreated, response[0])
}

// ListTasks filters, sorts and paginates a project's tasks. Filters are
// conjunctive; an unknown sort key falls back to position ascending.
func (h *Handler) ListTasks(ctx *gin.Context) {
	projectID, userID, ok := h.projectScope(ctx)

	if !ok {
		return
	}

	var filter store.TaskFilter

	if status := ctx.Query("status"); status != "" {
		if !models.ValidStatus(status) {
			fail(ctx, http.StatusUnprocessableEntity, "Invalid task status")
			return
		}
		filter.Status = status
	}

	if priority := ctx.Query("priority"); priority != "" {
		if !models.ValidPriority(priority) {
			fail(ctx, http.StatusUnprocessableEntity, "Invalid task priority")
			return
		}
		filter.Priority = priority
	}

	if raw := ctx.Query("assignee_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)

		if err != nil {
			fail(ctx, http.StatusUnprocessableEntity, "Invalid assignee id")
			return
		}

		assigneeID := uint(id)
		filter.AssigneeID = &assigneeID
	}

	if _, _, err := h.access.RequireMembership(ctx.Request.Context(), projectID, userID); err != nil {
		failAccess(ctx, err)
		return
	}

	sortBy := ctx.DefaultQuery("sort_by", "position")
	order := ctx.DefaultQuery("order", "asc")
	page, size := pageParams(ctx, 50)

	tasks, total, err := h.store.ListTasks(ctx.Request.Context(), projectID, filter, sortBy, order, (page-1)*size, size)

	if err != nil {
		log.Printf("failed to list tasks: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to retrieve tasks")
		return
	}

	items, err := h.taskResponses(ctx.Request.Context(), tasks)

	if err != nil {
		log.Printf("failed to assemble task responses: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to retrieve tasks")
		return
	}

	success(ctx, http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

func (h *Handler) GetTask(ctx *gin.Context) {
	task, ok := h.taskScope(ctx)

	if !ok {
		return
	}

	response, err := h.taskResponses(ctx.Request.Context(), []models.Task{*task})

	if err != nil {
		log.Printf("failed to assemble task response: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to retrieve task")
		return
	}

	success(ctx, http.StatusOK, response[0])
}

// UpdateTask applies a partial update. Any member may update any task. A
// new assignee is re-validated against the member list, and an explicit
// null clears the description or the assignee; a caller moving a task
// across status buckets must supply the new position itself.
func (h *Handler) UpdateTask(ctx *gin.Context) {
	var req UpdateTaskRequest

	fields, err := bindPatch(ctx, &req)

	if err != nil {
		fail(ctx, http.StatusUnprocessableEntity, "Invalid request")
		return
	}

	if req.Status != nil && !models.ValidStatus(*req.Status) {
		fail(ctx, http.StatusUnprocessableEntity, "Invalid task status")
		return
	}

	if req.Priority != nil && !models.ValidPriority(*req.Priority) {
		fail(ctx, http.StatusUnprocessableEntity, "Invalid task priority")
		return
	}

	task, ok := h.taskScope(ctx)

	if !ok {
		return
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}

	if req.Description != nil {
		updates["description"] = *req.Description
	} else if explicitNull(fields, "description") {
		updates["description"] = ""
	}

	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}

	if req.AssigneeID != nil {
		if ok := h.checkAssignee(ctx, task.ProjectID, *req.AssigneeID); !ok {
			return
		}
		updates["assignee_id"] = *req.AssigneeID
	} else if explicitNull(fields, "assignee_id") {
		updates["assignee_id"] = nil
	}

	if req.Position != nil {
		updates["position"] = *req.Position
	}

	if len(updates) > 0 {
		if err := h.store.UpdateTask(ctx.Request.Context(), task, updates); err != nil {
			log.Printf("failed to update task: %v", err)
			fail(ctx, http.StatusInternalServerError, "Failed to update task")
			return
		}
	}

	response, err := h.taskResponses(ctx.Request.Context(), []models.Task{*task})

	if err != nil {
		log.Printf("failed to assemble task response: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to update task")
		return
	}

	success(ctx, http.StatusOK, response[0])
}

// DeleteTask tombstones the task, leaving a position gap in its bucket.
func (h *Handler) DeleteTask(ctx *gin.Context) {
	task, ok := h.taskScope(ctx)

	if !ok {
		return
	}

	if err := h.store.SoftDeleteTask(ctx.Request.Context(), task); err != nil {
		log.Printf("failed to delete task: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// taskScope runs the shared prologue of every single-task operation:
// project existence, membership, then task lookup.
func (h *Handler) taskScope(ctx *gin.Context) (*models.Task, bool) {
	projectID, userID, ok := h.projectScope(ctx)

	if !ok {
		return nil, false
	}

	if _, _, err := h.access.RequireMembership(ctx.Request.Context(), projectID, userID); err != nil {
		failAccess(ctx, err)
		return nil, false
	}

	taskID, err := utils.GetIDParam(ctx, "task_id")

	if err != nil {
		fail(ctx, http.StatusNotFound, "Task not found")
		return nil, false
	}

	task, err := h.store.FindTask(ctx.Request.Context(), projectID, taskID)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(ctx, http.StatusNotFound, "Task not found")
			return nil, false
		}
		log.Printf("failed to fetch task: %v", err)
		fail(ctx, http.StatusInternalServerError, "Failed to retrieve task")
		return nil, false
	}

	return task, true
}

// checkAssignee enforces the assignee-must-be-member invariant.
func (h *Handler) checkAssignee(ctx *gin.Context, projectID, assigneeID uint) bool {
	_, err := h.store.FindMembership(ctx.Request.Context(), projectID, assigneeID)

	if err == nil {
		return true
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(ctx, http.StatusUnprocessableEntity, "Assignee must be a project member")
		return false
	}

	log.Printf("failed to check assignee membership: %v", err)
	fail(ctx, http.StatusInternalServerError, "Internal server error")
	return false
}

// taskResponses resolves assignee and creator ids into user briefs in one
// batch. A user removed from the project still renders as creator; a
// missing assignee row renders as no assignee.
func (h *Handler) taskResponses(ctx context.Context, tasks []models.Task) ([]TaskResponse, error) {
	ids := make([]uint, 0, len(tasks)*2)

	for _, task := range tasks {
		ids = append(ids, task.CreatedBy)

		if task.AssigneeID != nil {
			ids = append(ids, *task.AssigneeID)
		}
	}

	users, err := h.store.FindUsersByIDs(ctx, ids)

	if err != nil {
		return nil, err
	}

	brief := func(id uint) *types.UserBrief {
		user, ok := users[id]

		if !ok {
			return nil
		}

		return &types.UserBrief{ID: user.ID, Name: user.Name}
	}

	responses := make([]TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		response := TaskResponse{
			ID:          task.ID,
			ProjectID:   task.ProjectID,
			Title:       task.Title,
			Description: task.Description,
			Status:      task.Status,
			Priority:    task.Priority,
			Position:    task.Position,
			CreatedBy:   brief(task.CreatedBy),
			CreatedAt:   task.CreatedAt,
			UpdatedAt:   task.UpdatedAt,
		}

		if task.AssigneeID != nil {
			response.Assignee = brief(*task.AssigneeID)
		}

		responses = append(responses, response)
	}

	return responses, nil
}
