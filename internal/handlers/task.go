package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devarsh/task-manager-api/internal/dto"
	"github.com/devarsh/task-manager-api/internal/middleware"
	"github.com/devarsh/task-manager-api/internal/models"
	"github.com/devarsh/task-manager-api/internal/response"
	"github.com/devarsh/task-manager-api/internal/services"
	"github.com/devarsh/task-manager-api/internal/validation"
)

// TaskHandler coordinates task CRUD HTTP handlers. All routes sit behind
// RequireAuth, and every service call is scoped to the caller's user ID.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// TaskRequest is the create/replace payload. PUT has full-field replacement
// semantics, so the same shape serves both.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// ListTasks returns the caller's tasks, optionally filtered and sorted.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	tasks, err := h.taskService.ListTasks(services.ListTasksInput{
		OwnerID:   userID,
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	})
	if err != nil {
		response.InternalError(c, "Error fetching tasks")
		return
	}

	response.OK(c, "", dto.ToTaskDTOs(tasks, time.Now()))
}

// CreateTask creates a task owned by the caller. Any owner field in the body
// is ignored; ownership always comes from the token.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	req, ok := bindTaskRequest(c)
	if !ok {
		return
	}

	dueDate, _ := validation.ParseDueDate(req.DueDate)
	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    models.TaskPriority(req.Priority),
		Status:      models.TaskStatus(req.Status),
	})
	if err != nil {
		response.InternalError(c, "Error creating task")
		return
	}

	response.Created(c, "Task created successfully", dto.ToTaskDTO(*task, time.Now()))
}

// UpdateTask replaces all editable fields of the caller's task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	req, ok := bindTaskRequest(c)
	if !ok {
		return
	}

	dueDate, _ := validation.ParseDueDate(req.DueDate)
	task, err := h.taskService.UpdateTask(userID, taskID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    models.TaskPriority(req.Priority),
		Status:      models.TaskStatus(req.Status),
	})
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			response.NotFound(c, "Task not found")
			return
		}
		response.InternalError(c, "Error updating task")
		return
	}

	response.OK(c, "Task updated successfully", dto.ToTaskDTO(*task, time.Now()))
}

// DeleteTask removes the caller's task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(userID, taskID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			response.NotFound(c, "Task not found")
			return
		}
		response.InternalError(c, "Error deleting task")
		return
	}

	response.OK(c, "Task deleted successfully", nil)
}

// bindTaskRequest binds and validates a task payload, answering the request
// itself on failure. Validation happens before any persistence call.
func bindTaskRequest(c *gin.Context) (TaskRequest, bool) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return TaskRequest{}, false
	}

	if errs := validation.ValidateTaskInput(req.Title, req.Description, req.DueDate, req.Priority, req.Status); len(errs) > 0 {
		response.ValidationFailed(c, errs)
		return TaskRequest{}, false
	}

	return req, true
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		// An unparseable ID can never match a row; report it like any
		// other absent task rather than leaking format details.
		response.NotFound(c, "Task not found")
		return 0, false
	}
	return taskID, true
}
