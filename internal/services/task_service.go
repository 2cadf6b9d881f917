package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/devarsh/task-manager-api/internal/models"
	"github.com/devarsh/task-manager-api/internal/repository"
)

// ErrTaskNotFound covers both a task that does not exist and a task owned by
// another user. Handlers must never distinguish the two cases.
var ErrTaskNotFound = errors.New("task not found")

// TaskService handles task business logic. Every operation is scoped to the
// calling owner; the owner reference on a task is set at creation and can
// never change afterwards.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// ListTasksInput represents filters for listing an owner's tasks.
type ListTasksInput struct {
	OwnerID   uint64
	Status    string
	Priority  string
	Search    string
	SortBy    string
	SortOrder string
}

// ListTasks returns the owner's tasks matching the supplied filters.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, error) {
	filter := repository.TaskFilter{
		OwnerID:   input.OwnerID,
		Search:    input.Search,
		SortBy:    input.SortBy,
		SortOrder: input.SortOrder,
	}
	if input.Status != "" {
		status := models.TaskStatus(input.Status)
		filter.Status = &status
	}
	if input.Priority != "" {
		priority := models.TaskPriority(input.Priority)
		filter.Priority = &priority
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// CreateTaskInput represents input for creating a task. OwnerID always comes
// from the verified caller, never from the request body.
type CreateTaskInput struct {
	OwnerID     uint64
	Title       string
	Description string
	DueDate     time.Time
	Priority    models.TaskPriority
	Status      models.TaskStatus
}

// CreateTask creates a task owned by the caller. Status defaults to Pending
// when omitted.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		Status:      input.Status,
		UserID:      input.OwnerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskInput carries the full replacement field set for a task.
type UpdateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Priority    models.TaskPriority
	Status      models.TaskStatus
}

// UpdateTask replaces all editable fields of the caller's task. The task is
// re-fetched scoped to the owner first, so a foreign task yields the same
// ErrTaskNotFound as a missing one.
func (s *TaskService) UpdateTask(ownerID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindOwned(taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Title = input.Title
	task.Description = input.Description
	task.DueDate = input.DueDate
	task.Priority = input.Priority
	// An omitted status keeps the stored one; a task never leaves the
	// Pending | In Progress | Completed set.
	if input.Status != "" {
		task.Status = input.Status
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes the caller's task after the same ownership pre-check as
// UpdateTask. Deleting an already-deleted or foreign task is ErrTaskNotFound
// every time.
func (s *TaskService) DeleteTask(ownerID, taskID uint64) error {
	if _, err := s.taskRepo.FindOwned(taskID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
