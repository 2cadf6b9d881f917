package dto

import (
	"time"

	"github.com/devarsh/task-manager-api/internal/models"
)

// UserDTO represents a user in API responses. The password hash never
// appears here.
type UserDTO struct {
	ID             uint64     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
	IsActive       bool       `json:"is_active"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TaskDTO represents a task in API responses. Overdue is derived at
// serialization time and never stored.
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     time.Time           `json:"due_date"`
	Priority    models.TaskPriority `json:"priority"`
	Status      models.TaskStatus   `json:"status"`
	Overdue     bool                `json:"overdue"`
	UserID      uint64              `json:"user_id"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// AuthPayload is the data body returned by register and login.
type AuthPayload struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// UserPayload wraps a user for verify/profile responses.
type UserPayload struct {
	User UserDTO `json:"user"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
		IsActive:       user.IsActive,
		LastLogin:      user.LastLogin,
		CreatedAt:      user.CreatedAt,
	}
}

// ToTaskDTO converts a Task model to TaskDTO, deriving the overdue flag
// from the supplied clock reading.
func ToTaskDTO(task models.Task, now time.Time) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    task.Priority,
		Status:      task.Status,
		Overdue:     task.IsOverdue(now),
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks using a single fixed "now" so one
// response cannot mix two different days.
func ToTaskDTOs(tasks []models.Task, now time.Time) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task, now)
	}
	return dtos
}
