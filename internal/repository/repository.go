package repository

import (
	"github.com/devarsh/task-manager-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email (emails are stored lower-cased)
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to an existing user
	Update(user *models.User) error
}

// TaskRepository defines the interface for task data access. Every method
// that touches an existing task takes the owner's ID and scopes the query
// to it; a task ID alone is never enough to reach a row.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindOwned finds a task by ID, constrained to the given owner.
	// A task belonging to someone else is indistinguishable from a
	// missing one: both return gorm.ErrRecordNotFound.
	FindOwned(id, ownerID uint64) (*models.Task, error)

	// List retrieves the owner's tasks matching the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task, constrained to the given owner
	Delete(id, ownerID uint64) error
}

// TaskFilter holds the criteria for listing an owner's tasks. Each supplied
// criterion ANDs onto the owner constraint; Search is an OR across title and
// description.
type TaskFilter struct {
	OwnerID   uint64
	Status    *models.TaskStatus
	Priority  *models.TaskPriority
	Search    string
	SortBy    string
	SortOrder string
}
