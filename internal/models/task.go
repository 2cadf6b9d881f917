package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// ValidStatus reports whether s is one of the three task statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

// ValidPriority reports whether p is one of the three task priorities.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	DueDate     time.Time    `gorm:"not null;index" json:"due_date"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null" json:"priority"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	UserID      uint64       `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// IsOverdue reports whether the task's due date has passed relative to now.
// A task is overdue when it is not completed and its due date falls before
// the start of "today" in now's location. Completed tasks are never overdue.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Status == TaskStatusCompleted {
		return false
	}
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return t.DueDate.Before(startOfToday)
}
