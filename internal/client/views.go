package client

import (
	"sort"
	"time"

	"github.com/devarsh/task-manager-api/internal/dto"
)

// Partitions splits the task set into the three dashboard views. For a
// fixed "now" the three slices are pairwise disjoint and together cover
// every task.
type Partitions struct {
	// Active tasks are neither completed nor overdue, sorted ascending by
	// due date (nearest first).
	Active []dto.TaskDTO
	// Overdue tasks are not completed and due before today's local
	// midnight. Server order is preserved.
	Overdue []dto.TaskDTO
	// Completed tasks, server order preserved.
	Completed []dto.TaskDTO
}

// Partition derives the three views from the full task list. It must be
// recomputed from the list on every render; the result is never stored as
// separate state, so the views cannot drift from the list they came from.
func Partition(tasks []dto.TaskDTO, now time.Time) Partitions {
	var p Partitions
	for _, task := range tasks {
		switch {
		case task.Status == "Completed":
			p.Completed = append(p.Completed, task)
		case overdue(task, now):
			p.Overdue = append(p.Overdue, task)
		default:
			p.Active = append(p.Active, task)
		}
	}

	sort.SliceStable(p.Active, func(i, j int) bool {
		return p.Active[i].DueDate.Before(p.Active[j].DueDate)
	})

	return p
}

// NarrowKind selects which field a dashboard narrowing applies to. Status
// and priority narrowing are independent; only one is active at a time.
type NarrowKind int

const (
	NarrowByStatus NarrowKind = iota
	NarrowByPriority
)

// NarrowActive filters the Active partition by a single status or priority
// value. The value "All" (or empty) clears the narrowing. The due-date sort
// of the Active partition is preserved.
func (p Partitions) NarrowActive(kind NarrowKind, value string) []dto.TaskDTO {
	if value == "" || value == "All" {
		return p.Active
	}

	narrowed := make([]dto.TaskDTO, 0, len(p.Active))
	for _, task := range p.Active {
		switch kind {
		case NarrowByStatus:
			if string(task.Status) == value {
				narrowed = append(narrowed, task)
			}
		case NarrowByPriority:
			if string(task.Priority) == value {
				narrowed = append(narrowed, task)
			}
		}
	}
	return narrowed
}

// Stats are the dashboard counters derived from the full task list.
type Stats struct {
	Total          int
	Completed      int
	Pending        int
	InProgress     int
	Overdue        int
	Active         int
	CompletionRate int
}

// ComputeStats tallies the dashboard counters for a fixed "now".
func ComputeStats(tasks []dto.TaskDTO, now time.Time) Stats {
	p := Partition(tasks, now)
	stats := Stats{
		Total:     len(tasks),
		Completed: len(p.Completed),
		Overdue:   len(p.Overdue),
		Active:    len(p.Active),
	}
	for _, task := range tasks {
		switch task.Status {
		case "Pending":
			stats.Pending++
		case "In Progress":
			stats.InProgress++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = int(float64(stats.Completed)/float64(stats.Total)*100 + 0.5)
	}
	return stats
}

func overdue(task dto.TaskDTO, now time.Time) bool {
	if task.Status == "Completed" {
		return false
	}
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return task.DueDate.Before(startOfToday)
}
