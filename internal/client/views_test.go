package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devarsh/task-manager-api/internal/dto"
	"github.com/devarsh/task-manager-api/internal/models"
)

var now = time.Date(2026, time.August, 30, 15, 0, 0, 0, time.UTC)

func viewTask(id uint64, status string, dueOffsetDays int) dto.TaskDTO {
	return dto.TaskDTO{
		ID:      id,
		Status:  models.TaskStatus(status),
		DueDate: now.AddDate(0, 0, dueOffsetDays),
	}
}

func TestPartition_DisjointAndExhaustive(t *testing.T) {
	tasks := []dto.TaskDTO{
		viewTask(1, "Pending", 2),
		viewTask(2, "In Progress", 5),
		viewTask(3, "Pending", -3),
		viewTask(4, "Completed", -10),
		viewTask(5, "Completed", 1),
		viewTask(6, "In Progress", -1),
	}

	p := Partition(tasks, now)

	require.Len(t, p.Active, 2)
	require.Len(t, p.Overdue, 2)
	require.Len(t, p.Completed, 2)

	seen := map[uint64]int{}
	for _, part := range [][]dto.TaskDTO{p.Active, p.Overdue, p.Completed} {
		for _, task := range part {
			seen[task.ID]++
		}
	}
	require.Len(t, seen, len(tasks), "partitions must cover every task")
	for id, count := range seen {
		require.Equal(t, 1, count, "task %d appears in more than one partition", id)
	}
}

func TestPartition_CompletedNeverOverdue(t *testing.T) {
	p := Partition([]dto.TaskDTO{viewTask(1, "Completed", -30)}, now)

	require.Empty(t, p.Overdue)
	require.Len(t, p.Completed, 1)
}

func TestPartition_DueEarlierTodayIsNotOverdue(t *testing.T) {
	// Overdue means before today's midnight, not before "now".
	earlierToday := dto.TaskDTO{ID: 1, Status: "Pending", DueDate: now.Add(-2 * time.Hour)}

	p := Partition([]dto.TaskDTO{earlierToday}, now)

	require.Len(t, p.Active, 1)
	require.Empty(t, p.Overdue)
}

func TestPartition_ActiveSortedByDueDate(t *testing.T) {
	tasks := []dto.TaskDTO{
		viewTask(1, "Pending", 9),
		viewTask(2, "Pending", 1),
		viewTask(3, "In Progress", 4),
	}

	p := Partition(tasks, now)

	require.Equal(t, []uint64{2, 3, 1}, ids(p.Active))
}

func TestNarrowActive(t *testing.T) {
	tasks := []dto.TaskDTO{
		{ID: 1, Status: "Pending", Priority: "High", DueDate: now.AddDate(0, 0, 1)},
		{ID: 2, Status: "In Progress", Priority: "Low", DueDate: now.AddDate(0, 0, 2)},
		{ID: 3, Status: "Pending", Priority: "Low", DueDate: now.AddDate(0, 0, 3)},
	}
	p := Partition(tasks, now)

	require.Equal(t, []uint64{1, 3}, ids(p.NarrowActive(NarrowByStatus, "Pending")))
	require.Equal(t, []uint64{2, 3}, ids(p.NarrowActive(NarrowByPriority, "Low")))

	// "All" clears any narrowing.
	require.Equal(t, []uint64{1, 2, 3}, ids(p.NarrowActive(NarrowByStatus, "All")))
	require.Equal(t, []uint64{1, 2, 3}, ids(p.NarrowActive(NarrowByPriority, "")))
}

func TestComputeStats(t *testing.T) {
	tasks := []dto.TaskDTO{
		viewTask(1, "Pending", 2),
		viewTask(2, "In Progress", 5),
		viewTask(3, "Pending", -3),
		viewTask(4, "Completed", -10),
	}

	stats := ComputeStats(tasks, now)

	require.Equal(t, 4, stats.Total)
	require.Equal(t, 1, stats.Completed)
	require.Equal(t, 2, stats.Pending)
	require.Equal(t, 1, stats.InProgress)
	require.Equal(t, 1, stats.Overdue)
	require.Equal(t, 2, stats.Active)
	require.Equal(t, 25, stats.CompletionRate)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, now)
	require.Zero(t, stats.Total)
	require.Zero(t, stats.CompletionRate)
}

func ids(tasks []dto.TaskDTO) []uint64 {
	out := make([]uint64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
