package client

import "github.com/devarsh/task-manager-api/internal/dto"

// TaskListState is the ordered in-memory task list the UI renders from.
// It is reduced with pure actions: every mutation returns a new state and
// the old one is never modified. Actions are applied only after the server
// has confirmed the corresponding operation; a failed request simply never
// produces an action, leaving the list untouched.
type TaskListState struct {
	// Tasks holds the owner's tasks in display order.
	Tasks []dto.TaskDTO
	// Generation increments on every Reset. Actions stamped with an older
	// generation were issued before an unmount and are discarded instead
	// of being applied to stale state.
	Generation uint64
}

// TaskAction is one of the three list transformations.
type TaskAction struct {
	kind       actionKind
	task       dto.TaskDTO
	taskID     uint64
	generation uint64
}

type actionKind int

const (
	actionAdded actionKind = iota
	actionReplaced
	actionRemoved
)

// Added prepends a newly created task, matching the UI's newest-first order.
func (s TaskListState) Added(task dto.TaskDTO) TaskAction {
	return TaskAction{kind: actionAdded, task: task, generation: s.Generation}
}

// Replaced swaps the task with the same ID in place, preserving order.
func (s TaskListState) Replaced(task dto.TaskDTO) TaskAction {
	return TaskAction{kind: actionReplaced, task: task, generation: s.Generation}
}

// Removed drops the task with the given ID.
func (s TaskListState) Removed(taskID uint64) TaskAction {
	return TaskAction{kind: actionRemoved, taskID: taskID, generation: s.Generation}
}

// Apply reduces the state with an action. Actions from a previous generation
// are ignored: the response arrived after the list was reset.
func (s TaskListState) Apply(action TaskAction) TaskListState {
	if action.generation != s.Generation {
		return s
	}

	switch action.kind {
	case actionAdded:
		tasks := make([]dto.TaskDTO, 0, len(s.Tasks)+1)
		tasks = append(tasks, action.task)
		tasks = append(tasks, s.Tasks...)
		return TaskListState{Tasks: tasks, Generation: s.Generation}

	case actionReplaced:
		tasks := make([]dto.TaskDTO, len(s.Tasks))
		for i, t := range s.Tasks {
			if t.ID == action.task.ID {
				tasks[i] = action.task
			} else {
				tasks[i] = t
			}
		}
		return TaskListState{Tasks: tasks, Generation: s.Generation}

	case actionRemoved:
		tasks := make([]dto.TaskDTO, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			if t.ID != action.taskID {
				tasks = append(tasks, t)
			}
		}
		return TaskListState{Tasks: tasks, Generation: s.Generation}
	}

	return s
}

// WithTasks replaces the whole list after a fetch, keeping the generation.
func (s TaskListState) WithTasks(tasks []dto.TaskDTO) TaskListState {
	copied := make([]dto.TaskDTO, len(tasks))
	copy(copied, tasks)
	return TaskListState{Tasks: copied, Generation: s.Generation}
}

// Reset empties the list and advances the generation so responses still in
// flight cannot land on the new state.
func (s TaskListState) Reset() TaskListState {
	return TaskListState{Generation: s.Generation + 1}
}
