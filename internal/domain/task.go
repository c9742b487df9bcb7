package domain

import (
	"strings"
	"time"
)

// Task represents a tracked unit of work (domain entity)
type Task struct {
	ID                string
	Description       string
	CompletedSessions int
	TargetSessions    int
	IsToday           bool
	IsFinished        bool
	GoalID            *string
	Position          int
	CreatedAt         time.Time
}

// TaskSnapshot is a copy of the task that was active when a focus phase
// began. Completion credit always goes to the snapshot, so changing the
// selection mid-phase never redirects it.
type TaskSnapshot struct {
	ID                string
	Description       string
	CompletedSessions int
	TargetSessions    int
}

// Snapshot captures the task for the duration of a focus phase
func (t Task) Snapshot() TaskSnapshot {
	return TaskSnapshot{
		ID:                t.ID,
		Description:       t.Description,
		CompletedSessions: t.CompletedSessions,
		TargetSessions:    t.TargetSessions,
	}
}

// Validate checks task fields before any persistence call
func (t Task) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if t.TargetSessions < 1 {
		return ErrTargetTooLow
	}
	if t.CompletedSessions < 0 {
		return ErrInvalidCompleted
	}
	if t.CompletedSessions > t.TargetSessions {
		return ErrCompletedExceedsTarget
	}
	return nil
}

// TaskCollection is the authoritative in-memory view of the task list,
// keyed by identity with an explicit display order.
type TaskCollection struct {
	OrderedIDs []string
	Tasks      map[string]Task
}

// NewTaskCollection builds a collection from a repository listing
func NewTaskCollection(tasks []Task) *TaskCollection {
	c := &TaskCollection{
		OrderedIDs: make([]string, 0, len(tasks)),
		Tasks:      make(map[string]Task, len(tasks)),
	}
	for _, t := range tasks {
		c.OrderedIDs = append(c.OrderedIDs, t.ID)
		c.Tasks[t.ID] = t
	}
	return c
}

// Get returns the task with the given identity
func (c *TaskCollection) Get(id string) (Task, bool) {
	t, ok := c.Tasks[id]
	return t, ok
}

// Put upserts a task, preserving order for known identities
func (c *TaskCollection) Put(task Task) {
	if _, known := c.Tasks[task.ID]; !known {
		c.OrderedIDs = append(c.OrderedIDs, task.ID)
	}
	c.Tasks[task.ID] = task
}

// Remove deletes a task from the collection
func (c *TaskCollection) Remove(id string) {
	if _, known := c.Tasks[id]; !known {
		return
	}
	delete(c.Tasks, id)
	for i, existing := range c.OrderedIDs {
		if existing == id {
			c.OrderedIDs = append(c.OrderedIDs[:i], c.OrderedIDs[i+1:]...)
			break
		}
	}
}

// Ordered returns tasks in display order
func (c *TaskCollection) Ordered() []Task {
	out := make([]Task, 0, len(c.OrderedIDs))
	for _, id := range c.OrderedIDs {
		if t, ok := c.Tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Today is the derived "today" view: a filter over the authoritative
// collection, never an independently mutated copy.
func (c *TaskCollection) Today() []Task {
	var out []Task
	for _, t := range c.Ordered() {
		if t.IsToday && !t.IsFinished {
			out = append(out, t)
		}
	}
	return out
}

// Finished returns completed tasks in display order
func (c *TaskCollection) Finished() []Task {
	var out []Task
	for _, t := range c.Ordered() {
		if t.IsFinished {
			out = append(out, t)
		}
	}
	return out
}
