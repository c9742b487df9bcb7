package cmd

import (
	"context"
	"fmt"

	"ritmo/internal/logging"
)

// TasksSetCmd updates task fields. Only the flags that are present
// change the task; everything else keeps its stored value.
type TasksSetCmd struct {
	ID          string  `arg:"" help:"ID of the task to update"`
	Description *string `help:"New description"`
	Finished    *bool   `help:"Mark the task finished or unfinished"`
	Goal        *string `help:"Goal ID to assign (empty string unassigns)"`
	Target      *int    `help:"New target number of focus sessions"`
	Today       *bool   `help:"Add to or remove from today's list"`
}

// Run executes the set command
func (t *TasksSetCmd) Run(cli *CLI) error {
	ctx := context.Background()
	if err := cli.Container.TaskService.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	task, ok := cli.Container.TaskService.Get(t.ID)
	if !ok {
		return fmt.Errorf("task not found: %s", t.ID)
	}

	if t.Description != nil {
		task.Description = *t.Description
	}
	if t.Target != nil {
		task.TargetSessions = *t.Target
	}
	if t.Today != nil {
		task.IsToday = *t.Today
	}
	if t.Finished != nil {
		task.IsFinished = *t.Finished
	}
	if t.Goal != nil {
		if *t.Goal == "" {
			task.GoalID = nil
		} else {
			goalID := *t.Goal
			task.GoalID = &goalID
		}
	}

	updated, err := cli.Container.TaskService.Update(ctx, task)
	if err != nil {
		logging.Logger.Error("Failed to update task", "task", t.ID, "error", err)
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Task '%s' updated\n", updated.Description)
	return nil
}
