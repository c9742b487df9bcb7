package cmd

import (
	"context"
	"fmt"

	"ritmo/internal/logging"
)

// TasksAddCmd adds a new task
type TasksAddCmd struct {
	Description string `arg:"" help:"Task description"`
	Goal        string `help:"Goal ID to assign the task to" default:""`
	Target      int    `help:"Target number of focus sessions" default:"1"`
	Today       bool   `help:"Add the task to today's list"`
}

// Run executes the add command
func (t *TasksAddCmd) Run(cli *CLI) error {
	var goalID *string
	if t.Goal != "" {
		goalID = &t.Goal
	}

	task, err := cli.Container.TaskService.Create(context.Background(), t.Description, t.Target, t.Today, goalID)
	if err != nil {
		logging.Logger.Error("Failed to add task", "error", err)
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Printf("Task '%s' added (%s)\n", task.Description, task.ID)
	return nil
}
