package cmd

import (
	"context"
	"fmt"

	"ritmo/internal/logging"
)

// TasksDelCmd deletes a task
type TasksDelCmd struct {
	Force bool   `help:"Force deletion without confirmation" short:"f"`
	ID    string `arg:"" help:"ID of the task to delete"`
}

// Run executes the del command
func (t *TasksDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	if err := cli.Container.TaskService.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	task, ok := cli.Container.TaskService.Get(t.ID)
	if !ok {
		return fmt.Errorf("task not found: %s", t.ID)
	}

	if !t.Force {
		fmt.Printf("WARNING: This will delete task '%s'\n", task.Description)
		fmt.Print("\nContinue? (y/N): ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cli.Container.TaskService.Delete(ctx, t.ID); err != nil {
		logging.Logger.Error("Failed to delete task", "task", t.ID, "error", err)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("Task '%s' deleted\n", task.Description)
	return nil
}
