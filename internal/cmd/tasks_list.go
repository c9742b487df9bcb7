package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"ritmo/internal/domain"
)

// TasksListCmd lists tasks
type TasksListCmd struct {
	Finished bool `help:"Show only finished tasks"`
	Today    bool `help:"Show only today's tasks"`
}

// Run executes the list command
func (t *TasksListCmd) Run(cli *CLI) error {
	if err := cli.Container.TaskService.Refresh(context.Background()); err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	var tasks []domain.Task
	switch {
	case t.Finished:
		tasks = cli.Container.TaskService.Finished()
	case t.Today:
		tasks = cli.Container.TaskService.Today()
	default:
		tasks = cli.Container.TaskService.All()
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDESCRIPTION\tSESSIONS\tTODAY\tFINISHED\tGOAL")
	for _, task := range tasks {
		goalID := ""
		if task.GoalID != nil {
			goalID = *task.GoalID
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\t%s\t%s\n",
			task.ID,
			task.Description,
			task.CompletedSessions,
			task.TargetSessions,
			yesNo(task.IsToday),
			yesNo(task.IsFinished),
			goalID,
		)
	}
	return w.Flush()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
