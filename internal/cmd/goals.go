package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"ritmo/internal/logging"
)

// GoalsCmd manages goals
type GoalsCmd struct {
	Add    GoalsAddCmd    `cmd:"add" help:"Add a new goal"`
	Del    GoalsDelCmd    `cmd:"del" help:"Delete a goal (its tasks become unassigned)"`
	List   GoalsListCmd   `cmd:"list" help:"List all goals" default:"1"`
	Rename GoalsRenameCmd `cmd:"rename" help:"Rename a goal"`
}

// GoalsAddCmd adds a new goal
type GoalsAddCmd struct {
	Name string `arg:"" help:"Name of the goal"`
}

// Run executes the add command
func (g *GoalsAddCmd) Run(cli *CLI) error {
	ctx := context.Background()

	// Goals created while signed in are stamped with the profile ID
	var ownerUserID *string
	if user, err := cli.Container.Identity.CurrentUser(ctx); err == nil && user != nil {
		ownerUserID = &user.ID
	}

	goal, err := cli.Container.GoalService.Create(ctx, g.Name, ownerUserID)
	if err != nil {
		logging.Logger.Error("Failed to add goal", "error", err)
		return fmt.Errorf("failed to add goal: %w", err)
	}

	fmt.Printf("Goal '%s' added (%s)\n", goal.Name, goal.ID)
	return nil
}

// GoalsListCmd lists goals with their task counts
type GoalsListCmd struct{}

// Run executes the list command
func (g *GoalsListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	goals, err := cli.Container.GoalService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}

	if len(goals) == 0 {
		fmt.Println("No goals found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTASKS")
	for _, goal := range goals {
		tasks, err := cli.Container.GoalService.Tasks(ctx, goal.ID)
		if err != nil {
			return fmt.Errorf("failed to list tasks for goal %s: %w", goal.ID, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", goal.ID, goal.Name, len(tasks))
	}
	return w.Flush()
}

// GoalsRenameCmd renames a goal
type GoalsRenameCmd struct {
	ID   string `arg:"" help:"ID of the goal to rename"`
	Name string `arg:"" help:"New name"`
}

// Run executes the rename command
func (g *GoalsRenameCmd) Run(cli *CLI) error {
	goal, err := cli.Container.GoalService.Rename(context.Background(), g.ID, g.Name)
	if err != nil {
		logging.Logger.Error("Failed to rename goal", "goal", g.ID, "error", err)
		return fmt.Errorf("failed to rename goal: %w", err)
	}

	fmt.Printf("Goal renamed to '%s'\n", goal.Name)
	return nil
}

// GoalsDelCmd deletes a goal
type GoalsDelCmd struct {
	Force bool   `help:"Force deletion without confirmation" short:"f"`
	ID    string `arg:"" help:"ID of the goal to delete"`
}

// Run executes the del command
func (g *GoalsDelCmd) Run(cli *CLI) error {
	ctx := context.Background()
	goal, err := cli.Container.GoalService.Get(ctx, g.ID)
	if err != nil {
		return fmt.Errorf("goal not found: %w", err)
	}

	if !g.Force {
		fmt.Printf("WARNING: This will delete goal '%s'\n", goal.Name)
		fmt.Println("  - Its tasks become unassigned, not deleted")
		fmt.Print("\nContinue? (y/N): ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := cli.Container.GoalService.Delete(ctx, g.ID); err != nil {
		logging.Logger.Error("Failed to delete goal", "goal", g.ID, "error", err)
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	fmt.Printf("Goal '%s' deleted\n", goal.Name)
	return nil
}
