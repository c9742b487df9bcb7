package cmd

// TasksCmd manages tasks
type TasksCmd struct {
	Add   TasksAddCmd   `cmd:"add" help:"Add a new task"`
	Del   TasksDelCmd   `cmd:"del" help:"Delete a task"`
	List  TasksListCmd  `cmd:"list" help:"List all tasks" default:"1"`
	Set   TasksSetCmd   `cmd:"set" help:"Update task fields"`
	Today TasksTodayCmd `cmd:"today" help:"List today's tasks"`
}

// TasksTodayCmd lists today's tasks
type TasksTodayCmd struct{}

// Run executes the today command
func (t *TasksTodayCmd) Run(cli *CLI) error {
	list := TasksListCmd{Today: true}
	return list.Run(cli)
}
