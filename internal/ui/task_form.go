package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"ritmo/internal/domain"
	"ritmo/internal/logging"
	"ritmo/internal/services"
)

// TaskFormResult contains the result of the task dialog
type TaskFormResult struct {
	Cancelled bool
	Error     error
	Task      *domain.Task
}

// TaskForm is a Bubble Tea component for creating or editing a task
type TaskForm struct {
	Completed bool

	taskService *services.TaskService
	goalService *services.GoalService
	editing     *domain.Task

	description string
	target      string
	isToday     bool
	goalID      string

	form   *huh.Form
	result TaskFormResult
}

// NewTaskForm creates the dialog. A nil task creates; otherwise edits.
func NewTaskForm(taskService *services.TaskService, goalService *services.GoalService, task *domain.Task) *TaskForm {
	tf := &TaskForm{
		taskService: taskService,
		goalService: goalService,
		editing:     task,
		target:      "1",
	}
	if task != nil {
		tf.description = task.Description
		tf.target = strconv.Itoa(task.TargetSessions)
		tf.isToday = task.IsToday
		if task.GoalID != nil {
			tf.goalID = *task.GoalID
		}
	}

	goalOptions := []huh.Option[string]{huh.NewOption("No goal", "")}
	if goals, err := goalService.List(context.Background()); err == nil {
		for _, g := range goals {
			goalOptions = append(goalOptions, huh.NewOption(g.Name, g.ID))
		}
	} else {
		logging.Logger.Warn("Failed to load goals for task form", "error", err)
	}

	tf.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Value(&tf.description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Target sessions").
				Value(&tf.target).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("must be a number >= 1")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Goal").
				Options(goalOptions...).
				Value(&tf.goalID),
			huh.NewConfirm().
				Title("Add to today?").
				Value(&tf.isToday),
		),
	)
	return tf
}

func (tf *TaskForm) Init() tea.Cmd {
	return tf.form.Init()
}

func (tf *TaskForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" || keyMsg.String() == "ctrl+c" {
			tf.result.Cancelled = true
			tf.Completed = true
			return tf, nil
		}
	}

	form, cmd := tf.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		tf.form = f
	}

	if tf.form.State == huh.StateCompleted {
		tf.Completed = true
		if err := tf.save(); err != nil {
			logging.Logger.Error("Failed to save task", "error", err)
			tf.result.Error = err
		}
		return tf, nil
	}

	return tf, cmd
}

func (tf *TaskForm) View() string {
	if tf.form != nil {
		return tf.form.View()
	}
	return ""
}

// Result returns the form result
func (tf *TaskForm) Result() TaskFormResult {
	return tf.result
}

func (tf *TaskForm) save() error {
	target, err := strconv.Atoi(strings.TrimSpace(tf.target))
	if err != nil {
		return fmt.Errorf("invalid target sessions: %w", err)
	}

	var goalID *string
	if tf.goalID != "" {
		id := tf.goalID
		goalID = &id
	}

	ctx := context.Background()
	if tf.editing == nil {
		created, err := tf.taskService.Create(ctx, strings.TrimSpace(tf.description), target, tf.isToday, goalID)
		if err != nil {
			return err
		}
		tf.result.Task = created
		return nil
	}

	task := *tf.editing
	task.Description = strings.TrimSpace(tf.description)
	task.TargetSessions = target
	task.IsToday = tf.isToday
	task.GoalID = goalID
	updated, err := tf.taskService.Update(ctx, task)
	if err != nil {
		return err
	}
	tf.result.Task = updated
	return nil
}
