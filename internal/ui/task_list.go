package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"ritmo/internal/domain"
	"ritmo/internal/services"
	"ritmo/internal/theme"
)

// TaskItem implements list.Item
type TaskItem struct {
	Task domain.Task
}

// FilterValue implements list.Item
func (i TaskItem) FilterValue() string {
	return i.Task.Description
}

// TaskDelegate renders one task per line with its session progress
type TaskDelegate struct{}

// Height implements list.ItemDelegate
func (d TaskDelegate) Height() int { return 1 }

// Spacing implements list.ItemDelegate
func (d TaskDelegate) Spacing() int { return 0 }

// Update implements list.ItemDelegate
func (d TaskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

// Render implements list.ItemDelegate
func (d TaskDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(TaskItem)
	if !ok {
		return
	}

	cursor := " "
	if index == m.Index() {
		cursor = ">"
	}

	progress := theme.TaskProgressStyle.Render(fmt.Sprintf(
		"[%d/%d]", item.Task.CompletedSessions, item.Task.TargetSessions,
	))

	style := theme.TaskStyle
	switch {
	case item.Task.IsFinished:
		style = theme.TaskDoneStyle
	case index == m.Index():
		style = theme.TaskSelectedStyle
	}

	fmt.Fprintf(w, "%s %s %s", cursor, progress, style.Render(item.Task.Description))
}

// taskView selects which slice of the collection the list shows
type taskView int

const (
	viewToday taskView = iota
	viewAll
	viewFinished
)

var taskViewTitles = map[taskView]string{
	viewToday:    "Today",
	viewAll:      "All Tasks",
	viewFinished: "Finished",
}

// TaskList is the task sidebar. It is a projection of the TaskService
// cache; Reload rebuilds the items after any mutation.
type TaskList struct {
	taskService *services.TaskService
	list        list.Model
	view        taskView
}

// NewTaskList creates a TaskList showing the today view
func NewTaskList(taskService *services.TaskService) *TaskList {
	l := list.New(nil, TaskDelegate{}, 0, 0)
	l.Title = taskViewTitles[viewToday]
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = theme.TitleStyle

	tl := &TaskList{taskService: taskService, list: l}
	tl.Reload()
	return tl
}

// Reload rebuilds the visible items from the service cache
func (t *TaskList) Reload() {
	var tasks []domain.Task
	switch t.view {
	case viewAll:
		tasks = t.taskService.All()
	case viewFinished:
		tasks = t.taskService.Finished()
	default:
		tasks = t.taskService.Today()
	}

	items := make([]list.Item, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, TaskItem{Task: task})
	}
	t.list.SetItems(items)
	if t.list.Index() >= len(items) && len(items) > 0 {
		t.list.Select(len(items) - 1)
	}
}

// CycleView rotates today -> all -> finished -> today
func (t *TaskList) CycleView() {
	t.view = (t.view + 1) % 3
	t.list.Title = taskViewTitles[t.view]
	t.Reload()
}

// Selected returns the task under the cursor, or nil when empty
func (t *TaskList) Selected() *domain.Task {
	item, ok := t.list.SelectedItem().(TaskItem)
	if !ok {
		return nil
	}
	task := item.Task
	return &task
}

// Neighbor returns the task adjacent to the cursor in the given
// direction, for reordering. Nil at the list edges.
func (t *TaskList) Neighbor(up bool) *domain.Task {
	index := t.list.Index()
	if up {
		index--
	} else {
		index++
	}
	items := t.list.Items()
	if index < 0 || index >= len(items) {
		return nil
	}
	item, ok := items[index].(TaskItem)
	if !ok {
		return nil
	}
	task := item.Task
	return &task
}

// MoveCursor follows a reordered task so the selection stays on it
func (t *TaskList) MoveCursor(up bool) {
	if up {
		t.list.CursorUp()
	} else {
		t.list.CursorDown()
	}
}

// SetSize resizes the embedded list
func (t *TaskList) SetSize(width, height int) {
	t.list.SetSize(width, height)
}

// Update forwards navigation messages to the embedded list
func (t *TaskList) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.list, cmd = t.list.Update(msg)
	return cmd
}

// View renders the list
func (t *TaskList) View() string {
	return t.list.View()
}
