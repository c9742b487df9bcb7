package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ritmo/internal/domain"
	"ritmo/internal/logging"
	"ritmo/internal/ports"
	"ritmo/internal/services"
	"ritmo/internal/theme"
	"ritmo/version"
)

type uiState int

const (
	stateMain uiState = iota
	stateCreatingTask
	stateEditingTask
	stateSettings
	stateAddingQuote
	stateHelp
)

const signInHintDuration = 6 * time.Second

type Model struct {
	errorNotice       *notice
	hintNotice        *notice
	celebrationNotice *notice

	keys            KeyMap
	state           uiState
	width           int
	height          int
	devMode         bool
	user            *domain.User
	identity        ports.Identity
	quoteForm       *QuoteForm
	quoteService    *services.QuoteService
	settingsForm    *SettingsForm
	settingsService *services.SettingsService
	goalService     *services.GoalService
	taskForm        *TaskForm
	taskList          *TaskList
	taskService       *services.TaskService
	timerPanel        *TimerPanel
	timerService      *services.TimerService
	completionService *services.CompletionService
}

func NewModel(
	errorClearDelay time.Duration,
	devMode bool,
	identity ports.Identity,
	timerService *services.TimerService,
	completionService *services.CompletionService,
	taskService *services.TaskService,
	goalService *services.GoalService,
	quoteService *services.QuoteService,
	settingsService *services.SettingsService,
) *Model {
	errorNotice := newNotice(noticeError, errorClearDelay)

	// The cache is the source of truth for every task view
	if err := taskService.Refresh(context.Background()); err != nil {
		logging.Logger.Warn("Failed to load tasks", "error", err)
		errorNotice.Set(fmt.Sprintf("failed to load tasks: %v", err))
	}

	user, err := identity.CurrentUser(context.Background())
	if err != nil {
		logging.Logger.Warn("Failed to resolve current user", "error", err)
	}

	timerPanel := NewTimerPanel(timerService)
	if quote, err := quoteService.Random(context.Background()); err == nil && quote != nil {
		timerPanel.SetQuote(quote.Content)
	}

	return &Model{
		celebrationNotice: newNotice(noticeCelebration, services.CelebrationDuration),
		completionService: completionService,
		devMode:           devMode,
		errorNotice:       errorNotice,
		hintNotice:        newNotice(noticeSignInHint, signInHintDuration),
		identity:          identity,
		keys:              NewKeyMap(),
		goalService:       goalService,
		quoteService:      quoteService,
		settingsService:   settingsService,
		state:             stateMain,
		taskList:          NewTaskList(taskService),
		taskService:       taskService,
		timerPanel:        timerPanel,
		timerService:      timerService,
		user:              user,
	}
}

func (m *Model) Init() tea.Cmd {
	return waitForTick(m.timerService.Events())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.timerPanel.SetWidth(msg.Width)
		m.taskList.SetSize(msg.Width, m.listHeight())
		return m, nil

	// Timer events flow regardless of which dialog is open, so a form
	// never freezes the countdown.
	case TickMsg:
		outcome := m.timerService.HandleTick(msg.Event)
		cmds := []tea.Cmd{waitForTick(m.timerService.Events())}
		if cmd := m.handleCompletion(outcome); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case CompletionRecordedMsg:
		m.taskList.Reload()
		if msg.Result.Quote != nil {
			m.timerPanel.SetQuote(msg.Result.Quote.Content)
		}
		return m, nil

	case QuoteRefreshedMsg:
		if msg.Quote != nil {
			m.timerPanel.SetQuote(msg.Quote.Content)
		}
		return m, nil

	case noticeExpiredMsg:
		m.errorNotice.Expire(msg)
		if m.hintNotice.Expire(msg) {
			m.timerPanel.ShowSignInHint(false)
		}
		if m.celebrationNotice.Expire(msg) {
			m.timerPanel.EndCelebration()
		}
		return m, nil

	case AuthChangedMsg:
		m.user = msg.User
		m.timerService.ApplyDurations(m.settingsService.DurationsFor(m.user != nil))
		if m.user != nil {
			m.hintNotice.Clear()
			m.timerPanel.ShowSignInHint(false)
		}
		return m, nil

	case SettingsChangedMsg:
		// New durations apply to the next idle phase, never to an
		// in-flight countdown.
		m.timerService.ApplyDurations(m.settingsService.DurationsFor(m.user != nil))
		return m, nil
	}

	switch m.state {
	case stateCreatingTask, stateEditingTask:
		return m.updateTaskForm(msg)
	case stateSettings:
		return m.updateSettingsForm(msg)
	case stateAddingQuote:
		return m.updateQuoteForm(msg)
	case stateHelp:
		return m.updateHelp(msg)
	}
	return m.updateMain(msg)
}

func (m *Model) updateMain(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case QuitMsg:
		return m, tea.Quit

	case ShowHelpMsg:
		m.state = stateHelp
		return m, nil

	case NewTaskMsg:
		m.taskForm = NewTaskForm(m.taskService, m.goalService, nil)
		m.state = stateCreatingTask
		return m, m.taskForm.Init()

	case EditTaskMsg:
		task, ok := m.taskService.Get(msg.TaskID)
		if !ok {
			return m, nil
		}
		m.taskForm = NewTaskForm(m.taskService, m.goalService, &task)
		m.state = stateEditingTask
		return m, m.taskForm.Init()

	case DeleteTaskMsg:
		if err := m.taskService.Delete(context.Background(), msg.TaskID); err != nil {
			return m, m.reportError(fmt.Errorf("failed to delete task: %w", err))
		}
		m.taskList.Reload()
		return m, nil

	case ToggleTodayMsg:
		task, ok := m.taskService.Get(msg.TaskID)
		if !ok {
			return m, nil
		}
		if _, err := m.taskService.SetToday(context.Background(), msg.TaskID, !task.IsToday); err != nil {
			return m, m.reportError(fmt.Errorf("failed to update task: %w", err))
		}
		m.taskList.Reload()
		return m, nil

	case FinishTaskMsg:
		task, ok := m.taskService.Get(msg.TaskID)
		if !ok {
			return m, nil
		}
		if _, err := m.taskService.SetFinished(context.Background(), msg.TaskID, !task.IsFinished); err != nil {
			return m, m.reportError(fmt.Errorf("failed to update task: %w", err))
		}
		m.taskList.Reload()
		return m, nil

	case MoveTaskMsg:
		neighbor := m.taskList.Neighbor(msg.Up)
		if neighbor == nil {
			return m, nil
		}
		if err := m.taskService.Swap(context.Background(), msg.TaskID, neighbor.ID); err != nil {
			return m, m.reportError(fmt.Errorf("failed to reorder tasks: %w", err))
		}
		m.taskList.Reload()
		m.taskList.MoveCursor(msg.Up)
		return m, nil

	case ShowSettingsMsg:
		m.settingsForm = NewSettingsForm(m.settingsService)
		m.state = stateSettings
		return m, m.settingsForm.Init()

	case NewQuoteMsg:
		if m.user == nil {
			return m, m.reportError(domain.ErrSignInRequired)
		}
		m.quoteForm = NewQuoteForm(m.quoteService)
		m.state = stateAddingQuote
		return m, m.quoteForm.Init()

	case tea.KeyMsg:
		return m.handleMainKey(msg)
	}

	return m, nil
}

func (m *Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.updateMain(QuitMsg{})

	case key.Matches(msg, m.keys.Help):
		return m.updateMain(ShowHelpMsg{})

	case key.Matches(msg, m.keys.Toggle):
		// Starting a session is gated on sign-in; pausing never is.
		starting := m.timerService.Timer().Status() != domain.StatusRunning
		if starting && m.user == nil {
			m.timerPanel.ShowSignInHint(true)
			return m, m.hintNotice.Show("")
		}
		m.timerService.Toggle(time.Now(), m.taskList.Selected())
		return m, nil

	case key.Matches(msg, m.keys.Skip):
		outcome := m.timerService.Skip()
		return m, m.handleCompletion(outcome)

	case key.Matches(msg, m.keys.FocusPhase):
		m.timerService.SwitchPhase(domain.PhaseFocus)
		return m, nil
	case key.Matches(msg, m.keys.ShortBreak):
		m.timerService.SwitchPhase(domain.PhaseShortBreak)
		return m, nil
	case key.Matches(msg, m.keys.LongBreak):
		m.timerService.SwitchPhase(domain.PhaseLongBreak)
		return m, nil

	case key.Matches(msg, m.keys.NewTask):
		return m.updateMain(NewTaskMsg{})
	case key.Matches(msg, m.keys.EditTask):
		if task := m.taskList.Selected(); task != nil {
			return m.updateMain(EditTaskMsg{TaskID: task.ID})
		}
		return m, nil
	case key.Matches(msg, m.keys.DeleteTask):
		if task := m.taskList.Selected(); task != nil {
			return m.updateMain(DeleteTaskMsg{TaskID: task.ID})
		}
		return m, nil
	case key.Matches(msg, m.keys.ToggleToday):
		if task := m.taskList.Selected(); task != nil {
			return m.updateMain(ToggleTodayMsg{TaskID: task.ID})
		}
		return m, nil
	case key.Matches(msg, m.keys.FinishTask):
		if task := m.taskList.Selected(); task != nil {
			return m.updateMain(FinishTaskMsg{TaskID: task.ID})
		}
		return m, nil
	case key.Matches(msg, m.keys.MoveUp):
		if task := m.taskList.Selected(); task != nil {
			return m.updateMain(MoveTaskMsg{TaskID: task.ID, Up: true})
		}
		return m, nil
	case key.Matches(msg, m.keys.MoveDown):
		if task := m.taskList.Selected(); task != nil {
			return m.updateMain(MoveTaskMsg{TaskID: task.ID, Up: false})
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleView):
		m.taskList.CycleView()
		return m, nil
	case key.Matches(msg, m.keys.NewQuote):
		return m.updateMain(NewQuoteMsg{})
	case key.Matches(msg, m.keys.Settings):
		return m.updateMain(ShowSettingsMsg{})
	}

	// Everything else is list navigation
	return m, m.taskList.Update(msg)
}

func (m *Model) updateTaskForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.taskForm.Update(msg)
	m.taskForm = updated.(*TaskForm)

	if m.taskForm.Completed {
		result := m.taskForm.Result()
		m.state = stateMain
		m.taskList.Reload()
		if result.Error != nil {
			return m, m.reportError(result.Error)
		}
		return m, nil
	}
	return m, cmd
}

func (m *Model) updateSettingsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.settingsForm.Update(msg)
	m.settingsForm = updated.(*SettingsForm)

	if m.settingsForm.Completed {
		result := m.settingsForm.Result()
		m.state = stateMain
		if result.Error != nil {
			return m, m.reportError(result.Error)
		}
		if result.Saved {
			return m, func() tea.Msg {
				return SettingsChangedMsg{Settings: m.settingsService.Current()}
			}
		}
		return m, nil
	}
	return m, cmd
}

func (m *Model) updateQuoteForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.quoteForm.Update(msg)
	m.quoteForm = updated.(*QuoteForm)

	if m.quoteForm.Completed {
		result := m.quoteForm.Result()
		m.state = stateMain
		if result.Error != nil {
			return m, m.reportError(result.Error)
		}
		if result.Quote != nil {
			m.timerPanel.SetQuote(result.Quote.Content)
		}
		return m, nil
	}
	return m, cmd
}

func (m *Model) updateHelp(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q", "?":
			m.state = stateMain
		}
	}
	return m, nil
}

// handleCompletion applies the UI effects of a finished phase. The
// database write runs in a command so a slow disk never blocks a tick.
func (m *Model) handleCompletion(outcome services.TickOutcome) tea.Cmd {
	if outcome.Completion == nil {
		return nil
	}

	message := "Break over, back to focus"
	persist := m.refreshQuote()
	if outcome.Completion.WasFocus {
		message = "Focus session complete!"
		if credit := outcome.Credit; credit != nil {
			message = fmt.Sprintf("Focus session complete! %s (%d/%d)",
				credit.Description, credit.CompletedSessions+1, credit.TargetSessions)
			persist = m.recordCompletion(*credit)
		}
	}
	m.timerPanel.Celebrate(message)
	m.taskList.Reload()

	return tea.Batch(persist, m.celebrationNotice.Show(message))
}

// recordCompletion persists a focus credit off the update loop.
func (m *Model) recordCompletion(snapshot domain.TaskSnapshot) tea.Cmd {
	return func() tea.Msg {
		return CompletionRecordedMsg{Result: m.completionService.Record(context.Background(), snapshot)}
	}
}

func (m *Model) refreshQuote() tea.Cmd {
	return func() tea.Msg {
		quote, err := m.quoteService.Random(context.Background())
		if err != nil || quote == nil {
			return nil
		}
		return QuoteRefreshedMsg{Quote: quote}
	}
}

func (m *Model) reportError(err error) tea.Cmd {
	return m.errorNotice.Show(err.Error())
}

func (m *Model) listHeight() int {
	h := m.height - 16
	if h < 5 {
		h = 5
	}
	return h
}

func (m *Model) View() string {
	switch m.state {
	case stateCreatingTask, stateEditingTask:
		return m.taskForm.View()
	case stateSettings:
		return m.settingsForm.View()
	case stateAddingQuote:
		return m.quoteForm.View()
	case stateHelp:
		return renderHelp(m.keys)
	}

	header := theme.AppNameStyle.Render("ritmo")
	if m.devMode {
		header += " " + theme.VersionStyle.Render(version.Version)
	}
	if m.user != nil {
		name := m.user.DisplayName
		if name == "" {
			name = m.user.Name
		}
		header += "  " + theme.SubtitleStyle.Render(name)
	} else {
		header += "  " + theme.VersionStyle.Render("anonymous")
	}

	m.timerPanel.SetSelected(m.taskList.Selected())

	sections := []string{
		header,
		m.timerPanel.View(time.Now()),
		m.taskList.View(),
	}

	if m.errorNotice.Active() {
		sections = append(sections, theme.ErrorStyle.Render(
			formatErrorForDisplay(m.errorNotice.Text(), m.width),
		))
	}

	sections = append(sections, theme.HelpStyle.Render("space start/pause · s skip · n new task · ? help · q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
