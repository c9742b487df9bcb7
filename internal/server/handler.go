package server

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"ritmo/internal/adapters/identity"
	"ritmo/internal/adapters/storage"
	"ritmo/internal/adapters/ticker"
	"ritmo/internal/config"
	"ritmo/internal/domain"
	"ritmo/internal/logging"
	"ritmo/internal/services"
	"ritmo/internal/ui"
)

// sessionModel wraps ui.Model to release per-session resources on quit
type sessionModel struct {
	*ui.Model
	sessionID string
	startTime time.Time
	repo      *storage.SQLiteRepository
	timer     *services.TimerService
}

func (s *sessionModel) Init() tea.Cmd {
	return s.Model.Init()
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.QuitMsg); ok {
		duration := time.Since(s.startTime)

		s.timer.Close()
		if err := s.repo.Close(); err != nil {
			logging.Logger.Error("Failed to close repository for SSH session",
				"error", err,
				"session_id", s.sessionID,
				"duration", duration.String())
		}

		logging.Logger.Info("SSH session ended",
			"session_id", s.sessionID,
			"duration", duration.String())
	}

	updatedModel, cmd := s.Model.Update(msg)
	if m, ok := updatedModel.(*ui.Model); ok {
		s.Model = m
	}
	return s, cmd
}

func (s *sessionModel) View() string {
	return s.Model.View()
}

// teaHandler creates a Bubble Tea model for each SSH session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	repo, err := storage.NewSQLiteRepository(s.dbPath)
	if err != nil {
		logging.Logger.Error("Failed to open database for SSH session",
			"error", err,
			"session_id", sessionID)
		return errorModel{err}, nil
	}

	// The SSH transport already authenticated the user
	ident := identity.NewStaticIdentity(domain.User{
		ID:   "ssh:" + sess.User(),
		Name: sess.User(),
	})

	store := config.NewStore(s.settings)
	settingsService := services.NewSettingsService(store, ident)
	taskService := services.NewTaskService(repo)
	goalService := services.NewGoalService(repo, taskService)
	quoteService := services.NewQuoteService(repo, ident)

	// No sound player over SSH; the cue would play on the server host
	completionService := services.NewCompletionService(repo, taskService, quoteService, nil, settingsService)
	timerService := services.NewTimerService(
		settingsService.DurationsFor(true),
		ticker.New(settingsService.TimerBackend()),
		completionService,
		settingsService,
	)

	errorClearDelay := 10 * time.Second
	if s.settings.ErrorClearDelay != nil {
		errorClearDelay = time.Duration(*s.settings.ErrorClearDelay) * time.Second
	}

	model := ui.NewModel(
		errorClearDelay,
		false, // SSH mode never uses dev mode
		ident,
		timerService,
		completionService,
		taskService,
		goalService,
		quoteService,
		settingsService,
	)

	wrappedModel := &sessionModel{
		Model:     model,
		sessionID: sessionID,
		startTime: time.Now(),
		repo:      repo,
		timer:     timerService,
	}

	return wrappedModel, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// errorModel is a simple model that displays an error
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd {
	return nil
}

func (e errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return e, tea.Quit
}

func (e errorModel) View() string {
	return fmt.Sprintf("Error: %v\n", e.err)
}
