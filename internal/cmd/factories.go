package cmd

import (
	"context"

	adapteridentity "ritmo/internal/adapters/identity"
	adaptersound "ritmo/internal/adapters/sound"
	adapterstorage "ritmo/internal/adapters/storage"
	adapterticker "ritmo/internal/adapters/ticker"
	"ritmo/internal/config"
	"ritmo/internal/ports"
	"ritmo/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	CompletionService *services.CompletionService
	GoalService       *services.GoalService
	QuoteService      *services.QuoteService
	SettingsService   *services.SettingsService
	TaskService       *services.TaskService
	TimerService      *services.TimerService

	// Adapters exposed to commands
	Identity    *adapteridentity.LocalIdentity
	SoundPlayer ports.SoundPlayer

	// Internal - for cleanup only
	repo *adapterstorage.SQLiteRepository
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(settings *config.Settings) (*Container, error) {
	repo, err := adapterstorage.NewSQLiteRepository(config.GetDBPath())
	if err != nil {
		return nil, err
	}

	localIdentity := adapteridentity.NewLocalIdentity(config.GetProfilePath(), config.GetSessionTokenPath())
	soundPlayer := adaptersound.NewPlayer()
	store := config.NewStore(settings)

	settingsService := services.NewSettingsService(store, localIdentity)
	taskService := services.NewTaskService(repo)
	goalService := services.NewGoalService(repo, taskService)
	quoteService := services.NewQuoteService(repo, localIdentity)
	completionService := services.NewCompletionService(repo, taskService, quoteService, soundPlayer, settingsService)

	// Durations resolve against the auth state at startup; an auth change
	// re-applies them through the TUI's AuthChangedMsg path.
	tickSource := adapterticker.New(settingsService.TimerBackend())
	timerService := services.NewTimerService(
		settingsService.ResolveDurations(context.Background()),
		tickSource,
		completionService,
		settingsService,
	)

	return &Container{
		CompletionService: completionService,
		GoalService:       goalService,
		Identity:          localIdentity,
		QuoteService:      quoteService,
		SettingsService:   settingsService,
		SoundPlayer:       soundPlayer,
		TaskService:       taskService,
		TimerService:      timerService,
		repo:              repo,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.TimerService != nil {
		c.TimerService.Close()
	}
	if c.repo != nil {
		return c.repo.Close()
	}
	return nil
}
