package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ritmo/internal/domain"
	"ritmo/internal/logging"
	"ritmo/internal/ports"
)

// SQLiteRepository implements the task, goal, and quote repositories
// using GORM over a single sqlite database.
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var (
	_ ports.TaskRepository  = (*SQLiteRepository)(nil)
	_ ports.GoalRepository  = (*SQLiteRepository)(nil)
	_ ports.QuoteRepository = (*SQLiteRepository)(nil)
)

// gormLogger wraps the ritmo logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("RITMO_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository creates a new SQLiteRepository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Expand home directory if present
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for concurrent access
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA foreign_keys=ON")

	if err := db.AutoMigrate(&TaskModel{}, &GoalModel{}, &QuoteModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// --- Task repository ---

// Get implements ports.TaskReader.Get
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*domain.Task, error) {
	var model TaskModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	task := taskModelToDomain(model)
	return &task, nil
}

// List implements ports.TaskReader.List. Default ordering is position
// first, then creation time.
func (r *SQLiteRepository) List(ctx context.Context) ([]domain.Task, error) {
	var models []TaskModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Order("position ASC, created_at ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return taskModelsToDomain(models), nil
}

// ListForGoal implements ports.TaskReader.ListForGoal
func (r *SQLiteRepository) ListForGoal(ctx context.Context, goalID string) ([]domain.Task, error) {
	var models []TaskModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("goal_id = ?", goalID).
			Order("position ASC, created_at ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for goal: %w", err)
	}
	return taskModelsToDomain(models), nil
}

// ListUnassigned implements ports.TaskReader.ListUnassigned
func (r *SQLiteRepository) ListUnassigned(ctx context.Context) ([]domain.Task, error) {
	var models []TaskModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("goal_id IS NULL").
			Order("position ASC, created_at ASC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned tasks: %w", err)
	}
	return taskModelsToDomain(models), nil
}

// Insert implements ports.TaskWriter.Insert
func (r *SQLiteRepository) Insert(ctx context.Context, task domain.Task) (*domain.Task, error) {
	model := domainToTaskModel(task)
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}
	created := taskModelToDomain(model)
	return &created, nil
}

// Update implements ports.TaskWriter.Update
func (r *SQLiteRepository) Update(ctx context.Context, task domain.Task) (*domain.Task, error) {
	var model TaskModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", task.ID).First(&model).Error; err != nil {
				return err
			}
			model.Description = task.Description
			model.CompletedSessions = task.CompletedSessions
			model.TargetSessions = task.TargetSessions
			model.IsToday = task.IsToday
			model.IsFinished = task.IsFinished
			model.GoalID = task.GoalID
			model.Position = task.Position
			return tx.Save(&model).Error
		})
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	updated := taskModelToDomain(model)
	return &updated, nil
}

// Delete implements ports.TaskWriter.Delete
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&TaskModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete task: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrTaskNotFound
		}
		return nil
	}, 3)
}

// SwapPositions implements ports.TaskWriter.SwapPositions
func (r *SQLiteRepository) SwapPositions(ctx context.Context, id1, id2 string) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var t1, t2 TaskModel
			if err := tx.Where("id = ?", id1).First(&t1).Error; err != nil {
				return fmt.Errorf("failed to load task %s: %w", id1, err)
			}
			if err := tx.Where("id = ?", id2).First(&t2).Error; err != nil {
				return fmt.Errorf("failed to load task %s: %w", id2, err)
			}
			if err := tx.Model(&TaskModel{}).Where("id = ?", id1).
				Update("position", t2.Position).Error; err != nil {
				return err
			}
			return tx.Model(&TaskModel{}).Where("id = ?", id2).
				Update("position", t1.Position).Error
		})
	}, 3)
}

// UpdateCompletedSessions implements ports.TaskCompletionUpdater.
//
// The identifier normally matches the string primary key. Snapshots taken
// against rows imported from a legacy numeric-id backend may carry a bare
// number instead, so a miss is retried once against the legacy id column
// before giving up.
func (r *SQLiteRepository) UpdateCompletedSessions(ctx context.Context, id string, completed int) (*domain.Task, error) {
	var model TaskModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			result := tx.Model(&TaskModel{}).Where("id = ?", id).
				Update("completed_sessions", completed)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				legacyID, parseErr := strconv.ParseInt(id, 10, 64)
				if parseErr != nil {
					return domain.ErrTaskNotFound
				}
				logging.Logger.Debug("Task id missed, retrying as legacy numeric id", "id", id)
				result = tx.Model(&TaskModel{}).Where("legacy_id = ?", legacyID).
					Update("completed_sessions", completed)
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return domain.ErrTaskNotFound
				}
				return tx.Where("legacy_id = ?", legacyID).First(&model).Error
			}
			return tx.Where("id = ?", id).First(&model).Error
		})
	}, 3)
	if err != nil {
		return nil, err
	}
	updated := taskModelToDomain(model)
	return &updated, nil
}

// --- Goal repository ---

// GetGoal implements ports.GoalRepository.Get
func (r *SQLiteRepository) GetGoal(ctx context.Context, id string) (*domain.Goal, error) {
	var model GoalModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	goal := goalModelToDomain(model)
	return &goal, nil
}

// ListGoals implements ports.GoalRepository.List
func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	var models []GoalModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	goals := make([]domain.Goal, 0, len(models))
	for _, m := range models {
		goals = append(goals, goalModelToDomain(m))
	}
	return goals, nil
}

// InsertGoal implements ports.GoalRepository.Insert
func (r *SQLiteRepository) InsertGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error) {
	model := domainToGoalModel(goal)
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to insert goal: %w", err)
	}
	created := goalModelToDomain(model)
	return &created, nil
}

// UpdateGoal implements ports.GoalRepository.Update
func (r *SQLiteRepository) UpdateGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error) {
	var model GoalModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", goal.ID).First(&model).Error; err != nil {
				return err
			}
			model.Name = goal.Name
			model.OwnerUserID = goal.OwnerUserID
			return tx.Save(&model).Error
		})
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	updated := goalModelToDomain(model)
	return &updated, nil
}

// DeleteGoal implements ports.GoalRepository.Delete. Tasks assigned to
// the goal become unassigned rather than disappearing.
func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id string) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&TaskModel{}).Where("goal_id = ?", id).
				Update("goal_id", nil).Error; err != nil {
				return fmt.Errorf("failed to unassign tasks: %w", err)
			}
			result := tx.Where("id = ?", id).Delete(&GoalModel{})
			if result.Error != nil {
				return fmt.Errorf("failed to delete goal: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return domain.ErrGoalNotFound
			}
			return nil
		})
	}, 3)
}

// --- Quote repository ---

// ListForOwner implements ports.QuoteRepository.ListForOwner, newest first
func (r *SQLiteRepository) ListForOwner(ctx context.Context, ownerUserID string) ([]domain.Quote, error) {
	var models []QuoteModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("owner_user_id = ?", ownerUserID).
			Order("created_at DESC").
			Find(&models).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	quotes := make([]domain.Quote, 0, len(models))
	for _, m := range models {
		quotes = append(quotes, quoteModelToDomain(m))
	}
	return quotes, nil
}

// InsertQuote implements ports.QuoteRepository.Insert
func (r *SQLiteRepository) InsertQuote(ctx context.Context, quote domain.Quote) (*domain.Quote, error) {
	model := domainToQuoteModel(quote)
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Create(&model).Error
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to insert quote: %w", err)
	}
	created := quoteModelToDomain(model)
	return &created, nil
}

// UpdateQuote implements ports.QuoteRepository.Update
func (r *SQLiteRepository) UpdateQuote(ctx context.Context, quote domain.Quote) (*domain.Quote, error) {
	var model QuoteModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", quote.ID).First(&model).Error; err != nil {
				return err
			}
			model.Content = quote.Content
			return tx.Save(&model).Error
		})
	}, 3)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}
	updated := quoteModelToDomain(model)
	return &updated, nil
}

// DeleteQuote implements ports.QuoteRepository.Delete
func (r *SQLiteRepository) DeleteQuote(ctx context.Context, id string) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&QuoteModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete quote: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrQuoteNotFound
		}
		return nil
	}, 3)
}

// taskModelsToDomain converts a listing to domain tasks
func taskModelsToDomain(models []TaskModel) []domain.Task {
	tasks := make([]domain.Task, 0, len(models))
	for _, m := range models {
		tasks = append(tasks, taskModelToDomain(m))
	}
	return tasks
}

// withRetry retries operations on SQLITE_BUSY with exponential backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
