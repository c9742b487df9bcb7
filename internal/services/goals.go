package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"ritmo/internal/domain"
	"ritmo/internal/logging"
	"ritmo/internal/ports"
)

// GoalService manages goals and their task groupings
type GoalService struct {
	repo  ports.GoalRepository
	tasks *TaskService
}

// NewGoalService creates a new GoalService
func NewGoalService(repo ports.GoalRepository, tasks *TaskService) *GoalService {
	return &GoalService{repo: repo, tasks: tasks}
}

// List returns all goals
func (s *GoalService) List(ctx context.Context) ([]domain.Goal, error) {
	return s.repo.ListGoals(ctx)
}

// Get returns a single goal by identity
func (s *GoalService) Get(ctx context.Context, id string) (*domain.Goal, error) {
	return s.repo.GetGoal(ctx, id)
}

// Create validates and persists a new goal
func (s *GoalService) Create(ctx context.Context, name string, ownerUserID *string) (*domain.Goal, error) {
	goal := domain.Goal{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		OwnerUserID: ownerUserID,
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.InsertGoal(ctx, goal)
	if err != nil {
		return nil, err
	}
	logging.Logger.Info("Goal created", "goal_id", created.ID)
	return created, nil
}

// Rename validates and persists a new goal name
func (s *GoalService) Rename(ctx context.Context, id, name string) (*domain.Goal, error) {
	goal, err := s.repo.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}
	goal.Name = strings.TrimSpace(name)
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpdateGoal(ctx, *goal)
}

// Delete removes a goal. Its tasks survive as unassigned, so the task
// cache is refreshed afterwards.
func (s *GoalService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteGoal(ctx, id); err != nil {
		return err
	}
	if err := s.tasks.Refresh(ctx); err != nil {
		logging.Logger.Warn("Task refresh after goal delete failed", "error", err)
	}
	logging.Logger.Info("Goal deleted", "goal_id", id)
	return nil
}

// Tasks returns the tasks assigned to a goal
func (s *GoalService) Tasks(ctx context.Context, id string) ([]domain.Task, error) {
	return s.tasks.repo.ListForGoal(ctx, id)
}

// Unassigned returns tasks without a goal
func (s *GoalService) Unassigned(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.repo.ListUnassigned(ctx)
}
