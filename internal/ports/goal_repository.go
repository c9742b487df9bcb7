package ports

import (
	"context"

	"ritmo/internal/domain"
)

// GoalRepository reads and mutates goals
type GoalRepository interface {
	GetGoal(ctx context.Context, id string) (*domain.Goal, error)
	ListGoals(ctx context.Context) ([]domain.Goal, error)
	InsertGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
}
