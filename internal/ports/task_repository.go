package ports

import (
	"context"

	"ritmo/internal/domain"
)

// TaskReader reads task data
type TaskReader interface {
	Get(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	ListForGoal(ctx context.Context, goalID string) ([]domain.Task, error)
	ListUnassigned(ctx context.Context) ([]domain.Task, error)
}

// TaskWriter creates, updates, and deletes tasks
type TaskWriter interface {
	Insert(ctx context.Context, task domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	SwapPositions(ctx context.Context, id1, id2 string) error
}

// TaskCompletionUpdater persists completed-session counts. The identity
// may come from a snapshot taken before a legacy import, so adapters must
// tolerate numeric-vs-string identifier mismatches with a single coercion
// retry before giving up.
type TaskCompletionUpdater interface {
	UpdateCompletedSessions(ctx context.Context, id string, completed int) (*domain.Task, error)
}

// TaskRepository is the composite interface
type TaskRepository interface {
	TaskReader
	TaskWriter
	TaskCompletionUpdater
}
