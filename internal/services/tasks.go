package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"ritmo/internal/domain"
	"ritmo/internal/logging"
	"ritmo/internal/ports"
)

// TaskService owns the authoritative in-memory task collection and keeps
// it consistent with the repository. Views derive from the collection
// instead of holding copies, so an update in one view is visible in all.
type TaskService struct {
	repo ports.TaskRepository

	mu    sync.RWMutex
	cache *domain.TaskCollection
}

// NewTaskService creates a new TaskService with an empty cache
func NewTaskService(repo ports.TaskRepository) *TaskService {
	return &TaskService{
		repo:  repo,
		cache: domain.NewTaskCollection(nil),
	}
}

// Refresh reloads the collection from the repository
func (s *TaskService) Refresh(ctx context.Context) error {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache = domain.NewTaskCollection(tasks)
	s.mu.Unlock()
	return nil
}

// Get returns a task from the cache by identity
func (s *TaskService) Get(id string) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Get(id)
}

// All returns every cached task in display order
func (s *TaskService) All() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Ordered()
}

// Today returns the derived today view
func (s *TaskService) Today() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Today()
}

// Finished returns completed tasks
func (s *TaskService) Finished() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Finished()
}

// Create validates and persists a new task, appending it to the cache
func (s *TaskService) Create(ctx context.Context, description string, targetSessions int, isToday bool, goalID *string) (*domain.Task, error) {
	task := domain.Task{
		ID:             uuid.NewString(),
		Description:    description,
		TargetSessions: targetSessions,
		IsToday:        isToday,
		GoalID:         goalID,
		Position:       s.nextPosition(),
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, task)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache.Put(*created)
	s.mu.Unlock()

	logging.Logger.Info("Task created", "task_id", created.ID)
	return created, nil
}

// Update validates and persists changes to an existing task
func (s *TaskService) Update(ctx context.Context, task domain.Task) (*domain.Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache.Put(*updated)
	s.mu.Unlock()
	return updated, nil
}

// Delete removes a task from the repository and the cache
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.cache.Remove(id)
	s.mu.Unlock()

	logging.Logger.Info("Task deleted", "task_id", id)
	return nil
}

// SetToday moves a task in or out of the today view
func (s *TaskService) SetToday(ctx context.Context, id string, isToday bool) (*domain.Task, error) {
	task, ok := s.Get(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	task.IsToday = isToday
	return s.Update(ctx, task)
}

// SetFinished marks a task finished or reopens it
func (s *TaskService) SetFinished(ctx context.Context, id string, finished bool) (*domain.Task, error) {
	task, ok := s.Get(id)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	task.IsFinished = finished
	return s.Update(ctx, task)
}

// Swap exchanges the display positions of two tasks
func (s *TaskService) Swap(ctx context.Context, id1, id2 string) error {
	t1, ok1 := s.Get(id1)
	t2, ok2 := s.Get(id2)
	if !ok1 || !ok2 {
		return domain.ErrTaskNotFound
	}

	if err := s.repo.SwapPositions(ctx, id1, id2); err != nil {
		return err
	}

	t1.Position, t2.Position = t2.Position, t1.Position
	s.mu.Lock()
	s.cache.Put(t1)
	s.cache.Put(t2)
	s.swapOrder(id1, id2)
	s.mu.Unlock()
	return nil
}

// ApplyCompletion folds a persisted completion result back into the
// cache. Used by the completion orchestrator after a best-effort write.
func (s *TaskService) ApplyCompletion(task domain.Task) {
	s.mu.Lock()
	s.cache.Put(task)
	s.mu.Unlock()
}

func (s *TaskService) nextPosition() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	max := -1
	for _, t := range s.cache.Tasks {
		if t.Position > max {
			max = t.Position
		}
	}
	return max + 1
}

// swapOrder must be called with the lock held
func (s *TaskService) swapOrder(id1, id2 string) {
	i1, i2 := -1, -1
	for i, id := range s.cache.OrderedIDs {
		switch id {
		case id1:
			i1 = i
		case id2:
			i2 = i
		}
	}
	if i1 >= 0 && i2 >= 0 {
		s.cache.OrderedIDs[i1], s.cache.OrderedIDs[i2] = s.cache.OrderedIDs[i2], s.cache.OrderedIDs[i1]
	}
}
