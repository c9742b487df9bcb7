package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"ritmo/internal/domain"
	"ritmo/internal/ports"
)

// fakeTickSource records Start/Stop calls and lets tests push events
type fakeTickSource struct {
	epoch    int
	deadline time.Time
	stops    int
	events   chan ports.TickEvent
}

func newFakeTickSource() *fakeTickSource {
	return &fakeTickSource{events: make(chan ports.TickEvent, 8)}
}

func (f *fakeTickSource) Start(deadline time.Time) int {
	f.epoch++
	f.deadline = deadline
	return f.epoch
}

func (f *fakeTickSource) Stop()                          { f.stops++ }
func (f *fakeTickSource) Events() <-chan ports.TickEvent { return f.events }
func (f *fakeTickSource) Close()                         {}

// fakeTaskRepo is an in-memory ports.TaskRepository
type fakeTaskRepo struct {
	mu       sync.Mutex
	tasks    map[string]domain.Task
	order    []string
	failNext error

	completionCalls []string
}

func newFakeTaskRepo(tasks ...domain.Task) *fakeTaskRepo {
	r := &fakeTaskRepo{tasks: make(map[string]domain.Task)}
	for _, t := range tasks {
		r.tasks[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	return r
}

func (r *fakeTaskRepo) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *fakeTaskRepo) Get(ctx context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &t, nil
}

func (r *fakeTaskRepo) List(ctx context.Context) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id])
	}
	return out, nil
}

func (r *fakeTaskRepo) ListForGoal(ctx context.Context, goalID string) ([]domain.Task, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Task
	for _, t := range all {
		if t.GoalID != nil && *t.GoalID == goalID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListUnassigned(ctx context.Context) ([]domain.Task, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Task
	for _, t := range all {
		if t.GoalID == nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Insert(ctx context.Context, task domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)
	return &task, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	if _, ok := r.tasks[task.ID]; !ok {
		return nil, domain.ErrTaskNotFound
	}
	r.tasks[task.ID] = task
	return &task, nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeTaskRepo) SwapPositions(ctx context.Context, id1, id2 string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}
	t1, ok1 := r.tasks[id1]
	t2, ok2 := r.tasks[id2]
	if !ok1 || !ok2 {
		return domain.ErrTaskNotFound
	}
	t1.Position, t2.Position = t2.Position, t1.Position
	r.tasks[id1] = t1
	r.tasks[id2] = t2
	return nil
}

func (r *fakeTaskRepo) UpdateCompletedSessions(ctx context.Context, id string, completed int) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completionCalls = append(r.completionCalls, id)
	if err := r.takeFailure(); err != nil {
		return nil, err
	}
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.CompletedSessions = completed
	r.tasks[id] = t
	return &t, nil
}

var _ ports.TaskRepository = (*fakeTaskRepo)(nil)

// fakeIdentity returns a fixed user
type fakeIdentity struct {
	user *domain.User
	err  error
}

func (f *fakeIdentity) CurrentUser(ctx context.Context) (*domain.User, error) {
	return f.user, f.err
}

func (f *fakeIdentity) Subscribe(fn func(*domain.User)) func() { return func() {} }

var _ ports.Identity = (*fakeIdentity)(nil)

// fakeSoundPlayer records which events were played
type fakeSoundPlayer struct {
	events []string
	err    error
}

func (f *fakeSoundPlayer) PlaySound() error {
	return f.PlaySoundForEvent("complete")
}

func (f *fakeSoundPlayer) PlaySoundForEvent(eventType string) error {
	f.events = append(f.events, eventType)
	return f.err
}

var _ ports.SoundPlayer = (*fakeSoundPlayer)(nil)

var errRepoDown = errors.New("repository unavailable")
