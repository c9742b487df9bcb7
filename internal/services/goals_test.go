package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ritmo/internal/domain"
	"ritmo/internal/ports"
)

// fakeGoalRepo is an in-memory ports.GoalRepository. Deleting a goal
// unassigns its tasks in the paired task repo, matching the sqlite
// adapter's behavior.
type fakeGoalRepo struct {
	goals map[string]domain.Goal
	tasks *fakeTaskRepo
}

func newFakeGoalRepo(tasks *fakeTaskRepo) *fakeGoalRepo {
	return &fakeGoalRepo{goals: make(map[string]domain.Goal), tasks: tasks}
}

func (r *fakeGoalRepo) GetGoal(ctx context.Context, id string) (*domain.Goal, error) {
	g, ok := r.goals[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	return &g, nil
}

func (r *fakeGoalRepo) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	out := make([]domain.Goal, 0, len(r.goals))
	for _, g := range r.goals {
		out = append(out, g)
	}
	return out, nil
}

func (r *fakeGoalRepo) InsertGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error) {
	r.goals[goal.ID] = goal
	return &goal, nil
}

func (r *fakeGoalRepo) UpdateGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error) {
	if _, ok := r.goals[goal.ID]; !ok {
		return nil, domain.ErrGoalNotFound
	}
	r.goals[goal.ID] = goal
	return &goal, nil
}

func (r *fakeGoalRepo) DeleteGoal(ctx context.Context, id string) error {
	if _, ok := r.goals[id]; !ok {
		return domain.ErrGoalNotFound
	}
	delete(r.goals, id)
	for taskID, t := range r.tasks.tasks {
		if t.GoalID != nil && *t.GoalID == id {
			t.GoalID = nil
			r.tasks.tasks[taskID] = t
		}
	}
	return nil
}

var _ ports.GoalRepository = (*fakeGoalRepo)(nil)

func TestGoalCreateValidates(t *testing.T) {
	taskRepo := newFakeTaskRepo()
	svc := NewGoalService(newFakeGoalRepo(taskRepo), NewTaskService(taskRepo))

	_, err := svc.Create(context.Background(), "  ", nil)
	assert.ErrorIs(t, err, domain.ErrEmptyGoalName)

	goal, err := svc.Create(context.Background(), "  Ship v1  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "Ship v1", goal.Name)
}

func TestGoalDeleteUnassignsTasksAndRefreshesCache(t *testing.T) {
	goalID := "g1"
	taskRepo := newFakeTaskRepo(domain.Task{
		ID: "t1", Description: "task", TargetSessions: 1, GoalID: &goalID,
	})
	goalRepo := newFakeGoalRepo(taskRepo)
	goalRepo.goals[goalID] = domain.Goal{ID: goalID, Name: "Ship v1"}

	tasks := NewTaskService(taskRepo)
	require.NoError(t, tasks.Refresh(context.Background()))
	svc := NewGoalService(goalRepo, tasks)

	require.NoError(t, svc.Delete(context.Background(), goalID))

	cached, ok := tasks.Get("t1")
	require.True(t, ok)
	assert.Nil(t, cached.GoalID)

	err := svc.Delete(context.Background(), goalID)
	assert.ErrorIs(t, err, domain.ErrGoalNotFound)
}

func TestGoalRename(t *testing.T) {
	taskRepo := newFakeTaskRepo()
	goalRepo := newFakeGoalRepo(taskRepo)
	goalRepo.goals["g1"] = domain.Goal{ID: "g1", Name: "old"}
	svc := NewGoalService(goalRepo, NewTaskService(taskRepo))

	renamed, err := svc.Rename(context.Background(), "g1", " new name ")
	require.NoError(t, err)
	assert.Equal(t, "new name", renamed.Name)

	_, err = svc.Rename(context.Background(), "g1", "  ")
	assert.ErrorIs(t, err, domain.ErrEmptyGoalName)
}
