package workspace

import (
	"context"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/appctx"
)

func (w *Workspace) Goals() []domain.Goal {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]domain.Goal{}, w.goals...)
}

func (w *Workspace) CreateGoal(ctx context.Context, ac appctx.Context, input domain.CreateGoalInput) (*domain.Goal, error) {
	if input.Type != domain.GoalWeekly && input.Type != domain.GoalMonthly {
		return nil, ErrInvalidGoal
	}
	if input.TargetAmount < 0 || input.StartDate.IsZero() || input.EndDate.IsZero() || input.EndDate.Before(input.StartDate) {
		return nil, ErrInvalidGoal
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	g := domain.Goal{
		ID:           newID(),
		Type:         input.Type,
		TargetAmount: input.TargetAmount,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		CreatedAt:    ac.Now(),
	}
	w.goals = append(w.goals, g)

	if err := w.commit(ctx, domain.PartitionGoals); err != nil {
		return nil, err
	}
	return &g, nil
}

// DeleteGoal removes the goal. Unknown ids are a no-op.
func (w *Workspace) DeleteGoal(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.goals {
		if w.goals[i].ID == id {
			w.goals = append(w.goals[:i], w.goals[i+1:]...)
			return w.commit(ctx, domain.PartitionGoals)
		}
	}
	return nil
}
