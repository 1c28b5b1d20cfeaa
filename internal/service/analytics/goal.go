package analytics

import (
	"math"
	"time"

	"nexus-dashboard/internal/domain"
)

type GoalProgress struct {
	Goal       domain.Goal `json:"goal"`
	Achieved   float64     `json:"achieved"`
	Percentage int         `json:"percentage"`
	DaysLeft   int         `json:"daysLeft"`
}

// ActiveGoal returns the first goal whose window contains now. Overlapping goals are resolved by
// list order only.
func ActiveGoal(goals []domain.Goal, now time.Time) *domain.Goal {
	for i := range goals {
		if goals[i].ActiveAt(now) {
			return &goals[i]
		}
	}
	return nil
}

func Progress(g *domain.Goal, projects []domain.Project, now time.Time) GoalProgress {
	loc := now.Location()
	start, end := g.Window(loc)
	w := Window{Start: start, End: end}

	gp := GoalProgress{Goal: *g}
	for _, pc := range InWindow(projects, w) {
		gp.Achieved += CollectedRevenue(pc.Sale)
	}

	if g.TargetAmount > 0 {
		pct := math.Round(gp.Achieved / g.TargetAmount * 100)
		gp.Percentage = int(math.Min(100, pct))
	}

	left := math.Ceil(float64(g.EndDate.In(loc).Sub(now)) / float64(24*time.Hour))
	gp.DaysLeft = int(math.Max(0, left))

	return gp
}

// ActiveProgress is Progress for the active goal, or nil when no goal covers now.
func ActiveProgress(goals []domain.Goal, projects []domain.Project, now time.Time) *GoalProgress {
	g := ActiveGoal(goals, now)
	if g == nil {
		return nil
	}
	gp := Progress(g, projects, now)
	return &gp
}
