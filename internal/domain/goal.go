package domain

import (
	"time"
)

type Goal struct {
	ID           string    `json:"id"`
	Type         GoalType  `json:"type"`
	TargetAmount float64   `json:"targetAmount"`
	StartDate    Date      `json:"startDate"`
	EndDate      Date      `json:"endDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

type GoalType string

const (
	GoalWeekly  GoalType = "weekly"
	GoalMonthly GoalType = "monthly"
)

// Window returns the goal period in loc with the end date inclusive to its last instant.
func (g *Goal) Window(loc *time.Location) (time.Time, time.Time) {
	return g.StartDate.In(loc), g.EndDate.EndIn(loc)
}

func (g *Goal) ActiveAt(now time.Time) bool {
	start, end := g.Window(now.Location())
	return !now.Before(start) && !now.After(end)
}

type CreateGoalInput struct {
	Type         GoalType `json:"type"`
	TargetAmount float64  `json:"targetAmount"`
	StartDate    Date     `json:"startDate"`
	EndDate      Date     `json:"endDate"`
}
